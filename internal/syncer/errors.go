package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"GoldSync/internal/catalog"
	"GoldSync/internal/collector"
)

// FailureKind classifies why a cycle or a record failed.
type FailureKind string

const (
	KindUnreachable FailureKind = "network_unreachable"
	KindTimeout     FailureKind = "timeout"
	KindAuth        FailureKind = "auth_failure"
	KindMalformed   FailureKind = "malformed_response"
	KindGeneric     FailureKind = "generic"
)

// Phase names the step of a cycle an error escaped from.
type Phase string

const (
	PhaseFetchQuote   Phase = "FETCH_QUOTE"
	PhaseFetchCatalog Phase = "FETCH_CATALOG"
	PhaseCycle        Phase = "CYCLE"
)

// CycleError is returned when a cycle is aborted before any per-item work.
type CycleError struct {
	Phase Phase
	Kind  FailureKind
	Err   error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Phase, e.Kind, e.Err)
}

func (e *CycleError) Unwrap() error { return e.Err }

// Classify maps an error onto a FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return ""
	}

	var qse *collector.StatusError
	if errors.Is(err, catalog.ErrUnauthorized) ||
		(errors.As(err, &qse) && (qse.StatusCode == http.StatusUnauthorized || qse.StatusCode == http.StatusForbidden)) {
		return KindAuth
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, collector.ErrMissingAsk) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindMalformed
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EHOSTUNREACH) {
		return KindUnreachable
	}

	return KindGeneric
}
