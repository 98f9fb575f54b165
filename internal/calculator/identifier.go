package calculator

import (
	"math"
	"strconv"
	"strings"

	"GoldSync/internal/model"
)

const (
	// DefaultPurityGrade is assumed when an identifier carries no purity marker.
	DefaultPurityGrade = 24

	identifierDelimiter = "-"
	purityMarker        = 'K'
	weightMarker        = 'G'
)

// ParseIdentifier extracts purity grade and weight from an identifier such as
// "GOLD-22K-10G". It never fails: a missing marker falls back to its default,
// and any malformed marker token resets the whole result to {24, 0}.
//
// The first token containing K is the purity token. The first token containing
// G is the weight token, except purely alphabetic words such as GOLD or RING.
// A marker token must be a number with the marker at one end ("22K", "K22",
// "10.5G"); anything else ("22KT", "XK", "10KG") is malformed.
func ParseIdentifier(identifier string) model.ParsedAttributes {
	defaults := model.ParsedAttributes{PurityGrade: DefaultPurityGrade}
	if strings.TrimSpace(identifier) == "" {
		return defaults
	}

	tokens := strings.Split(strings.ToUpper(identifier), identifierDelimiter)
	attrs := defaults

	if tok, ok := findToken(tokens, purityMarker, false); ok {
		raw, ok := stripMarker(tok, purityMarker)
		if !ok || strings.Contains(raw, ".") {
			return defaults
		}
		grade, err := strconv.Atoi(raw)
		if err != nil {
			return defaults
		}
		attrs.PurityGrade = grade
	}

	if tok, ok := findToken(tokens, weightMarker, true); ok {
		raw, ok := stripMarker(tok, weightMarker)
		if !ok {
			return defaults
		}
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return defaults
		}
		attrs.WeightGrams = weight
	}

	return attrs
}

// findToken returns the first token containing the marker. With skipWords,
// tokens made only of letters are not considered.
func findToken(tokens []string, marker byte, skipWords bool) (string, bool) {
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if strings.IndexByte(tok, marker) < 0 {
			continue
		}
		if skipWords && isWord(tok) {
			continue
		}
		return tok, true
	}
	return "", false
}

// stripMarker removes the marker from either end of tok and reports whether
// what remains is a plain number.
func stripMarker(tok string, marker byte) (string, bool) {
	var raw string
	switch {
	case strings.HasSuffix(tok, string(marker)):
		raw = tok[:len(tok)-1]
	case strings.HasPrefix(tok, string(marker)):
		raw = tok[1:]
	default:
		return "", false
	}
	if raw == "" {
		return "", false
	}
	for i := 0; i < len(raw); i++ {
		if !isNumeric(raw[i]) {
			return "", false
		}
	}
	return raw, true
}

func isWord(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if tok[i] < 'A' || tok[i] > 'Z' {
			return false
		}
	}
	return true
}

func isNumeric(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}
