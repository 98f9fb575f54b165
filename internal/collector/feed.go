package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"GoldSync/internal/model"
)

// TokenPlaceholder is replaced by the feed credential in the URL template.
const TokenPlaceholder = "{token}"

// ErrMissingAsk is returned when the feed response carries no usable ask price.
var ErrMissingAsk = errors.New("quote response has no ask price")

// StatusError is returned for a non-2xx feed response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("quote feed: status %d, body: %s", e.StatusCode, e.Body)
}

// FeedFetcher implements QuoteFetcher against a JSON price feed whose URL
// embeds the access token in its path.
type FeedFetcher struct {
	URLTemplate string
	Token       string
	Timeout     time.Duration
	Client      *http.Client
}

// NewFeedFetcher creates a new fetcher with optional proxy support.
func NewFeedFetcher(urlTemplate, token, proxyURL string, timeout time.Duration) *FeedFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FeedFetcher{
		URLTemplate: urlTemplate,
		Token:       token,
		Timeout:     timeout,
		Client:      &http.Client{Transport: transport},
	}
}

func (f *FeedFetcher) Name() string { return "feed" }

// feedQuote accepts both the nested and the flat ask layouts.
type feedQuote struct {
	Gold *struct {
		Ask *float64 `json:"ask"`
	} `json:"gold"`
	GoldAsk *float64 `json:"goldAsk"`
}

func (q *feedQuote) ask() (float64, bool) {
	var v *float64
	if q.Gold != nil && q.Gold.Ask != nil {
		v = q.Gold.Ask
	} else if q.GoldAsk != nil {
		v = q.GoldAsk
	}
	if v == nil || *v <= 0 || math.IsInf(*v, 0) || math.IsNaN(*v) {
		return 0, false
	}
	return *v, true
}

func (f *FeedFetcher) endpoint() string {
	return strings.ReplaceAll(f.URLTemplate, TokenPlaceholder, url.PathEscape(f.Token))
}

// FetchQuote issues one bounded GET to the feed and extracts the ask price.
func (f *FeedFetcher) FetchQuote(ctx context.Context) (*model.Quote, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read quote body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var q feedQuote
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	ask, ok := q.ask()
	if !ok {
		return nil, ErrMissingAsk
	}
	return &model.Quote{Ask: ask, Source: f.Name(), FetchedAt: time.Now()}, nil
}
