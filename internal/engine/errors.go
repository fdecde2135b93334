package engine

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultRetryAfter is assumed when a provider answers 429 without a usable Retry-After.
const DefaultRetryAfter = time.Minute

// maxErrorBody caps how much of a failed provider response ends up in an error message.
const maxErrorBody = 500

// RateLimitError reports a 429 from one provider, or from the whole chain when Provider is "all".
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited, retry in %s: %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// RateLimited wraps err for provider. A non-positive wait becomes DefaultRetryAfter.
func RateLimited(provider string, wait time.Duration, err error) *RateLimitError {
	if wait <= 0 {
		wait = DefaultRetryAfter
	}
	return &RateLimitError{Provider: provider, RetryAfter: wait, Err: err}
}

// StatusError is a non-200 provider response other than 429.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Body)
}

// CheckResponse turns a failed provider response into a StatusError, or a RateLimitError
// when the provider answered 429. It returns nil for 200.
func CheckResponse(provider string, resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	statusErr := &StatusError{Provider: provider, Status: resp.StatusCode, Body: snippet(body)}
	if resp.StatusCode == http.StatusTooManyRequests {
		return RateLimited(provider, RetryAfter(resp.Header, time.Now()), statusErr)
	}
	return statusErr
}

// RetryAfter reads a Retry-After header given as delta-seconds or as an HTTP date.
// Missing, malformed and past values yield zero.
func RetryAfter(h http.Header, now time.Time) time.Duration {
	val := strings.TrimSpace(h.Get("Retry-After"))
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	at, err := http.ParseTime(val)
	if err != nil || !at.After(now) {
		return 0
	}
	return at.Sub(now).Round(time.Second)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
