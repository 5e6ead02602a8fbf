package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Exchange is the complete observable result of one HTTP call.
// It is populated for every status code the remote returns.
type Exchange struct {
	// Request side
	Method      string
	URL         string
	RequestBody []byte

	// Response side
	StatusCode int
	Header     http.Header
	Body       []byte
	Latency    time.Duration

	parseOnce sync.Once
	parsed    any
	parseErr  error
}

// Text returns the raw response body
func (e *Exchange) Text() string {
	return string(e.Body)
}

// JSON returns the body decoded into generic JSON values. The body is parsed
// on first use only.
func (e *Exchange) JSON() (any, error) {
	e.parseOnce.Do(func() {
		if len(e.Body) == 0 {
			e.parseErr = fmt.Errorf("empty response body (status %d)", e.StatusCode)
			return
		}
		e.parseErr = json.Unmarshal(e.Body, &e.parsed)
	})
	return e.parsed, e.parseErr
}

// Decode unmarshals the body into v
func (e *Exchange) Decode(v any) error {
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// Get looks up a gjson path in the body, e.g. "bookingdates.checkin".
// A missing path or a non-JSON body yields a result whose Exists() is false.
func (e *Exchange) Get(path string) gjson.Result {
	return gjson.GetBytes(e.Body, path)
}

// Pretty returns the body indented for reports. Non-JSON bodies are returned as-is.
func (e *Exchange) Pretty() string {
	if !gjson.ValidBytes(e.Body) {
		return string(e.Body)
	}
	return string(pretty.Pretty(e.Body))
}

// IsSuccess reports whether the status is 2xx
func (e *Exchange) IsSuccess() bool {
	return e.StatusCode >= 200 && e.StatusCode < 300
}

// String summarizes the exchange for logs and assertion messages
func (e *Exchange) String() string {
	return fmt.Sprintf("%s %s -> %d", e.Method, e.URL, e.StatusCode)
}
