// Package client provides the HTTP clients used by scenarios to call the booking API.
//
// Clients are stateless: they carry only the immutable base URL and timeout of
// the active environment, so they can be shared between scenarios or built per
// call. Every call returns the full Exchange. A non-2xx status is data, not an
// error; only transport failures (connection refused, timeout) are returned
// as errors.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/logger"
)

// CookieName is the cookie carrying the auth token
const CookieName = "token"

// RequestOption customizes a single call
type RequestOption func(*requestOptions)

type requestOptions struct {
	cookie string
}

// WithCookie sends header as the Cookie header, e.g. "token=abc123".
// Calls made without it are deliberately unauthenticated.
func WithCookie(header string) RequestOption {
	return func(o *requestOptions) {
		o.cookie = header
	}
}

// CookieHeader builds the Cookie header value for a token
func CookieHeader(token string) string {
	return CookieName + "=" + token
}

// base holds what every client needs to build a request
type base struct {
	baseURL string
	timeout time.Duration
}

func newBase(cfg *config.Config) base {
	return base{
		baseURL: cfg.BaseURL(),
		timeout: cfg.Timeout(),
	}
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (b base) createAgent(ctx context.Context, method, endpoint string) (*fiber.Agent, error) {
	fullURL := b.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(b.timeout)
	}

	agent.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	return agent, nil
}

// do sends one request and captures the whole exchange
func (b base) do(ctx context.Context, method, endpoint string, payload any, opts ...RequestOption) (*Exchange, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	// marshal before taking an agent from the pool
	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error marshaling request: %w", err)
		}
	}

	agent, err := b.createAgent(ctx, method, endpoint)
	if err != nil {
		return nil, err
	}
	if o.cookie != "" {
		agent.Set(fiber.HeaderCookie, o.cookie)
	}

	if reqBody != nil {
		agent.Body(reqBody)
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	agent.SetResponse(resp)

	start := time.Now()
	statusCode, body, errs := agent.Bytes()
	latency := time.Since(start)
	if len(errs) > 0 {
		logger.WarnWithFields("Request failed", map[string]interface{}{
			"method":  method,
			"url":     b.baseURL + endpoint,
			"latency": latency,
			"error":   errs[0].Error(),
		})
		return nil, fmt.Errorf("error sending request %s %s: %w", method, endpoint, errs[0])
	}

	header := make(http.Header)
	resp.Header.VisitAll(func(key, value []byte) {
		header.Add(string(key), string(value))
	})

	ex := &Exchange{
		Method:      method,
		URL:         b.baseURL + endpoint,
		RequestBody: reqBody,
		StatusCode:  statusCode,
		Header:      header,
		Body:        body,
		Latency:     latency,
	}

	logger.DebugWithFields("Request", map[string]interface{}{
		"method":  method,
		"url":     ex.URL,
		"status":  statusCode,
		"latency": latency,
		"auth":    o.cookie != "",
	})

	return ex, nil
}

// TokenFrom returns the token of a successful login exchange
func TokenFrom(ex *Exchange) (string, bool) {
	if ex == nil || ex.StatusCode != http.StatusOK {
		return "", false
	}
	token := strings.TrimSpace(ex.Get("token").String())
	return token, token != ""
}

// BookingIDFrom returns the id assigned by a successful create exchange
func BookingIDFrom(ex *Exchange) (int, bool) {
	if ex == nil || ex.StatusCode != http.StatusCreated {
		return 0, false
	}
	id := ex.Get("bookingid")
	if !id.Exists() || id.Int() <= 0 {
		return 0, false
	}
	return int(id.Int()), true
}
