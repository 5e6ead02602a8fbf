package test

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/booking-acceptance/internal/logger"
)

// RecordedRequest is one request handled by the fake API
type RecordedRequest struct {
	Method string
	Path   string
	Cookie string
	Status int
}

// RequestLog records every request reaching the fake API
type RequestLog struct {
	mu       sync.Mutex
	requests []RecordedRequest
}

// NewRequestLog creates an empty RequestLog
func NewRequestLog() *RequestLog {
	return &RequestLog{}
}

// Middleware records the request once the handler has written the response
func (l *RequestLog) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// fiber reuses its buffers after the handler returns
		rec := RecordedRequest{
			Method: strings.Clone(c.Method()),
			Path:   strings.Clone(c.Path()),
			Cookie: strings.Clone(c.Get(fiber.HeaderCookie)),
			Status: c.Response().StatusCode(),
		}
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				rec.Status = fe.Code
			}
		}

		l.mu.Lock()
		l.requests = append(l.requests, rec)
		l.mu.Unlock()
		return err
	}
}

// Requests returns a copy of the recorded requests in arrival order
func (l *RequestLog) Requests() []RecordedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]RecordedRequest, len(l.requests))
	copy(out, l.requests)
	return out
}

// Count returns how many requests matched method and path exactly
func (l *RequestLog) Count(method, path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// CountMethod returns how many requests used method on any path with the given prefix
func (l *RequestLog) CountMethod(method, prefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.requests {
		if r.Method == method && strings.HasPrefix(r.Path, prefix) {
			n++
		}
	}
	return n
}

// Reset forgets every recorded request
func (l *RequestLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = nil
}

// requestLogger logs each handled request
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue chain
		err := c.Next()

		logger.DebugWithFields("Fake API request", map[string]interface{}{
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start),
			"method":  c.Method(),
			"path":    c.Path(),
			"handler": c.Route().Name,
		})
		return err
	}
}
