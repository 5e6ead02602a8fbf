// Package report defines where scenario diagnostics go
package report

import (
	"sync"

	"github.com/celestiaorg/booking-acceptance/internal/logger"
)

// Content types used for attachments
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// Sink receives named attachments and step notes for the running scenario
type Sink interface {
	Attach(name, contentType string, content []byte)
	Step(message string)
}

// Attachment is one named piece of diagnostic content
type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// LogSink writes attachments and steps through the structured logger
type LogSink struct{}

// NewLogSink returns a Sink backed by the logger
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Attach logs the attachment at info level
func (LogSink) Attach(name, contentType string, content []byte) {
	logger.InfoWithFields("Attachment", map[string]interface{}{
		"name":         name,
		"content_type": contentType,
		"content":      string(content),
	})
}

// Step logs a report step at info level
func (LogSink) Step(message string) {
	logger.InfoWithFields("Step", map[string]interface{}{
		"step": message,
	})
}

// Recorder keeps attachments and steps in memory
type Recorder struct {
	mu          sync.Mutex
	attachments []Attachment
	steps       []string
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Attach records an attachment
func (r *Recorder) Attach(name, contentType string, content []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachments = append(r.attachments, Attachment{
		Name:        name,
		ContentType: contentType,
		Content:     append([]byte(nil), content...),
	})
}

// Step records a step note
func (r *Recorder) Step(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, message)
}

// Attachments returns a copy of the recorded attachments
func (r *Recorder) Attachments() []Attachment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Attachment(nil), r.attachments...)
}

// Steps returns a copy of the recorded step notes
func (r *Recorder) Steps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.steps...)
}

// Multi fans out to every sink in order
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Attach(name, contentType string, content []byte) {
	for _, s := range m {
		s.Attach(name, contentType, content)
	}
}

func (m multiSink) Step(message string) {
	for _, s := range m {
		s.Step(message)
	}
}
