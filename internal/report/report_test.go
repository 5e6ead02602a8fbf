package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/celestiaorg/booking-acceptance/internal/logger"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	content := []byte(`{"a":1}`)
	r.Attach("API Response Body", ContentTypeJSON, content)
	r.Step("Teardown: deleted booking ID 3")

	content[0] = 'x'

	attachments := r.Attachments()
	assert.Len(t, attachments, 1)
	assert.Equal(t, "API Response Body", attachments[0].Name)
	assert.Equal(t, ContentTypeJSON, attachments[0].ContentType)
	assert.Equal(t, `{"a":1}`, string(attachments[0].Content), "recorded content must be a copy")
	assert.Equal(t, []string{"Teardown: deleted booking ID 3"}, r.Steps())
}

func TestMulti(t *testing.T) {
	first, second := NewRecorder(), NewRecorder()
	sink := Multi(first, second)

	sink.Attach("API Status Code", ContentTypeText, []byte("500"))
	sink.Step("hello")

	for _, r := range []*Recorder{first, second} {
		assert.Len(t, r.Attachments(), 1)
		assert.Equal(t, []string{"hello"}, r.Steps())
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.InitializeAndConfigure("info") })

	sink := NewLogSink()
	sink.Attach("API Request Body", ContentTypeJSON, []byte(`{"roomid":1}`))
	sink.Step("Starting scenario: create booking")

	out := buf.String()
	assert.Contains(t, out, `"name":"API Request Body"`)
	assert.Contains(t, out, "Starting scenario: create booking")
}
