package sink

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSSESinkSetsHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()
	_, err := NewSSESink(recorder)
	assert.NoError(t, err)
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", recorder.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", recorder.Header().Get("Connection"))
}

func TestEmitTextFraming(t *testing.T) {
	recorder := httptest.NewRecorder()
	s, err := NewSSESink(recorder)
	assert.NoError(t, err)

	s.EmitText("hello")
	s.EmitText(`with "quotes" and
newline`)

	body := recorder.Body.String()
	assert.Contains(t, body, "data: {\"content\":\"hello\"}\n\n")
	assert.Contains(t, body, `\"quotes\"`)
	assert.Contains(t, body, `\n`)
	assert.True(t, recorder.Flushed)
}

func TestEmitErrorFraming(t *testing.T) {
	recorder := httptest.NewRecorder()
	s, err := NewSSESink(recorder)
	assert.NoError(t, err)

	s.EmitError("upstream went away")

	assert.Contains(t, recorder.Body.String(), "data: {\"error\":\"upstream went away\"}\n\n")
}

func TestEmitDoneIsTerminalAndIdempotent(t *testing.T) {
	recorder := httptest.NewRecorder()
	s, err := NewSSESink(recorder)
	assert.NoError(t, err)

	s.EmitText("one")
	s.EmitDone()
	s.EmitDone()
	s.EmitText("after close")
	s.EmitError("after close")

	body := recorder.Body.String()
	assert.Equal(t, "data: {\"content\":\"one\"}\n\ndata: [DONE]\n\n", body)
}
