package controllers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dvlin-dev/aichat/internal/app/controllers"
	"github.com/dvlin-dev/aichat/internal/pkg/speech"
)

type fakeSynthesizer struct {
	got   speech.Request
	audio string
	err   error
}

func (s *fakeSynthesizer) Synthesize(ctx context.Context, req speech.Request) (io.ReadCloser, string, error) {
	s.got = req
	if s.err != nil {
		return nil, "", s.err
	}
	return io.NopCloser(strings.NewReader(s.audio)), "audio/mpeg", nil
}

func newTTSRouter(synthesizer *fakeSynthesizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := controllers.NewTTSController(synthesizer)
	r.POST("/api/v1/tts", controller.Synthesize)
	return r
}

func TestSynthesizeStreamsAudio(t *testing.T) {
	synthesizer := &fakeSynthesizer{audio: "binary-audio-bytes"}
	router := newTTSRouter(synthesizer)

	body := `{"input":"hello","voice":"alloy","speed":1.2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "audio/mpeg", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "binary-audio-bytes", recorder.Body.String())
	assert.Equal(t, "hello", synthesizer.got.Input)
	assert.Equal(t, "alloy", synthesizer.got.Voice)
	assert.Equal(t, 1.2, synthesizer.got.Speed)
}

func TestSynthesizeRejectsMissingInput(t *testing.T) {
	router := newTTSRouter(&fakeSynthesizer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSynthesizeUpstreamFailure(t *testing.T) {
	router := newTTSRouter(&fakeSynthesizer{err: errors.New("overloaded")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tts", strings.NewReader(`{"input":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "error")
}
