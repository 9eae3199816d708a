package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvlin-dev/aichat/internal/pkg/speech"
)

// SpeechSynthesizer produces an audio stream for the given text.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req speech.Request) (io.ReadCloser, string, error)
}

type TTSRequest struct {
	Input          string  `json:"input" binding:"required"`
	Model          string  `json:"model,omitempty"`
	Voice          string  `json:"voice,omitempty"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty" binding:"omitempty,gt=0,lte=4"`
}

type TTSController struct {
	synthesizer SpeechSynthesizer
}

func NewTTSController(synthesizer SpeechSynthesizer) *TTSController {
	return &TTSController{synthesizer: synthesizer}
}

// Synthesize godoc
//	@Summary		Synthesize speech
//	@Description	Streams the spoken rendition of the input text as audio
//	@Tags			tts
//	@Accept			json
//	@Produce		audio/mpeg
//	@Param			request	body		TTSRequest			true	"Text to synthesize"
//	@Success		200		{string}	binary				"Audio stream"
//	@Failure		400		{object}	map[string]string	"Bad request"
//	@Failure		502		{object}	map[string]string	"Upstream failure"
//	@Router			/api/v1/tts [post]
func (tc *TTSController) Synthesize(c *gin.Context) {
	var req TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, contentType, err := tc.synthesizer.Synthesize(c.Request.Context(), speech.Request{
		Input:          req.Input,
		Model:          req.Model,
		Voice:          req.Voice,
		ResponseFormat: req.ResponseFormat,
		Speed:          req.Speed,
	})
	if err != nil {
		slog.Error("Synthesize: upstream failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "speech synthesis failed"})
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		slog.Warn("Synthesize: audio relay interrupted", "error", err)
	}
}
