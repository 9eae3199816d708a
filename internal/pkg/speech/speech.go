// Package speech turns text into audio through the upstream speech API and
// hands back the raw audio stream for relaying to the client.
package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
)

const defaultVoice = "alloy"

// Request is one synthesis request. Model and Voice default to the
// synthesizer's configuration when empty.
type Request struct {
	Input          string
	Model          string
	Voice          string
	ResponseFormat string
	Speed          float64
}

type Synthesizer struct {
	client *openai.Client
	model  string
	voice  string
}

func NewSynthesizer(client *openai.Client, model string, voice string) *Synthesizer {
	if voice == "" {
		voice = defaultVoice
	}
	return &Synthesizer{client: client, model: model, voice: voice}
}

// Synthesize streams the spoken rendition of the input. The caller owns the
// returned reader and must close it. contentType is the media type of the
// audio stream.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (body io.ReadCloser, contentType string, err error) {
	model := req.Model
	if model == "" {
		model = s.model
	}
	voice := req.Voice
	if voice == "" {
		voice = s.voice
	}
	format := req.ResponseFormat
	if format == "" {
		format = string(openai.AudioSpeechNewParamsResponseFormatMP3)
	}

	params := openai.AudioSpeechNewParams{
		Model:          openai.F(openai.SpeechModel(model)),
		Input:          openai.F(req.Input),
		Voice:          openai.F(openai.AudioSpeechNewParamsVoice(voice)),
		ResponseFormat: openai.F(openai.AudioSpeechNewParamsResponseFormat(format)),
	}
	if req.Speed > 0 {
		params.Speed = openai.F(req.Speed)
	}

	resp, err := s.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("speech synthesis failed: %w", err)
	}

	contentType = resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return resp.Body, contentType, nil
}
