package providers

import (
	"context"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/dvlin-dev/aichat/internal/pkg/tools"
	"github.com/dvlin-dev/aichat/internal/pkg/utils"
)

type OpenAIChatProvider struct {
	Client      *openai.Client
	Model       string
	Temperature float64
}

func NewOpenAIChatProvider(client *openai.Client, model string, temperature float64) *OpenAIChatProvider {
	if model == "" {
		model = openai.ChatModelGPT4o
	}
	return &OpenAIChatProvider{
		Client:      client,
		Model:       model,
		Temperature: temperature,
	}
}

// StreamChat opens one streaming chat completion. Each call opens a new
// provider-side stream; connection and decode failures surface through the
// returned stream's Err as an UpstreamError.
func (p *OpenAIChatProvider) StreamChat(ctx context.Context, messages []ChatMessage, catalog []tools.ToolDescriptor) (DeltaStream, error) {
	params := p.assembleChatParams(messages, catalog)
	p.debugStruct("Chat params messages", params.Messages)

	stream := p.Client.Chat.Completions.NewStreaming(ctx, params)
	return &openaiDeltaStream{stream: stream}, nil
}

func (p *OpenAIChatProvider) debugStruct(title string, v any) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug(title)
	utils.PrintStruct(v)
}

func (p *OpenAIChatProvider) assembleChatParams(messages []ChatMessage, catalog []tools.ToolDescriptor) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:    openai.F(p.convertFromChatMessages(messages)),
		Model:       openai.F(p.Model),
		Temperature: openai.F(p.Temperature),
	}
	if len(catalog) > 0 {
		params.Tools = openai.F(convertToolCatalog(catalog))
	}
	return params
}

func (p *OpenAIChatProvider) convertFromChatMessages(messages []ChatMessage) []openai.ChatCompletionMessageParamUnion {
	convertedMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		convertedMessages[i] = p.convertFromChatMessage(msg)
	}
	return convertedMessages
}

func (p *OpenAIChatProvider) convertFromChatMessage(msg ChatMessage) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case "system":
		return openai.SystemMessage(msg.Content)
	case "user":
		return openai.UserMessage(msg.Content)
	case "assistant":
		if len(msg.ToolCalls) > 0 {
			return assistantToolCallMessage(msg)
		}
		return openai.AssistantMessage(msg.Content)
	case "tool":
		return openai.ToolMessage(msg.ToolCallID, msg.Content)
	}
	return nil
}

func assistantToolCallMessage(msg ChatMessage) openai.ChatCompletionAssistantMessageParam {
	toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
	for i, call := range msg.ToolCalls {
		toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
			ID:   openai.F(call.ID),
			Type: openai.F(openai.ChatCompletionMessageToolCallTypeFunction),
			Function: openai.F(openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      openai.F(call.FunctionName),
				Arguments: openai.F(call.Args),
			}),
		}
	}
	return openai.ChatCompletionAssistantMessageParam{
		Role:      openai.F(openai.ChatCompletionAssistantMessageParamRoleAssistant),
		ToolCalls: openai.F(toolCalls),
	}
}

func convertToolCatalog(catalog []tools.ToolDescriptor) []openai.ChatCompletionToolParam {
	converted := make([]openai.ChatCompletionToolParam, len(catalog))
	for i, descriptor := range catalog {
		converted[i] = openai.ChatCompletionToolParam{
			Type: openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(openai.FunctionDefinitionParam{
				Name:        openai.String(descriptor.Name),
				Description: openai.String(descriptor.Description),
				Parameters:  openai.F(openai.FunctionParameters(descriptor.InputSchema)),
			}),
		}
	}
	return converted
}

type openaiDeltaStream struct {
	stream  *ssestream.Stream[openai.ChatCompletionChunk]
	current Delta
}

func (s *openaiDeltaStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta
		converted := Delta{Content: delta.Content}
		for _, toolCall := range delta.ToolCalls {
			converted.ToolCalls = append(converted.ToolCalls, ToolCallDelta{
				Index:     int(toolCall.Index),
				ID:        toolCall.ID,
				Name:      toolCall.Function.Name,
				Arguments: toolCall.Function.Arguments,
			})
		}
		s.current = converted
		return true
	}
	return false
}

func (s *openaiDeltaStream) Current() Delta {
	return s.current
}

func (s *openaiDeltaStream) Err() error {
	if err := s.stream.Err(); err != nil {
		return &UpstreamError{Err: err}
	}
	return nil
}

func (s *openaiDeltaStream) Close() error {
	return s.stream.Close()
}
