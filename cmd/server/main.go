package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/dvlin-dev/aichat/config"
	"github.com/dvlin-dev/aichat/internal/app/controllers"
	"github.com/dvlin-dev/aichat/internal/pkg/providers"
	"github.com/dvlin-dev/aichat/internal/pkg/pubsub"
	"github.com/dvlin-dev/aichat/internal/pkg/relay"
	"github.com/dvlin-dev/aichat/internal/pkg/speech"
	"github.com/dvlin-dev/aichat/internal/pkg/tools"
)

// @title AIChat API
// @version 1.0
// @description Streaming chat completion relay with tool call support.

// @host localhost:3100
func main() {
	r := gin.Default()

	if err := config.LoadConfig("dev"); err != nil {
		slog.Error("Error loading configuration:", "error", err)
		panic(err)
	}

	chatOpts := []option.RequestOption{option.WithAPIKey(config.Config.OpenAI.APIKey)}
	if config.Config.OpenAI.BaseURL != "" {
		chatOpts = append(chatOpts, option.WithBaseURL(config.Config.OpenAI.BaseURL))
	}
	chatClient := openai.NewClient(chatOpts...)
	streamer := providers.NewOpenAIChatProvider(chatClient, config.Config.OpenAI.Model, config.Config.OpenAI.Temperature)

	ttsClient := chatClient
	if config.Config.TTS.APIKey != "" {
		ttsOpts := []option.RequestOption{option.WithAPIKey(config.Config.TTS.APIKey)}
		if config.Config.TTS.BaseURL != "" {
			ttsOpts = append(ttsOpts, option.WithBaseURL(config.Config.TTS.BaseURL))
		}
		ttsClient = openai.NewClient(ttsOpts...)
	}
	synthesizer := speech.NewSynthesizer(ttsClient, config.Config.TTS.Model, config.Config.TTS.Voice)

	providerConfigs := make([]tools.ProviderConfig, len(config.Config.Tools.Providers))
	for i, p := range config.Config.Tools.Providers {
		providerConfigs[i] = tools.ProviderConfig{Name: p.Name, Endpoint: p.Endpoint}
	}
	registry := tools.NewRegistry(providerConfigs, nil)
	invoker := tools.NewInvoker(nil)

	var bus pubsub.PubSub
	if config.Config.Kafka.Enabled {
		bus = pubsub.NewKafkaPubSub()
	} else {
		bus = pubsub.NewChannelPubSub()
	}
	defer bus.Close()

	callbacks := relay.TurnCallbacks{
		relay.OnToolDispatch: func(turnID string, tool string) {
			slog.Info("Dispatching tool", "turn_id", turnID, "tool", tool)
		},
		relay.OnTurnDone: func(turnID string, payload string) {
			err := bus.Publish(context.Background(), relay.GetTurnDoneTopic(), payload, 5*time.Second)
			if err != nil {
				slog.Error("Failed to publish turn notification", "turn_id", turnID, "error", err)
			}
		},
		relay.OnTurnFail: func(turnID string, reason string) {
			slog.Warn("Turn failed", "turn_id", turnID, "reason", reason)
		},
	}
	runner := relay.NewRelay(
		streamer,
		registry,
		invoker,
		config.Config.Chat.Directive,
		config.Config.Chat.MaxToolRounds,
		callbacks,
	)

	turnTimeout := time.Duration(config.Config.Chat.TurnTimeoutSeconds) * time.Second
	conversationController := controllers.NewConversationController(runner, registry, turnTimeout)
	ttsController := controllers.NewTTSController(synthesizer)
	websocketController := controllers.NewWebsocketController(bus, runner, registry)

	v1 := r.Group("/api/v1")
	{
		conversation := v1.Group("/conversation")
		{
			conversation.POST("/completions", conversationController.Completions)
			conversation.GET("/tools", conversationController.ListTools)
			conversation.GET("/ws", websocketController.SocketHandler)
		}
		v1.POST("/tts", ttsController.Synthesize)
	}
	r.GET("/healthz", controllers.Healthz)

	log.Println("Server is running on port", config.Config.Server.Port)
	r.Run(fmt.Sprintf(":%s", config.Config.Server.Port))
}
