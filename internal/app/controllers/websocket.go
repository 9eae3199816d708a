package controllers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dvlin-dev/aichat/internal/pkg/pubsub"
	"github.com/dvlin-dev/aichat/internal/pkg/ws"
)

type WebsocketController struct {
	upgrader websocket.Upgrader
	pubsub   pubsub.PubSub
	runner   ws.TurnRunner
	catalog  ws.ToolCatalog
}

func NewWebsocketController(pubsub pubsub.PubSub, runner ws.TurnRunner, catalog ws.ToolCatalog) *WebsocketController {
	return &WebsocketController{
		upgrader: websocket.Upgrader{},
		pubsub:   pubsub,
		runner:   runner,
		catalog:  catalog,
	}
}

func (wc *WebsocketController) SocketHandler(c *gin.Context) {
	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("SocketHandler: upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	handler := ws.NewWsHandler(conn, wc.pubsub, wc.runner, wc.catalog)
	if err := handler.HandleConnection(c.Request.Context()); err != nil {
		slog.Info("SocketHandler: connection closed", "error", err)
	}
}
