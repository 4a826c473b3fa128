package stream

import (
	"go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type StreamApi struct {
	Hub    *Hub
	Config *config.Config
}

func NewStreamApi(hub *Hub, cfg *config.Config) api.Route {
	return &StreamApi{
		Hub:    hub,
		Config: cfg,
	}
}

func (a *StreamApi) Setup(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/boards", middleware.AuthMiddleware(a.Config.SkipAuth), websocket.New(a.Hub.HandleConnection))
}
