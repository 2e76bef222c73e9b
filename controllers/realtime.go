package controllers

import (
	"github.com/clinio/clinic-server/channel"
	"github.com/clinio/clinic-server/utils"
	"github.com/gofiber/websocket/v2"

	"go.uber.org/fx"
)

type RealtimeController struct {
	fx.In

	Registry *channel.Registry
}

var realtimeRoute = utils.JwtMiddlewareConfig{
	ReadFrom: "query",
	Subject:  "access",
	Scopes:   []string{"basic"},
}

func RegisterRealtimeController(r *utils.Router, c RealtimeController) {
	r.Get("/realtime", utils.Protected(realtimeRoute), websocket.New(c.join))
}

// join registers the socket under the authenticated account and blocks
// reading until the peer goes away. The read loop only exists to detect
// close; pushes flow through the registry.
func (r *RealtimeController) join(c *websocket.Conn) {
	accountId := c.Locals("account").(int64)

	r.Registry.Register(accountId, c)
	defer r.Registry.Unregister(accountId, c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
