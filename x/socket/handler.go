// Package socket streams request lifecycle events to websocket clients.
package socket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/custodia-cloud/custodia/core"
)

type Handler interface {
	Connect(c echo.Context) error
}

type handler struct {
	manager core.SocketManager
}

func NewHandler(manager core.SocketManager) Handler {
	return &handler{manager: manager}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect upgrades the connection and keeps the subscription set in sync
// with what the client sends.
func (h handler) Connect(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		c.Logger().Error(err)
		return err
	}
	defer func() {
		h.manager.Unsubscribe(ws)
		ws.Close()
	}()

	for {
		var request SubscribeRequest
		if err := ws.ReadJSON(&request); err != nil {
			break
		}
		h.manager.Subscribe(ws, request.Requests)
	}

	return nil
}
