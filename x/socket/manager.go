package socket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/custodia-cloud/custodia/core"
)

type manager struct {
	rdb *redis.Client

	mutex      sync.Mutex
	clientSubs map[*websocket.Conn][]string
}

// NewManager creates the fanout hub for request lifecycle events. One
// redis subscription feeds every connected client.
func NewManager(rdb *redis.Client) core.SocketManager {
	m := &manager{
		rdb:        rdb,
		clientSubs: make(map[*websocket.Conn][]string),
	}
	go m.pump()
	return m
}

// Subscribe replaces the subscription set of a connection.
func (m *manager) Subscribe(conn *websocket.Conn, requests []string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.clientSubs[conn] = requests
}

// Unsubscribe drops a connection from the fanout.
func (m *manager) Unsubscribe(conn *websocket.Conn) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.clientSubs, conn)
}

func (m *manager) pump() {
	ctx := context.Background()
	pubsub := m.rdb.Subscribe(ctx, eventChannel)
	defer pubsub.Close()

	for {
		message, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			slog.Error("failed to receive request event",
				slog.String("error", err.Error()),
			)
			continue
		}

		var event core.Event
		if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
			slog.Error("malformed request event",
				slog.String("error", err.Error()),
			)
			continue
		}

		m.broadcast(event, []byte(message.Payload))
	}
}

func (m *manager) broadcast(event core.Event, packet []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for conn, requests := range m.clientSubs {
		if !subscribed(requests, event.RequestID) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, packet); err != nil {
			slog.Error("failed to write to websocket client",
				slog.String("error", err.Error()),
			)
			delete(m.clientSubs, conn)
			conn.Close()
		}
	}
}

func subscribed(requests []string, id string) bool {
	for _, request := range requests {
		if request == "*" || request == id {
			return true
		}
	}
	return false
}
