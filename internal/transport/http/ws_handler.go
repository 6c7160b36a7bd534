package http

import (
	"log"
	"net/http"

	"trivia-rooms/internal/app"
	"trivia-rooms/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler streams live leaderboard updates for a room over a websocket.
type WSHandler struct {
	service  *app.RoomService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.RoomService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Register mounts the watch route on the mux.
func (h *WSHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /rooms/{code}/watch", h.ServeWatch)
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWatch subscribes the connection to a room's leaderboard. The feed
// starts with the current standings and pushes a fresh board on every join
// and submission until the client disconnects.
func (h *WSHandler) ServeWatch(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	updates, cancel, err := h.service.Watch(code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Watchers never send data; the read pump only detects disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for update := range updates {
		if err := conn.WriteJSON(outboundMessage[domain.Leaderboard]{Type: "leaderboard", Payload: update}); err != nil {
			log.Printf("ws write error: %v", err)
			return
		}
	}
}
