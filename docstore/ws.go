package docstore

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; adjust for production if needed
		return true
	},
}

// Documents the public live stream may expose. The no-show log stays
// admin-only and is deliberately absent.
var liveDocs = map[string]bool{
	"reservations": true,
	"timetable":    true,
	"settings":     true,
	"events":       true,
	"highscores":   true,
	"rosters":      true,
}

// HandleWS streams a content document: current snapshot on connect,
// then the full document again after every change. The booking form
// and the digital signage recompute from these snapshots.
func (s *Store) HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("doc")
	if !liveDocs[key] {
		http.Error(w, "unknown document", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	snapshot, err := s.Raw(r.Context(), key)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
		return
	}

	updates, cancel := s.hub.Subscribe(key)
	defer cancel()

	// Drain reads so we notice when the client disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
