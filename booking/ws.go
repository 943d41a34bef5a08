package booking

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; tighten for production deployments
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	subMu       sync.Mutex
)

type wsMessage struct {
	Type        string `json:"type"`
	WorkspaceID string `json:"workspaceId"`
}

// HandleWS subscribes a client to availability changes on one workspace.
// GET /ws/bookings/:workspaceid
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	workspaceID := ps.ByName("workspaceid")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	subMu.Lock()
	subscribers[workspaceID] = append(subscribers[workspaceID], conn)
	subMu.Unlock()

	for {
		// Keeps the connection open until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	subMu.Lock()
	conns := subscribers[workspaceID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[workspaceID] = newList
	subMu.Unlock()

	conn.Close()
}

// broadcastUpdate tells every subscriber of a workspace to re-query
// availability.
func broadcastUpdate(workspaceID string) {
	data, _ := json.Marshal(wsMessage{Type: "update", WorkspaceID: workspaceID})

	subMu.Lock()
	defer subMu.Unlock()

	conns := subscribers[workspaceID]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[workspaceID] = newList
}
