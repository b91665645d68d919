package websocket

import (
	"errors"
	"net/http"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorilla/websocket"
)

var (
	ErrRoomNotFound = errors.New("room not found")

	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
)

// RoomManager tracks the subscribers of each meeting room's feed.
type RoomManager struct {
	rooms map[string]mapset.Set[*Client]
	mu    sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]mapset.Set[*Client]),
	}
}

func (rm *RoomManager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return upgrader.Upgrade(w, r, nil)
}

func (rm *RoomManager) AddClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	clients, ok := rm.rooms[cl.RoomID]
	if !ok {
		clients = mapset.NewSet[*Client]()
		rm.rooms[cl.RoomID] = clients
	}
	clients.Add(cl)
}

// RemoveClient reports whether cl was subscribed.
func (rm *RoomManager) RemoveClient(cl *Client) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	clients, ok := rm.rooms[cl.RoomID]
	if !ok || !clients.Contains(cl) {
		return false
	}

	clients.Remove(cl)
	if clients.Cardinality() == 0 {
		delete(rm.rooms, cl.RoomID)
	}
	cl.Close()
	return true
}

func (rm *RoomManager) ClientCount(roomID string) int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	if clients, ok := rm.rooms[roomID]; ok {
		return clients.Cardinality()
	}
	return 0
}

// BroadcastToRoom returns the number of clients that accepted msg.
func (rm *RoomManager) BroadcastToRoom(msg *WSMessage) (int, error) {
	rm.mu.RLock()
	clients, ok := rm.rooms[msg.RoomID]
	var snapshot []*Client
	if ok {
		snapshot = clients.ToSlice()
	}
	rm.mu.RUnlock()

	if !ok {
		return 0, ErrRoomNotFound
	}

	delivered := 0
	for _, cl := range snapshot {
		if cl.Deliver(msg) {
			delivered++
		}
	}
	return delivered, nil
}

// DisconnectRoom closes every subscriber of roomID.
func (rm *RoomManager) DisconnectRoom(roomID string) {
	rm.mu.Lock()
	clients, ok := rm.rooms[roomID]
	delete(rm.rooms, roomID)
	rm.mu.Unlock()

	if ok {
		clients.Each(func(cl *Client) bool {
			cl.Close()
			return false
		})
	}
}

func (rm *RoomManager) DisconnectAll() {
	rm.mu.Lock()
	rooms := rm.rooms
	rm.rooms = make(map[string]mapset.Set[*Client])
	rm.mu.Unlock()

	for _, clients := range rooms {
		clients.Each(func(cl *Client) bool {
			cl.Close()
			return false
		})
	}
}
