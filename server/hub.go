package server

import (
	"encoding/json"
	"sync"

	"github.com/gogpu/sceneview"
)

// hub tracks the subscribers of every scene.
type hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*client
}

func newHub() *hub {
	return &hub{rooms: make(map[string]map[string]*client)}
}

func (h *hub) register(c *client) {
	h.mu.Lock()
	room, ok := h.rooms[c.scene]
	if !ok {
		room = make(map[string]*client)
		h.rooms[c.scene] = room
	}
	room[c.id] = c
	h.mu.Unlock()
	sceneview.Logger().Info("server: subscriber joined", "scene", c.scene, "client", c.id)
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	room, ok := h.rooms[c.scene]
	if !ok || room[c.id] != c {
		h.mu.Unlock()
		return
	}
	delete(room, c.id)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.scene)
	}
	h.mu.Unlock()
	sceneview.Logger().Info("server: subscriber left", "scene", c.scene, "client", c.id)
}

// subscribers returns the number of clients listening to scene.
func (h *hub) subscribers(scene string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[scene])
}

// broadcast queues msg for every subscriber of scene. The read lock is held
// while queuing so that unregister cannot close a channel being sent to;
// queue never blocks.
func (h *hub) broadcast(scene string, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		sceneview.Logger().Error("server: marshal message", "err", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[scene] {
		c.queue(data)
	}
}

// closeAll disconnects every subscriber.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for scene, room := range h.rooms {
		for _, c := range room {
			close(c.send)
		}
		delete(h.rooms, scene)
	}
}
