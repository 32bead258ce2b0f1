package server

import (
	"encoding/json"

	"github.com/gogpu/sceneview/store"
)

// Message types pushed to websocket subscribers.
const (
	// TypeScene carries the full scene, sent once on connect.
	TypeScene = "scene"
	// TypeDiff carries a scene encoded relative to the previous revision.
	TypeDiff = "diff"
	// TypeDeleted tells subscribers the scene was removed.
	TypeDeleted = "deleted"
)

// Message is the websocket envelope.
type Message struct {
	Type     string          `json:"type"`
	Scene    string          `json:"scene"`
	Revision *store.Revision `json:"revision,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}
