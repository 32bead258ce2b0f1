// Package server serves stored scenes over HTTP and pushes every new
// revision to websocket subscribers as a diff against the previous one.
//
// Routes:
//
//	GET    /health
//	GET    /scenes                      scene names
//	GET    /scenes/{name}               latest full scene
//	PUT    /scenes/{name}               store a new revision and broadcast its diff
//	DELETE /scenes/{name}               remove every revision
//	GET    /scenes/{name}/diff          latest revision relative to the previous one
//	GET    /scenes/{name}/revisions     revision list, newest first
//	GET    /scenes/{name}/ws            websocket stream of Message values
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/store"
)

// DefaultMaxBodyBytes caps PUT bodies when Options.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 8 << 20

// RevisionHeader carries the revision id of returned scenes.
const RevisionHeader = "X-Scene-Revision"

// Options configures a Server.
type Options struct {
	// Store holds the scene revisions. Required.
	Store *store.Store

	// Codec decodes uploaded scenes and encodes diffs. Nil selects a codec
	// with sceneview.StringResolver so that string models survive a round
	// trip and diffs can match children.
	Codec *sceneview.Codec

	// AllowedOrigins are the websocket origin patterns accepted besides the
	// request host.
	AllowedOrigins []string

	// MaxBodyBytes caps PUT bodies.
	MaxBodyBytes int64
}

// Server is the scene sync service. It implements http.Handler.
type Server struct {
	store   *store.Store
	codec   *sceneview.Codec
	origins []string
	maxBody int64
	hub     *hub
	router  *mux.Router

	// mu serializes writes so each broadcast diff matches the revision
	// order in the store.
	mu sync.Mutex
}

// New returns a server over opts.Store.
func New(opts Options) *Server {
	s := &Server{
		store:   opts.Store,
		codec:   opts.Codec,
		origins: opts.AllowedOrigins,
		maxBody: opts.MaxBodyBytes,
		hub:     newHub(),
	}
	if s.codec == nil {
		s.codec = sceneview.NewCodec(sceneview.StringResolver{})
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}

	r := mux.NewRouter()
	r.Use(recovery, logRequests)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/scenes", s.listScenes).Methods(http.MethodGet)
	r.HandleFunc("/scenes/{name}", s.getScene).Methods(http.MethodGet)
	r.HandleFunc("/scenes/{name}", s.putScene).Methods(http.MethodPut)
	r.HandleFunc("/scenes/{name}", s.deleteScene).Methods(http.MethodDelete)
	r.HandleFunc("/scenes/{name}/diff", s.getDiff).Methods(http.MethodGet)
	r.HandleFunc("/scenes/{name}/revisions", s.listRevisions).Methods(http.MethodGet)
	r.HandleFunc("/scenes/{name}/ws", s.subscribe).Methods(http.MethodGet)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Subscribers returns the number of websocket clients following scene.
func (s *Server) Subscribers(scene string) int { return s.hub.subscribers(scene) }

// Close disconnects every websocket subscriber.
func (s *Server) Close() { s.hub.closeAll() }

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listScenes(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.Scenes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) getScene(w http.ResponseWriter, r *http.Request) {
	data, rev, err := s.store.Latest(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, rev, data)
}

func (s *Server) getDiff(w http.ResponseWriter, r *http.Request) {
	data, rev, err := s.store.LatestDiff(r.Context(), s.codec, mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, rev, data)
}

func (s *Server) putScene(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
		return
	}
	v, err := s.codec.Unmarshal(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rev, err := s.store.SaveView(r.Context(), s.codec, name, v)
	if err != nil {
		writeError(w, err)
		return
	}
	diff, _, err := s.store.LatestDiff(r.Context(), s.codec, name)
	if err != nil {
		sceneview.Logger().Warn("server: diff after save", "scene", name, "err", err)
	} else {
		s.hub.broadcast(name, &Message{Type: TypeDiff, Scene: name, Revision: &rev, Payload: diff})
	}
	writeJSON(w, http.StatusOK, rev)
}

func (s *Server) deleteScene(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	s.hub.broadcast(name, &Message{Type: TypeDeleted, Scene: name})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listRevisions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}
	revs, err := s.store.Revisions(r.Context(), mux.Vars(r)["name"], limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if revs == nil {
		revs = []store.Revision{}
	}
	writeJSON(w, http.StatusOK, revs)
}

// subscribe upgrades to a websocket, sends the latest scene and then every
// broadcast for the scene until either side closes.
func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		sceneview.Logger().Warn("server: websocket accept", "err", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := newClient(uuid.NewString(), name, conn)

	// Queued before register so the full scene precedes any diff.
	s.mu.Lock()
	data, rev, err := s.store.Latest(ctx, name)
	switch {
	case err == nil:
		msg, merr := json.Marshal(&Message{Type: TypeScene, Scene: name, Revision: &rev, Payload: data})
		if merr == nil {
			c.queue(msg)
		}
	case !errors.Is(err, store.ErrNotFound):
		sceneview.Logger().Warn("server: load scene for subscriber", "scene", name, "err", err)
	}
	s.hub.register(c)
	s.mu.Unlock()
	defer s.hub.unregister(c)

	go func() {
		c.writePump(ctx)
		cancel()
	}()
	c.readPump(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeRaw(w http.ResponseWriter, rev store.Revision, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(RevisionHeader, rev.ID)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	sceneview.Logger().Error("server: store error", "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
