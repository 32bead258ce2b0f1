package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/coder/websocket"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/store"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "scenes.db"))
	if err != nil {
		t.Fatal(err)
	}
	srv := New(Options{Store: st})
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
		st.Close()
	})
	return srv, ts
}

func sceneJSON(t *testing.T, width int) []byte {
	t.Helper()
	root := sceneview.NewComposite()
	a := sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(0, 0, 10, 10))
	a.SetModel("a")
	b := sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(20, 0, width, 10))
	b.SetModel("b")
	root.Add(a)
	root.Add(b)
	data, err := sceneview.NewCodec(sceneview.StringResolver{}).Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func do(t *testing.T, method, url string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func childClasses(t *testing.T, payload []byte) []string {
	t.Helper()
	var obj struct {
		Children []struct {
			Class string `json:"class"`
		} `json:"children"`
	}
	if err := json.Unmarshal(payload, &obj); err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, c := range obj.Children {
		out = append(out, c.Class)
	}
	return out
}

func TestSceneCRUD(t *testing.T) {
	_, ts := newTestServer(t)

	if resp := do(t, http.MethodGet, ts.URL+"/scenes/main", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET missing scene = %d, want 404", resp.StatusCode)
	}

	resp := do(t, http.MethodPut, ts.URL+"/scenes/main", sceneJSON(t, 10))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT = %d, want 200", resp.StatusCode)
	}
	rev := decode[store.Revision](t, resp)
	if rev.Seq != 1 || rev.Scene != "main" {
		t.Errorf("PUT revision = %+v", rev)
	}

	resp = do(t, http.MethodGet, ts.URL+"/scenes/main", nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get(RevisionHeader) != rev.ID {
		t.Errorf("GET = %d, revision %q, want 200, %q", resp.StatusCode, resp.Header.Get(RevisionHeader), rev.ID)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if got := childClasses(t, buf.Bytes()); !slices.Equal(got, []string{"BoxView", "BoxView"}) {
		t.Errorf("GET children = %v", got)
	}

	do(t, http.MethodPut, ts.URL+"/scenes/main", sceneJSON(t, 30))
	resp = do(t, http.MethodGet, ts.URL+"/scenes/main/diff", nil)
	buf.Reset()
	buf.ReadFrom(resp.Body)
	if got := childClasses(t, buf.Bytes()); !slices.Equal(got, []string{"DummyView", "BoxView"}) {
		t.Errorf("diff children = %v, want [DummyView BoxView]", got)
	}

	revs := decode[[]store.Revision](t, do(t, http.MethodGet, ts.URL+"/scenes/main/revisions", nil))
	if len(revs) != 2 || revs[0].Seq != 2 {
		t.Errorf("revisions = %+v, want 2 newest first", revs)
	}
	revs = decode[[]store.Revision](t, do(t, http.MethodGet, ts.URL+"/scenes/main/revisions?limit=1", nil))
	if len(revs) != 1 {
		t.Errorf("revisions?limit=1 returned %d", len(revs))
	}
	if resp := do(t, http.MethodGet, ts.URL+"/scenes/main/revisions?limit=x", nil); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad limit = %d, want 400", resp.StatusCode)
	}

	names := decode[[]string](t, do(t, http.MethodGet, ts.URL+"/scenes", nil))
	if !slices.Equal(names, []string{"main"}) {
		t.Errorf("scenes = %v, want [main]", names)
	}

	if resp := do(t, http.MethodDelete, ts.URL+"/scenes/main", nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE = %d, want 204", resp.StatusCode)
	}
	if resp := do(t, http.MethodDelete, ts.URL+"/scenes/main", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("second DELETE = %d, want 404", resp.StatusCode)
	}
}

func TestPutRejectsBadScenes(t *testing.T) {
	_, ts := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"not an object", `[1, 2]`},
		{"unknown class", `{"class":"NoSuchView"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPut, ts.URL+"/scenes/main", []byte(tt.body))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("PUT %s = %d, want 400", tt.body, resp.StatusCode)
			}
		})
	}
}

func TestPutBodyErrors(t *testing.T) {
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "scenes.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	srv := New(Options{Store: st, MaxBodyBytes: 16})
	t.Cleanup(srv.Close)

	tests := []struct {
		name string
		body io.Reader
		want int
	}{
		{"too large", bytes.NewReader(sceneJSON(t, 10)), http.StatusRequestEntityTooLarge},
		{"broken body", iotest.ErrReader(errors.New("connection reset")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/scenes/main", tt.body))
			if rec.Code != tt.want {
				t.Errorf("PUT = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	got := decode[map[string]string](t, do(t, http.MethodGet, ts.URL+"/health", nil))
	if got["status"] != "ok" {
		t.Errorf("health = %v", got)
	}
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) Message {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	return msg
}

func TestWebSocketStream(t *testing.T) {
	srv, ts := newTestServer(t)
	do(t, http.MethodPut, ts.URL+"/scenes/main", sceneJSON(t, 10))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/scenes/main/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.CloseNow()

	msg := readMessage(t, ctx, conn)
	if msg.Type != TypeScene || msg.Revision == nil || msg.Revision.Seq != 1 {
		t.Fatalf("first message = %+v, want the full scene at seq 1", msg)
	}
	if got := childClasses(t, msg.Payload); !slices.Equal(got, []string{"BoxView", "BoxView"}) {
		t.Errorf("scene children = %v", got)
	}
	if n := srv.Subscribers("main"); n != 1 {
		t.Errorf("Subscribers(main) = %d, want 1", n)
	}

	do(t, http.MethodPut, ts.URL+"/scenes/main", sceneJSON(t, 30))
	msg = readMessage(t, ctx, conn)
	if msg.Type != TypeDiff || msg.Revision.Seq != 2 {
		t.Fatalf("second message = %+v, want a diff at seq 2", msg)
	}
	if got := childClasses(t, msg.Payload); !slices.Equal(got, []string{"DummyView", "BoxView"}) {
		t.Errorf("diff children = %v, want [DummyView BoxView]", got)
	}

	do(t, http.MethodDelete, ts.URL+"/scenes/main", nil)
	if msg = readMessage(t, ctx, conn); msg.Type != TypeDeleted {
		t.Errorf("third message = %+v, want deleted", msg)
	}
}
