package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gogpu/sceneview"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "scenes.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLatest(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	r1, err := s.Save(ctx, "main", []byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	r2, err := s.Save(ctx, "main", []byte(`{"a":2}`))
	if err != nil {
		t.Fatal(err)
	}
	if r1.Seq != 1 || r2.Seq != 2 || r1.ID == r2.ID {
		t.Errorf("revisions = %+v, %+v, want seq 1 and 2 with distinct ids", r1, r2)
	}

	data, rev, err := s.Latest(ctx, "main")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":2}` || rev.ID != r2.ID || rev.Size != 7 || !rev.CreatedAt.Equal(fixed) {
		t.Errorf("Latest() = %s, %+v", data, rev)
	}

	data, rev, err = s.Previous(ctx, "main", r2.Seq)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":1}` || rev.ID != r1.ID {
		t.Errorf("Previous() = %s, %+v", data, rev)
	}
	if _, _, err := s.Previous(ctx, "main", r1.Seq); !errors.Is(err, ErrNotFound) {
		t.Errorf("Previous(first) = %v, want %v", err, ErrNotFound)
	}

	data, _, err = s.Get(ctx, r1.ID)
	if err != nil || string(data) != `{"a":1}` {
		t.Errorf("Get(%s) = %s, %v", r1.ID, data, err)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	if _, _, err := s.Latest(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest(missing) = %v, want %v", err, ErrNotFound)
	}
	if _, _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) = %v, want %v", err, ErrNotFound)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want %v", err, ErrNotFound)
	}
}

func TestRevisionsAndScenes(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	for _, scene := range []string{"b", "a", "b", "b"} {
		if _, err := s.Save(ctx, scene, []byte(`{}`)); err != nil {
			t.Fatal(err)
		}
	}

	revs, err := s.Revisions(ctx, "b", 0)
	if err != nil {
		t.Fatal(err)
	}
	var seqs []int64
	for _, r := range revs {
		seqs = append(seqs, r.Seq)
	}
	if !slices.Equal(seqs, []int64{3, 2, 1}) {
		t.Errorf("Revisions(b) seqs = %v, want [3 2 1]", seqs)
	}
	if revs, _ := s.Revisions(ctx, "b", 2); len(revs) != 2 {
		t.Errorf("Revisions(b, 2) returned %d", len(revs))
	}

	scenes, err := s.Scenes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(scenes, []string{"a", "b"}) {
		t.Errorf("Scenes() = %v, want [a b]", scenes)
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if scenes, _ := s.Scenes(ctx); !slices.Equal(scenes, []string{"a"}) {
		t.Errorf("Scenes() after Delete = %v, want [a]", scenes)
	}
}

func scene(width int) *sceneview.Composite {
	root := sceneview.NewComposite()
	a := sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(0, 0, 10, 10))
	a.SetModel("a")
	b := sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(20, 0, width, 10))
	b.SetModel("b")
	root.Add(a)
	root.Add(b)
	return root
}

func TestViewsAndDiff(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	codec := sceneview.NewCodec(sceneview.StringResolver{})

	if _, err := s.SaveView(ctx, codec, "main", scene(10)); err != nil {
		t.Fatal(err)
	}
	full, _, err := s.LatestDiff(ctx, codec, "main")
	if err != nil {
		t.Fatal(err)
	}
	if got := classes(t, full); !slices.Equal(got, []string{"BoxView", "BoxView"}) {
		t.Errorf("first diff children = %v, want two full boxes", got)
	}

	if _, err := s.SaveView(ctx, codec, "main", scene(30)); err != nil {
		t.Fatal(err)
	}
	v, rev, err := s.LoadView(ctx, codec, "main")
	if err != nil {
		t.Fatal(err)
	}
	if rev.Seq != 2 || !v.Equal(scene(30)) {
		t.Errorf("LoadView() = seq %d, equal %v", rev.Seq, v.Equal(scene(30)))
	}
	diff, _, err := s.LatestDiff(ctx, codec, "main")
	if err != nil {
		t.Fatal(err)
	}
	if got := classes(t, diff); !slices.Equal(got, []string{"DummyView", "BoxView"}) {
		t.Errorf("second diff children = %v, want [DummyView BoxView]", got)
	}
}

func classes(t *testing.T, data []byte) []string {
	t.Helper()
	var obj struct {
		Children []struct {
			Class string `json:"class"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, c := range obj.Children {
		out = append(out, c.Class)
	}
	return out
}
