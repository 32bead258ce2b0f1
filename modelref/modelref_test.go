package modelref

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/sceneview"
)

type node struct{ name string }

func TestRegister(t *testing.T) {
	r := New("node")
	a, b := &node{"a"}, &node{"b"}

	refA, err := r.Register(a)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(refA, "node_") {
		t.Errorf("Register(a) = %q, want node_ prefix", refA)
	}
	if err := Validate(refA, "node"); err != nil {
		t.Errorf("Validate(%q) = %v", refA, err)
	}
	again, _ := r.Register(a)
	if again != refA {
		t.Errorf("second Register(a) = %q, want %q", again, refA)
	}
	refB, _ := r.Register(b)
	if refB == refA {
		t.Error("distinct models share a reference")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}

	if m, ok := r.ResolveModel(refB); !ok || m != any(b) {
		t.Errorf("ResolveModel(%q) = %v, %v, want b", refB, m, ok)
	}

	r.Forget(a)
	if _, ok := r.ResolveModel(refA); ok {
		t.Error("forgotten model still resolves")
	}
}

func TestRegisterRejects(t *testing.T) {
	r := New("")
	if r.Prefix() != DefaultPrefix {
		t.Errorf("Prefix() = %q, want %q", r.Prefix(), DefaultPrefix)
	}
	if _, err := r.Register(nil); !errors.Is(err, ErrNotComparable) {
		t.Errorf("Register(nil) = %v, want %v", err, ErrNotComparable)
	}
	if _, err := r.Register(map[string]int{}); !errors.Is(err, ErrNotComparable) {
		t.Errorf("Register(map) = %v, want %v", err, ErrNotComparable)
	}
	if _, ok := r.ModelRef([]int{1}); ok {
		t.Error("ModelRef(slice) reported a reference")
	}
}

func TestBind(t *testing.T) {
	src := New("node")
	ref, _ := src.Register("first")

	r := New("node")
	if err := r.Bind(ref, "first"); err != nil {
		t.Fatal(err)
	}
	if err := r.Bind(ref, "first"); err != nil {
		t.Errorf("rebinding the same pair: %v", err)
	}
	if err := r.Bind(ref, "second"); !errors.Is(err, ErrBound) {
		t.Errorf("Bind(taken ref) = %v, want %v", err, ErrBound)
	}

	other, _ := New("edge").Register("e")
	if err := r.Bind(other, "e"); !errors.Is(err, ErrPrefix) {
		t.Errorf("Bind(edge ref) = %v, want %v", err, ErrPrefix)
	}
	if err := r.Bind("not a typeid", "x"); err == nil {
		t.Error("Bind(garbage) succeeded")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	reg := New("node")
	root := sceneview.NewComposite()
	a, b := &node{"a"}, &node{"b"}
	boxA := sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(0, 0, 10, 10))
	boxA.SetModel(a)
	boxB := sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(20, 0, 10, 10))
	boxB.SetModel(b)
	root.Add(boxA)
	root.Add(boxB)

	codec := sceneview.NewCodec(reg)
	data, err := codec.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	v, err := codec.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	got := v.(*sceneview.Composite)
	if got.Len() != 2 {
		t.Fatalf("decoded %d children, want 2", got.Len())
	}
	if m := got.At(0).State().Model(); m != any(a) {
		t.Errorf("child 0 model = %v, want a", m)
	}
	if m := got.At(1).State().Model(); m != any(b) {
		t.Errorf("child 1 model = %v, want b", m)
	}
}
