package editor

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/sceneview"
)

type scene struct {
	root *sceneview.Composite
	a, b *sceneview.Box
	s    *Session
}

func newScene() *scene {
	sc := &scene{
		root: sceneview.NewComposite(),
		a:    box("a", sceneview.R(10, 10, 20, 20)),
		b:    box("b", sceneview.R(50, 50, 20, 20)),
	}
	sc.root.Add(sc.a)
	sc.root.Add(sc.b)
	sc.s = NewSession(sc.root, nil)
	return sc
}

type listener struct {
	started   []string
	edits     int
	completed int
}

func (l *listener) StartTransaction(e TransactionEvent) { l.started = append(l.started, e.Name) }
func (l *listener) AddEdit(Edit)                        { l.edits++ }
func (l *listener) CompleteTransaction()                { l.completed++ }

func TestSessionMoveUndoRedo(t *testing.T) {
	sc := newScene()
	sc.s.Selection().Select(sc.a, true)

	if err := sc.s.Move(sceneview.Pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	if got, want := sc.a.Rect(), sceneview.R(15, 15, 20, 20); got != want {
		t.Errorf("after Move: %v, want %v", got, want)
	}
	if got := sc.s.UndoName(); got != "Move a" {
		t.Errorf("UndoName() = %q, want %q", got, "Move a")
	}

	sc.s.Selection().Select(sc.b, true)
	if err := sc.s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got, want := sc.a.Rect(), sceneview.R(10, 10, 20, 20); got != want {
		t.Errorf("after Undo: %v, want %v", got, want)
	}
	if !slices.Equal(sc.s.Selection().SelectedModels(), []any{"a"}) {
		t.Errorf("selection after Undo = %v, want [a]", sc.s.Selection().SelectedModels())
	}

	sc.s.Selection().Clear()
	if err := sc.s.Redo(); err != nil {
		t.Fatal(err)
	}
	if got, want := sc.a.Rect(), sceneview.R(15, 15, 20, 20); got != want {
		t.Errorf("after Redo: %v, want %v", got, want)
	}
	if !slices.Equal(sc.s.Selection().SelectedModels(), []any{"a"}) {
		t.Errorf("selection after Redo = %v, want [a]", sc.s.Selection().SelectedModels())
	}
	if err := sc.s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("second Redo() = %v, want %v", err, ErrNothingToRedo)
	}
}

func TestSessionUndoEmpty(t *testing.T) {
	sc := newScene()
	if sc.s.CanUndo() || sc.s.CanRedo() {
		t.Error("fresh session has history")
	}
	if err := sc.s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() = %v, want %v", err, ErrNothingToUndo)
	}
}

func TestSessionMoveSharedModel(t *testing.T) {
	sc := newScene()
	twin := box("a", sceneview.R(100, 100, 10, 10))
	sc.root.Add(twin)
	sc.s.Selection().Select(sc.a, false)
	sc.s.Selection().Select(twin, false)

	if err := sc.s.Move(sceneview.Pt(1, 2)); err != nil {
		t.Fatal(err)
	}
	if got, want := sc.a.Rect(), sceneview.R(11, 12, 20, 20); got != want {
		t.Errorf("first view = %v, want %v", got, want)
	}
	if got, want := twin.Rect(), sceneview.R(100, 100, 10, 10); got != want {
		t.Errorf("second view of the model = %v, want %v", got, want)
	}
}

func TestSessionNudge(t *testing.T) {
	sc := newScene()
	v := box("c", sceneview.R(12, 7, 10, 10))
	sc.root.Add(v)
	sc.s.Selection().Select(v, true)

	if err := sc.s.Nudge(1, 0, true); err != nil {
		t.Fatal(err)
	}
	if got, want := v.Rect(), sceneview.R(15, 7, 10, 10); got != want {
		t.Errorf("snapped Nudge: %v, want %v", got, want)
	}
	if err := sc.s.Nudge(0, 1, false); err != nil {
		t.Fatal(err)
	}
	if got, want := v.Rect(), sceneview.R(15, 8, 10, 10); got != want {
		t.Errorf("Nudge: %v, want %v", got, want)
	}

	sc.s.Selection().Clear()
	if err := sc.s.Nudge(1, 0, false); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Nudge without selection = %v, want %v", err, ErrNoSelection)
	}
}

func TestSessionResize(t *testing.T) {
	tests := []struct {
		name       string
		dir        Direction
		start, end sceneview.Point
		want       sceneview.Rect
	}{
		{"bottom right", BottomRight, sceneview.Pt(30, 30), sceneview.Pt(35, 38), sceneview.R(10, 10, 25, 28)},
		{"top left", TopLeft, sceneview.Pt(10, 10), sceneview.Pt(14, 12), sceneview.R(14, 12, 16, 18)},
		{"middle left", MiddleLeft, sceneview.Pt(10, 20), sceneview.Pt(6, 25), sceneview.R(6, 10, 24, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScene()
			sc.s.Selection().Select(sc.a, true)
			if err := sc.s.Resize(tt.dir, tt.start, tt.end, false); err != nil {
				t.Fatal(err)
			}
			if got := sc.a.Rect(); got != tt.want {
				t.Errorf("Rect() = %v, want %v", got, tt.want)
			}
			if err := sc.s.Undo(); err != nil {
				t.Fatal(err)
			}
			if got, want := sc.a.Rect(), sceneview.R(10, 10, 20, 20); got != want {
				t.Errorf("after Undo: %v, want %v", got, want)
			}
		})
	}
}

func TestSessionResizeErrors(t *testing.T) {
	sc := newScene()
	if err := sc.s.ChangeSize(sceneview.Point{}, sceneview.Pt(1, 1)); !errors.Is(err, ErrNoSelection) {
		t.Errorf("ChangeSize without selection = %v, want %v", err, ErrNoSelection)
	}

	line := sceneview.NewLine(sceneview.DefaultPen(), sceneview.Pt(0, 0), sceneview.Pt(10, 10))
	sc.root.Add(line)
	sc.s.Selection().Select(line, true)
	err := sc.s.Resize(BottomRight, sceneview.Pt(10, 10), sceneview.Pt(20, 20), false)
	if !errors.Is(err, ErrNotResizable) {
		t.Errorf("Resize(line) = %v, want %v", err, ErrNotResizable)
	}

	sc.s.Selection().Select(sc.a, false)
	err = sc.s.Resize(BottomRight, sceneview.Pt(30, 30), sceneview.Pt(35, 35), false)
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("Resize(two views) = %v, want %v", err, ErrNoSelection)
	}
}

func TestSessionChangeSizeErrors(t *testing.T) {
	sc := newScene()
	line := sceneview.NewLine(nil, sceneview.Pt(0, 0), sceneview.Pt(10, 20))
	sc.root.Add(line)
	sc.s.Selection().Select(line, true)
	if err := sc.s.ChangeSize(sceneview.Point{}, sceneview.Pt(10, 20)); !errors.Is(err, ErrNotResizable) {
		t.Errorf("ChangeSize(line) = %v, want %v", err, ErrNotResizable)
	}

	sc.s.Selection().Select(sc.a, true)
	if err := sc.s.ChangeSize(sceneview.Pt(5, 0), sceneview.Pt(-20, 0)); !errors.Is(err, ErrEmptyBounds) {
		t.Errorf("ChangeSize(collapse) = %v, want %v", err, ErrEmptyBounds)
	}
	if got, want := sc.a.Rect(), sceneview.R(10, 10, 20, 20); got != want {
		t.Errorf("failed ChangeSize moved the view to %v", got)
	}
}

func TestSessionAddRemove(t *testing.T) {
	sc := newScene()
	c := box("c", sceneview.R(0, 0, 10, 10))

	v, err := sc.s.Add(c, sceneview.Pt(30, 40))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Rect(), sceneview.R(30, 40, 10, 10); got != want {
		t.Errorf("added at %v, want %v", got, want)
	}
	if sc.root.Len() != 3 || !sc.s.Selection().Contains(v) {
		t.Errorf("after Add: %d children, selected %v", sc.root.Len(), sc.s.Selection().Views())
	}
	if got := sc.s.UndoName(); got != "Add c" {
		t.Errorf("UndoName() = %q, want %q", got, "Add c")
	}

	if err := sc.s.Remove(); err != nil {
		t.Fatal(err)
	}
	if sc.root.Len() != 2 || sc.s.Selection().Len() != 0 {
		t.Errorf("after Remove: %d children, %d selected", sc.root.Len(), sc.s.Selection().Len())
	}

	if err := sc.s.Undo(); err != nil {
		t.Fatal(err)
	}
	if sc.root.Len() != 3 || sc.root.At(2) != sceneview.View(c) {
		t.Errorf("after undoing Remove: %d children", sc.root.Len())
	}
	if err := sc.s.Undo(); err != nil {
		t.Fatal(err)
	}
	if sc.root.Len() != 2 {
		t.Errorf("after undoing Add: %d children, want 2", sc.root.Len())
	}

	if _, err := sc.s.Add("not a view", sceneview.Point{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Add(string) = %v, want %v", err, ErrUnsupported)
	}
}

func TestSessionAddAll(t *testing.T) {
	sc := newScene()
	c := box("c", sceneview.R(0, 0, 10, 10))
	d := box("d", sceneview.R(0, 0, 10, 5))

	views, err := sc.s.AddAll([]any{c, 42, d}, sceneview.Pt(100, 100))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("AddAll error = %v, want %v", err, ErrUnsupported)
	}
	if len(views) != 2 || sc.s.Selection().Len() != 2 {
		t.Errorf("AddAll added %d, selected %d, want 2, 2", len(views), sc.s.Selection().Len())
	}
	if got, want := d.Rect(), sceneview.R(100, 110, 10, 5); got != want {
		t.Errorf("second view at %v, want %v", got, want)
	}
}

func TestSessionPick(t *testing.T) {
	sc := newScene()
	if got := sc.s.Pick(sceneview.Pt(20, 20)); got != sceneview.View(sc.a) {
		t.Errorf("Pick(20,20) = %v, want the first box", got)
	}
	if !sc.s.Selection().Contains(sc.a) {
		t.Error("picked view is not selected")
	}

	sc.b.SetSelectable(false)
	if got := sc.s.Pick(sceneview.Pt(60, 60)); got != sceneview.View(sc.b) {
		t.Errorf("Pick(60,60) = %v, want the second box", got)
	}
	if sc.s.Selection().Len() != 0 {
		t.Error("picking an unselectable view kept the selection")
	}

	sc.s.Selection().Select(sc.a, true)
	if got := sc.s.Pick(sceneview.Pt(300, 300)); got != nil {
		t.Errorf("Pick(empty) = %v, want nil", got)
	}
	if sc.s.Selection().Len() != 0 {
		t.Error("picking nothing kept the selection")
	}
}

func TestSessionDropTarget(t *testing.T) {
	sc := newScene()
	sc.root.SetActive(true)
	sc.s.Selection().Select(sc.a, true)
	if got := sc.s.DropTarget(sceneview.Pt(60, 60)); got != sceneview.Container(sc.root) {
		t.Errorf("DropTarget = %v, want the root", got)
	}
}

func TestSessionTransactions(t *testing.T) {
	sc := newScene()
	l := &listener{}
	sc.s.AddTransactionListener(l)
	sc.s.Selection().Select(sc.a, true)

	sc.s.StartTransaction("outer")
	if err := sc.s.Move(sceneview.Pt(1, 0)); err != nil {
		t.Fatal(err)
	}
	if err := sc.s.Move(sceneview.Pt(1, 0)); err != nil {
		t.Fatal(err)
	}
	sc.s.CompleteTransaction()

	if !slices.Equal(l.started, []string{"outer"}) || l.completed != 1 {
		t.Errorf("listener saw %v started, %d completed, want [outer], 1", l.started, l.completed)
	}
	if l.edits != 3 {
		t.Errorf("listener saw %d edits, want 3", l.edits)
	}
	if err := sc.s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got, want := sc.a.Rect(), sceneview.R(10, 10, 20, 20); got != want {
		t.Errorf("after undoing the outer transaction: %v, want %v", got, want)
	}

	sc.s.RemoveTransactionListener(l)
	if err := sc.s.Move(sceneview.Pt(1, 0)); err != nil {
		t.Fatal(err)
	}
	if l.completed != 1 {
		t.Errorf("removed listener notified")
	}
}

func TestSessionPaint(t *testing.T) {
	sc := newScene()
	sc.s.Grid().SetShowGrid(false)
	sc.s.Selection().Select(sc.a, true)
	got := strokes(func(c sceneview.Canvas) { sc.s.Paint(c, sceneview.R(0, 0, 100, 100), 1) })
	if got != 3 {
		t.Errorf("strokes = %d, want 3", got)
	}
}
