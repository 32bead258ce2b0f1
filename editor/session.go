// Package editor implements an editing session over a scene: selection,
// grid snapping, move and resize, and undoable named transactions.
package editor

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/sceneview"
)

// Edit is one undoable change recorded inside a transaction.
type Edit interface {
	Undo()
	Redo()
}

type funcEdit struct {
	undo, redo func()
}

func (e funcEdit) Undo() { e.undo() }
func (e funcEdit) Redo() { e.redo() }

// NewEdit returns an Edit calling undo and redo.
func NewEdit(undo, redo func()) Edit {
	return funcEdit{undo: undo, redo: redo}
}

// TransactionEvent describes a transaction being started.
type TransactionEvent struct {
	// Source is the model of the edited root, possibly nil.
	Source any
	Name   string
}

// TransactionListener observes the transactions of a Session. Model layers
// use it to group their own changes with the view edits.
type TransactionListener interface {
	StartTransaction(e TransactionEvent)
	AddEdit(e Edit)
	CompleteTransaction()
}

// Transaction is a named group of edits undone and redone together.
type Transaction struct {
	Name  string
	edits []Edit
}

// Len returns the number of recorded edits.
func (t *Transaction) Len() int { return len(t.edits) }

func (t *Transaction) undo() {
	for i := len(t.edits) - 1; i >= 0; i-- {
		t.edits[i].Undo()
	}
}

func (t *Transaction) redo() {
	for _, e := range t.edits {
		e.Redo()
	}
}

// selectionEdit restores the selection around a transaction. It is the
// first edit of every transaction so it is undone last.
type selectionEdit struct {
	sel      *SelectionManager
	old, new []any
}

func (e *selectionEdit) Undo() {
	if len(e.old) > 0 {
		e.sel.SelectModels(e.old, true)
	}
}

func (e *selectionEdit) Redo() {
	if len(e.new) > 0 {
		e.sel.SelectModels(e.new, true)
	}
}

// Session edits a scene: it owns the selection, the grid and the undo
// history, and delegates the scene changes to a Helper. Every operation
// runs inside a transaction.
//
// A Session is not safe for concurrent use.
type Session struct {
	root      *sceneview.Composite
	helper    Helper
	selection *SelectionManager
	grid      *GridOptions
	listeners []TransactionListener

	depth   int
	current *Transaction
	pending *selectionEdit

	done, undone []*Transaction
}

// NewSession returns a session editing root through helper. A nil helper
// selects NewDefaultHelper(root).
func NewSession(root *sceneview.Composite, helper Helper) *Session {
	if helper == nil {
		helper = NewDefaultHelper(root)
	}
	s := &Session{
		root:      root,
		helper:    helper,
		selection: NewSelectionManager(root),
		grid:      NewGridOptions(),
	}
	helper.Register(s)
	return s
}

// Root returns the edited composite.
func (s *Session) Root() *sceneview.Composite { return s.root }

// Helper returns the helper applying the edits.
func (s *Session) Helper() Helper { return s.helper }

// Selection returns the selection manager.
func (s *Session) Selection() *SelectionManager { return s.selection }

// Grid returns the grid options used for snapping.
func (s *Session) Grid() *GridOptions { return s.grid }

// SetGrid replaces the grid options. Nil disables snapping.
func (s *Session) SetGrid(g *GridOptions) { s.grid = g }

// AddTransactionListener registers l.
func (s *Session) AddTransactionListener(l TransactionListener) {
	s.listeners = append(s.listeners, l)
}

// RemoveTransactionListener unregisters l.
func (s *Session) RemoveTransactionListener(l TransactionListener) {
	if i := slices.Index(s.listeners, l); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

// StartTransaction opens a transaction. Nested calls join the outermost
// one.
func (s *Session) StartTransaction(name string) {
	s.depth++
	if s.depth > 1 {
		return
	}
	s.current = &Transaction{Name: name}
	ev := TransactionEvent{Source: s.root.Model(), Name: name}
	for _, l := range s.listeners {
		l.StartTransaction(ev)
	}
	s.pending = &selectionEdit{sel: s.selection, old: s.selection.SelectedModels()}
	s.AddEdit(s.pending)
}

// AddEdit records e in the open transaction and reports it to the
// listeners. Outside a transaction e becomes a transaction of its own.
func (s *Session) AddEdit(e Edit) {
	if s.current == nil {
		s.push(&Transaction{edits: []Edit{e}})
	} else {
		s.current.edits = append(s.current.edits, e)
	}
	for _, l := range s.listeners {
		l.AddEdit(e)
	}
}

// CompleteTransaction closes the transaction opened by the matching
// StartTransaction and adds it to the undo history.
func (s *Session) CompleteTransaction() {
	if s.depth == 0 {
		return
	}
	s.depth--
	if s.depth > 0 {
		return
	}
	s.pending.new = s.selection.SelectedModels()
	t := s.current
	s.current, s.pending = nil, nil
	s.push(t)
	sceneview.Logger().Debug("editor: transaction", "name", t.Name, "edits", t.Len())
	for _, l := range s.listeners {
		l.CompleteTransaction()
	}
}

func (s *Session) push(t *Transaction) {
	s.done = append(s.done, t)
	s.undone = s.undone[:0]
}

// CanUndo reports whether Undo has a transaction to revert.
func (s *Session) CanUndo() bool { return len(s.done) > 0 }

// CanRedo reports whether Redo has a transaction to reapply.
func (s *Session) CanRedo() bool { return len(s.undone) > 0 }

// UndoName returns the name of the transaction Undo would revert.
func (s *Session) UndoName() string {
	if len(s.done) == 0 {
		return ""
	}
	return s.done[len(s.done)-1].Name
}

// Undo reverts the last completed transaction.
func (s *Session) Undo() error {
	if len(s.done) == 0 {
		return ErrNothingToUndo
	}
	t := s.done[len(s.done)-1]
	s.done = s.done[:len(s.done)-1]
	t.undo()
	s.undone = append(s.undone, t)
	return nil
}

// Redo reapplies the last undone transaction.
func (s *Session) Redo() error {
	if len(s.undone) == 0 {
		return ErrNothingToRedo
	}
	t := s.undone[len(s.undone)-1]
	s.undone = s.undone[:len(s.undone)-1]
	t.redo()
	s.done = append(s.done, t)
	return nil
}

// named is implemented by models with a display name.
type named interface {
	Name() string
}

// modelName names m, or the model of m when m is a view.
func modelName(m any) string {
	if v, ok := m.(sceneview.View); ok && v.State().Model() != nil {
		m = v.State().Model()
	}
	if n, ok := m.(named); ok {
		return n.Name()
	}
	return fmt.Sprint(m)
}

// selectionName names at most three selected models for transaction names.
func (s *Session) selectionName() string {
	models := s.selection.SelectedModels()
	names := make([]string, 0, 3)
	for _, m := range models {
		if len(names) == 3 {
			break
		}
		names = append(names, modelName(m))
	}
	out := strings.Join(names, ", ")
	if len(models) > 3 {
		out += ", ..."
	}
	return out
}

// Move moves every selected view by offset. Views sharing a model are moved
// once through the first of them.
func (s *Session) Move(offset sceneview.Point) error {
	if s.selection.Len() == 0 {
		return ErrNoSelection
	}
	s.StartTransaction("Move " + s.selectionName())
	defer s.CompleteTransaction()

	var errs []error
	var moved []any
	for _, v := range s.selection.Views() {
		if m := v.State().Model(); m != nil {
			if slices.Contains(moved, m) {
				continue
			}
			moved = append(moved, m)
		}
		if _, err := s.helper.MoveView(v, offset); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nudge moves the selection by (dx, dy), as done by the arrow keys. With
// snap the leading edge lands on the grid step.
func (s *Session) Nudge(dx, dy int, snap bool) error {
	b, ok := s.selection.Bounds()
	if !ok {
		return ErrNoSelection
	}
	offset := sceneview.Pt(dx, dy)
	if snap {
		c := s.grid.SnapMove(sceneview.Point{}, sceneview.Point{}, offset, b)
		offset = sceneview.Pt(offset.X+c.X, offset.Y+c.Y)
	}
	if offset == (sceneview.Point{}) {
		return nil
	}
	return s.Move(offset)
}

// ChangeSize moves the selected views by offset and grows them by size.
func (s *Session) ChangeSize(offset, size sceneview.Point) error {
	if s.selection.Len() == 0 {
		return ErrNoSelection
	}
	s.StartTransaction("Change size")
	defer s.CompleteTransaction()

	var errs []error
	for _, v := range s.selection.Views() {
		if _, err := s.helper.ResizeView(v, offset, size); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resize applies a drag of handle dir from start to end to the single
// selected view. With snap the dragged edges land on the grid step.
func (s *Session) Resize(dir Direction, start, end sceneview.Point, snap bool) error {
	if s.selection.Len() != 1 {
		return ErrNoSelection
	}
	v := s.selection.At(0)
	if !dir.Valid() || !s.helper.IsResizable(v) {
		return fmt.Errorf("editor: resize %s: %w", v.Class(), ErrNotResizable)
	}
	b := v.Bounds()
	if snap {
		c := s.grid.SnapResize(start, end, dir, b)
		end = sceneview.Pt(end.X+c.X, end.Y+c.Y)
	}
	offset := resizeOffset(dir, start, end, b)
	r := ResizeRect(dir, b, start.X-end.X, start.Y-end.Y)
	size := sceneview.Pt(r.Width-b.Width, r.Height-b.Height)
	if offset == (sceneview.Point{}) && size == (sceneview.Point{}) {
		return nil
	}
	return s.ChangeSize(offset, size)
}

// Add creates a view for obj at p through the helper and selects it.
func (s *Session) Add(obj any, p sceneview.Point) (sceneview.View, error) {
	s.StartTransaction("Add " + modelName(obj))
	defer s.CompleteTransaction()

	v, err := s.helper.Add(obj, p)
	if err != nil {
		return nil, err
	}
	s.selection.Select(v, true)
	return v, nil
}

// AddAll adds every object, stacking them down from p, and selects the new
// views.
func (s *Session) AddAll(objs []any, p sceneview.Point) ([]sceneview.View, error) {
	s.StartTransaction("Add elements")
	defer s.CompleteTransaction()

	s.selection.Clear()
	var out []sceneview.View
	var errs []error
	for _, obj := range objs {
		v, err := s.helper.Add(obj, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
		s.selection.Select(v, false)
		p.Y = v.Bounds().Bottom()
	}
	return out, errors.Join(errs...)
}

// Remove deletes the selected views and clears them from the selection.
func (s *Session) Remove() error {
	if s.selection.Len() == 0 {
		return ErrNoSelection
	}
	s.StartTransaction("Remove " + s.selectionName())
	defer s.CompleteTransaction()

	var errs []error
	for _, v := range s.selection.Views() {
		if _, err := s.helper.RemoveView(v); err != nil {
			errs = append(errs, err)
			continue
		}
		s.selection.Deselect(v)
	}
	return errors.Join(errs...)
}

// Pick selects the deepest active view under p, or clears the selection
// when that view is not selectable. It returns the view found.
func (s *Session) Pick(p sceneview.Point) sceneview.View {
	s.StartTransaction("Select")
	defer s.CompleteTransaction()

	v := s.root.DeepestActive(p)
	if v != nil && v.State().IsSelectable() {
		s.selection.Select(v, true)
	} else {
		s.selection.Clear()
	}
	return v
}

// DropTarget returns the container under p that accepts every selected
// view, or nil.
func (s *Session) DropTarget(p sceneview.Point) sceneview.Container {
	views := s.selection.Views()
	target := s.root.DeepestActiveFiltered(p, s.selection.SelectedModels(), nil)
	for target != nil {
		c, ok := target.(sceneview.Container)
		if ok && !slices.Contains(views, target) && s.acceptsAll(c, views) {
			return c
		}
		if target == sceneview.View(s.root) {
			break
		}
		target = s.root
	}
	return nil
}

func (s *Session) acceptsAll(c sceneview.Container, views []sceneview.View) bool {
	for _, v := range views {
		if !s.helper.CanAccept(c, v) {
			return false
		}
	}
	return true
}

// Paint draws the grid, the scene and the selection outlines on c. area is
// the visible scene rectangle and scale the zoom it is shown at.
func (s *Session) Paint(c sceneview.Canvas, area sceneview.Rect, scale float64) {
	foreground := s.grid != nil && s.grid.Style() == ForegroundGrid
	if s.grid != nil && !foreground {
		s.grid.Paint(c, area, scale)
	}
	s.root.Paint(c)
	if foreground {
		s.grid.Paint(c, area, scale)
	}
	s.selection.Paint(c)
}
