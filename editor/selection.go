package editor

import (
	"slices"

	"github.com/gogpu/sceneview"
)

// SelectionManager tracks the selected views in selection order and the set
// of their models.
type SelectionManager struct {
	root   sceneview.Container
	views  []sceneview.View
	models []any
}

// NewSelectionManager returns an empty selection over the tree at root.
// Models are looked up in that tree by SelectModel.
func NewSelectionManager(root sceneview.Container) *SelectionManager {
	return &SelectionManager{root: root}
}

// Len returns the number of selected views.
func (m *SelectionManager) Len() int { return len(m.views) }

// At returns the i-th selected view.
func (m *SelectionManager) At(i int) sceneview.View { return m.views[i] }

// Views returns a copy of the selected views.
func (m *SelectionManager) Views() []sceneview.View { return slices.Clone(m.views) }

// Contains reports whether v is selected.
func (m *SelectionManager) Contains(v sceneview.View) bool {
	return slices.Contains(m.views, v)
}

// SelectedModels returns the models of the selected views in selection
// order, without duplicates.
func (m *SelectionManager) SelectedModels() []any { return slices.Clone(m.models) }

// Bounds returns the union of the selected view bounds, false when nothing
// is selected.
func (m *SelectionManager) Bounds() (sceneview.Rect, bool) {
	if len(m.views) == 0 {
		return sceneview.Rect{}, false
	}
	r := m.views[0].Bounds()
	for _, v := range m.views[1:] {
		r = r.Union(v.Bounds())
	}
	return r, true
}

// Clear empties the selection.
func (m *SelectionManager) Clear() {
	m.views = m.views[:0]
	m.models = m.models[:0]
}

// Select adds v. With exclusive the previous selection is dropped first;
// otherwise selecting an already selected view does nothing.
func (m *SelectionManager) Select(v sceneview.View, exclusive bool) {
	if exclusive {
		m.Clear()
	} else if m.Contains(v) {
		return
	}
	m.views = append(m.views, v)
	if model := v.State().Model(); model != nil && !slices.Contains(m.models, model) {
		m.models = append(m.models, model)
	}
}

// Deselect removes v. Its model stays selected while another selected view
// carries it.
func (m *SelectionManager) Deselect(v sceneview.View) {
	i := slices.Index(m.views, v)
	if i < 0 {
		return
	}
	m.views = slices.Delete(m.views, i, i+1)
	model := v.State().Model()
	if model == nil {
		return
	}
	for _, o := range m.views {
		if o.State().Model() == model {
			return
		}
	}
	if j := slices.Index(m.models, model); j >= 0 {
		m.models = slices.Delete(m.models, j, j+1)
	}
}

// SelectModel selects the views showing model and returns them. When some
// of them are arrows only the arrows are selected, so that picking an edge
// does not select its label.
func (m *SelectionManager) SelectModel(model any, exclusive bool) []sceneview.View {
	if exclusive {
		m.Clear()
	}
	views := ViewsOf(m.root, model)
	if slices.Contains(m.models, model) || len(views) == 0 {
		return views
	}
	edge := false
	for _, v := range views {
		if _, ok := v.(*sceneview.Arrow); ok {
			m.Select(v, false)
			edge = true
		}
	}
	if !edge {
		for _, v := range views {
			m.Select(v, false)
		}
	}
	return views
}

// SelectModels selects the views of every model in models.
func (m *SelectionManager) SelectModels(models []any, exclusive bool) []sceneview.View {
	if exclusive {
		m.Clear()
	}
	var out []sceneview.View
	for _, model := range models {
		out = append(out, m.SelectModel(model, false)...)
	}
	return out
}

// selectionPen outlines selected views.
var selectionPen = sceneview.NewDashedPen(3, sceneview.Blue, 0, 1, 1)

// Paint outlines every visible, active selected view.
func (m *SelectionManager) Paint(c sceneview.Canvas) {
	for _, v := range m.views {
		if !sceneview.Visible(v) || !v.State().IsActive() {
			continue
		}
		sceneview.NewBox(selectionPen, nil, v.Bounds()).Paint(c)
	}
}

// ViewsOf returns the views under root whose model is model, in paint
// order. Root itself is included when it matches.
func ViewsOf(root sceneview.View, model any) []sceneview.View {
	if root == nil || model == nil {
		return nil
	}
	var out []sceneview.View
	var walk func(v sceneview.View)
	walk = func(v sceneview.View) {
		if v.State().Model() == model {
			out = append(out, v)
		}
		if c, ok := v.(sceneview.Container); ok {
			for _, child := range c.Children() {
				walk(child)
			}
		}
	}
	walk(root)
	return out
}
