package editor

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/gogpu/sceneview"
)

// GridStyle selects how the grid is drawn.
type GridStyle int

// Grid styles.
const (
	// Points draws dots every StepSize pixels along the cell lines.
	Points GridStyle = iota
	// BackgroundGrid draws cell lines under the scene.
	BackgroundGrid
	// ForegroundGrid draws cell lines over the scene.
	ForegroundGrid
)

var styleNames = [...]string{"POINTS", "BACKGROUND_GRID", "FOREGROUND_GRID"}

// String returns the wire name of the style.
func (s GridStyle) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("GridStyle(%d)", int(s))
	}
	return styleNames[s]
}

// ParseGridStyle returns the style named s. Unknown names map to Points.
func ParseGridStyle(s string) GridStyle {
	for i, name := range styleNames {
		if name == s {
			return GridStyle(i)
		}
	}
	return Points
}

// Change describes one property change reported to OnChange callbacks.
type Change struct {
	Name     string
	Old, New any
}

// GridOptions configures grid display and snapping. Snapping applies only
// while the grid is shown and StepSize is positive.
//
// The zero value is not ready; use NewGridOptions.
type GridOptions struct {
	showGrid  bool
	style     GridStyle
	cellSize  int
	stepSize  int
	listeners []func(Change)
}

// NewGridOptions returns a shown point grid with 20 pixel cells and a 5
// pixel snap step.
func NewGridOptions() *GridOptions {
	return &GridOptions{showGrid: true, style: Points, cellSize: 20, stepSize: 5}
}

// OnChange registers fn to be called after every property change.
func (g *GridOptions) OnChange(fn func(Change)) {
	g.listeners = append(g.listeners, fn)
}

func (g *GridOptions) fire(name string, old, new any) {
	if old == new {
		return
	}
	for _, fn := range g.listeners {
		fn(Change{Name: name, Old: old, New: new})
	}
}

// ShowGrid reports whether the grid is drawn and snapping is enabled.
func (g *GridOptions) ShowGrid() bool { return g.showGrid }

// SetShowGrid implements the showGrid property.
func (g *GridOptions) SetShowGrid(show bool) {
	old := g.showGrid
	g.showGrid = show
	g.fire("showGrid", old, show)
}

// Style returns the drawing style.
func (g *GridOptions) Style() GridStyle { return g.style }

// SetStyle implements the gridStyle property.
func (g *GridOptions) SetStyle(s GridStyle) {
	old := g.style
	g.style = s
	g.fire("gridStyle", old, s)
}

// CellSize returns the distance between grid lines.
func (g *GridOptions) CellSize() int { return g.cellSize }

// SetCellSize implements the cellSize property.
func (g *GridOptions) SetCellSize(n int) {
	old := g.cellSize
	g.cellSize = n
	g.fire("cellSize", old, n)
}

// StepSize returns the snap step.
func (g *GridOptions) StepSize() int { return g.stepSize }

// SetStepSize implements the stepSize property.
func (g *GridOptions) SetStepSize(n int) {
	old := g.stepSize
	g.stepSize = n
	g.fire("stepSize", old, n)
}

// Clone returns a copy without listeners.
func (g *GridOptions) Clone() *GridOptions {
	return &GridOptions{showGrid: g.showGrid, style: g.style, cellSize: g.cellSize, stepSize: g.stepSize}
}

type gridJSON struct {
	ShowGrid  bool   `json:"showGrid"`
	CellSize  int    `json:"cellSize"`
	StepSize  int    `json:"stepSize"`
	GridStyle string `json:"gridStyle"`
}

// MarshalJSON implements json.Marshaler.
func (g *GridOptions) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{
		ShowGrid:  g.showGrid,
		CellSize:  g.cellSize,
		StepSize:  g.stepSize,
		GridStyle: g.style.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Missing members keep their
// current values; listeners are not notified.
func (g *GridOptions) UnmarshalJSON(data []byte) error {
	v := gridJSON{ShowGrid: g.showGrid, CellSize: g.cellSize, StepSize: g.stepSize, GridStyle: g.style.String()}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("editor: grid options: %w", err)
	}
	g.showGrid, g.cellSize, g.stepSize = v.ShowGrid, v.CellSize, v.StepSize
	g.style = ParseGridStyle(v.GridStyle)
	return nil
}

func (g *GridOptions) snapping() bool {
	return g != nil && g.showGrid && g.stepSize > 0
}

// snap returns the correction that moves t to the nearest step multiple,
// rounding half way values up.
func snap(t, step int) int {
	result := (t/step)*step - t
	if result < -step/2 {
		result += step
	}
	return result
}

// SnapMove returns the correction to apply to newPoint while dragging a
// selection with bounds oldBounds. oldPoint is the previous raw pointer
// position and oldCorrected the previous snapped one. The leading edge in
// the direction of motion snaps to the step; an axis without motion keeps
// the previous correction.
func (g *GridOptions) SnapMove(oldPoint, oldCorrected, newPoint sceneview.Point, oldBounds sceneview.Rect) sceneview.Point {
	var result sceneview.Point
	if !g.snapping() {
		return result
	}
	tx, ty := newPoint.X-oldCorrected.X, newPoint.Y-oldCorrected.Y
	switch {
	case newPoint.X < oldPoint.X:
		result.X = snap(tx+oldBounds.X, g.stepSize)
	case newPoint.X > oldPoint.X:
		result.X = snap(tx+oldBounds.Right(), g.stepSize)
	default:
		result.X = oldCorrected.X - oldPoint.X
	}
	switch {
	case newPoint.Y < oldPoint.Y:
		result.Y = snap(ty+oldBounds.Y, g.stepSize)
	case newPoint.Y > oldPoint.Y:
		result.Y = snap(ty+oldBounds.Bottom(), g.stepSize)
	default:
		result.Y = oldCorrected.Y - oldPoint.Y
	}
	return result
}

// SnapResize returns the correction for a resize handle dragged from
// oldPoint to newPoint. Only the edges moved by dir snap.
func (g *GridOptions) SnapResize(oldPoint, newPoint sceneview.Point, dir Direction, bounds sceneview.Rect) sceneview.Point {
	var result sceneview.Point
	if !g.snapping() {
		return result
	}
	tx := bounds.X + newPoint.X - oldPoint.X
	ty := bounds.Y + newPoint.Y - oldPoint.Y
	if dir.right() {
		tx += bounds.Width
	}
	if dir.bottom() {
		ty += bounds.Height
	}
	if dir.left() || dir.right() {
		result.X = snap(tx, g.stepSize)
	}
	if dir.top() || dir.bottom() {
		result.Y = snap(ty, g.stepSize)
	}
	return result
}

var (
	pointColor = sceneview.Gray
	lineColor  = sceneview.LightGray
)

// adoptStep returns step when it is at least minStep pixels at scale, or
// -1.
func adoptStep(step, minStep int, scale float64) int {
	if scale > 1 || int(scale*float64(step)) >= minStep {
		return step
	}
	return -1
}

// Paint draws the grid over area, a rectangle in scene coordinates, for a
// view shown at scale. Cells smaller than 5 pixels on screen are not drawn.
func (g *GridOptions) Paint(c sceneview.Canvas, area sceneview.Rect, scale float64) {
	if !g.showGrid {
		return
	}
	cell := adoptStep(g.cellSize, 5, scale)
	if cell <= 0 {
		return
	}
	pen := sceneview.NewPen(1, lineColor)
	if g.style == Points {
		pen = sceneview.NewPen(1, pointColor)
	}
	startX := int(math.Floor(float64(area.X)/float64(cell))) * cell
	startY := int(math.Floor(float64(area.Y)/float64(cell))) * cell
	for i := 0; i < area.Width/cell+2; i++ {
		x := startX + i*cell
		g.paintLine(c, pen, scale, sceneview.Pt(x, startY), sceneview.Pt(x, area.Bottom()))
	}
	for i := 0; i < area.Height/cell+2; i++ {
		y := startY + i*cell
		g.paintLine(c, pen, scale, sceneview.Pt(startX, y), sceneview.Pt(area.Right(), y))
	}
}

func (g *GridOptions) paintLine(c sceneview.Canvas, pen *sceneview.Pen, scale float64, a, b sceneview.Point) {
	if g.style != Points {
		sceneview.NewLine(pen, a, b).Paint(c)
		return
	}
	if g.stepSize <= 0 {
		return
	}
	step := adoptStep(g.stepSize, 5, scale)
	if step < 1 {
		if step = adoptStep(g.cellSize, 5, scale); step < 1 {
			return
		}
	}
	switch {
	case a.X == b.X:
		for y := a.Y; y <= b.Y; y += step {
			sceneview.NewLine(pen, sceneview.Pt(a.X, y), sceneview.Pt(a.X, y)).Paint(c)
		}
	case a.Y == b.Y:
		for x := a.X; x <= b.X; x += step {
			sceneview.NewLine(pen, sceneview.Pt(x, a.Y), sceneview.Pt(x, a.Y)).Paint(c)
		}
	}
}
