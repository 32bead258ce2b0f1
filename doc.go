// Package sceneview provides a retained-mode 2D scene graph for Go.
//
// # Overview
//
// A scene is a tree of View values: lines, boxes, ellipses, polygons,
// polylines, paths, figures, text, HTML text, images, arrows and Composite
// groups. Views know their bounds, paint themselves on a Canvas, answer
// hit-tests and encode to JSON. Sub-packages add marked-up text (richtext),
// axis rulers (ruler) and an editing session with selection, grid snapping
// and undo (editor).
//
// # Quick Start
//
//	import "github.com/gogpu/sceneview"
//
//	root := sceneview.NewComposite()
//	root.Add(sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(0, 0, 10, 10)))
//	root.AddArranged(sceneview.NewBox(sceneview.DefaultPen(), nil, sceneview.R(0, 0, 10, 10)),
//	    sceneview.X_RL|sceneview.Y_TT, sceneview.Point{})
//
//	dc := gg.NewContext(200, 100)
//	root.Paint(sceneview.NewCanvas(dc))
//	dc.SavePNG("scene.png")
//
// # Serialization
//
// A Codec encodes a tree as nested JSON objects tagged with a "class"
// member and decodes it back through a registration table; packages that
// define views call Register from init. Codec.Diff encodes a tree relative
// to an earlier snapshot, replacing unchanged subtrees by DummyView
// placeholders. Models are opaque to the core and cross the wire only
// through a ModelResolver.
//
// # Hit-testing
//
// Composite.DeepestActive returns the innermost active view under a point.
// Candidates must nest inside the current best; among them the highest
// SelectionPriority wins, then the smallest area.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Geometry is integer at the API; scale factors are per view
//
// # Concurrency
//
// Views are not safe for concurrent use. The store and server packages
// synchronize their own state.
package sceneview
