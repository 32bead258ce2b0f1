// Command scenedemo renders a small diagram built from sceneview primitives
// to a PNG file, and optionally writes its JSON encoding.
package main

import (
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/gogpu/gg"

	"github.com/gogpu/sceneview"
	"github.com/gogpu/sceneview/editor"
	"github.com/gogpu/sceneview/richtext"
	"github.com/gogpu/sceneview/ruler"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		scale  = flag.Float64("scale", 1, "zoom factor")
		output = flag.String("output", "scene.png", "output file")
		jsonTo = flag.String("json", "", "also write the encoded scene to this file")
		grid   = flag.String("grid", "POINTS", "grid style: POINTS, BACKGROUND_GRID or FOREGROUND_GRID")
		noGrid = flag.Bool("nogrid", false, "hide the grid")
	)
	flag.Parse()

	root := buildScene(*width, *height)

	session := editor.NewSession(root, nil)
	session.Grid().SetStyle(editor.ParseGridStyle(*grid))
	session.Grid().SetShowGrid(!*noGrid)
	session.Selection().SelectModels([]any{"store"}, true)

	dc := gg.NewContext(*width, *height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	c := sceneview.NewCanvas(dc)
	c.Scale(*scale, *scale)
	area := sceneview.R(0, 0, int(float64(*width) / *scale), int(float64(*height) / *scale))
	session.Paint(c, area, *scale)

	if err := dc.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scene saved to %s (%dx%d, %d views)\n", *output, *width, *height, root.Len())

	if *jsonTo != "" {
		data, err := sceneview.NewCodec(sceneview.StringResolver{}).Marshal(root)
		if err != nil {
			log.Fatalf("Failed to encode: %v", err)
		}
		if err := os.WriteFile(*jsonTo, data, 0o644); err != nil {
			log.Fatalf("Failed to write: %v", err)
		}
	}
}

var (
	nodeFill = color.NRGBA{R: 230, G: 240, B: 255, A: 255}
	nodeEdge = color.NRGBA{R: 40, G: 80, B: 160, A: 255}
	accent   = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
)

// node returns a selectable labelled box for model.
func node(model string, label string, w, h int) *sceneview.Composite {
	g := sceneview.NewComposite()
	box := sceneview.NewRoundBox(sceneview.NewPen(2, nodeEdge), sceneview.NewGradientBrush(nodeFill, sceneview.White, 0),
		sceneview.R(0, 0, w, h), 12, 12)
	g.Add(box)
	text := richtext.New(label, richtext.Options{
		Origin:    sceneview.Pt(10, 20),
		LineAlign: richtext.AlignLeft,
	})
	g.Add(text)
	g.SetModel(model)
	g.SetActive(true)
	return g
}

// buildScene lays out three nodes in a row, links them with arrows and adds
// a title and a ruler under the diagram.
func buildScene(width, height int) *sceneview.Composite {
	root := sceneview.NewComposite()

	title := richtext.New("<b>sceneview</b> demo: <i>client</i> &rarr; <font color=\"red\">server</font> &rarr; store",
		richtext.Options{Origin: sceneview.Pt(40, 40)})
	root.Add(title)

	row := sceneview.NewComposite()
	row.Add(node("client", "<b>client</b><br>editor session", 160, 80))
	row.AddArranged(node("server", "<b>server</b><br>mux + websocket", 160, 80), sceneview.X_RL|sceneview.Y_TT, sceneview.Pt(80, 0))
	row.AddArranged(node("store", "<b>store</b><br>SQLite revisions", 160, 80), sceneview.X_RL|sceneview.Y_TT, sceneview.Pt(80, 0))
	row.Move(40, 120)
	root.Add(row)

	pen := sceneview.NewPen(2, nodeEdge)
	for i := 0; i+1 < row.Len(); i++ {
		a, b := row.At(i).Bounds(), row.At(i+1).Bounds()
		arrow := sceneview.NewArrow(pen, sceneview.NewBrush(accent),
			sceneview.Pt(a.Right(), a.Center().Y), sceneview.Pt(b.X, b.Center().Y),
			sceneview.TipNone, sceneview.TipArrow)
		arrow.SetModel("link")
		arrow.SetActive(true)
		root.Add(arrow)
	}

	note := sceneview.NewEllipse(sceneview.NewDashedPen(1, sceneview.Gray, 0, 4, 2), nil, 40, 260, float64(width-80), 60)
	root.Add(note)

	r := ruler.New(ruler.Horizontal|ruler.TicksMajorDown|ruler.TicksMinorDown|ruler.LabelsMajor,
		sceneview.Pt(40, height-80), 1, 0, float64(width-80), ruler.DefaultOptions(sceneview.DefaultFont()))
	root.Add(r)
	return root
}
