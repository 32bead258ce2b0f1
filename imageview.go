package sceneview

import "image"

// Image draws a raster image at its natural size, scaled by the view scale.
type Image struct {
	Base
	img  image.Image
	path string
	rect Rect
}

// NewImage returns an image view at (x, y). A width or height below 1 takes
// the image size.
func NewImage(img image.Image, x, y, w, h int) *Image {
	v := &Image{Base: newBase(), img: img, rect: Rect{X: x, Y: y, Width: w, Height: h}}
	if (w < 1 || h < 1) && img != nil {
		b := img.Bounds()
		v.rect.Width, v.rect.Height = b.Dx(), b.Dy()
	}
	return v
}

// Class implements View.
func (v *Image) Class() string { return classImage }

// Image returns the raster, nil for decoded views until SetImage.
func (v *Image) Image() image.Image { return v.img }

// SetImage replaces the raster.
func (v *Image) SetImage(img image.Image) { v.img = img }

// Path returns the source location recorded with the image.
func (v *Image) Path() string { return v.path }

// SetPath records the source location.
func (v *Image) SetPath(p string) { v.path = p }

// Bounds implements View.
func (v *Image) Bounds() Rect { return v.rect }

// Move implements View.
func (v *Image) Move(dx, dy int) { v.rect = v.rect.Translate(dx, dy) }

// Intersects implements View.
func (v *Image) Intersects(r Rect) bool { return v.rect.Intersects(r) }

// Paint implements View.
func (v *Image) Paint(c Canvas) {
	if !v.IsVisible() || v.img == nil {
		return
	}
	c.Push()
	defer c.Pop()
	c.Translate(float64(v.rect.X), float64(v.rect.Y))
	c.Scale(v.sx, v.sy)
	c.DrawImage(v.img, 0, 0)
}

// Equal compares geometry and source path; pixels are not compared.
func (v *Image) Equal(other View) bool {
	o, ok := other.(*Image)
	return ok && v.equalBase(&o.Base) && v.rect == o.rect && v.path == o.path
}

// EncodeJSON implements View.
func (v *Image) EncodeJSON(*Codec) Object {
	return Object{
		"x":      v.rect.X,
		"y":      v.rect.Y,
		"width":  v.rect.Width,
		"height": v.rect.Height,
		"path":   v.path,
	}
}

// DecodeJSON implements View.
func (v *Image) DecodeJSON(_ *Codec, f Fields) {
	f.Int("x", &v.rect.X)
	f.Int("y", &v.rect.Y)
	f.Int("width", &v.rect.Width)
	f.Int("height", &v.rect.Height)
	f.String("path", &v.path)
}

// Dummy stands in for an unchanged subtree in diff payloads. It carries
// only the envelope: the model reference and the active flag.
type Dummy struct {
	Base
}

// NewDummy returns a placeholder for model.
func NewDummy(model any, active bool) *Dummy {
	d := &Dummy{Base: newBase()}
	d.model = model
	d.SetActive(active)
	return d
}

// Class implements View.
func (d *Dummy) Class() string { return classDummy }

// Bounds is always empty.
func (d *Dummy) Bounds() Rect { return Rect{} }

// Move implements View.
func (d *Dummy) Move(int, int) {}

// Intersects implements View.
func (d *Dummy) Intersects(Rect) bool { return false }

// Paint implements View.
func (d *Dummy) Paint(Canvas) {}

// Equal implements View.
func (d *Dummy) Equal(other View) bool {
	o, ok := other.(*Dummy)
	return ok && d.equalBase(&o.Base)
}

// EncodeJSON implements View.
func (d *Dummy) EncodeJSON(*Codec) Object { return Object{} }

// DecodeJSON implements View.
func (d *Dummy) DecodeJSON(*Codec, Fields) {}
