package sceneview

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Object is an encoded view node, ready for json.Marshal.
type Object = map[string]any

// Fields is a decoded JSON object whose members are parsed lazily, one at a
// time, so that a malformed member never spoils its siblings.
type Fields map[string]json.RawMessage

// ParseFields decodes data as a JSON object.
func ParseFields(data []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if f == nil {
		return nil, ErrNotObject
	}
	return f, nil
}

// Has reports whether key is present and not null.
func (f Fields) Has(key string) bool {
	raw, ok := f[key]
	return ok && string(raw) != "null"
}

// Float stores the numeric member key into dst. Numeric strings are
// accepted. It reports whether dst was written.
func (f Fields) Float(key string, dst *float64) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
		return true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	*dst = v
	return true
}

// Int is Float truncated toward zero.
func (f Fields) Int(key string, dst *int) bool {
	var v float64
	if !f.Float(key, &v) {
		return false
	}
	*dst = int(v)
	return true
}

// String stores the string member key into dst.
func (f Fields) String(key string, dst *string) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	*dst = s
	return true
}

// Floats stores the numeric array member key into dst.
func (f Fields) Floats(key string, dst *[]float64) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	var v []float64
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return false
	}
	*dst = v
	return true
}

// Ints is Floats with every element truncated toward zero.
func (f Fields) Ints(key string, dst *[]int) bool {
	var v []float64
	if !f.Floats(key, &v) {
		return false
	}
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	*dst = out
	return true
}

// Object returns the nested object member key.
func (f Fields) Object(key string) (Fields, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}
	var sub Fields
	if err := json.Unmarshal(raw, &sub); err != nil || sub == nil {
		return nil, false
	}
	return sub, true
}

// Array returns the members of the array member key.
func (f Fields) Array(key string) ([]json.RawMessage, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// ModelResolver maps opaque model handles to string references and back.
// It is consulted only while encoding and decoding the "model" member.
type ModelResolver interface {
	ModelRef(model any) (string, bool)
	ResolveModel(ref string) (any, bool)
}

// StringResolver treats string models as their own references.
type StringResolver struct{}

// ModelRef implements ModelResolver.
func (StringResolver) ModelRef(model any) (string, bool) {
	s, ok := model.(string)
	return s, ok
}

// ResolveModel implements ModelResolver.
func (StringResolver) ResolveModel(ref string) (any, bool) {
	return ref, true
}

// Class tags of the core views.
const (
	classLine      = "LineView"
	classBox       = "BoxView"
	classEllipse   = "EllipseView"
	classPolygon   = "PolygonView"
	classPolyline  = "PolylineView"
	classPath      = "PathView"
	classFigure    = "FigureView"
	classText      = "TextView"
	classHTML      = "HtmlView"
	classImage     = "ImageView"
	classComposite = "CompositeView"
	classArrow     = "ArrowView"
	classDummy     = "DummyView"
)

// Factory returns an empty view of one class, ready for DecodeJSON.
type Factory func() View

var (
	classMu sync.RWMutex
	classes = make(map[string]Factory)
)

// Register adds a view class to the decoding table. Packages that define
// their own views call it from init, following the database/sql driver
// pattern.
//
// Register panics if factory is nil or the class is already registered.
func Register(class string, factory Factory) {
	classMu.Lock()
	defer classMu.Unlock()

	if factory == nil {
		panic("sceneview: Register factory is nil")
	}
	if _, dup := classes[class]; dup {
		panic("sceneview: Register called twice for " + class)
	}
	classes[class] = factory
}

// Classes returns the registered class tags in sorted order.
func Classes() []string {
	classMu.RLock()
	defer classMu.RUnlock()

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupClass(class string) (Factory, bool) {
	classMu.RLock()
	f, ok := classes[class]
	classMu.RUnlock()
	return f, ok
}

func init() {
	Register(classLine, func() View { return &Line{ShapeView: newShapeView()} })
	Register(classBox, func() View { return &Box{ShapeView: newShapeView()} })
	Register(classEllipse, func() View { return &Ellipse{ShapeView: newShapeView()} })
	Register(classPolygon, func() View { return &Polygon{ShapeView: newShapeView()} })
	Register(classPolyline, func() View { return &Polyline{Polygon: Polygon{ShapeView: newShapeView()}} })
	Register(classPath, func() View { return &PathView{pathShape: newPathShape()} })
	Register(classFigure, func() View { return &Figure{pathShape: newPathShape()} })
	Register(classText, func() View { return newEmptyText() })
	Register(classHTML, func() View { return &HTML{Base: newBase(), font: DefaultFont()} })
	Register(classImage, func() View { return &Image{Base: newBase()} })
	Register(classComposite, func() View { return NewComposite() })
	Register(classArrow, func() View { return newEmptyArrow() })
	Register(classDummy, func() View { return &Dummy{Base: newBase()} })
}

// Codec encodes views to JSON objects, decodes them back and computes
// incremental diffs. The zero value works and leaves models unresolved.
type Codec struct {
	// Resolver converts models to references. Nil drops the "model" member.
	Resolver ModelResolver

	shallow bool
}

// NewCodec returns a codec using r for model references.
func NewCodec(r ModelResolver) *Codec {
	return &Codec{Resolver: r}
}

// envelope returns the members shared by every view.
func (c *Codec) envelope(v View) Object {
	b := v.State()
	obj := Object{
		"type":  strconv.Itoa(int(b.flags)),
		"class": v.Class(),
	}
	if b.description != "" {
		obj["description"] = b.description
	}
	if ref, ok := c.modelRef(b.model); ok {
		obj["model"] = ref
	}
	return obj
}

func (c *Codec) modelRef(m any) (string, bool) {
	if m == nil || c == nil || c.Resolver == nil {
		return "", false
	}
	return c.Resolver.ModelRef(m)
}

// Encode returns the full JSON object for v.
func (c *Codec) Encode(v View) Object {
	obj := c.envelope(v)
	for k, val := range v.EncodeJSON(c) {
		obj[k] = val
	}
	return obj
}

// encodeShallow is Encode without the children of containers.
func (c *Codec) encodeShallow(v View) Object {
	sc := Codec{shallow: true}
	if c != nil {
		sc.Resolver = c.Resolver
	}
	return sc.Encode(v)
}

// Marshal encodes v as JSON text.
func (c *Codec) Marshal(v View) ([]byte, error) {
	if v == nil {
		return nil, ErrNilView
	}
	return json.Marshal(c.Encode(v))
}

// Decode builds a view from f. It returns nil when the class is missing or
// unknown; malformed members are skipped and keep their defaults.
func (c *Codec) Decode(f Fields) View {
	var class string
	if !f.String("class", &class) {
		Logger().Warn("sceneview: node without class dropped")
		return nil
	}
	factory, ok := lookupClass(class)
	if !ok {
		Logger().Warn("sceneview: unknown class dropped", "class", class)
		return nil
	}
	v := factory()
	c.decodeEnvelope(v.State(), f)
	v.DecodeJSON(c, f)
	return v
}

func (c *Codec) decodeEnvelope(b *Base, f Fields) {
	var flags int
	if f.Int("type", &flags) {
		b.flags = Flags(flags)
	}
	f.String("description", &b.description)
	var ref string
	if c != nil && c.Resolver != nil && f.String("model", &ref) {
		if m, ok := c.Resolver.ResolveModel(ref); ok {
			b.model = m
		}
	}
}

// DecodeRaw decodes one raw JSON node. Non-objects yield nil.
func (c *Codec) DecodeRaw(raw json.RawMessage) View {
	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return nil
	}
	return c.Decode(f)
}

// Unmarshal decodes JSON text into a view tree.
func (c *Codec) Unmarshal(data []byte) (View, error) {
	f, err := ParseFields(data)
	if err != nil {
		return nil, err
	}
	v := c.Decode(f)
	if v == nil {
		var class string
		f.String("class", &class)
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	return v, nil
}
