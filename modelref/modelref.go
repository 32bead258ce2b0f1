// Package modelref assigns typeid references to scene models so that
// encoded scenes can name the domain objects behind their views.
//
// A Registry implements sceneview.ModelResolver:
//
//	reg := modelref.New("node")
//	codec := sceneview.NewCodec(reg)
//	data, err := codec.Marshal(root) // models become "node_01h..." references
package modelref

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.jetify.com/typeid/v2"

	"github.com/gogpu/sceneview"
)

// DefaultPrefix is the typeid prefix used by New("").
const DefaultPrefix = "model"

var (
	// ErrPrefix is returned when a reference carries another prefix.
	ErrPrefix = errors.New("modelref: wrong prefix")

	// ErrBound is returned by Bind when the reference or the model is
	// already bound to something else.
	ErrBound = errors.New("modelref: already bound")

	// ErrNotComparable is returned for models that cannot be map keys.
	ErrNotComparable = errors.New("modelref: model is not comparable")
)

// Registry is a two-way map between models and typeid references. It is
// safe for concurrent use.
type Registry struct {
	prefix string

	mu     sync.RWMutex
	refs   map[any]string
	models map[string]any
}

var _ sceneview.ModelResolver = (*Registry)(nil)

// New returns an empty registry generating references with prefix. It
// panics if prefix is not a valid typeid prefix.
func New(prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	typeid.MustGenerate(prefix)
	return &Registry{
		prefix: prefix,
		refs:   make(map[any]string),
		models: make(map[string]any),
	}
}

// Prefix returns the typeid prefix of generated references.
func (r *Registry) Prefix() string { return r.prefix }

// Len returns the number of bound models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.refs)
}

func hashable(model any) bool {
	return model != nil && reflect.TypeOf(model).Comparable()
}

// Register returns the reference of model, generating one on first use.
func (r *Registry) Register(model any) (string, error) {
	if !hashable(model) {
		return "", fmt.Errorf("%w: %T", ErrNotComparable, model)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ref, ok := r.refs[model]; ok {
		return ref, nil
	}
	ref := typeid.MustGenerate(r.prefix).String()
	r.refs[model] = ref
	r.models[ref] = model
	return ref, nil
}

// Bind associates an existing reference with model, as when loading a
// scene saved by another process. Binding the same pair twice is a no-op.
func (r *Registry) Bind(ref string, model any) error {
	if err := Validate(ref, r.prefix); err != nil {
		return err
	}
	if !hashable(model) {
		return fmt.Errorf("%w: %T", ErrNotComparable, model)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.models[ref]; ok && old != model {
		return fmt.Errorf("%w: reference %s", ErrBound, ref)
	}
	if old, ok := r.refs[model]; ok && old != ref {
		return fmt.Errorf("%w: model %v has reference %s", ErrBound, model, old)
	}
	r.refs[model] = ref
	r.models[ref] = model
	return nil
}

// Forget removes model and its reference.
func (r *Registry) Forget(model any) {
	if !hashable(model) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ref, ok := r.refs[model]; ok {
		delete(r.refs, model)
		delete(r.models, ref)
	}
}

// ModelRef implements sceneview.ModelResolver. Unknown models are
// registered; models that cannot be registered have no reference.
func (r *Registry) ModelRef(model any) (string, bool) {
	ref, err := r.Register(model)
	if err != nil {
		sceneview.Logger().Debug("modelref: model without reference", "err", err)
		return "", false
	}
	return ref, true
}

// ResolveModel implements sceneview.ModelResolver.
func (r *Registry) ResolveModel(ref string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[ref]
	return m, ok
}

// Validate checks that ref is a typeid with the given prefix.
func Validate(ref, prefix string) error {
	parsed, err := typeid.Parse(ref)
	if err != nil {
		return fmt.Errorf("modelref: invalid reference %q: %w", ref, err)
	}
	if parsed.Prefix() != prefix {
		return fmt.Errorf("%w: want %q, got %q in %q", ErrPrefix, prefix, parsed.Prefix(), ref)
	}
	return nil
}
