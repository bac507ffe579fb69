package binding

import (
	"errors"
	"fmt"
)

// ErrFieldNotFound is returned when a field name does not resolve on the
// model type. Hitting it at runtime means a misconfigured binding table,
// which is caught at construction, so callers normally never see it.
var ErrFieldNotFound = errors.New("binding: field not found")

type fieldAccess[M any] struct {
	get func(*M) any
	set func(*M, any) error
}

// Accessor is an explicit get/set table for one model type: field name to a
// pair of typed closures. It replaces reflective property lookup with a
// table the compiler checks, while keeping the binding layer generic over
// model types.
type Accessor[M any] struct {
	fields map[string]fieldAccess[M]
	order  []string
}

func NewAccessor[M any]() *Accessor[M] {
	return &Accessor[M]{fields: make(map[string]fieldAccess[M])}
}

// Field registers an accessor pair for name. Registering the same name twice
// panics; tables are built once at package init and a duplicate is a
// programming error.
func Field[M, T any](a *Accessor[M], name string, get func(*M) T, set func(*M, T)) {
	if _, dup := a.fields[name]; dup {
		panic(fmt.Sprintf("binding: field %q registered twice", name))
	}
	a.fields[name] = fieldAccess[M]{
		get: func(m *M) any { return get(m) },
		set: func(m *M, v any) error {
			tv, ok := v.(T)
			if !ok {
				return fmt.Errorf("binding: field %q: cannot assign %T", name, v)
			}
			set(m, tv)
			return nil
		},
	}
	a.order = append(a.order, name)
}

// Has reports whether name is a registered field.
func (a *Accessor[M]) Has(name string) bool {
	_, ok := a.fields[name]
	return ok
}

// Fields returns the registered field names in registration order.
func (a *Accessor[M]) Fields() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Get reads the named field from m.
func (a *Accessor[M]) Get(m *M, name string) (any, error) {
	f, ok := a.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return f.get(m), nil
}

// Set writes v into the named field of m through the model's own setter,
// so the model's change notification fires as usual.
func (a *Accessor[M]) Set(m *M, name string, v any) error {
	f, ok := a.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return f.set(m, v)
}

// CopyInto writes every registered field of src into dst, in registration
// order. Each field is copied shallowly. This is the snapshot primitive for
// edit transactions: dst's setters run, so copying a backup onto a live
// model replays the normal notification cascade.
func (a *Accessor[M]) CopyInto(dst, src *M) {
	for _, name := range a.order {
		f := a.fields[name]
		// set cannot fail here: the value came from the matching getter.
		_ = f.set(dst, f.get(src))
	}
}
