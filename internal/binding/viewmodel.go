package binding

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Bindings declares which view-model property projects which model field:
// property name -> model field name. Declared once per view-model type.
type Bindings map[string]string

// Dependents lists, per property, the other properties that must be
// re-announced when it changes ("also notify"). Declared once per view-model
// type at package level and shared read-only across instances. A missing
// entry means no dependents. The graph is assumed acyclic; a cycle would
// cascade forever, so dependency tables must not point back at their key.
type Dependents map[string][]string

// Config wires a ViewModel at construction.
type Config struct {
	Bindings   Bindings
	Dependents Dependents
	Logger     *zap.Logger
}

// modelPtr constrains P to be a pointer to the model type that also carries
// a change notification stream, i.e. embeds Emitter.
type modelPtr[M any] interface {
	*M
	Notifier
}

// ViewModel synchronizes a UI-facing property surface with an underlying
// model. Writes go through SetProperty into the model; model notifications
// come back, are translated to property names via the binding table and
// cascaded to dependent properties. BeginEdit/CancelEdit/EndEdit bracket a
// set of live edits with a snapshot for rollback.
//
// A ViewModel is single-threaded: construct it and call it from the UI loop
// only. The binding tables are immutable after construction.
type ViewModel[M any] struct {
	model      *M
	accessor   *Accessor[M]
	byField    map[string]string // model field -> property
	dependents Dependents
	backup     *M
	listeners  []Handler
	hook       func(property string)
	log        *zap.Logger
}

// New builds a ViewModel over model. It inverts cfg.Bindings into the
// field-to-property table and subscribes to the model's notification stream.
// A binding that names an unregistered field, or two properties bound to the
// same field, is a configuration error and fails construction.
func New[M any, P modelPtr[M]](model P, accessor *Accessor[M], cfg Config) (*ViewModel[M], error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	byField := make(map[string]string, len(cfg.Bindings))
	for property, field := range cfg.Bindings {
		if !accessor.Has(field) {
			return nil, fmt.Errorf("binding: property %q bound to unknown field %q", property, field)
		}
		if prev, dup := byField[field]; dup {
			return nil, fmt.Errorf("binding: field %q bound to both %q and %q", field, prev, property)
		}
		byField[field] = property
	}

	vm := &ViewModel[M]{
		model:      (*M)(model),
		accessor:   accessor,
		byField:    byField,
		dependents: cfg.Dependents,
		log:        log,
	}
	model.Subscribe(vm.modelChanged)
	return vm, nil
}

// Model returns the live model.
func (vm *ViewModel[M]) Model() *M {
	return vm.model
}

// OnPropertyChanged subscribes h to this view model's own notifications.
func (vm *ViewModel[M]) OnPropertyChanged(h Handler) {
	vm.listeners = append(vm.listeners, h)
}

// SetHook installs a callback invoked after every completed notification
// cascade, with the bound property that started it. Derived view models use
// it to recompute cached values.
func (vm *ViewModel[M]) SetHook(fn func(property string)) {
	vm.hook = fn
}

// SetProperty writes value into the named model field and reads it back.
// It returns whether the readback equals the attempted value, i.e. whether
// the write round-tripped; it does not report whether the value differed
// from before. A failed write (unknown field, wrong type) returns false.
func (vm *ViewModel[M]) SetProperty(field string, value any) bool {
	if err := vm.accessor.Set(vm.model, field, value); err != nil {
		vm.log.Error("set property failed", zap.String("field", field), zap.Error(err))
		return false
	}
	got, err := vm.accessor.Get(vm.model, field)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(got, value)
}

// BeginEdit snapshots the model for a later CancelEdit. Idempotent while a
// snapshot is pending: a second call keeps the first snapshot.
func (vm *ViewModel[M]) BeginEdit() {
	if vm.backup != nil {
		return
	}
	backup := new(M)
	vm.accessor.CopyInto(backup, vm.model)
	vm.backup = backup
}

// CancelEdit copies the snapshot back onto the live model, field by field,
// through the model's normal setters, so every restored field raises the
// usual cascade. Without a pending BeginEdit it is a warn-only no-op; UI
// lifecycle ordering is not strict enough to make this an error.
func (vm *ViewModel[M]) CancelEdit() {
	if vm.backup == nil {
		vm.log.Warn("cancel edit without a pending begin")
		return
	}
	backup := vm.backup
	vm.backup = nil
	vm.accessor.CopyInto(vm.model, backup)
}

// EndEdit commits by discarding the snapshot; edits were already applied
// live. Warn-only no-op without a pending BeginEdit.
func (vm *ViewModel[M]) EndEdit() {
	if vm.backup == nil {
		vm.log.Warn("end edit without a pending begin")
		return
	}
	vm.backup = nil
}

// Editing reports whether an edit transaction is open.
func (vm *ViewModel[M]) Editing() bool {
	return vm.backup != nil
}

func (vm *ViewModel[M]) modelChanged(field string) {
	property, bound := vm.byField[field]
	if !bound {
		// Untracked model field; not ours to announce.
		return
	}
	vm.raise(property)
	for _, dep := range vm.dependents[property] {
		vm.raise(dep)
	}
	if vm.hook != nil {
		vm.hook(property)
	}
}

func (vm *ViewModel[M]) raise(property string) {
	for _, h := range vm.listeners {
		h(property)
	}
}
