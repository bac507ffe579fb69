package binding

// Handler receives the name of a model field that was just written.
type Handler func(field string)

// Emitter is embedded in model types to give them a change notification
// stream. Setters call Notify after every write; whether the value actually
// differed is not the emitter's concern.
type Emitter struct {
	handlers []Handler
}

// Subscribe registers a handler for the lifetime of the model.
// There is no unsubscribe; models outlive their observers here.
func (e *Emitter) Subscribe(h Handler) {
	e.handlers = append(e.handlers, h)
}

// Notify tells every subscriber that field was written.
func (e *Emitter) Notify(field string) {
	for _, h := range e.handlers {
		h(field)
	}
}

// Notifier is the side of Emitter a view model needs.
type Notifier interface {
	Subscribe(Handler)
}
