package dataview

// Subscription is returned by Subscribe and cancels the handler.
type Subscription struct {
	cancel func()
}

// Unsubscribe detaches the handler. Calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

type handlerList[F any] struct {
	nextId   int
	handlers []handlerEntry[F]
}

type handlerEntry[F any] struct {
	id int
	f  F
}

func (l *handlerList[F]) subscribe(f F) *Subscription {
	l.nextId++
	id := l.nextId
	l.handlers = append(l.handlers, handlerEntry[F]{id: id, f: f})
	return &Subscription{cancel: func() {
		for i, h := range l.handlers {
			if h.id == id {
				// copy on write, a Notify in progress keeps its snapshot
				handlers := make([]handlerEntry[F], 0, len(l.handlers)-1)
				handlers = append(handlers, l.handlers[:i]...)
				l.handlers = append(handlers, l.handlers[i+1:]...)
				return
			}
		}
	}}
}

func (l *handlerList[F]) snapshot() []handlerEntry[F] {
	return l.handlers
}

// Event is a synchronous notification channel. Handlers run in
// subscription order on the goroutine that triggered the event.
type Event[T any] struct {
	list handlerList[func(T)]
}

func NewEvent[T any]() *Event[T] {
	return &Event[T]{}
}

func (e *Event[T]) Subscribe(handler func(args T)) *Subscription {
	return e.list.subscribe(handler)
}

func (e *Event[T]) Notify(args T) {
	for _, h := range e.list.snapshot() {
		h.f(args)
	}
}

func (e *Event[T]) UnsubscribeAll() {
	e.list.handlers = nil
}

// Len returns the number of subscribed handlers.
func (e *Event[T]) Len() int {
	return len(e.list.handlers)
}

// CancelableEvent is an Event whose handlers may veto the action that
// triggered it by returning false.
type CancelableEvent[T any] struct {
	list handlerList[func(T) bool]
}

func NewCancelableEvent[T any]() *CancelableEvent[T] {
	return &CancelableEvent[T]{}
}

func (e *CancelableEvent[T]) Subscribe(handler func(args T) bool) *Subscription {
	return e.list.subscribe(handler)
}

// Notify runs every handler and reports whether the action may proceed.
func (e *CancelableEvent[T]) Notify(args T) bool {
	proceed := true
	for _, h := range e.list.snapshot() {
		if !h.f(args) {
			proceed = false
		}
	}
	return proceed
}

func (e *CancelableEvent[T]) UnsubscribeAll() {
	e.list.handlers = nil
}

func (e *CancelableEvent[T]) Len() int {
	return len(e.list.handlers)
}
