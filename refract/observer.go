package refract

import "sync/atomic"

// Observer is told when the scene has finished loading and drawn every image once.
type Observer interface {
	SetReady(ready bool)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ready bool)

func (f ObserverFunc) SetReady(ready bool) {
	f(ready)
}

// onceObserver forwards the first true value and drops everything after it.
type onceObserver struct {
	next  Observer
	fired atomic.Bool
}

// Once wraps o so it sees at most one SetReady(true). A nil o yields an Observer that does
// nothing.
func Once(o Observer) Observer {
	if _, ok := o.(*onceObserver); ok {
		return o
	}
	return &onceObserver{next: o}
}

func (o *onceObserver) SetReady(ready bool) {
	if !ready || o.next == nil {
		return
	}
	if o.fired.CompareAndSwap(false, true) {
		o.next.SetReady(true)
	}
}
