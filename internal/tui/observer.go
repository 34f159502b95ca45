package tui

import (
	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/store"
)

// ChannelObserver forwards store notifications to a channel for Bubble Tea.
type ChannelObserver struct {
	ch     chan domain.Kind
	cancel []func()
}

// NewChannelObserver subscribes to every handle.
func NewChannelObserver(handles ...store.Handle) *ChannelObserver {
	o := &ChannelObserver{ch: make(chan domain.Kind, 64)}
	for _, h := range handles {
		kind := h.Kind()
		o.cancel = append(o.cancel, h.Subscribe(func(store.View) { o.notify(kind) }))
	}
	return o
}

// C returns the notification channel
func (o *ChannelObserver) C() <-chan domain.Kind { return o.ch }

// notify sends without blocking; fetch commands report completion on their own
func (o *ChannelObserver) notify(kind domain.Kind) {
	select {
	case o.ch <- kind:
	default:
	}
}

// Close unsubscribes from every handle.
func (o *ChannelObserver) Close() {
	for _, c := range o.cancel {
		c()
	}
	o.cancel = nil
}
