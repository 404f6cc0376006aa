// Package events is a small in-process publish/subscribe bus for galaxy
// change notifications.
package events

import (
	"context"
	"log/slog"
	"sync"
)

type Name string

const (
	PlanetAdded   Name = "planet-added"
	PlanetUpdated Name = "planet-updated"
	PlanetRemoved Name = "planet-removed"
	GalaxyCleared Name = "galaxy-cleared"
)

// Event carries the planet name for single-planet changes; it is empty for
// GalaxyCleared.
type Event struct {
	Name   Name
	Planet string
}

type Handler func(ctx context.Context, event Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously, in subscription order.
type Bus struct {
	mutex    sync.RWMutex
	nextID   uint64
	handlers map[Name][]subscription
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Name][]subscription)}
}

// Subscribe registers handler for name and returns a function that removes it.
func (b *Bus) Subscribe(name Name, handler Handler) func() {
	b.mutex.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], subscription{id: id, handler: handler})
	b.mutex.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(name, id) })
	}
}

// SubscribeAll registers handler for every planet change event.
func (b *Bus) SubscribeAll(handler Handler) func() {
	names := []Name{PlanetAdded, PlanetUpdated, PlanetRemoved, GalaxyCleared}
	unsubscribers := make([]func(), 0, len(names))
	for _, name := range names {
		unsubscribers = append(unsubscribers, b.Subscribe(name, handler))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func (b *Bus) remove(name Name, id uint64) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	subs := b.handlers[name]
	for i, sub := range subs {
		if sub.id == id {
			// copy so a Publish iterating the old slice is unaffected
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.handlers[name] = next
			return
		}
	}
}

// Publish calls every handler subscribed to event.Name. Handlers may
// subscribe or unsubscribe while being called.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mutex.RLock()
	subs := b.handlers[event.Name]
	b.mutex.RUnlock()

	slog.With("component", "events", "operation", "publish").Debug("Publishing event",
		"event", event.Name, "planet", event.Planet, "handlers", len(subs))

	for _, sub := range subs {
		sub.handler(ctx, event)
	}
}

func (b *Bus) HandlerCount(name Name) int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.handlers[name])
}
