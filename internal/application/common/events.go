package common

import (
	"sync"

	"github.com/andrescamacho/spacemining-go/internal/domain/game"
)

// EventPublisher fans game events out to observers. Publish must not block
// the calling handler.
type EventPublisher interface {
	Publish(event game.Event)
}

// NoOpPublisher drops every event
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(event game.Event) {}

// RecordingPublisher keeps published events in memory (tests, CLI dry runs)
type RecordingPublisher struct {
	mu     sync.Mutex
	events []game.Event
}

func (p *RecordingPublisher) Publish(event game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns a copy of every recorded event in publish order
func (p *RecordingPublisher) Events() []game.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]game.Event(nil), p.events...)
}

// Names returns the names of every recorded event in publish order
func (p *RecordingPublisher) Names() []string {
	events := p.Events()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}

// MultiPublisher forwards every event to each of its publishers
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(event game.Event) {
	for _, p := range m {
		p.Publish(event)
	}
}
