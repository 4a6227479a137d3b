// Package events carries notifications from the scan pipeline to whatever presents it.
package events

import (
	EventBus "github.com/asaskevich/EventBus"
)

// Topics published by the pipeline. Handlers receive:
//   - TopicScanOutcome:     checker.Outcome
//   - TopicHistoryChanged:  []domain.HistoryEntry (newest first)
//   - TopicSettingsChanged: domain.Settings
const (
	TopicScanOutcome     = "scan:outcome"
	TopicHistoryChanged  = "history:changed"
	TopicSettingsChanged = "settings:changed"
)

// Publisher is the publishing half of EventBus.Bus.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

// NewBus returns a synchronous event bus; subscribers run on the publisher's goroutine.
func NewBus() EventBus.Bus {
	return EventBus.New()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(string, ...interface{}) {}

// OrNop returns p, or Nop when p is nil.
func OrNop(p Publisher) Publisher {
	if p == nil {
		return Nop{}
	}
	return p
}
