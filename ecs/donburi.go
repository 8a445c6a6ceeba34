// Package ecs provides ECS adapters for spotlight.
package ecs

import (
	"github.com/phanxgames/spotlight"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SelectionEventType is the Donburi event type for region selections.
var SelectionEventType = events.NewEventType[spotlight.SelectionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Selections are published to SelectionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) spotlight.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitSelection(event spotlight.SelectionEvent) {
	SelectionEventType.Publish(s.world, event)
}
