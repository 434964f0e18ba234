// Package ecs provides ECS adapters for gizmo.
package ecs

import (
	"github.com/phanxgames/gizmo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for raw pointer events.
var InteractionEventType = events.NewEventType[gizmo.InteractionEvent]()

// GestureEventType is the Donburi event type for engine results: resize
// boxes, rotate and drag deltas, drag-sort moves and gesture ends.
var GestureEventType = events.NewEventType[gizmo.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued on InteractionEventType and GestureEventType and are
// delivered by their ProcessEvents.
func NewDonburiStore(world donburi.World) gizmo.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event gizmo.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

func (s *donburiStore) EmitGesture(event gizmo.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}

// ProcessEvents delivers every queued interaction and gesture event to their
// subscribers, interaction events first.
func ProcessEvents(world donburi.World) {
	InteractionEventType.ProcessEvents(world)
	GestureEventType.ProcessEvents(world)
}
