// Package ecs bridges gizmo's pointer and gesture events into a [Donburi]
// world as typed events.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	ecs.GestureEventType.Subscribe(world, onGesture)
//	// each frame, after scene.Update:
//	ecs.ProcessEvents(world)
//
// Set Node.EntityID on the nodes whose events should be forwarded; raw
// pointer events for nodes with a zero EntityID are dropped.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
