// Package gizmo provides pointer-driven interaction primitives for 2D scenes
// drawn with [Ebitengine]: drag, rotation-aware resize with eight handles,
// rotate, drag-to-reorder lists, and a loading overlay.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := gizmo.NewScene()
//	// ... add nodes, subscribe engines ...
//	gizmo.Run(scene, gizmo.RunConfig{
//		Title: "Editor", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update], [Scene.Draw] and [Scene.Layout] directly.
//
// # Scene graph
//
// Every element is a [Node] with a layout box (X, Y, Width, Height), a
// rotation in degrees about its center, and a visual offset that does not
// affect layout. A node with a [FlowLayout] stacks its children and can be
// scrolled through [Node.ScrollTop]. [Node.Bounds] returns the world-space
// bounding rectangle the engines measure against.
//
// # Engines
//
// Each engine is created from a config struct holding an enable flag, the
// element it manipulates, and host callbacks, then bound to nodes with
// Subscribe:
//
//	r := gizmo.NewResizer(gizmo.ResizeConfig{
//		Resizable: true,
//		Element:   box,
//		OnMove: func(pos, size gizmo.Vec2) {
//			box.SetBounds(pos.X, pos.Y, size.X, size.Y)
//		},
//	})
//	r.Subscribe(scene, handles)
//
// Engines never read devices themselves. Their Begin, Move and End methods
// accept plain [PointerEvent] values, so they can be driven without a window.
//
// # Input
//
// The scene hit-tests interactable nodes in reverse painter order and
// dispatches pointer down, up, move, cancel and click events. Events bubble
// from the hit node to its ancestors until a callback calls
// [PointerContext.StopPropagation]. Scene-level handlers registered with
// [Scene.OnPointerMove] and friends run before node callbacks and can be
// removed through their [CallbackHandle].
//
// For tests and automation, [Scene.InjectPress], [Scene.InjectMove],
// [Scene.InjectRelease] and [Scene.InjectCancel] queue synthetic events, and
// [LoadTestScript] replays a JSON gesture script. [Scene.Tick] advances the
// scene without touching any input device.
//
// # Configuration
//
// Tunables such as the reorder animation length and the drag-sort colors
// live in [Settings], which can be loaded from TOML with [LoadSettings].
//
// # ECS
//
// The gizmo/ecs module forwards interaction and gesture events into a
// [Donburi] world. See [Scene.SetEntityStore].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package gizmo
