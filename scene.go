package gizmo

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events and gesture results are forwarded
// to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
	EmitGesture(event GestureEvent)
}

// InteractionEvent carries raw pointer interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// GestureKind identifies which engine produced a GestureEvent.
type GestureKind uint8

const (
	GestureResize    GestureKind = iota // X, Y, Width, Height valid
	GestureRotate                       // Delta valid (degrees)
	GestureTranslate                    // DeltaX, DeltaY valid
	GestureSort                         // From, To valid
	GestureEnd                          // the engine's gesture finished
)

// GestureEvent carries the result of one engine step for the ECS bridge.
// EntityID is the EntityID of the node the engine manipulates.
type GestureEvent struct {
	Kind     GestureKind
	EntityID uint32
	Handle   Handle
	X, Y     float64
	Width    float64
	Height   float64
	Delta    float64
	DeltaX   float64
	DeltaY   float64
	From, To int
}

// Updater is anything advanced once per frame by the scene.
type Updater interface {
	Update(dt float64)
}

type updaterEntry struct {
	id uint32
	u  Updater
}

type resizeHandler struct {
	id uint32
	fn func(w, h int)
}

// Scene is the top-level object that owns the node tree, input state, and
// the engines subscribed to it.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before the tree is drawn when its alpha
	// is non-zero.
	ClearColor Color

	// Viewport size as last reported by Layout.
	width, height int

	updaters     []updaterEntry
	resizeFns    []resizeHandler
	nextListener uint32

	// Input state
	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root", 0, 0)
	return &Scene{root: root}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update polls mouse and touch input, then advances the scene by one tick.
// Call it from ebiten.Game.Update.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.advance(dt)
}

// Tick advances the scene by dt seconds without polling any device: at most
// one injected pointer event is consumed, then updaters and node OnUpdate
// callbacks run. Used by headless hosts and tests.
func (s *Scene) Tick(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput(0)
	s.advance(dt)
}

func (s *Scene) advance(dt float64) {
	for _, e := range append([]updaterEntry(nil), s.updaters...) {
		e.u.Update(dt)
	}
	updateNodes(s.root, dt)
}

func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, c := range n.children {
		updateNodes(c, dt)
	}
}

// AddUpdater registers u to be advanced every tick. The returned function
// unregisters it.
func (s *Scene) AddUpdater(u Updater) (remove func()) {
	s.nextListener++
	id := s.nextListener
	s.updaters = append(s.updaters, updaterEntry{id: id, u: u})
	return func() {
		for i, e := range s.updaters {
			if e.id == id {
				s.updaters = append(s.updaters[:i], s.updaters[i+1:]...)
				return
			}
		}
	}
}

// OnResize registers fn to run whenever the viewport size changes. The
// returned function unregisters it.
func (s *Scene) OnResize(fn func(w, h int)) (remove func()) {
	s.nextListener++
	id := s.nextListener
	s.resizeFns = append(s.resizeFns, resizeHandler{id: id, fn: fn})
	return func() {
		for i, h := range s.resizeFns {
			if h.id == id {
				s.resizeFns = append(s.resizeFns[:i], s.resizeFns[i+1:]...)
				return
			}
		}
	}
}

// Layout records the viewport size and notifies resize listeners when it
// changed. Call it from ebiten.Game.Layout.
func (s *Scene) Layout(w, h int) {
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.root.Width, s.root.Height = float64(w), float64(h)
	for _, r := range append([]resizeHandler(nil), s.resizeFns...) {
		r.fn(w, h)
	}
}

// Size returns the viewport size last passed to Layout.
func (s *Scene) Size() (w, h int) {
	return s.width, s.height
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Scene) emitGesture(e GestureEvent) {
	if s == nil || s.store == nil {
		return
	}
	s.store.EmitGesture(e)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and engine
// state transitions are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
