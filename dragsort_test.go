package gizmo

import "testing"

// sortFixture is a list container at (10, 20), 200 wide, with five 50px
// rows stacked by a column flow layout.
type sortFixture struct {
	root *Node
	list *Node
	rows []*Node
	ds   *DragSort[string]
	got  [][]string
}

func newSortFixture(t *testing.T, height float64) *sortFixture {
	t.Helper()
	f := &sortFixture{root: NewContainer("root", 800, 800)}
	f.list = NewContainer("list", 200, height)
	f.list.SetPosition(10, 20)
	f.list.Flow = &FlowLayout{}
	f.root.AddChild(f.list)
	data := []string{"a", "b", "c", "d", "e"}
	for _, name := range data {
		row := NewBox(name, 200, 50, ColorWhite)
		f.rows = append(f.rows, row)
		f.list.AddChild(row)
	}
	f.ds = NewDragSort(f.list, data, DragSortConfig[string]{
		Sortable: true,
		OnChange: func(d []string) { f.got = append(f.got, d) },
	})
	return f
}

// rowCenter is the world position of the middle of row i as laid out now.
func (f *sortFixture) rowCenter(i int) PointerEvent {
	c := f.list.ChildAt(i).LayoutBounds().Center()
	return PointerEvent{X: c.X, Y: c.Y, Target: f.list.ChildAt(i)}
}

func assertStrings(t *testing.T, label string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", label, got, want)
		}
	}
}

func TestDragSortForward(t *testing.T) {
	f := newSortFixture(t, 300)
	f.ds.Begin(f.rowCenter(2))
	if !f.ds.Dragging() || f.ds.DragIndex() != 2 {
		t.Fatalf("dragging=%v index=%d", f.ds.Dragging(), f.ds.DragIndex())
	}
	f.ds.Move(f.rowCenter(4))

	if f.ds.DragIndex() != 4 {
		t.Errorf("DragIndex = %d, want 4", f.ds.DragIndex())
	}
	assertOrder(t, f.list, "a", "b", "d", "e", "c")
	assertStrings(t, "Data", f.ds.Data(), "a", "b", "d", "e", "c")
	if len(f.got) != 1 {
		t.Fatalf("OnChange calls = %d, want 1", len(f.got))
	}
	assertStrings(t, "OnChange", f.got[0], "a", "b", "d", "e", "c")

	// OnChange gets a copy.
	f.got[0][0] = "zzz"
	if f.ds.Data()[0] != "a" {
		t.Error("OnChange slice aliases the internal data")
	}
}

func TestDragSortBackward(t *testing.T) {
	f := newSortFixture(t, 300)
	f.ds.Begin(f.rowCenter(4))
	f.ds.Move(f.rowCenter(1))

	if f.ds.DragIndex() != 1 {
		t.Errorf("DragIndex = %d, want 1", f.ds.DragIndex())
	}
	assertOrder(t, f.list, "a", "e", "b", "c", "d")
	assertStrings(t, "Data", f.ds.Data(), "a", "e", "b", "c", "d")
}

func TestDragSortStepwise(t *testing.T) {
	f := newSortFixture(t, 300)
	f.ds.Begin(f.rowCenter(0))
	for i := 1; i < 5; i++ {
		f.ds.Move(f.rowCenter(i))
		if f.ds.DragIndex() != i {
			t.Fatalf("after step %d DragIndex = %d", i, f.ds.DragIndex())
		}
	}
	assertOrder(t, f.list, "b", "c", "d", "e", "a")
	assertStrings(t, "Data", f.ds.Data(), "b", "c", "d", "e", "a")
	if len(f.got) != 4 {
		t.Errorf("OnChange calls = %d, want 4", len(f.got))
	}

	// Hovering the dragged row itself changes nothing.
	f.ds.Move(f.rowCenter(4))
	if len(f.got) != 4 {
		t.Error("hovering the dragged row reordered")
	}
}

func TestDragSortIgnoresSharedEdges(t *testing.T) {
	f := newSortFixture(t, 300)
	f.ds.Begin(f.rowCenter(0))
	// y=70 is the edge between rows 0 and 1.
	f.ds.Move(PointerEvent{X: 100, Y: 70})
	if f.ds.DragIndex() != 0 || len(f.got) != 0 {
		t.Errorf("edge point reordered: index=%d", f.ds.DragIndex())
	}
}

func TestDragSortCloneAndActiveStyle(t *testing.T) {
	f := newSortFixture(t, 300)
	row := f.rows[1]
	f.ds.Begin(f.rowCenter(1))

	clone := f.ds.CloneNode()
	if clone == nil || clone.Parent != f.root {
		t.Fatal("clone not attached to the tree root")
	}
	settings := DefaultSettings()
	if !clone.Fixed || clone.Alpha != settings.CloneAlpha || clone.ZIndex != settings.CloneZIndex {
		t.Errorf("clone = %+v", clone)
	}
	if clone.X != 10 || clone.Y != 70 {
		t.Errorf("clone at (%v, %v), want (10, 70)", clone.X, clone.Y)
	}
	if row.Background != parseColorOr(settings.ActiveColor, ColorNone) {
		t.Errorf("active Background = %+v", row.Background)
	}

	f.ds.Move(PointerEvent{X: 115, Y: 100})
	if clone.X != 15 || clone.Y != 75 {
		t.Errorf("clone followed to (%v, %v), want (15, 75)", clone.X, clone.Y)
	}

	f.ds.End()
	if !clone.IsDisposed() || f.ds.CloneNode() != nil {
		t.Error("clone not disposed")
	}
	if row.Background != ColorNone {
		t.Errorf("Background not restored: %+v", row.Background)
	}
	if f.ds.Dragging() || f.ds.DragIndex() != -1 {
		t.Error("still dragging after End")
	}
}

func TestDragSortIgnoredPresses(t *testing.T) {
	tests := []struct {
		name string
		ev   func(f *sortFixture) PointerEvent
	}{
		{"container", func(f *sortFixture) PointerEvent {
			return PointerEvent{X: 50, Y: 30, Target: f.list}
		}},
		{"nothing", func(f *sortFixture) PointerEvent {
			return PointerEvent{X: 50, Y: 30}
		}},
		{"right button", func(f *sortFixture) PointerEvent {
			e := f.rowCenter(1)
			e.Button = MouseButtonRight
			return e
		}},
		{"outside container", func(f *sortFixture) PointerEvent {
			return PointerEvent{X: 500, Y: 500, Target: NewBox("stray", 5, 5, ColorWhite)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSortFixture(t, 300)
			f.ds.Begin(tt.ev(f))
			if f.ds.Dragging() {
				t.Error("press started a drag")
			}
		})
	}
}

func TestDragSortNestedTarget(t *testing.T) {
	f := newSortFixture(t, 300)
	inner := NewContainer("inner", 10, 10)
	leaf := NewBox("leaf", 5, 5, ColorWhite)
	inner.AddChild(leaf)
	f.rows[3].AddChild(inner)

	e := f.rowCenter(3)
	e.Target = leaf
	f.ds.Begin(e)
	if !f.ds.Dragging() || f.ds.DragIndex() != 3 {
		t.Errorf("nested press: dragging=%v index=%d", f.ds.Dragging(), f.ds.DragIndex())
	}
}

func TestDragSortBoundedAncestorWalk(t *testing.T) {
	f := newSortFixture(t, 300)
	n := f.rows[2]
	for i := 0; i < maxAncestorDepth+5; i++ {
		c := NewContainer("deep", 1, 1)
		n.AddChild(c)
		n = c
	}
	e := f.rowCenter(2)
	e.Target = n
	f.ds.Begin(e)
	if f.ds.Dragging() {
		t.Error("press nested beyond the walk limit started a drag")
	}
}

func TestDragSortAutoScroll(t *testing.T) {
	f := newSortFixture(t, 150) // bottom edge at y=170, max scroll 100
	f.ds.Begin(f.rowCenter(0))

	f.ds.Move(PointerEvent{X: 100, Y: 200})
	if up, down := f.ds.AutoScrolling(); up || !down {
		t.Fatalf("AutoScrolling = %v, %v, want down only", up, down)
	}
	f.ds.Update(1.0 / 60)
	if f.list.ScrollTop != 30 {
		t.Errorf("ScrollTop = %v, want 30", f.list.ScrollTop)
	}
	for i := 0; i < 4; i++ {
		f.ds.Update(1.0 / 60)
	}
	if f.list.ScrollTop != 100 {
		t.Errorf("ScrollTop = %v, want 100", f.list.ScrollTop)
	}
	if _, down := f.ds.AutoScrolling(); down {
		t.Error("down timer still running at the bottom")
	}

	// Moving above the top edge switches direction.
	f.ds.Move(PointerEvent{X: 100, Y: 200})
	f.ds.Move(PointerEvent{X: 100, Y: 0})
	if up, down := f.ds.AutoScrolling(); !up || down {
		t.Fatalf("AutoScrolling = %v, %v, want up only", up, down)
	}
	f.ds.Update(1.0 / 60)
	if f.list.ScrollTop != 80 {
		t.Errorf("ScrollTop = %v, want 80", f.list.ScrollTop)
	}
	// Rect cache follows the scroll.
	if got := f.ds.childRects[0].Y; got != 20-80 {
		t.Errorf("cached row 0 y = %v, want %v", got, 20-80)
	}

	// Back inside the band, both stop.
	f.ds.Move(PointerEvent{X: 100, Y: 100})
	if up, down := f.ds.AutoScrolling(); up || down {
		t.Errorf("AutoScrolling = %v, %v inside the container", up, down)
	}
}

func TestDragSortFlipAnimation(t *testing.T) {
	f := newSortFixture(t, 300)
	f.ds.Begin(f.rowCenter(2))
	f.ds.Move(f.rowCenter(4))

	d, e := f.rows[3], f.rows[4]
	if d.OffsetY != 50 || e.OffsetY != 50 {
		t.Errorf("after reorder offsets d=%v e=%v, want 50", d.OffsetY, e.OffsetY)
	}
	if f.rows[0].OffsetY != 0 {
		t.Error("unmoved row got an offset")
	}
	// Layout already has the new order.
	if got := d.LayoutBounds().Y; got != 120 {
		t.Errorf("row d layout y = %v, want 120", got)
	}

	f.ds.Update(0.05)
	if d.OffsetY <= 0 || d.OffsetY >= 50 {
		t.Errorf("mid-flip OffsetY = %v", d.OffsetY)
	}
	f.ds.Update(1)
	for _, r := range f.rows {
		if r.OffsetX != 0 || r.OffsetY != 0 {
			t.Errorf("row %s offset (%v, %v) after flip", r.Name, r.OffsetX, r.OffsetY)
		}
	}
	if len(f.ds.flips) != 0 {
		t.Errorf("%d flips left running", len(f.ds.flips))
	}
}

func TestDragSortZeroFlipDuration(t *testing.T) {
	f := newSortFixture(t, 300)
	s := DefaultSettings()
	s.FlipMillis = 0
	f.ds = NewDragSort(f.list, []string{"a", "b", "c", "d", "e"}, DragSortConfig[string]{Sortable: true, Settings: &s})
	f.ds.Begin(f.rowCenter(0))
	f.ds.Move(f.rowCenter(1))
	for _, r := range f.rows {
		if r.OffsetY != 0 {
			t.Errorf("row %s offset %v with zero flip duration", r.Name, r.OffsetY)
		}
	}
}

func TestDragSortThroughScene(t *testing.T) {
	s := NewScene()
	list := NewContainer("list", 200, 150)
	list.SetPosition(10, 20)
	list.Flow = &FlowLayout{}
	s.Root().AddChild(list)
	var rows []*Node
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		row := NewBox(name, 200, 50, ColorWhite)
		rows = append(rows, row)
		list.AddChild(row)
	}
	store := &recordingStore{}
	s.SetEntityStore(store)

	ds := NewDragSort(list, []int{0, 1, 2, 3, 4}, DragSortConfig[int]{Sortable: true})
	ds.Subscribe(s)
	if !rows[0].Interactable || !list.Interactable {
		t.Fatal("rows not made interactable")
	}

	s.InjectPress(100, 95) // row b
	s.InjectMove(100, 145) // row c
	tick(s, 2)
	if ds.DragIndex() != 2 || s.CapturedNode(0) != list {
		t.Fatalf("index=%d captured=%v", ds.DragIndex(), s.CapturedNode(0))
	}
	if got := ds.Data(); got[1] != 2 || got[2] != 1 {
		t.Errorf("Data = %v", got)
	}

	// Past the bottom edge the list scrolls on every tick.
	s.InjectMove(100, 200)
	tick(s, 1)
	if list.ScrollTop != 30 {
		t.Errorf("ScrollTop = %v, want 30", list.ScrollTop)
	}

	clone := ds.CloneNode()
	s.InjectCancel()
	tick(s, 1)
	if ds.Dragging() || !clone.IsDisposed() {
		t.Error("cancel did not end the drag")
	}
	if rows[1].Background != ColorNone {
		t.Error("active style left on the dragged row")
	}
	if up, down := ds.AutoScrolling(); up || down {
		t.Error("autoscroll still running after cancel")
	}
	if s.CapturedNode(0) != nil {
		t.Error("pointer still captured after cancel")
	}
	// Scrolling stops with the drag.
	tick(s, 1)
	if list.ScrollTop != 30 {
		t.Errorf("ScrollTop = %v after cancel, want 30", list.ScrollTop)
	}

	kinds := store.kinds()
	if len(kinds) != 2 || kinds[0] != GestureSort || kinds[1] != GestureEnd {
		t.Errorf("gestures = %v", kinds)
	}
	if store.gestures[0].From != 1 || store.gestures[0].To != 2 {
		t.Errorf("sort gesture = %+v", store.gestures[0])
	}

	ds.Unsubscribe()
	if list.OnPointerDown != nil {
		t.Error("Unsubscribe left the container bound")
	}
	s.Layout(100, 100) // resize listener removed
}

func TestDragSortRowAddedAfterSubscribe(t *testing.T) {
	s := NewScene()
	list := NewContainer("list", 200, 300)
	list.SetPosition(10, 20)
	list.Flow = &FlowLayout{}
	s.Root().AddChild(list)
	for _, name := range []string{"a", "b"} {
		list.AddChild(NewBox(name, 200, 50, ColorWhite))
	}
	ds := NewDragSort(list, []string{"a", "b"}, DragSortConfig[string]{Sortable: true})
	ds.Subscribe(s)

	c := NewBox("c", 200, 50, ColorWhite)
	list.AddChild(c)
	ds.SetData([]string{"a", "b", "c"})
	if !c.Interactable {
		t.Fatal("appended row not made interactable")
	}

	s.InjectPress(100, 145) // row c
	tick(s, 1)
	if !ds.Dragging() || ds.DragIndex() != 2 {
		t.Fatalf("dragging=%v index=%d", ds.Dragging(), ds.DragIndex())
	}
	s.InjectMove(100, 45) // row a
	tick(s, 1)
	assertStrings(t, "Data", ds.Data(), "c", "a", "b")
	assertOrder(t, list, "c", "a", "b")
}

func TestDragSortSetDataCopies(t *testing.T) {
	f := newSortFixture(t, 300)
	in := []string{"v", "w", "x", "y", "z"}
	f.ds.SetData(in)
	in[0] = "changed"
	assertStrings(t, "Data", f.ds.Data(), "v", "w", "x", "y", "z")
}

func TestDragSortIgnoresClippedRows(t *testing.T) {
	s := NewScene()
	list := NewContainer("list", 200, 150) // y 20..170, rows run to 270
	list.SetPosition(10, 20)
	list.Flow = &FlowLayout{}
	list.Clip = true
	s.Root().AddChild(list)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		list.AddChild(NewBox(name, 200, 50, ColorWhite))
	}
	ds := NewDragSort(list, []int{0, 1, 2, 3, 4}, DragSortConfig[int]{Sortable: true})
	ds.Subscribe(s)

	s.InjectPress(100, 240) // row e, hidden below the list
	tick(s, 1)
	if ds.Dragging() {
		t.Fatal("press on a clipped row started a drag")
	}
	s.InjectRelease(100, 240)
	s.InjectPress(100, 95) // row b, visible
	tick(s, 2)
	if !ds.Dragging() || ds.DragIndex() != 1 {
		t.Errorf("visible row: dragging=%v index=%d", ds.Dragging(), ds.DragIndex())
	}
}

func TestDragSortCloneOnRootContainer(t *testing.T) {
	list := NewContainer("list", 200, 300)
	list.Flow = &FlowLayout{}
	var rows []*Node
	for _, name := range []string{"a", "b", "c"} {
		row := NewBox(name, 200, 50, ColorWhite)
		rows = append(rows, row)
		list.AddChild(row)
	}
	ds := NewDragSort(list, []string{"a", "b", "c"}, DragSortConfig[string]{Sortable: true})
	ds.Subscribe(nil)

	ds.Begin(PointerEvent{X: 100, Y: 25, Target: rows[0]})
	clone := ds.CloneNode()
	if clone == nil || clone.Parent != list || list.ChildAt(3) != clone {
		t.Fatal("clone not appended to the parentless container")
	}
	if clone.Interactable {
		t.Error("clone is hit-testable")
	}
	if len(ds.childRects) != 3 {
		t.Errorf("rect cache has %d entries, want 3", len(ds.childRects))
	}

	ds.Move(PointerEvent{X: 100, Y: 125}) // row c
	if ds.DragIndex() != 2 {
		t.Fatalf("index = %d, want 2", ds.DragIndex())
	}
	assertStrings(t, "Data", ds.Data(), "b", "c", "a")
	if list.ChildAt(3) != clone {
		t.Error("clone moved off the end during reorder")
	}

	ds.End()
	if !clone.IsDisposed() {
		t.Error("clone not disposed")
	}
	assertOrder(t, list, "b", "c", "a")
}

func TestDragSortRefreshesOnAncestorScroll(t *testing.T) {
	f := newSortFixture(t, 300)
	f.ds.Begin(f.rowCenter(0))
	f.root.ScrollTop = 40
	// Row c is now drawn at y 80..130; the stale cache has row b there.
	f.ds.Move(PointerEvent{X: 100, Y: 105})
	if f.ds.DragIndex() != 2 {
		t.Errorf("index = %d, want 2", f.ds.DragIndex())
	}
	if got := f.ds.childRects[0].Y; got != 20-40 {
		t.Errorf("cached row 0 y = %v, want %v", got, 20-40)
	}
}

func TestDragSortDisabled(t *testing.T) {
	s := NewScene()
	list := NewContainer("list", 100, 100)
	ds := NewDragSort(list, []int{}, DragSortConfig[int]{})
	ds.Subscribe(s)
	if list.OnPointerDown != nil || list.Interactable {
		t.Error("disabled drag-sort bound its container")
	}
}

func TestMoveItem(t *testing.T) {
	tests := []struct {
		from, to int
		want     []int
	}{
		{0, 4, []int{1, 2, 3, 4, 0}},
		{4, 0, []int{4, 0, 1, 2, 3}},
		{1, 3, []int{0, 2, 3, 1, 4}},
		{3, 1, []int{0, 3, 1, 2, 4}},
		{2, 2, []int{0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		in := []int{0, 1, 2, 3, 4}
		got := moveItem(in, tt.from, tt.to)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("moveItem(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
				break
			}
		}
		if in[0] != 0 || in[4] != 4 {
			t.Errorf("moveItem modified its input: %v", in)
		}
	}
}
