// Package surface keeps the retained set of drawn glyphs, keyed by particle ID.
//
// Each pass hands the scene a fresh glyph list. The scene inserts glyphs for new IDs,
// drops glyphs whose IDs vanished and tweens the rest toward their new outline,
// color and position. Renderers only read the scene.
package surface

import (
	"time"

	"github.com/gogpu/gg"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slabview/glyph"
)

// DefaultTransition is the update animation length.
const DefaultTransition = 100 * time.Millisecond

// Visual is the drawable state of one element.
type Visual struct {
	Pos   gg.Point
	Shape glyph.Shape
	Fill  gg.RGBA
}

// Lerp interpolates every attribute.
func (v Visual) Lerp(to Visual, t float64) Visual {
	return Visual{
		Pos:   v.Pos.Lerp(to.Pos, t),
		Shape: v.Shape.Lerp(to.Shape, t),
		Fill:  v.Fill.Lerp(to.Fill, t),
	}
}

func visualOf(g glyph.Glyph) Visual {
	return Visual{Pos: g.Pos, Shape: g.Shape, Fill: g.Fill}
}

// Element is the component holding an element's identity and displayed state.
type Element struct {
	ID     int64
	Visual Visual
}

// Tween is the component animating an element between two visuals.
type Tween struct {
	From, To Visual
	Elapsed  time.Duration
	Duration time.Duration
}

// Done reports whether the tween has reached its target.
func (tw *Tween) Done() bool {
	return tw.Elapsed >= tw.Duration
}

// Scene is the retained glyph surface.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map2[Element, Tween]
	filter *ecs.Filter2[Element, Tween]

	index      map[int64]ecs.Entity
	order      []int64 // Draw order from the last Apply
	transition time.Duration
}

// NewScene creates an empty scene. A non-positive transition applies updates instantly.
func NewScene(transition time.Duration) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:      world,
		mapper:     ecs.NewMap2[Element, Tween](world),
		filter:     ecs.NewFilter2[Element, Tween](world),
		index:      make(map[int64]ecs.Entity),
		transition: transition,
	}
}

// Len returns the number of elements.
func (s *Scene) Len() int {
	return len(s.order)
}

// Apply reconciles the scene with a fresh glyph list and returns the diff.
// Glyphs with an ID already seen in the same list are ignored.
func (s *Scene) Apply(glyphs []glyph.Glyph) Changes {
	cur := make([]int64, len(glyphs))
	for i := range glyphs {
		cur[i] = glyphs[i].ID
	}
	changes := Diff(s.order, cur)

	for _, id := range changes.Removed {
		s.world.RemoveEntity(s.index[id])
		delete(s.index, id)
	}

	order := make([]int64, 0, len(glyphs))
	seen := make(map[int64]struct{}, len(glyphs))
	for i := range glyphs {
		g := &glyphs[i]
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		order = append(order, g.ID)

		target := visualOf(*g)
		if e, ok := s.index[g.ID]; ok {
			el, tw := s.mapper.Get(e)
			tw.From = el.Visual
			tw.To = target
			tw.Elapsed = 0
			tw.Duration = s.transition
			if tw.Done() {
				el.Visual = target
			}
			continue
		}

		// Entering elements appear at their target.
		el := Element{ID: g.ID, Visual: target}
		tw := Tween{From: target, To: target, Elapsed: s.transition, Duration: s.transition}
		s.index[g.ID] = s.mapper.NewEntity(&el, &tw)
	}
	s.order = order
	return changes
}

// Advance steps all running transitions by dt.
// Returns true while any transition is still running.
func (s *Scene) Advance(dt time.Duration) bool {
	running := false
	query := s.filter.Query()
	for query.Next() {
		el, tw := query.Get()
		if tw.Done() {
			continue
		}
		tw.Elapsed += dt
		if tw.Done() {
			tw.Elapsed = tw.Duration
			el.Visual = tw.To
			continue
		}
		t := float64(tw.Elapsed) / float64(tw.Duration)
		el.Visual = tw.From.Lerp(tw.To, easeCubicInOut(t))
		running = true
	}
	return running
}

// Get returns the displayed visual of an element.
func (s *Scene) Get(id int64) (Visual, bool) {
	e, ok := s.index[id]
	if !ok {
		return Visual{}, false
	}
	el, _ := s.mapper.Get(e)
	return el.Visual, true
}

// Each visits elements in draw order.
func (s *Scene) Each(fn func(id int64, v Visual)) {
	for _, id := range s.order {
		el, _ := s.mapper.Get(s.index[id])
		fn(id, el.Visual)
	}
}

// Pick returns the element whose anchor or ring center is closest to pt,
// within maxDist.
func (s *Scene) Pick(pt gg.Point, maxDist float64) (int64, bool) {
	var (
		best  int64
		found bool
	)
	bestDist := maxDist
	query := s.filter.Query()
	for query.Next() {
		el, _ := query.Get()
		v := &el.Visual
		d := v.Pos.Distance(pt)
		if v.Shape.RingRadius > 0 {
			d = min(d, v.Pos.Add(v.Shape.RingCenter).Distance(pt))
		}
		if d <= bestDist {
			best, bestDist, found = el.ID, d, true
		}
	}
	return best, found
}

// Clear removes every element.
func (s *Scene) Clear() {
	for _, id := range s.order {
		s.world.RemoveEntity(s.index[id])
	}
	s.index = make(map[int64]ecs.Entity)
	s.order = nil
}

func easeCubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}
