// Package caret resolves a screen point to a logical position inside rendered text.
//
// Hosts expose zero, one or both hit-testing capabilities. New inspects the host once and
// returns a Resolver bound to the best capability; Resolve never inspects it again.
package caret

// Container is a block of text that positions point into.
type Container interface {
	ContainerID() string
	Text() string
}

// TextBlock is a plain Container.
type TextBlock struct {
	ID   string
	Body string
}

func (b TextBlock) ContainerID() string { return b.ID }
func (b TextBlock) Text() string        { return b.Body }

// Position is a character boundary: Offset runes into Container's text.
type Position struct {
	Container Container
	Offset    int
}

// Range is a span between two positions. Hit-testing returns collapsed ranges.
type Range struct {
	Start Position
	End   Position
}

// RangeHitTester maps a point to a document range anchored at the nearest boundary.
type RangeHitTester interface {
	RangeFromPoint(x, y int) (Range, bool)
}

// PositionHitTester maps a point directly to a container and offset.
type PositionHitTester interface {
	PositionFromPoint(x, y int) (Position, bool)
}

type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityPosition
	CapabilityRange
)

func (c Capability) String() string {
	switch c {
	case CapabilityRange:
		return "range"
	case CapabilityPosition:
		return "position"
	default:
		return "none"
	}
}

// Resolver turns a point into a Position. ok is false when there is no resolvable position;
// callers treat that as "do nothing".
type Resolver interface {
	Resolve(x, y int) (pos Position, ok bool)
	Capability() Capability
}

// New selects the resolver for host. Range hit-testing wins when both are available.
func New(host any) Resolver {
	switch h := host.(type) {
	case RangeHitTester:
		return rangeResolver{h: h}
	case PositionHitTester:
		return positionResolver{h: h}
	default:
		return noneResolver{}
	}
}

type rangeResolver struct{ h RangeHitTester }

func (r rangeResolver) Resolve(x, y int) (Position, bool) {
	rng, ok := r.h.RangeFromPoint(x, y)
	if !ok {
		return Position{}, false
	}
	return complete(rng.Start)
}

func (rangeResolver) Capability() Capability { return CapabilityRange }

type positionResolver struct{ h PositionHitTester }

func (r positionResolver) Resolve(x, y int) (Position, bool) {
	pos, ok := r.h.PositionFromPoint(x, y)
	if !ok {
		return Position{}, false
	}
	return complete(pos)
}

func (positionResolver) Capability() Capability { return CapabilityPosition }

type noneResolver struct{}

func (noneResolver) Resolve(int, int) (Position, bool) { return Position{}, false }
func (noneResolver) Capability() Capability            { return CapabilityNone }

// complete rejects half-filled answers from a host so callers only ever see a full position or
// nothing.
func complete(p Position) (Position, bool) {
	if p.Container == nil || p.Offset < 0 {
		return Position{}, false
	}
	return p, true
}
