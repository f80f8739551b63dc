package core

import "fmt"

// Objective types.
const (
	ObjectiveTotalMatches = "total_matches"
	ObjectiveItemMatches  = "item_matches"
	ObjectiveClearLayers  = "clear_layers"
	ObjectiveCollectSinks = "collect_sinks"
)

// Objective tracks one win condition of a level run.
type Objective interface {
	// Setup resets the runtime counters.
	Setup()
	OnMatchMade(tiles []MatchedTile)
	OnLayerBreak(pos Coord)
	OnSinkCollected()
	IsCompleted() bool
	ProgressText() string
	// Progress returns completion in [0, 1].
	Progress() float64
	// Clone returns a fresh instance with the same configuration and reset
	// counters.
	Clone() Objective
}

// NewObjective builds an objective from its spec.
func NewObjective(spec ObjectiveSpec) (Objective, error) {
	if spec.Target < 1 {
		return nil, ValidationError{
			Code:    "BAD_OBJECTIVE",
			Message: fmt.Sprintf("%s target must be positive, got %d", spec.Type, spec.Target),
		}
	}
	switch spec.Type {
	case ObjectiveTotalMatches:
		return &TotalMatches{counter: counter{Target: spec.Target}}, nil
	case ObjectiveItemMatches:
		if spec.Item == "" {
			return nil, ValidationError{Code: "BAD_OBJECTIVE", Message: "item_matches needs an item"}
		}
		return &ItemMatches{Item: spec.Item, counter: counter{Target: spec.Target}}, nil
	case ObjectiveClearLayers:
		return &ClearLayers{counter: counter{Target: spec.Target}}, nil
	case ObjectiveCollectSinks:
		return &CollectSinks{counter: counter{Target: spec.Target}}, nil
	default:
		return nil, ValidationError{
			Code:    "UNKNOWN_OBJECTIVE",
			Message: fmt.Sprintf("unknown objective type %q", spec.Type),
		}
	}
}

// counter is the shared target/count state of every objective variant.
type counter struct {
	Target int
	Count  int
}

func (c *counter) Setup() { c.Count = 0 }

func (c *counter) add(n int) {
	c.Count += n
}

func (c *counter) IsCompleted() bool { return c.Count >= c.Target }

func (c *counter) Progress() float64 {
	if c.Target <= 0 {
		return 1
	}
	p := float64(c.Count) / float64(c.Target)
	if p > 1 {
		return 1
	}
	return p
}

func (c *counter) text(label string) string {
	return fmt.Sprintf("%s %d/%d", label, min(c.Count, c.Target), c.Target)
}

// noHooks supplies empty event handlers for embedding.
type noHooks struct{}

func (noHooks) OnMatchMade([]MatchedTile) {}
func (noHooks) OnLayerBreak(Coord)        {}
func (noHooks) OnSinkCollected()          {}

// TotalMatches completes after Target matched tiles of any kind.
type TotalMatches struct {
	noHooks
	counter
}

func (o *TotalMatches) OnMatchMade(tiles []MatchedTile) { o.add(len(tiles)) }
func (o *TotalMatches) ProgressText() string            { return o.text("Matches") }
func (o *TotalMatches) Clone() Objective {
	return &TotalMatches{counter: counter{Target: o.Target}}
}

// ItemMatches completes after Target matched tiles of one item kind.
type ItemMatches struct {
	noHooks
	counter
	Item ItemKind
}

func (o *ItemMatches) OnMatchMade(tiles []MatchedTile) {
	for _, t := range tiles {
		if t.Item == o.Item {
			o.add(1)
		}
	}
}

func (o *ItemMatches) ProgressText() string { return o.text(string(o.Item)) }
func (o *ItemMatches) Clone() Objective {
	return &ItemMatches{Item: o.Item, counter: counter{Target: o.Target}}
}

// ClearLayers completes after Target obstacles are broken.
type ClearLayers struct {
	noHooks
	counter
}

func (o *ClearLayers) OnLayerBreak(Coord)   { o.add(1) }
func (o *ClearLayers) ProgressText() string { return o.text("Layers") }
func (o *ClearLayers) Clone() Objective {
	return &ClearLayers{counter: counter{Target: o.Target}}
}

// CollectSinks completes after Target sinks reach the bottom of the board.
type CollectSinks struct {
	noHooks
	counter
}

func (o *CollectSinks) OnSinkCollected()     { o.add(1) }
func (o *CollectSinks) ProgressText() string { return o.text("Sinks") }
func (o *CollectSinks) Clone() Objective {
	return &CollectSinks{counter: counter{Target: o.Target}}
}

// Remaining returns how many more sinks are needed.
func (o *CollectSinks) Remaining() int {
	return max(0, o.Target-o.Count)
}
