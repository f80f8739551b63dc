package core

import (
	"math"
	"strings"
)

// Status is the outcome state of a level run.
type Status uint8

const (
	StatusNotStarted Status = iota
	StatusPlaying
	StatusComplete
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusPlaying:
		return "playing"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Scoring configures points awarded per match wave.
type Scoring struct {
	PointsPerTile int
	CascadeBonus  float64 // Extra multiplier per cascade level beyond the first
}

// DefaultScoring returns the default scoring rules.
func DefaultScoring() Scoring {
	return Scoring{PointsPerTile: 10, CascadeBonus: 0.5}
}

// Points returns the score for a wave of n tiles at the given cascade depth.
func (s Scoring) Points(n, cascade int) int {
	mult := 1 + s.CascadeBonus*float64(max(0, cascade-1))
	return int(math.Round(float64(n*s.PointsPerTile) * mult))
}

// Run tracks one attempt at a level. It observes engine events and decides
// completion and failure.
type Run struct {
	Objectives     []Objective
	LoseConditions []LoseCondition
	Scoring        Scoring

	Moves          int
	Matches        int
	LayersBroken   int
	SinksCollected int
	Score          int
	Elapsed        float64 // Seconds of play time counted by Tick

	status Status
}

// NewRun creates a run with fresh objective and lose-condition instances
// cloned from the given prototypes.
func NewRun(objectives []Objective, lose []LoseCondition, scoring Scoring) *Run {
	r := &Run{Scoring: scoring, status: StatusPlaying}
	for _, o := range objectives {
		c := o.Clone()
		c.Setup()
		r.Objectives = append(r.Objectives, c)
	}
	for _, l := range lose {
		c := l.Clone()
		c.Setup()
		r.LoseConditions = append(r.LoseConditions, c)
	}
	return r
}

// Status returns the current outcome state.
func (r *Run) Status() Status { return r.status }

// OnEvent updates counters, objectives and lose conditions.
func (r *Run) OnEvent(ev Event) {
	switch e := ev.(type) {
	case MoveMade:
		r.Moves++
		for _, l := range r.LoseConditions {
			l.OnMoveMade()
		}
	case MatchesMade:
		r.Matches += len(e.Tiles)
		r.Score += r.Scoring.Points(len(e.Tiles), e.Cascade)
		for _, o := range r.Objectives {
			o.OnMatchMade(e.Tiles)
		}
	case LayerBroken:
		r.LayersBroken++
		for _, o := range r.Objectives {
			o.OnLayerBreak(e.Pos)
		}
	case SinkCollected:
		r.SinksCollected++
		for _, o := range r.Objectives {
			o.OnSinkCollected()
		}
	}
}

// Tick drains time-based lose conditions. Time only counts while the player
// can act.
func (r *Run) Tick(dt float64, canInteract bool) {
	if r.status != StatusPlaying || !canInteract || dt <= 0 {
		return
	}
	r.Elapsed += dt
	for _, l := range r.LoseConditions {
		l.UpdateTime(dt)
	}
}

// Evaluate settles the run outcome. It only decides while Playing and while
// no turn is in flight; completion wins over failure when both hold.
func (r *Run) Evaluate(settled bool) Status {
	if r.status != StatusPlaying || !settled {
		return r.status
	}
	if r.objectivesComplete() {
		r.status = StatusComplete
		return r.status
	}
	for _, l := range r.LoseConditions {
		if l.IsConditionMet() {
			r.status = StatusFailed
			break
		}
	}
	return r.status
}

// Fail ends the run as failed if it is still playing.
func (r *Run) Fail() {
	if r.status == StatusPlaying {
		r.status = StatusFailed
	}
}

func (r *Run) objectivesComplete() bool {
	if len(r.Objectives) == 0 {
		return false
	}
	for _, o := range r.Objectives {
		if !o.IsCompleted() {
			return false
		}
	}
	return true
}

// Progress returns the mean objective progress in [0, 1].
func (r *Run) Progress() float64 {
	if len(r.Objectives) == 0 {
		return 0
	}
	sum := 0.0
	for _, o := range r.Objectives {
		sum += o.Progress()
	}
	return sum / float64(len(r.Objectives))
}

// SinksNeeded returns how many more sinks collect_sinks objectives require.
func (r *Run) SinksNeeded() int {
	need := 0
	for _, o := range r.Objectives {
		if cs, ok := o.(*CollectSinks); ok {
			need = max(need, cs.Remaining())
		}
	}
	return need
}

// ObjectivesText joins the objective progress texts.
func (r *Run) ObjectivesText() string {
	parts := make([]string, len(r.Objectives))
	for i, o := range r.Objectives {
		parts[i] = o.ProgressText()
	}
	return strings.Join(parts, "  ")
}

// LimitsText joins the lose-condition progress texts.
func (r *Run) LimitsText() string {
	parts := make([]string, len(r.LoseConditions))
	for i, l := range r.LoseConditions {
		parts[i] = l.ProgressText()
	}
	return strings.Join(parts, "  ")
}
