package core

import (
	"fmt"
	"math"
)

// Lose condition types.
const (
	LoseMoveLimit = "move_limit"
	LoseTimeLimit = "time_limit"
)

// LoseCondition tracks one way to fail a level run.
type LoseCondition interface {
	Setup()
	// UpdateTime drains time-based budgets. Callers only pass time during
	// which the player could act.
	UpdateTime(dt float64)
	OnMoveMade()
	IsConditionMet() bool
	ProgressText() string
	Clone() LoseCondition
}

// NewLoseCondition builds a lose condition from its spec.
func NewLoseCondition(spec LoseConditionSpec) (LoseCondition, error) {
	switch spec.Type {
	case LoseMoveLimit:
		if spec.Moves < 1 {
			return nil, ValidationError{
				Code:    "BAD_LOSE_CONDITION",
				Message: fmt.Sprintf("move_limit needs at least one move, got %d", spec.Moves),
			}
		}
		lc := &MoveLimit{AllowedMoves: spec.Moves}
		lc.Setup()
		return lc, nil
	case LoseTimeLimit:
		if spec.Seconds <= 0 {
			return nil, ValidationError{
				Code:    "BAD_LOSE_CONDITION",
				Message: fmt.Sprintf("time_limit needs a positive duration, got %v", spec.Seconds),
			}
		}
		lc := &TimeLimit{Seconds: spec.Seconds}
		lc.Setup()
		return lc, nil
	default:
		return nil, ValidationError{
			Code:    "UNKNOWN_LOSE_CONDITION",
			Message: fmt.Sprintf("unknown lose condition type %q", spec.Type),
		}
	}
}

// MoveLimit is met once AllowedMoves moves have been made.
type MoveLimit struct {
	AllowedMoves int
	Remaining    int
}

func (m *MoveLimit) Setup()             { m.Remaining = m.AllowedMoves }
func (m *MoveLimit) UpdateTime(float64) {}

func (m *MoveLimit) OnMoveMade() {
	if m.Remaining > 0 {
		m.Remaining--
	}
}

func (m *MoveLimit) IsConditionMet() bool { return m.Remaining <= 0 }

func (m *MoveLimit) ProgressText() string {
	return fmt.Sprintf("Moves %d", m.Remaining)
}

func (m *MoveLimit) Clone() LoseCondition {
	c := &MoveLimit{AllowedMoves: m.AllowedMoves}
	c.Setup()
	return c
}

// TimeLimit is met once its time budget has drained. Remaining never goes
// below zero.
type TimeLimit struct {
	Seconds   float64
	Remaining float64
}

func (t *TimeLimit) Setup() { t.Remaining = t.Seconds }

func (t *TimeLimit) UpdateTime(dt float64) {
	if dt <= 0 {
		return
	}
	t.Remaining = math.Max(0, t.Remaining-dt)
}

func (t *TimeLimit) OnMoveMade() {}

func (t *TimeLimit) IsConditionMet() bool { return t.Remaining <= 0 }

func (t *TimeLimit) ProgressText() string {
	secs := int(math.Ceil(t.Remaining))
	return fmt.Sprintf("Time %d:%02d", secs/60, secs%60)
}

func (t *TimeLimit) Clone() LoseCondition {
	c := &TimeLimit{Seconds: t.Seconds}
	c.Setup()
	return c
}
