package core

import (
	"fmt"
	"math"
)

// Shape legend for level files.
const (
	ShapeActive   = '#'
	ShapeInactive = '.'
	ShapeSink     = 'S'
)

// ObjectiveSpec is the authored configuration of one objective.
type ObjectiveSpec struct {
	Type   string   // total_matches, item_matches, clear_layers, collect_sinks
	Target int      // Required count
	Item   ItemKind // item_matches only
}

// LoseConditionSpec is the authored configuration of one lose condition.
type LoseConditionSpec struct {
	Type    string  // move_limit, time_limit
	Moves   int     // move_limit only
	Seconds float64 // time_limit only
}

// Scaled returns a copy with its budget multiplied. Budgets never drop below
// one move or one second.
func (s LoseConditionSpec) Scaled(moveMul, timeMul float64) LoseConditionSpec {
	out := s
	if moveMul > 0 && s.Moves > 0 {
		out.Moves = max(1, int(math.Round(float64(s.Moves)*moveMul)))
	}
	if timeMul > 0 && s.Seconds > 0 {
		out.Seconds = math.Max(1, s.Seconds*timeMul)
	}
	return out
}

// ObstaclePlacement puts an obstacle with the given health on a tile.
type ObstaclePlacement struct {
	Pos    Coord
	Health int
}

// LevelDef is an immutable level description.
type LevelDef struct {
	ID      string
	Name    string
	Grid    *Grid
	Palette Palette

	// MinPossibleMatches overrides the configured solvability threshold when
	// positive.
	MinPossibleMatches int

	Obstacles      []ObstaclePlacement
	Sinks          []Coord // Sinks present at level start
	SinkColumns    []int   // Columns that receive new sinks at refill time
	Objectives     []ObjectiveSpec
	LoseConditions []LoseConditionSpec
}

// ParsedShape is the result of reading a shape block.
type ParsedShape struct {
	Grid      *Grid
	Obstacles []ObstaclePlacement
	Sinks     []Coord
}

// ParseShape reads shape rows: '#' active, '.' inactive, '1'-'9' an active
// tile holding an obstacle of that health, 'S' an active tile holding a sink.
// All rows must have the same length.
func ParseShape(rows []string) (ParsedShape, error) {
	if len(rows) == 0 {
		return ParsedShape{}, ValidationError{Code: "EMPTY_SHAPE", Message: "shape has no rows"}
	}
	w := len([]rune(rows[0]))
	if w == 0 {
		return ParsedShape{}, ValidationError{Code: "EMPTY_SHAPE", Message: "shape row 0 is empty"}
	}

	var out ParsedShape
	active := make([]bool, 0, w*len(rows))
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != w {
			return ParsedShape{}, ValidationError{
				Code:    "BAD_SHAPE",
				Message: fmt.Sprintf("row %d has width %d, expected %d", y, len(cells), w),
			}
		}
		for x, ch := range cells {
			switch {
			case ch == ShapeActive:
				active = append(active, true)
			case ch == ShapeInactive:
				active = append(active, false)
			case ch == ShapeSink:
				active = append(active, true)
				out.Sinks = append(out.Sinks, C(x, y))
			case ch >= '1' && ch <= '9':
				active = append(active, true)
				out.Obstacles = append(out.Obstacles, ObstaclePlacement{Pos: C(x, y), Health: int(ch - '0')})
			default:
				return ParsedShape{}, ValidationError{
					Code:    "BAD_SHAPE",
					Message: fmt.Sprintf("unknown shape cell %q at %s", ch, C(x, y)),
				}
			}
		}
	}
	out.Grid = NewGrid(w, len(rows), active)
	return out, nil
}

// Validate checks a level for structural errors.
func (l *LevelDef) Validate() error {
	if l.ID == "" {
		return ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if l.Grid == nil || l.Grid.ActiveCount() == 0 {
		return ValidationError{Code: "EMPTY_SHAPE", Message: "level has no active tiles"}
	}
	if len(l.Palette) < 2 {
		return ValidationError{Code: "NO_PALETTE", Message: "palette needs at least two items"}
	}
	seen := make(map[ItemKind]bool, len(l.Palette))
	for _, w := range l.Palette {
		if w.Item == "" {
			return ValidationError{Code: "NO_PALETTE", Message: "palette entry has no item"}
		}
		if seen[w.Item] {
			return ValidationError{Code: "DUPLICATE_ITEM", Message: fmt.Sprintf("item %q listed twice", w.Item)}
		}
		seen[w.Item] = true
	}
	for _, o := range l.Obstacles {
		if !l.Grid.IsActive(o.Pos.X, o.Pos.Y) || o.Health < 1 {
			return ValidationError{Code: "BAD_OBSTACLE", Message: fmt.Sprintf("obstacle at %s", o.Pos)}
		}
	}
	for _, s := range l.Sinks {
		if !l.Grid.IsActive(s.X, s.Y) {
			return ValidationError{Code: "BAD_SINK", Message: fmt.Sprintf("sink at %s", s)}
		}
	}
	for _, x := range l.SinkColumns {
		if x < 0 || x >= l.Grid.W {
			return ValidationError{Code: "BAD_SINK", Message: fmt.Sprintf("sink column %d out of range", x)}
		}
	}
	if len(l.Objectives) == 0 {
		return ValidationError{Code: "NO_OBJECTIVES", Message: "level needs at least one objective"}
	}
	for _, spec := range l.Objectives {
		if _, err := NewObjective(spec); err != nil {
			return err
		}
		if spec.Type == ObjectiveItemMatches && !seen[spec.Item] {
			return ValidationError{
				Code:    "BAD_OBJECTIVE",
				Message: fmt.Sprintf("item %q is not in the palette", spec.Item),
			}
		}
	}
	for _, spec := range l.LoseConditions {
		if _, err := NewLoseCondition(spec); err != nil {
			return err
		}
	}
	return nil
}

// BuildBoard creates a board for the level with its obstacles and starting
// sinks in place and every other active tile empty.
func (l *LevelDef) BuildBoard() *Board {
	b := NewBoard(l.Grid.Clone())
	for _, o := range l.Obstacles {
		b.Place(o.Pos, NewObstacle(o.Health))
	}
	for _, s := range l.Sinks {
		b.Place(s, NewSink())
	}
	return b
}
