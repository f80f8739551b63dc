// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// YAMLLevel is the on-disk shape of a level file.
type YAMLLevel struct {
	ID                 string              `yaml:"id"`
	Name               string              `yaml:"name"`
	Shape              []string            `yaml:"shape"`
	Palette            []YAMLPaletteItem   `yaml:"palette"`
	MinPossibleMatches int                 `yaml:"min_possible_matches,omitempty"`
	SinkColumns        []int               `yaml:"sink_columns,omitempty"`
	Objectives         []YAMLObjective     `yaml:"objectives"`
	LoseConditions     []YAMLLoseCondition `yaml:"lose_conditions,omitempty"`
}

// YAMLPaletteItem is one weighted palette entry.
type YAMLPaletteItem struct {
	Item   string `yaml:"item"`
	Weight int    `yaml:"weight,omitempty"`
}

// YAMLObjective is one objective entry.
type YAMLObjective struct {
	Type   string `yaml:"type"`
	Target int    `yaml:"target"`
	Item   string `yaml:"item,omitempty"`
}

// YAMLLoseCondition is one lose condition entry.
type YAMLLoseCondition struct {
	Type    string  `yaml:"type"`
	Moves   int     `yaml:"moves,omitempty"`
	Seconds float64 `yaml:"seconds,omitempty"`
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (*core.LevelDef, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.ToLevelDef()
}

// ToLevelDef converts the raw YAML structure into a validated level.
func (yl *YAMLLevel) ToLevelDef() (*core.LevelDef, error) {
	shape, err := core.ParseShape(yl.Shape)
	if err != nil {
		return nil, err
	}

	def := &core.LevelDef{
		ID:                 yl.ID,
		Name:               yl.Name,
		Grid:               shape.Grid,
		MinPossibleMatches: yl.MinPossibleMatches,
		Obstacles:          shape.Obstacles,
		Sinks:              shape.Sinks,
		SinkColumns:        yl.SinkColumns,
	}
	if def.Name == "" {
		def.Name = def.ID
	}

	for _, p := range yl.Palette {
		weight := p.Weight
		if weight <= 0 {
			weight = 1
		}
		def.Palette = append(def.Palette, core.WeightedItem{Item: core.ItemKind(p.Item), Weight: weight})
	}
	for _, o := range yl.Objectives {
		def.Objectives = append(def.Objectives, core.ObjectiveSpec{
			Type:   o.Type,
			Target: o.Target,
			Item:   core.ItemKind(o.Item),
		})
	}
	for _, lc := range yl.LoseConditions {
		def.LoseConditions = append(def.LoseConditions, core.LoseConditionSpec{
			Type:    lc.Type,
			Moves:   lc.Moves,
			Seconds: lc.Seconds,
		})
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
