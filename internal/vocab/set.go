package vocab

// Level is the difficulty level of a vocabulary set. The same scale is used
// to classify a learner's assessment performance.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels returns all levels in ascending difficulty order.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Rank returns the position of the level in ascending difficulty order,
// or -1 for an unknown level.
func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 0
	case LevelIntermediate:
		return 1
	case LevelAdvanced:
		return 2
	default:
		return -1
	}
}

// DisplayName returns a human-readable name for a level.
func (l Level) DisplayName() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	default:
		return string(l)
	}
}

// AgeRange is the inclusive learner age range a set targets.
type AgeRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Set is a named, ordered collection of symbols. The order of Symbols is
// significant: it drives learning-path ordering.
type Set struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Level       Level    `json:"level" yaml:"level"`
	AgeRange    AgeRange `json:"age_range" yaml:"age_range"`
	Symbols     []string `json:"symbols" yaml:"symbols"`
	Categories  []string `json:"categories" yaml:"categories"`
}

// Contains reports whether symbolID belongs to the set.
func (s Set) Contains(symbolID string) bool {
	for _, id := range s.Symbols {
		if id == symbolID {
			return true
		}
	}
	return false
}

func (s Set) clone() Set {
	c := s
	c.Symbols = append([]string(nil), s.Symbols...)
	c.Categories = append([]string(nil), s.Categories...)
	return c
}

// Symbol is the resolved metadata of a single symbol.
type Symbol struct {
	ID       string            `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Category string            `json:"category,omitempty" yaml:"category,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
