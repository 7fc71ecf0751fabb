package targetarea

import (
	"fmt"
	"strings"
)

// Pattern selects how sample points are spread over a target area
type Pattern int

const (
	// Random samples independent uniform points over the area
	Random Pattern = iota
	// Grid samples the centers of a regular lattice
	Grid
	// Jittered samples lattice centers moved by up to 40% of the cell size in each axis
	Jittered
)

func (p Pattern) String() string {
	switch p {
	case Random:
		return "random"
	case Grid:
		return "grid"
	case Jittered:
		return "jittered"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// ParsePattern converts a pattern name (case insensitive) to a Pattern
func ParsePattern(name string) (Pattern, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return Random, nil
	case "grid":
		return Grid, nil
	case "jittered", "jitter":
		return Jittered, nil
	default:
		return Random, fmt.Errorf("unknown sampling pattern %q (want random, grid or jittered)", name)
	}
}
