package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when no built-in scene has the requested ID
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used by the -scene flag
	DisplayName string `json:"displayName"` // Display name derived from the ID
	Description string `json:"description"` // Optional description
}

type preset struct {
	description string
	create      func() (*Scene, error)
}

var builtInScenes = map[string]preset{
	"default":    {"Glass sphere with a solid core over a reflective floor", NewDefaultScene},
	"mirrors":    {"Sphere between two parallel mirrors", NewMirrorsScene},
	"dof":        {"Receding row of spheres for depth of field", NewDepthOfFieldScene},
	"shapes":     {"Cylinder, tube, quad and transparent sphere", NewShapesScene},
	"cornell":    {"Cornell box with a mirror sphere and a glass sphere", NewCornellScene},
	"spheregrid": {"10x10 grid of shiny spheres on a reflective floor", NewSphereGridScene},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for id, p := range builtInScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: p.description,
		})
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the built-in scene with the given ID
func Create(id string) (*Scene, error) {
	p, ok := builtInScenes[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", id, ErrUnknownScene)
	}
	s, err := p.create()
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", id, err)
	}
	return s, nil
}

// titleCase converts an identifier to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
