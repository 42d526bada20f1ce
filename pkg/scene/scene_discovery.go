package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Create for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used with Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtinScene struct {
	info   SceneInfo
	create func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info: SceneInfo{
			Description: "Ground, a diffuse sphere and two metal spheres under a sky gradient",
			Group:       "Basic",
		},
		create: NewDefaultScene,
	},
	"showcase": {
		info: SceneInfo{
			Description: "All four material kinds including an emissive light",
			Group:       "Basic",
		},
		create: NewShowcaseScene,
	},
	"single-sphere": {
		info: SceneInfo{
			Description: "One grey diffuse sphere at the origin",
			Group:       "Testing",
		},
		create: NewSingleSphereScene,
	},
	"sphere-grid": {
		info: SceneInfo{
			Description: "Grid of spheres cycling through materials",
			Group:       "Testing",
		},
		create: NewSphereGridScene,
	},
}

// Names returns the registered scene identifiers in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds a fresh copy of the named scene
func Create(name string) (*Scene, error) {
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return entry.create(), nil
}

// ListScenes returns scene metadata grouped for display
func ListScenes() ScenesResponse {
	groups := make(map[string][]SceneInfo)
	for _, name := range Names() {
		info := builtinScenes[name].info
		info.ID = name
		info.DisplayName = titleCase(name)
		groups[info.Group] = append(groups[info.Group], info)
	}

	groupNames := make([]string, 0, len(groups))
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	response := ScenesResponse{Groups: make([]SceneGroup, 0, len(groupNames))}
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groups[name]})
	}
	return response
}

// titleCase converts "sphere-grid" or "sphere_grid" to "Sphere Grid"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
