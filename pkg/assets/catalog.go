// Package assets loads declarative animation catalogs.
//
// A catalog is a YAML file mapping slot names to animation descriptions, so
// applications can declare which .riv resources they use — and how to present
// them — without hardcoding specs:
//
//	animations:
//	  hero:
//	    resource: anims/hero.riv
//	    stateMachine: Motion
//	    fit: cover
//	    loop: pingPong
//	  spinner:
//	    resource: anims/spinner.riv
//	    autoplay: false
package assets

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/rive/pkg/rive"
)

// Catalog is a validated set of named animation specs.
type Catalog struct {
	specs map[string]rive.AnimationSpec
}

// catalogFile is the YAML document shape.
type catalogFile struct {
	Animations map[string]catalogEntry `yaml:"animations"`
}

type catalogEntry struct {
	Resource     string `yaml:"resource"`
	Artboard     string `yaml:"artboard"`
	Animation    string `yaml:"animation"`
	StateMachine string `yaml:"stateMachine"`
	Autoplay     *bool  `yaml:"autoplay"` // nil means true
	Fit          string `yaml:"fit"`
	Alignment    string `yaml:"alignment"`
	Loop         string `yaml:"loop"`
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse parses catalog YAML. Every entry must name a resource; presentation
// fields are optional and default to the spec's zero values (autoplay
// defaults to on, matching rive.NewAnimationSpec).
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	specs := make(map[string]rive.AnimationSpec, len(file.Animations))
	for name, entry := range file.Animations {
		spec, err := entry.spec()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", name, err)
		}
		specs[name] = spec
	}
	return &Catalog{specs: specs}, nil
}

func (e catalogEntry) spec() (rive.AnimationSpec, error) {
	if e.Resource == "" {
		return rive.AnimationSpec{}, fmt.Errorf("missing resource")
	}
	spec := rive.NewAnimationSpec(e.Resource)
	spec.Artboard = e.Artboard
	spec.Animation = e.Animation
	spec.StateMachine = e.StateMachine
	if e.Autoplay != nil {
		spec.Autoplay = *e.Autoplay
	}

	var err error
	if e.Fit != "" {
		if spec.Fit, err = rive.ParseFit(e.Fit); err != nil {
			return rive.AnimationSpec{}, err
		}
	}
	if e.Alignment != "" {
		if spec.Alignment, err = rive.ParseAlignment(e.Alignment); err != nil {
			return rive.AnimationSpec{}, err
		}
	}
	if e.Loop != "" {
		if spec.Loop, err = rive.ParseLoop(e.Loop); err != nil {
			return rive.AnimationSpec{}, err
		}
	}
	return spec, nil
}

// Spec returns the named animation spec.
func (c *Catalog) Spec(name string) (rive.AnimationSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

// Names returns the catalog's slot names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.specs))
	for name := range c.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.specs)
}
