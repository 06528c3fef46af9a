package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hexlab/tacboard/internal/geometry"
)

// Profile describes one supported game: which processes identify it and
// where its minimap usually sits on screen.
type Profile struct {
	Name      string   `yaml:"name"`
	Processes []string `yaml:"processes"`
	Crop      struct {
		X      float64 `yaml:"x"`
		Y      float64 `yaml:"y"`
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"crop"`
	Palette []string `yaml:"palette"`
}

// CropRect returns the profile's default capture zone.
func (p *Profile) CropRect() geometry.Rect {
	return geometry.Rect{X: p.Crop.X, Y: p.Crop.Y, Width: p.Crop.Width, Height: p.Crop.Height}
}

// ProfileSet is the parsed profiles.yaml.
type ProfileSet struct {
	Profiles []Profile `yaml:"profiles"`
}

// ByName looks a profile up by its display name.
func (ps *ProfileSet) ByName(name string) (*Profile, bool) {
	for i := range ps.Profiles {
		if ps.Profiles[i].Name == name {
			return &ps.Profiles[i], true
		}
	}
	return nil, false
}

// LoadProfiles reads the game profile list. A missing file yields an empty
// set rather than an error so the app runs without one.
func LoadProfiles(path string) (*ProfileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProfileSet{}, nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	return ParseProfiles(data)
}

// ParseProfiles decodes profile yaml and validates crop dimensions.
func ParseProfiles(data []byte) (*ProfileSet, error) {
	var ps ProfileSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	for i := range ps.Profiles {
		p := &ps.Profiles[i]
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d has no name", i)
		}
		if p.Crop.Width < 0 || p.Crop.Height < 0 {
			return nil, fmt.Errorf("profile %q has a negative crop size", p.Name)
		}
		for _, spec := range p.Palette {
			if _, err := ParseColor(spec); err != nil {
				return nil, fmt.Errorf("profile %q: %w", p.Name, err)
			}
		}
	}
	return &ps, nil
}
