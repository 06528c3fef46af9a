// Package config loads and saves user settings (Settings.ini) and the
// per-game overlay profiles (profiles.yaml).
package config

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/ini.v1"

	"github.com/hexlab/tacboard/internal/geometry"
)

// Settings holds everything persisted between sessions, including the
// confirmed crop region.
type Settings struct {
	// Capture zone, in source pixels.
	Crop geometry.Rect

	// Active game profile name, empty for manual capture.
	Game string

	// Drawing defaults.
	StrokeColor string
	StrokeWidth float64

	// Analysis exporter.
	AnalysisEnabled  bool
	AnalysisEndpoint string
	AnalysisInterval int // seconds

	// Alert delivery.
	NotifyEnabled bool
	SpeechEnabled bool

	// Misc.
	LogLevel     string
	WindowWidth  int
	WindowHeight int
	DatabasePath string
	ProfilesPath string
}

// DefaultSettings returns the settings used when no Settings.ini exists.
func DefaultSettings() *Settings {
	return &Settings{
		Crop:             geometry.Rect{X: 0, Y: 0, Width: 300, Height: 300},
		StrokeColor:      "red",
		StrokeWidth:      3,
		AnalysisEnabled:  false,
		AnalysisEndpoint: "",
		AnalysisInterval: 30,
		NotifyEnabled:    true,
		SpeechEnabled:    false,
		LogLevel:         "INFO",
		WindowWidth:      1200,
		WindowHeight:     800,
		DatabasePath:     "tacboard.db",
		ProfilesPath:     "profiles.yaml",
	}
}

// LoadFromINI reads settings from an ini file, falling back to defaults for
// missing keys.
func LoadFromINI(path string) (*Settings, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings file: %w", err)
	}
	def := DefaultSettings()
	section := cfg.Section("UserSettings")

	s := &Settings{}
	s.Crop.X = section.Key("cropX").MustFloat64(def.Crop.X)
	s.Crop.Y = section.Key("cropY").MustFloat64(def.Crop.Y)
	s.Crop.Width = section.Key("cropWidth").MustFloat64(def.Crop.Width)
	s.Crop.Height = section.Key("cropHeight").MustFloat64(def.Crop.Height)

	s.Game = section.Key("game").MustString("")
	s.StrokeColor = section.Key("strokeColor").MustString(def.StrokeColor)
	s.StrokeWidth = section.Key("strokeWidth").MustFloat64(def.StrokeWidth)

	s.AnalysisEnabled = section.Key("analysisEnabled").MustBool(def.AnalysisEnabled)
	s.AnalysisEndpoint = section.Key("analysisEndpoint").MustString(def.AnalysisEndpoint)
	s.AnalysisInterval = section.Key("analysisIntervalSec").MustInt(def.AnalysisInterval)

	s.NotifyEnabled = section.Key("notifyEnabled").MustBool(def.NotifyEnabled)
	s.SpeechEnabled = section.Key("speechEnabled").MustBool(def.SpeechEnabled)

	s.LogLevel = section.Key("logLevel").MustString(def.LogLevel)
	s.WindowWidth = section.Key("windowWidth").MustInt(def.WindowWidth)
	s.WindowHeight = section.Key("windowHeight").MustInt(def.WindowHeight)
	s.DatabasePath = section.Key("databasePath").MustString(def.DatabasePath)
	s.ProfilesPath = section.Key("profilesPath").MustString(def.ProfilesPath)

	return s, nil
}

// SaveToINI writes settings back to an ini file.
func SaveToINI(s *Settings, path string) error {
	cfg := ini.Empty()
	section := cfg.Section("UserSettings")

	section.Key("cropX").SetValue(fmt.Sprintf("%g", s.Crop.X))
	section.Key("cropY").SetValue(fmt.Sprintf("%g", s.Crop.Y))
	section.Key("cropWidth").SetValue(fmt.Sprintf("%g", s.Crop.Width))
	section.Key("cropHeight").SetValue(fmt.Sprintf("%g", s.Crop.Height))

	section.Key("game").SetValue(s.Game)
	section.Key("strokeColor").SetValue(s.StrokeColor)
	section.Key("strokeWidth").SetValue(fmt.Sprintf("%g", s.StrokeWidth))

	section.Key("analysisEnabled").SetValue(fmt.Sprintf("%t", s.AnalysisEnabled))
	section.Key("analysisEndpoint").SetValue(s.AnalysisEndpoint)
	section.Key("analysisIntervalSec").SetValue(fmt.Sprintf("%d", s.AnalysisInterval))

	section.Key("notifyEnabled").SetValue(fmt.Sprintf("%t", s.NotifyEnabled))
	section.Key("speechEnabled").SetValue(fmt.Sprintf("%t", s.SpeechEnabled))

	section.Key("logLevel").SetValue(s.LogLevel)
	section.Key("windowWidth").SetValue(fmt.Sprintf("%d", s.WindowWidth))
	section.Key("windowHeight").SetValue(fmt.Sprintf("%d", s.WindowHeight))
	section.Key("databasePath").SetValue(s.DatabasePath)
	section.Key("profilesPath").SetValue(s.ProfilesPath)

	return cfg.SaveTo(path)
}

// ParseColor resolves a named or #rrggbb color. Unknown specs report an
// error so the toolbar can fall back to its default.
func ParseColor(spec string) (color.NRGBA, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		return color.NRGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if strings.HasPrefix(spec, "#") && len(spec) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(spec, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", spec)
		}
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q", spec)
}
