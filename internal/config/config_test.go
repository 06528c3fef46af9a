package config

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/hexlab/tacboard/internal/geometry"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Settings.ini")

	in := DefaultSettings()
	in.Crop = geometry.Rect{X: 120, Y: 60, Width: 420, Height: 380}
	in.Game = "aram"
	in.StrokeColor = "#33cc99"
	in.StrokeWidth = 5
	in.AnalysisEnabled = true
	in.AnalysisEndpoint = "http://localhost:9900/analyze"
	in.AnalysisInterval = 10
	in.SpeechEnabled = true
	in.LogLevel = "DEBUG"

	if err := SaveToINI(in, path); err != nil {
		t.Fatalf("SaveToINI: %v", err)
	}
	out, err := LoadFromINI(path)
	if err != nil {
		t.Fatalf("LoadFromINI: %v", err)
	}

	if out.Crop != in.Crop {
		t.Errorf("crop = %+v, want %+v", out.Crop, in.Crop)
	}
	if out.Game != "aram" || out.StrokeColor != "#33cc99" || out.StrokeWidth != 5 {
		t.Errorf("drawing settings did not round-trip: %+v", out)
	}
	if !out.AnalysisEnabled || out.AnalysisEndpoint != in.AnalysisEndpoint || out.AnalysisInterval != 10 {
		t.Errorf("analysis settings did not round-trip: %+v", out)
	}
	if !out.SpeechEnabled || out.LogLevel != "DEBUG" {
		t.Errorf("misc settings did not round-trip: %+v", out)
	}
}

func TestLoadMissingKeysFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Settings.ini")
	if err := SaveToINI(&Settings{Crop: geometry.Rect{Width: 300, Height: 300}}, path); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFromINI(path)
	if err != nil {
		t.Fatal(err)
	}
	// Empty strings in the file defer to defaults on load.
	if s.StrokeColor != DefaultSettings().StrokeColor {
		t.Errorf("StrokeColor = %q", s.StrokeColor)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := LoadFromINI(filepath.Join(t.TempDir(), "nope.ini")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec    string
		want    color.NRGBA
		wantErr bool
	}{
		{spec: "red", want: color.NRGBA{R: 255, A: 255}},
		{spec: "  Lime ", want: color.NRGBA{G: 255, A: 255}},
		{spec: "#0080ff", want: color.NRGBA{G: 0x80, B: 0xff, A: 255}},
		{spec: "", wantErr: true},
		{spec: "#12", wantErr: true},
		{spec: "notacolor", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v, wantErr %t", tt.spec, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseProfiles(t *testing.T) {
	data := []byte(`
profiles:
  - name: summoners-rift
    processes: ["League of Legends.exe", "LeagueClient.exe"]
    crop: {x: 1560, y: 720, width: 360, height: 360}
    palette: ["red", "green", "#ffdd35"]
  - name: dota
    processes: ["dota2.exe"]
    crop: {x: 0, y: 780, width: 300, height: 300}
`)
	ps, err := ParseProfiles(data)
	if err != nil {
		t.Fatalf("ParseProfiles: %v", err)
	}
	if len(ps.Profiles) != 2 {
		t.Fatalf("got %d profiles", len(ps.Profiles))
	}
	p, ok := ps.ByName("summoners-rift")
	if !ok {
		t.Fatal("profile lookup failed")
	}
	want := geometry.Rect{X: 1560, Y: 720, Width: 360, Height: 360}
	if p.CropRect() != want {
		t.Errorf("crop = %+v, want %+v", p.CropRect(), want)
	}
	if _, ok := ps.ByName("starcraft"); ok {
		t.Error("unknown profile lookup succeeded")
	}
}

func TestParseProfilesRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"missing name":  "profiles:\n  - processes: [a.exe]\n",
		"bad palette":   "profiles:\n  - name: x\n    palette: [\"nope!\"]\n",
		"negative crop": "profiles:\n  - name: x\n    crop: {width: -5}\n",
		"not yaml":      "{{{{",
	}
	for name, data := range cases {
		if _, err := ParseProfiles([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadProfilesMissingFile(t *testing.T) {
	ps, err := LoadProfiles(filepath.Join(t.TempDir(), "profiles.yaml"))
	if err != nil {
		t.Fatalf("missing profiles file should not error: %v", err)
	}
	if len(ps.Profiles) != 0 {
		t.Fatalf("got %d profiles from a missing file", len(ps.Profiles))
	}
}
