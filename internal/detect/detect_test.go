package detect

import (
	"errors"
	"testing"

	"github.com/hexlab/tacboard/internal/config"
)

type fixedLister struct {
	procs []ProcessInfo
	err   error
}

func (f fixedLister) Processes() ([]ProcessInfo, error) { return f.procs, f.err }

func testProfiles() *config.ProfileSet {
	return &config.ProfileSet{Profiles: []config.Profile{
		{Name: "summoners-rift", Processes: []string{"League of Legends.exe"}},
		{Name: "dota", Processes: []string{"dota2.exe", "dota2"}},
	}}
}

func TestRunningGamesMatchesCaseInsensitively(t *testing.T) {
	d := New(testProfiles())
	d.SetLister(fixedLister{procs: []ProcessInfo{
		{PID: 10, Name: "explorer.exe"},
		{PID: 42, Name: "league of legends.EXE"},
	}})

	matches, err := d.RunningGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Profile.Name != "summoners-rift" || matches[0].PID != 42 {
		t.Errorf("match = %+v", matches[0])
	}
}

func TestRunningGamesMatchesAnyListedProcess(t *testing.T) {
	d := New(testProfiles())
	d.SetLister(fixedLister{procs: []ProcessInfo{{PID: 7, Name: "dota2"}}})

	m, ok, err := d.FirstRunning()
	if err != nil {
		t.Fatal(err)
	}
	if !ok || m.Profile.Name != "dota" {
		t.Fatalf("FirstRunning = %+v, ok=%t", m, ok)
	}
}

func TestRunningGamesNoMatches(t *testing.T) {
	d := New(testProfiles())
	d.SetLister(fixedLister{procs: []ProcessInfo{{PID: 1, Name: "init"}}})

	matches, err := d.RunningGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %d matches, want none", len(matches))
	}
	if _, ok, _ := d.FirstRunning(); ok {
		t.Error("FirstRunning reported a match")
	}
}

func TestRunningGamesPropagatesListerError(t *testing.T) {
	d := New(testProfiles())
	d.SetLister(fixedLister{err: errors.New("scan failed")})

	if _, err := d.RunningGames(); err == nil {
		t.Fatal("expected error from lister")
	}
}
