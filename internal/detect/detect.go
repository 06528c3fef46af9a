// Package detect finds running games by matching system processes against
// the configured game profiles.
package detect

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/hexlab/tacboard/internal/config"
)

// ProcessInfo is the slice of process state detection cares about.
type ProcessInfo struct {
	PID  int32
	Name string
}

// Lister enumerates running processes. The system lister is backed by
// gopsutil; tests substitute a fixed list.
type Lister interface {
	Processes() ([]ProcessInfo, error)
}

// SystemLister lists real processes on the host.
type SystemLister struct{}

func (SystemLister) Processes() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Processes can exit mid-scan or deny access.
			continue
		}
		infos = append(infos, ProcessInfo{PID: p.Pid, Name: name})
	}
	return infos, nil
}

// Match pairs a running process with the profile it satisfied.
type Match struct {
	Profile *config.Profile
	PID     int32
	Process string
}

// Detector matches processes against game profiles.
type Detector struct {
	lister   Lister
	profiles *config.ProfileSet
}

// New creates a detector over the system process list.
func New(profiles *config.ProfileSet) *Detector {
	return &Detector{lister: SystemLister{}, profiles: profiles}
}

// SetLister substitutes the process source, for tests.
func (d *Detector) SetLister(l Lister) {
	d.lister = l
}

// RunningGames scans processes and returns one match per detected profile.
// Process names compare case-insensitively.
func (d *Detector) RunningGames() ([]Match, error) {
	procs, err := d.lister.Processes()
	if err != nil {
		return nil, err
	}

	var matches []Match
	for i := range d.profiles.Profiles {
		p := &d.profiles.Profiles[i]
		if m, ok := matchProfile(p, procs); ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// FirstRunning returns the first detected game, if any.
func (d *Detector) FirstRunning() (Match, bool, error) {
	matches, err := d.RunningGames()
	if err != nil || len(matches) == 0 {
		return Match{}, false, err
	}
	return matches[0], true, nil
}

func matchProfile(p *config.Profile, procs []ProcessInfo) (Match, bool) {
	for _, want := range p.Processes {
		for _, proc := range procs {
			if strings.EqualFold(proc.Name, want) {
				return Match{Profile: p, PID: proc.PID, Process: proc.Name}, true
			}
		}
	}
	return Match{}, false
}
