package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// CommandSpeaker reads alerts aloud through the platform speech command,
// espeak on Linux and say on macOS.
type CommandSpeaker struct{}

// NewSpeaker returns the platform speaker, or an error when no speech
// command exists for this OS.
func NewSpeaker() (Speaker, error) {
	switch runtime.GOOS {
	case "linux", "darwin":
		return CommandSpeaker{}, nil
	default:
		return nil, fmt.Errorf("speech is not supported on %s", runtime.GOOS)
	}
}

func (CommandSpeaker) Speak(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("say", text)
	default:
		cmd = exec.Command("espeak", text)
	}
	return cmd.Run()
}
