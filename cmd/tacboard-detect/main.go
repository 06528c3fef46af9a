// Command tacboard-detect lists detected games and capturable windows,
// for checking profiles without launching the overlay.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hexlab/tacboard/internal/config"
	"github.com/hexlab/tacboard/internal/detect"
)

func main() {
	profilesPath := flag.String("profiles", "profiles.yaml", "path to the game profiles file")
	listWindows := flag.Bool("windows", false, "also list capturable windows")
	flag.Parse()

	profiles, err := config.LoadProfiles(*profilesPath)
	if err != nil {
		log.Fatalf("Failed to load profiles: %v", err)
	}
	if len(profiles.Profiles) == 0 {
		fmt.Println("No profiles configured.")
	}

	detector := detect.New(profiles)
	matches, err := detector.RunningGames()
	if err != nil {
		log.Fatalf("Failed to scan processes: %v", err)
	}

	if len(matches) == 0 {
		fmt.Println("No configured games are running.")
	}
	for _, m := range matches {
		crop := m.Profile.CropRect()
		fmt.Printf("%-20s pid=%-8d process=%s crop=%gx%g@%g,%g\n",
			m.Profile.Name, m.PID, m.Process, crop.Width, crop.Height, crop.X, crop.Y)
	}

	if *listWindows {
		windows, err := detect.ListWindows()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Window listing unavailable: %v\n", err)
			return
		}
		for _, w := range windows {
			fmt.Printf("hwnd=%#x %dx%d@%d,%d  %s\n", w.Handle, w.Width, w.Height, w.X, w.Y, w.Title)
		}
	}
}
