package main

import (
	"log"

	"fyne.io/fyne/v2/app"

	"github.com/hexlab/tacboard/internal/capture"
	"github.com/hexlab/tacboard/internal/config"
	"github.com/hexlab/tacboard/internal/database"
	"github.com/hexlab/tacboard/internal/detect"
	"github.com/hexlab/tacboard/internal/gui"
	"github.com/hexlab/tacboard/internal/logging"
)

const settingsPath = "Settings.ini"

func main() {
	myApp := app.NewWithID("com.hexlab.tacboard")
	myApp.Settings().SetTheme(&gui.OverlayTheme{})

	mainWindow := myApp.NewWindow("Tacboard")
	mainWindow.Resize(gui.DefaultWindowSize)

	settings, err := config.LoadFromINI(settingsPath)
	if err != nil {
		log.Printf("Warning: Failed to load settings: %v", err)
		settings = config.DefaultSettings()
	}
	logging.SetDefaultLevel(logging.ParseLevel(settings.LogLevel))

	profiles, err := config.LoadProfiles(settings.ProfilesPath)
	if err != nil {
		log.Printf("Warning: Failed to load profiles: %v", err)
		profiles = &config.ProfileSet{}
	}

	source := capture.NewSource()
	source.SetCacheDuration(capture.DefaultCacheDuration)
	attachSource(source, settings, profiles)

	db, err := database.Open(settings.DatabasePath)
	if err != nil {
		log.Printf("Warning: Failed to open database: %v", err)
		db = nil
	} else if err := db.RunMigrations(); err != nil {
		log.Printf("Warning: Failed to migrate database: %v", err)
		db.Close()
		db = nil
	}

	controller := gui.NewController(settings, myApp, mainWindow, source, db)

	mainWindow.SetContent(controller.BuildUI())
	mainWindow.SetMaster()
	controller.Start()
	mainWindow.ShowAndRun()

	controller.Shutdown(settingsPath)
}

// attachSource picks a capturer: the detected game's window on Windows, a
// moving test pattern everywhere else so the overlay is usable headless.
func attachSource(source *capture.Source, settings *config.Settings, profiles *config.ProfileSet) {
	detector := detect.New(profiles)
	if match, ok, err := detector.FirstRunning(); err == nil && ok {
		settings.Game = match.Profile.Name
		if !match.Profile.CropRect().Empty() && settings.Crop.Empty() {
			settings.Crop = match.Profile.CropRect()
		}
		if cap := platformCapturer(match); cap != nil {
			source.Attach(cap)
			return
		}
	}
	source.Attach(capture.NewTestPattern(1920, 1080))
}
