package main

import (
	"fmt"
	"os"

	"focusflow/internal/audio"
	"focusflow/internal/cli"
	"focusflow/internal/clock"
	"focusflow/internal/config"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Create repository based on environment
	factory := NewStoreFactory(getEnvironment(), cfg)
	repo, err := factory.CreateRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating repository: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	// Decode the sound catalog off the startup path. Starting a session is
	// held until it finishes; the home screen shows a preparing state.
	notifier := audio.NewService(audio.NewSpeakerOutput())
	go notifier.Initialize(cfg.Sound.Dir)

	app := cli.NewApp(repo)
	root := cli.NewRootCommand(app, cfg, notifier, clock.SystemClock{})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
