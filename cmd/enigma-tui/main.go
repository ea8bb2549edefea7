package main

import (
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dd0wney/cluso-enigma/pkg/config"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/session"
)

var placeholders = map[string]string{
	"m3": "* B I II III AAA",
	"m4": "* B Beta III IV I AAAA",
}

func main() {
	preset := flag.String("preset", "m4", "Built-in machine to load")
	configPath := flag.String("config", "", "Machine description file (overrides -preset)")
	logFile := flag.String("log-file", "", "Write logs to this file")
	flag.Parse()

	var (
		desc *config.Description
		err  error
	)
	if *configPath != "" {
		desc, err = config.Load(*configPath)
	} else {
		desc, err = config.Preset(*preset)
	}
	if err != nil {
		log.Fatalf("Failed to load machine: %v", err)
	}

	// The terminal belongs to the UI, so logs only go to a file.
	var logger logging.Logger = logging.NewNopLogger()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = logging.NewFromEnv(f, logging.JSONFormat, logging.InfoLevel)
	}

	p, err := session.New(desc, session.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to build machine: %v", err)
	}

	placeholder, ok := placeholders[*preset]
	if !ok || *configPath != "" {
		placeholder = "* REFLECTOR ROTORS... POSITIONS (AB) ..."
	}

	prog := tea.NewProgram(initialModel(p, placeholder), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
