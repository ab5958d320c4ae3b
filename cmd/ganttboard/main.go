package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdao/ganttboard/internal/app"
	"github.com/tdao/ganttboard/internal/credential"
	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/store"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("ganttboard %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if len(os.Args) > 2 && os.Args[1] == "--remove-source" {
		if err := removeSource(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing source: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dbPath := filepath.Join(filepath.Dir(cfgPath), "ganttboard.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	p := tea.NewProgram(app.New(s, cfg, cfgPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// removeSource drops a source from the config file and deletes its
// stored credentials from the keyring.
func removeSource(id string) error {
	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	kept := cfg.Sources[:0]
	found := false
	for _, src := range cfg.Sources {
		if src.ID == id {
			found = true
			continue
		}
		kept = append(kept, src)
	}
	if !found {
		return fmt.Errorf("no source with id %q", id)
	}
	cfg.Sources = kept

	if err := model.SaveConfig(cfgPath, cfg); err != nil {
		return err
	}
	if err := credential.DeleteToken(id); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Printf("Removed source %s\n", id)
	return nil
}
