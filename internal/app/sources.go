package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdao/ganttboard/internal/credential"
	"github.com/tdao/ganttboard/internal/model"
	"github.com/tdao/ganttboard/internal/source/erpnext"
)

// sourcesRegisteredMsg is sent when all configured sources have been
// registered with the refresher.
type sourcesRegisteredMsg struct {
	count int

	// First enabled source, used to pick what to show on startup.
	sourceID       string
	defaultProject string
}

// registerSources builds an adapter for each enabled source in the
// configuration and registers it with the refresher. API credentials
// are loaded from the system keyring.
func (m *Model) registerSources() tea.Cmd {
	cfg := m.cfg
	r := m.refresher

	return func() tea.Msg {
		msg := sourcesRegisteredMsg{}
		for _, src := range cfg.Sources {
			if !src.Enabled {
				continue
			}

			adapter := createAdapter(src)
			if adapter == nil {
				continue
			}
			r.RegisterSource(adapter, src)
			msg.count++
			if msg.sourceID == "" {
				msg.sourceID = src.ID
				msg.defaultProject = src.DefaultProject
			}
		}
		return msg
	}
}

// createAdapter builds an ERPNext adapter from a source configuration,
// loading the token pair from the system keyring.
func createAdapter(src model.SourceConfig) *erpnext.Adapter {
	token, err := credential.GetToken(src.ID)
	if err != nil {
		log.Printf(
			"skipping source %q (%s): credential not found: %v",
			src.Name, src.ID, err,
		)
		return nil
	}

	return erpnext.NewAdapter(src, token.Key, token.Secret)
}
