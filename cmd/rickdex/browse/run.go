package browse

import (
	"context"
	"errors"
	"fmt"

	"rickdex/internal/api"
	"rickdex/internal/catalog"
	"rickdex/internal/config"
	"rickdex/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run starts the interactive browser and blocks until the user quits.
// Edits to the config file at cfgPath are applied while it runs.
func Run(ctx context.Context, client *api.Client, cfg *config.Config, cfgPath string) error {
	log := logging.Get(logging.CategoryUI)
	b := catalog.NewBrowser(client, catalog.WithSearchDelay(cfg.GetSearchDelay()))

	p := tea.NewProgram(
		New(ctx, b, client, cfg.Browse.Theme),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	b.SetObserver(func(s catalog.State) { p.Send(StateMsg(s)) })

	if cfgPath != "" {
		w, err := config.NewWatcher(cfgPath, logging.Get(logging.CategoryBoot), func(c *config.Config) {
			p.Send(ConfigMsg{Config: c})
		})
		if err != nil {
			log.Debug("config watch disabled", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	log.Info("browser started", zap.String("api", client.BaseURL()))
	_, err := p.Run()
	b.Close()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("browse: %w", err)
	}
	log.Info("browser closed")
	return nil
}
