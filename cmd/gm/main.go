package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/skaldic/campaign-engine/internal/config"
	"github.com/skaldic/campaign-engine/internal/logger"
	"github.com/skaldic/campaign-engine/internal/storage"
	"github.com/skaldic/campaign-engine/pkg/seed"
	"github.com/skaldic/campaign-engine/pkg/state"
)

func main() {
	seedPath := flag.String("seed", "", "session-zero worksheet (yaml); starts a new campaign")
	name := flag.String("name", "", "name for a new campaign started without a worksheet")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	store, err := openStorage(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Storage error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Could not reach the campaign store: %v\n", err)
		os.Exit(1)
	}

	cs, id, err := openCampaign(ctx, store, *seedPath, *name, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	sess := &session{
		store:  store,
		logger: logger.WithCampaign(log, id.String()),
		id:     id,
		cs:     cs,
	}

	p := tea.NewProgram(NewConsoleUI(sess),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		return storage.NewRedisStorage(cfg.RedisURL, log)
	default:
		return storage.NewFileStorage(cfg.DataDir, log), nil
	}
}

// openCampaign resolves the three ways a session starts: from a worksheet,
// from an existing campaign id, or fresh and unnamed.
func openCampaign(ctx context.Context, store storage.Storage, seedPath, name, idArg string) (*state.CampaignState, uuid.UUID, error) {
	if seedPath != "" {
		s, err := seed.LoadFile(seedPath)
		if err != nil {
			return nil, uuid.Nil, err
		}
		cs := s.Apply()
		if err := store.SaveCampaign(ctx, cs.ID, cs); err != nil {
			return nil, uuid.Nil, err
		}
		return cs, cs.ID, nil
	}

	if idArg != "" {
		id, err := uuid.Parse(idArg)
		if err != nil {
			return nil, uuid.Nil, fmt.Errorf("not a campaign id: %q", idArg)
		}
		cs, err := store.LoadCampaign(ctx, id)
		if err != nil {
			return nil, uuid.Nil, err
		}
		if cs == nil {
			return nil, uuid.Nil, fmt.Errorf("campaign %s not found", id)
		}
		return cs, id, nil
	}

	cs := state.NewCampaignState(name)
	if err := store.SaveCampaign(ctx, cs.ID, cs); err != nil {
		return nil, uuid.Nil, err
	}
	return cs, cs.ID, nil
}
