package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/config"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/inference"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/session"
)

type App struct {
	Config *config.Config
	Model  *inference.Model

	StartedAt time.Time
}

// New loads configuration and the model. A process whose model cannot
// load must not accept traffic, so any load failure aborts startup.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	model := inference.New(cfg.Model.Path, cfg.Model.MetadataPath, cfg.Model.ONNXSharedLibPath)
	if err := model.EnsureLoaded(); err != nil {
		return nil, fmt.Errorf("load model failed: %w", err)
	}

	return &App{
		Config:    cfg,
		Model:     model,
		StartedAt: time.Now(),
	}, nil
}

// SessionStore builds the dashboard state store for the configured
// backend. Only the dashboard process calls this.
func (a *App) SessionStore(ctx context.Context) (session.Store, error) {
	switch a.Config.Session.Backend {
	case "redis":
		client, err := session.Dial(ctx, a.Config.Redis.Addr, a.Config.Redis.Password, a.Config.Redis.DB)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, a.Config.SessionTTL()), nil
	case "", "memory":
		return session.NewMemoryStore(a.Config.SessionTTL()), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", a.Config.Session.Backend)
	}
}

func (a *App) Close() error {
	if a.Model != nil {
		return a.Model.Close()
	}
	return nil
}
