package main

import (
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/scapet/scapet-go/internal/domain/guide"
	"github.com/scapet/scapet-go/internal/domain/session"
	"github.com/scapet/scapet-go/internal/infra/api"
	"github.com/scapet/scapet-go/internal/infra/config"
	"github.com/scapet/scapet-go/internal/infra/sessionstore"
)

func provideAPIClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		logger.Info("session persistence disabled, using memory store")
		return sessionstore.NewMemoryStore(), nil
	case config.BackendValkey:
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{cfg.Session.Valkey.Addr},
		})
		if err != nil {
			return nil, fmt.Errorf("connect valkey session store: %w", err)
		}
		return sessionstore.NewValkeyStore(client, cfg.Session.Valkey.Key, cfg.Session.Valkey.TTL), nil
	default:
		path := cfg.Session.Path
		if path == "" {
			resolved, err := sessionstore.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = resolved
		}
		return sessionstore.NewFileStore(path), nil
	}
}

// provideSessionManager also closes the construction loop: the transport
// needs the manager for tokens and the unauthorized signal, while the
// manager calls the API surfaces built on that same transport.
func provideSessionManager(client *api.Client, store session.Store, logger *slog.Logger) session.Manager {
	mgr := session.NewManager(store, api.NewAuthAPI(client), api.NewProfileAPI(client), logger)
	client.SetTokenSource(mgr)
	client.SetUnauthorizedHandler(mgr.HandleUnauthorized)
	return mgr
}

func provideGuideService(cfg *config.Config, client *api.Client, sessions session.Manager, logger *slog.Logger) guide.Service {
	return guide.NewService(api.NewGuideAPI(client, cfg.API.GuideTimeout), sessions, logger)
}
