//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/scapet/scapet-go/internal/bootstrap"
	"github.com/scapet/scapet-go/internal/infra/config"
	"github.com/scapet/scapet-go/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAPIClient,
		provideSessionStore,
		provideSessionManager,
		provideGuideService,
		bootstrap.NewApp,
	)
	return nil, nil
}
