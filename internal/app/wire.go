//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"strokerisk/internal/config"

	"github.com/google/wire"
)

func buildAppWithWire(ctx context.Context, cfg *config.Config) (*App, error) {
	wire.Build(providerSet)
	return nil, nil
}
