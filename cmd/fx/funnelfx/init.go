package funnelfx

import (
	"go.uber.org/fx"

	"quizfunnel/internal/repositories"
	"quizfunnel/internal/services"
)

var Module = fx.Options(
	fx.Provide(repositories.NewFunnelRepository),
	fx.Provide(services.NewFunnelService))
