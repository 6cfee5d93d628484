package accountfx

import (
	"go.uber.org/fx"

	"quizfunnel/internal/repositories"
	"quizfunnel/internal/services"
)

var Module = fx.Options(
	fx.Provide(repositories.NewAccountRepository),
	fx.Provide(services.NewAccountService))
