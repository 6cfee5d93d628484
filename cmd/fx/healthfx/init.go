package healthfx

import (
	"go.uber.org/fx"

	"quizfunnel/internal/services"
)

var Module = fx.Options(
	fx.Provide(services.NewHealthService))
