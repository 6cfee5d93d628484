package trackingfx

import (
	"go.uber.org/fx"

	"quizfunnel/internal/repositories"
	"quizfunnel/internal/services"
	"quizfunnel/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(repositories.NewEventRepository),
	fx.Provide(utils.NewPixelClient),
	fx.Provide(services.NewTrackingService))
