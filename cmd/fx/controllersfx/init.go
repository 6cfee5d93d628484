package controllersfx

import (
	"go.uber.org/fx"

	"quizfunnel/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewQuizController),
	fx.Provide(controllers.NewEditorController),
	fx.Provide(controllers.NewFunnelController),
	fx.Provide(controllers.NewTrackingController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewHealthController))
