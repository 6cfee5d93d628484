package editorfx

import (
	"go.uber.org/fx"

	"quizfunnel/internal/services"
)

var Module = fx.Options(
	fx.Provide(services.NewEditorService))
