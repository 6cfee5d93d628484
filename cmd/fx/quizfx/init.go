package quizfx

import (
	"go.uber.org/fx"

	"quizfunnel/internal/repositories"
	"quizfunnel/internal/services"
)

var Module = fx.Options(
	fx.Provide(services.ProvideQuestionBank),
	fx.Provide(repositories.NewResultRepository),
	fx.Provide(services.NewQuizService))
