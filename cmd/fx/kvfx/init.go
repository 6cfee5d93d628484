package kvfx

import (
	"go.uber.org/fx"

	"quizfunnel/pkg/kvstore"
	"quizfunnel/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideStore),
	fx.Provide(utils.NewUUIDGenerator))

func provideStore() kvstore.Store {
	return kvstore.NewInMemoryStore()
}
