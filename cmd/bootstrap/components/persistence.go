package components

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/infra/uow"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork owns every repository and the read store.
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)
