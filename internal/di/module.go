package di

import (
	"go.uber.org/fx"

	"github.com/feasthq/mealdesk/internal/adapter/mailer"
	"github.com/feasthq/mealdesk/internal/adapter/payment"
	"github.com/feasthq/mealdesk/internal/app"
	"github.com/feasthq/mealdesk/internal/config"
	"github.com/feasthq/mealdesk/internal/logger"
	"github.com/feasthq/mealdesk/internal/pkg/auth"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
	"github.com/feasthq/mealdesk/internal/pkg/lock"
	"github.com/feasthq/mealdesk/internal/server/http/handlers"
	"github.com/feasthq/mealdesk/internal/server/http/router"
	"github.com/feasthq/mealdesk/internal/storage/postgres"
	"github.com/feasthq/mealdesk/internal/usecase"
)

// Module composes every application module into one fx option set. Extra
// options are appended last so tests can override individual components.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		clock.Module,
		auth.Module,
		lock.Module,
		postgres.Module,
		payment.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketplaceFacade) handlers.MarketplaceFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
