package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/feasthq/mealdesk/internal/config"
)

// Module exposes the mailer implementation to the fx graph.
var Module = fx.Provide(newMailer)

type mailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newMailer(p mailerParams) (Mailer, error) {
	return NewHTTPClient(p.Config.MailAPIBase, p.Config.MailAPIKey, p.Config.MailFrom, p.Logger)
}
