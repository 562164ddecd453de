package usecase

import (
	"go.uber.org/fx"

	"github.com/feasthq/mealdesk/internal/pkg/lock"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewStipendEngine,
	NewCapacityGovernor,
	NewOrderUseCase,
	NewReminderUseCase,
	func(l *lock.Locker) IntentLocker { return l },
)
