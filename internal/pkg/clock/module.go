package clock

import "go.uber.org/fx"

// Module wires the system clock for dependency injection.
var Module = fx.Provide(func() Clock { return System() })
