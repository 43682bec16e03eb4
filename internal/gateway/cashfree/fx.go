package cashfree

import (
	"github.com/smallbiznis/givehope/internal/config"
	"go.uber.org/fx"
)

// Module provides the Cashfree gateway client.
var Module = fx.Module("gateway.cashfree",
	fx.Provide(func(cfg config.Config) API {
		return NewClient(cfg.Gateway)
	}),
)
