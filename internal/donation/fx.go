package donation

import (
	"github.com/smallbiznis/givehope/internal/donation/repository"
	"github.com/smallbiznis/givehope/internal/donation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("donation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
