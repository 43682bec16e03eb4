package payment

import (
	"github.com/smallbiznis/givehope/internal/payment/repository"
	"github.com/smallbiznis/givehope/internal/payment/service"
	"github.com/smallbiznis/givehope/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(webhook.New),
)
