package order

import (
	"github.com/unitycompany/fidelidade-fast/internal/order/repository"
	"github.com/unitycompany/fidelidade-fast/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
