package customer

import (
	"github.com/unitycompany/fidelidade-fast/internal/customer/repository"
	"github.com/unitycompany/fidelidade-fast/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
