package redemption

import (
	"github.com/unitycompany/fidelidade-fast/internal/redemption/repository"
	"github.com/unitycompany/fidelidade-fast/internal/redemption/service"
	"go.uber.org/fx"
)

var Module = fx.Module("redemption.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
