package prize

import (
	"github.com/unitycompany/fidelidade-fast/internal/prize/repository"
	"github.com/unitycompany/fidelidade-fast/internal/prize/service"
	"go.uber.org/fx"
)

var Module = fx.Module("prize.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
