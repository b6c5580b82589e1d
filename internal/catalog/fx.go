package catalog

import (
	"github.com/unitycompany/fidelidade-fast/internal/catalog/repository"
	"github.com/unitycompany/fidelidade-fast/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
