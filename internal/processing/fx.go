package processing

import (
	"github.com/unitycompany/fidelidade-fast/internal/processing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("processing.service",
	fx.Provide(service.New),
)
