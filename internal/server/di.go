package server

import (
	"github.com/google/wire"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/biz"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/data"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/narrative"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/service"
)

// ProviderSet 是服务端的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewProjectRepo,
	data.NewTaskRepo,
	data.NewReportRepo,

	// Narrative providers
	narrative.NewProvider,

	// UseCase providers
	biz.NewProjectUseCase,
	biz.NewTaskUseCase,
	biz.NewReportUseCase,

	// Service providers
	service.NewPMService,
)
