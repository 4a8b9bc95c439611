package web

import (
	"go.uber.org/zap"

	"github.com/verdix/verdix/internal/config"
)

type webService struct {
	server *server
	config *config.Config
	log    *zap.Logger
}

func newWebService(server *server, module string) webService {
	return webService{server, server.config, server.logger.Named(module)}
}
