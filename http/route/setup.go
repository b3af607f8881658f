package route

import (
	"github.com/gin-gonic/gin"
	"github.com/lam0glia/video-gateway/bootstrap"
	"github.com/lam0glia/video-gateway/domain"
	"github.com/lam0glia/video-gateway/http/handler"
	"github.com/lam0glia/video-gateway/http/middleware"
	"github.com/rs/zerolog"
)

func Setup(
	handler *handler.Handler,
	envName string,
	uid domain.UIDGenerator,
	logger zerolog.Logger,
) *gin.Engine {
	if envName == bootstrap.ProductionEnvironmentName {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	eng := gin.New()

	eng.SetTrustedProxies(nil)

	eng.Use(
		middleware.NewRequestID(uid, logger),
		middleware.NewAccessLog,
		gin.Recovery(),
	)

	videoRouter(eng, handler.Video)

	return eng
}
