package route

import (
	"github.com/gin-gonic/gin"
	"github.com/lam0glia/video-gateway/http/handler"
)

func videoRouter(r gin.IRouter, h *handler.Video) {
	r.GET("/video", h.Stream)
}
