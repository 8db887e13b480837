package recordings

import (
	"github.com/gin-gonic/gin"

	"readaloud/internal/recorder"
)

// RegisterRoutes registers the recording workflow routes
func RegisterRoutes(g *gin.RouterGroup, svc *recorder.Service) {
	ctl := &Controller{svc: svc}

	g.GET("/", ctl.GetIndex)
	g.GET("/sentences", ctl.GetSentences)
	g.POST("/upload-sentences", ctl.UploadSentences)
	g.POST("/upload-audio", ctl.UploadAudio)
	g.GET("/download-recordings", ctl.DownloadRecordings)
}
