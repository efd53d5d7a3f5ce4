package router

import (
	"FlowVault/config"
	"FlowVault/internal/handler"
	"FlowVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handler.Register)
			auth.GET("/activate", handler.Activate)
			auth.POST("/login", handler.Login)
		}

		protected := api.Group("")
		protected.Use(utils.AuthMiddleware())
		{
			protected.POST("/upload", handler.UploadFile)
			protected.GET("/files", handler.ListFiles)
			protected.GET("/files/:identifier", handler.GetFile)
			protected.DELETE("/files/:identifier", handler.DeleteFile)
			protected.GET("/download/:identifier", handler.DownloadFile)
			protected.GET("/preview/:identifier", handler.PreviewFile)

			protected.POST("/keys", handler.CreateKey)
			protected.GET("/keys", handler.ListKeys)
			protected.DELETE("/keys/:id", handler.RevokeKey)

			protected.GET("/profile", handler.GetProfile)
			protected.PATCH("/profile", handler.UpdateProfile)
			protected.PUT("/profile/picture", handler.UploadProfilePicture)
			protected.DELETE("/profile", handler.DeleteAccount)

			protected.POST("/uploads/session", handler.CreateUploadSession)
			protected.GET("/uploads/session/:id", handler.GetUploadSession)
			protected.DELETE("/uploads/session/:id", handler.CloseUploadSession)

			protected.POST("/files/:identifier/share", handler.ShareFile)
		}
		api.GET("/share/:token", handler.ShareDownload)

		admin := api.Group("/admin")
		admin.Use(utils.AdminMiddleware(config.AppConfig.AdminAPIKey))
		{
			admin.POST("/cleanup", handler.Cleanup)
		}
	}
	return r
}
