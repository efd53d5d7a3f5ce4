package handler

import (
	"FlowVault/internal/service"
	"FlowVault/utils"
	"log"

	"github.com/gin-gonic/gin"
)

// failWith maps a service error into the JSON envelope. Internal
// causes are logged, never echoed to the client.
func failWith(c *gin.Context, err error) {
	svcErr := service.AsServiceError(err)
	if svcErr.Err != nil {
		log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, svcErr.Code, svcErr.Err)
	}
	utils.Fail(c, svcErr.HTTPCode, svcErr.Code, svcErr.Message)
}

// currentUserID returns the authenticated user set by the middleware.
func currentUserID(c *gin.Context) string {
	return c.MustGet("user_id").(string)
}
