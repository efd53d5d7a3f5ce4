package handler

import (
	"FlowVault/internal/dto"
	"FlowVault/internal/service"
	"FlowVault/utils"

	"github.com/gin-gonic/gin"
)

// CreateKey mints a new API key and returns the raw key.
func CreateKey(c *gin.Context) {
	var req dto.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		failWith(c, service.ErrInvalidMetadata.Wrap(err))
		return
	}

	view, err := service.CreateApiKey(c.Request.Context(), currentUserID(c), req.Name)
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"key": view})
}

// ListKeys returns the caller's keys. Active keys carry the decrypted
// raw key so a holder can recover it; revoked keys do not.
func ListKeys(c *gin.Context) {
	views, err := service.ListApiKeys(currentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"keys": views})
}

// RevokeKey retires a key.
func RevokeKey(c *gin.Context) {
	if err := service.RevokeApiKey(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"revoked": true})
}
