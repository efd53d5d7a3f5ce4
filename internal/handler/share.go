package handler

import (
	"FlowVault/config"
	"FlowVault/internal/service"
	"FlowVault/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createShareRequest struct {
	ExpireDays int     `json:"expire_days"`
	SharedWith *string `json:"shared_with"`
}

// ShareFile issues a share token for one of the caller's files.
func ShareFile(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		failWith(c, service.ErrInvalidMetadata.Wrap(err))
		return
	}

	share, err := service.CreateShare(
		c.Request.Context(),
		currentUserID(c),
		c.Param("identifier"),
		req.ExpireDays,
		req.SharedWith,
	)
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"share": share})
}

// ShareDownload redirects a share token to a signed download URL.
// No authentication: the token is the capability.
func ShareDownload(c *gin.Context) {
	_, record, err := service.ResolveShare(c.Request.Context(), c.Param("token"))
	if err != nil {
		failWith(c, err)
		return
	}
	if err := service.Reconcile(c.Request.Context(), record); err != nil {
		failWith(c, err)
		return
	}

	url, err := service.SignedDownloadURL(
		c.Request.Context(),
		record.StorageKey,
		record.OriginalName,
		config.AppConfig.SignedURLTTL,
	)
	if err != nil {
		failWith(c, service.ErrInternal.Wrap(err))
		return
	}
	c.Redirect(http.StatusFound, url)
}
