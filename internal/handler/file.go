package handler

import (
	"FlowVault/config"
	"FlowVault/internal/service"
	"FlowVault/utils"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListFiles returns one page of the caller's files.
func ListFiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := service.ListFiles(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, response)
}

// GetFile returns a single record resolved by identifier.
func GetFile(c *gin.Context) {
	record, err := service.GetFile(c.Request.Context(), c.Param("identifier"), currentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"file": service.ToFileView(record)})
}

// DeleteFile removes a record and its object.
func DeleteFile(c *gin.Context) {
	if err := service.DeleteFile(c.Request.Context(), c.Param("identifier"), currentUserID(c)); err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"deleted": true})
}

// DownloadFile streams the object as an attachment. Unlike the other
// file endpoints this one reports a denial when an exact ID resolves
// to a foreign record.
func DownloadFile(c *gin.Context) {
	record, err := service.ResolveFileStrict(c.Param("identifier"), currentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	if err := service.Reconcile(c.Request.Context(), record); err != nil {
		failWith(c, err)
		return
	}

	object, info, err := service.DownloadObject(c.Request.Context(), record.StorageKey)
	if err != nil {
		failWith(c, service.ErrInternal.Wrap(err))
		return
	}
	defer object.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = service.GetContentType(record.OriginalName)
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", utils.AttachmentDisposition(record.OriginalName))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	if info.Size > 0 {
		c.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	}
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, object); err != nil {
		log.Println("download stream failed:", record.StorageKey, err)
	}
}

// PreviewFile redirects to a short-lived inline URL for previewable
// types.
func PreviewFile(c *gin.Context) {
	record, err := service.GetFile(c.Request.Context(), c.Param("identifier"), currentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	if !service.IsPreviewable(record.OriginalName) {
		failWith(c, service.ErrPreviewUnsupported)
		return
	}

	url, err := service.SignedInlineURL(
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
