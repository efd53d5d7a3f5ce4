package handler

import (
	"FlowVault/config"
	"FlowVault/internal/dto"
	"FlowVault/internal/service"
	"FlowVault/utils"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadFile ingests one multipart upload. The file part is read
// with a hard size cap so oversize bodies abort before touching the
// store; trailing file parts are drained and ignored.
func UploadFile(c *gin.Context) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		failWith(c, service.ErrNoFile)
		return
	}

	var (
		fileData     []byte
		originalName string
		contentType  string
		duration     string
		seenFile     bool
	)

	for {
		part, partErr := reader.NextPart()
		if errors.Is(partErr, io.EOF) {
			break
		}
		if partErr != nil {
			failWith(c, service.ErrInvalidMetadata.Wrap(partErr))
			return
		}

		switch part.FormName() {
		case "file":
			if seenFile {
				_, _ = io.Copy(io.Discard, part)
				part.Close()
				continue
			}
			seenFile = true
			originalName = part.FileName()
			contentType = part.Header.Get("Content-Type")
			fileData, err = service.ReadLimited(part, config.UploadConfigInstance.MaxFileSize)
			part.Close()
			if err != nil {
				failWith(c, err)
				return
			}
		case "metadata":
			raw, readErr := io.ReadAll(io.LimitReader(part, 4096))
			part.Close()
			if readErr != nil {
				failWith(c, service.ErrInvalidMetadata.Wrap(readErr))
				return
			}
			if trimmed := strings.TrimSpace(string(raw)); trimmed != "" && !json.Valid([]byte(trimmed)) {
				failWith(c, service.ErrInvalidMetadata)
				return
			}
		case "options":
			raw, readErr := io.ReadAll(io.LimitReader(part, 4096))
			part.Close()
			if readErr != nil {
				failWith(c, service.ErrInvalidUploadOptions.Wrap(readErr))
				return
			}
			var options dto.UploadOptions
			if jsonErr := json.Unmarshal(raw, &options); jsonErr != nil {
				failWith(c, service.ErrInvalidUploadOptions.Wrap(jsonErr))
				return
			}
			duration = options.Duration
		case "duration":
			raw, readErr := io.ReadAll(io.LimitReader(part, 64))
			part.Close()
			if readErr != nil {
				failWith(c, service.ErrInvalidUploadOptions.Wrap(readErr))
				return
			}
			duration = strings.TrimSpace(string(raw))
		default:
			_, _ = io.Copy(io.Discard, part)
			part.Close()
		}
	}

	if !seenFile {
		failWith(c, service.ErrNoFile)
		return
	}

	record, err := service.IngestFile(
		c.Request.Context(),
		currentUserID(c),
		originalName,
		contentType,
		duration,
		fileData,
	)
	if err != nil {
		failWith(c, err)
		return
	}

	_ = utils.InvalidateFileListCache(c.Request.Context(), currentUserID(c))
	utils.Success(c, dto.UploadResponse{File: service.ToFileView(record)})
}
