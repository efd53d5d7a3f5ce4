package handler

import (
	"FlowVault/internal/dto"
	"FlowVault/internal/service"
	"FlowVault/utils"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's account.
func GetProfile(c *gin.Context) {
	user, err := service.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"user": user})
}

// UpdateProfile changes display name or avatar.
func UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, service.ErrInvalidMetadata.Wrap(err))
		return
	}
	if err := service.UpdateProfile(c.Request.Context(), currentUserID(c), req.Name, req.Image); err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"updated": true})
}

// UploadProfilePicture stores an avatar and updates the profile.
func UploadProfilePicture(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		failWith(c, service.ErrNoFile)
		return
	}
	defer file.Close()

	data, err := service.ReadLimited(file, 5*1024*1024)
	if err != nil {
		failWith(c, err)
		return
	}

	imageURL, err := service.UploadAvatar(
		c.Request.Context(),
		currentUserID(c),
		header.Filename,
		header.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"image": imageURL})
}

// DeleteAccount removes the caller's account and all owned data.
func DeleteAccount(c *gin.Context) {
	if err := service.DeleteAccount(c.Request.Context(), currentUserID(c)); err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"deleted": true})
}

// CreateUploadSession opens a session for browser uploads.
func CreateUploadSession(c *gin.Context) {
	session, err := service.CreateUploadSession(c.Request.Context(), currentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"session": session})
}

// GetUploadSession returns an active session by ID.
func GetUploadSession(c *gin.Context) {
	session, err := service.GetUploadSession(c.Param("id"), currentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"session": session})
}

// CloseUploadSession deactivates a session before its TTL.
func CloseUploadSession(c *gin.Context) {
	if err := service.DeactivateUploadSession(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, gin.H{"closed": true})
}
