package handler

import (
	"FlowVault/internal/dto"
	"FlowVault/internal/service"
	"FlowVault/utils"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user and returns a session token.
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, service.ErrInvalidMetadata.Wrap(err))
		return
	}

	user, err := service.Login(req.Email, req.Password)
	if err != nil {
		failWith(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		failWith(c, service.ErrInternal.Wrap(err))
		return
	}

	utils.Success(c, dto.LoginResponse{
		Token: token,
		Email: user.Email,
		Name:  user.Name,
	})
}
