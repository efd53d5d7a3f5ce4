package handler

import (
	"FlowVault/config"
	"FlowVault/internal/dto"
	"FlowVault/internal/repo"
	"FlowVault/internal/service"
	"FlowVault/utils"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/net/context"
)

// Register starts user registration and sends activation mail.
func Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "INVALID_METADATA", "invalid request")
		return
	}
	if req.FirstPassword != req.LastPassword {
		utils.Fail(c, http.StatusBadRequest, "INVALID_METADATA", "passwords do not match")
		return
	}
	if service.IsEmailExist(req.Email) {
		utils.Fail(c, http.StatusBadRequest, "INVALID_METADATA", "email already exists")
		return
	}

	token := uuid.NewString()
	key := "register:" + token
	tmp := struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.FirstPassword,
	}

	data, _ := json.Marshal(tmp)
	if err := repo.Redis.Set(context.Background(), key, data, 10*time.Minute).Err(); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "cache activation token failed")
		return
	}

	link := buildActivateLink(c, token)
	if err := utils.SendActivateMail(req.Email, link); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "send activation email failed")
		return
	}

	utils.Success(c, gin.H{"msg": "activation email sent"})
}

func buildActivateLink(c *gin.Context, token string) string {
	baseURL := strings.TrimSpace(config.AppConfig.AppBaseURL)
	if baseURL == "" {
		scheme := "http"
		if forwarded := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); forwarded != "" {
			scheme = forwarded
		} else if c.Request.TLS != nil {
			scheme = "https"
		}
		host := strings.TrimSpace(c.GetHeader("X-Forwarded-Host"))
		if host == "" {
			host = c.Request.Host
		}
		baseURL = scheme + "://" + host
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return baseURL + "/api/auth/activate?token=" + url.QueryEscape(token)
}

// Activate activates a user account.
func Activate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.Fail(c, http.StatusBadRequest, "INVALID_METADATA", "token missing")
		return
	}

	key := "register:" + token
	ctx := context.Background()
	val, err := repo.Redis.Get(ctx, key).Result()
	if err != nil {
		usedKey := "register_used:" + token
		if used, usedErr := repo.Redis.Get(ctx, usedKey).Result(); usedErr == nil && used == "1" {
			utils.Success(c, gin.H{"msg": "account already activated"})
			return
		}
		utils.Fail(c, http.StatusBadRequest, "INVALID_METADATA", "link invalid or expired")
		return
	}

	var tmp struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal([]byte(val), &tmp); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "decode failed")
		return
	}

	if _, err := service.CreateUser(tmp.Email, tmp.Name, tmp.Password, true); err != nil {
		utils.Fail(c, http.StatusBadRequest, "INVALID_METADATA", err.Error())
		return
	}

	repo.Redis.Del(ctx, key)
	_ = repo.Redis.Set(ctx, "register_used:"+token, "1", 10*time.Minute).Err()
	utils.Success(c, gin.H{"msg": "account activated"})
}
