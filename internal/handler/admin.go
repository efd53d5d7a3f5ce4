package handler

import (
	"FlowVault/internal/dto"
	"FlowVault/internal/mq"
	"FlowVault/internal/service"
	"FlowVault/utils"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
)

// Cleanup runs an expiry sweep. With async=true the trigger is
// enqueued for the sweeper process instead of running inline.
func Cleanup(c *gin.Context) {
	if c.Query("async") == "true" {
		trigger := dto.CleanupTrigger{
			Reason:      "admin",
			RequestedAt: time.Now().Unix(),
		}
		body, err := json.Marshal(trigger)
		if err != nil {
			failWith(c, service.ErrInternal.Wrap(err))
			return
		}
		publisher, err := mq.GetPublisher()
		if err != nil {
			failWith(c, service.ErrInternal.Wrap(err))
			return
		}
		if err := publisher.PublishCleanup(c.Request.Context(), body); err != nil {
			failWith(c, service.ErrInternal.Wrap(err))
			return
		}
		utils.Success(c, gin.H{"enqueued": true})
		return
	}

	summary, err := service.CleanupWithLock(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}
	utils.Success(c, summary)
}
