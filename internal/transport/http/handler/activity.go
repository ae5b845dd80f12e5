package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotodo/internal/model"
	"gotodo/internal/repository"
	"gotodo/internal/transport/http/middleware"
	"gotodo/internal/transport/http/response"
)

// ActivityHandler exposes the caller's recent audit trail. Records exist only
// when the activity pipeline is configured; otherwise the list is empty.
type ActivityHandler struct {
	activityRepo *repository.ActivityRepository
}

func NewActivityHandler(activityRepo *repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	records, err := h.activityRepo.ListRecentByUserID(userID, 50)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if records == nil {
		records = []model.ActivityRecord{}
	}

	response.OK(c, http.StatusOK, gin.H{"activity": records})
}
