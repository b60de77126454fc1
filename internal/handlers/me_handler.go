package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

type MeHandler struct {
	users UserStore
}

func NewMeHandler(users UserStore) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	doctorID, clientID, err := h.users.ProfileIDs(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
		"doctor_id": doctorID,
		"client_id": clientID,
	})
}
