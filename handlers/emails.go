package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cmueats/models"
	"cmueats/services/emails"
	"cmueats/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmailHandler handles mailing list sign ups.
type EmailHandler struct {
	Service emails.EmailService
}

func NewEmailHandler(svc emails.EmailService) *EmailHandler {
	return &EmailHandler{Service: svc}
}

// SubscribeHandler adds an address to the mailing list.
func (h *EmailHandler) SubscribeHandler(c *gin.Context) {
	var req models.EmailSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	signup, err := h.Service.Subscribe(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		var verr *utils.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.JSONError(c, http.StatusBadRequest, "Invalid sign up", verr.Error())
		case errors.Is(err, emails.ErrAlreadySubscribed):
			utils.JSONError(c, http.StatusConflict, "Email already subscribed", "")
		default:
			getLogger(c).Error("Failed to subscribe email", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to subscribe", "")
		}
		return
	}
	c.JSON(http.StatusCreated, signup)
}

// ListEmailsHandler returns the newest sign ups. Admin only.
func (h *EmailHandler) ListEmailsHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", raw)
			return
		}
		limit = n
	}

	list, err := h.Service.List(c.Request.Context(), limit)
	if err != nil {
		getLogger(c).Error("Failed to list emails", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list emails", "")
		return
	}
	if list == nil {
		list = []models.EmailSignup{}
	}
	c.JSON(http.StatusOK, gin.H{"emails": list, "count": len(list)})
}
