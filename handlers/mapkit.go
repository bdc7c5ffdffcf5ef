package handlers

import (
	"errors"
	"net/http"
	"time"

	"cmueats/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenSigner issues short lived map tokens.
type TokenSigner interface {
	Token() (string, time.Time, error)
}

type MapKitHandler struct {
	Signer TokenSigner
}

func NewMapKitHandler(signer TokenSigner) *MapKitHandler {
	return &MapKitHandler{Signer: signer}
}

// GetTokenHandler returns a MapKit JS token.
func (h *MapKitHandler) GetTokenHandler(c *gin.Context) {
	if h.Signer == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Map token unavailable", utils.ErrMapKitNotConfigured.Error())
		return
	}
	token, expires, err := h.Signer.Token()
	if errors.Is(err, utils.ErrMapKitNotConfigured) {
		utils.JSONError(c, http.StatusServiceUnavailable, "Map token unavailable", err.Error())
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to sign map token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to sign map token", "")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expires.UTC().Format(time.RFC3339)})
}
