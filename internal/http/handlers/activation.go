package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/http/middleware"
	"github.com/puzlabu/puzlabu-backend/internal/http/response"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

type ActivationHandler struct {
	activation services.ActivationService
}

func NewActivationHandler(activation services.ActivationService) *ActivationHandler {
	return &ActivationHandler{activation: activation}
}

type activationStatusResponse struct {
	Activated   bool   `json:"activated"`
	PurchaseID  string `json:"purchase_id,omitempty"`
	ActivatedAt string `json:"activated_at,omitempty"`
	UnlockToken string `json:"unlock_token,omitempty"`
}

func (h *ActivationHandler) statusPayload(record *domain.ActivationRecord) (activationStatusResponse, error) {
	if record == nil {
		return activationStatusResponse{Activated: false}, nil
	}
	token, err := h.activation.MintUnlockToken(record)
	if err != nil {
		return activationStatusResponse{}, err
	}
	return activationStatusResponse{
		Activated:   true,
		PurchaseID:  record.PurchaseID.String(),
		ActivatedAt: record.ActivatedAt.Format(time.RFC3339),
		UnlockToken: token,
	}, nil
}

func (h *ActivationHandler) Status(c *gin.Context) {
	deviceID := c.Query("device_id")
	record, err := h.activation.Status(c.Request.Context(), deviceID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	payload, err := h.statusPayload(record)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "token_mint_failed", err)
		return
	}
	response.RespondOK(c, payload)
}

type redeemRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	DeviceID string `json:"device_id"`
}

func (h *ActivationHandler) Redeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	record, err := h.activation.Redeem(c.Request.Context(), req.Email, req.Code, req.DeviceID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	payload, err := h.statusPayload(record)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "token_mint_failed", err)
		return
	}
	response.RespondOK(c, payload)
}

// Reset clears the requesting device's unlock record. The device is named by
// the unlock token, so a device can only reset itself.
func (h *ActivationHandler) Reset(c *gin.Context) {
	deviceID := c.GetString(middleware.UnlockDeviceKey)
	if err := h.activation.Reset(c.Request.Context(), deviceID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activated": false})
}
