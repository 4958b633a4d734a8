package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/puzlabu/puzlabu-backend/internal/http/response"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

type PurchaseHandler struct {
	purchases services.PurchaseService
}

func NewPurchaseHandler(purchases services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

type recordPurchaseRequest struct {
	Email         string  `json:"email"`
	PayPalOrderID string  `json:"paypal_order_id"`
	Amount        float64 `json:"amount"`
}

// Record persists an already captured order. Codes go out by email; the
// response deliberately omits them.
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req recordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	purchase, err := h.purchases.RecordCompletedOrder(c.Request.Context(), req.Email, req.PayPalOrderID, req.Amount)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"purchase_id": purchase.ID,
		"status":      purchase.Status,
		"codes":       len(purchase.ActivationCodes),
	})
}

// Get serves the order confirmation view. The purchase id is an unguessable
// uuid handed out at record time; codes and email never appear here.
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_purchase_id", err)
		return
	}
	purchase, err := h.purchases.GetOrder(c.Request.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, services.ErrPurchaseNotFound) {
			response.RespondError(c, http.StatusNotFound, "purchase_not_found", err)
			return
		}
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"purchase_id":   purchase.ID,
		"status":        purchase.Status,
		"codes":         len(purchase.ActivationCodes),
		"devices_bound": len(purchase.DeviceIDs),
		"created_at":    purchase.CreatedAt,
	})
}
