package handlers

import (
	"encoding/json"
	"net/http"

	"cashback-service/internal/services"
	"cashback-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives affiliate network callbacks. The raw body is
// captured before binding so the delivery log keeps exactly what the
// partner sent, including payloads that fail validation.
type WebhookHandler struct {
	Webhooks *services.WebhookService
}

func NewWebhookHandler(webhooks *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{Webhooks: webhooks}
}

func (h *WebhookHandler) Purchase(c *gin.Context) {
	var dto services.PurchaseWebhookDTO
	raw, ok := bindWebhook(c, &dto)
	if !ok {
		return
	}
	dto.RawBody = raw

	res, err := h.Webhooks.HandlePurchase(dto)
	respond(c, res, err)
}

func (h *WebhookHandler) Confirmation(c *gin.Context) {
	var dto services.ConfirmationWebhookDTO
	raw, ok := bindWebhook(c, &dto)
	if !ok {
		return
	}
	dto.RawBody = raw

	res, err := h.Webhooks.HandleConfirmation(dto)
	respond(c, res, err)
}

func (h *WebhookHandler) Cancellation(c *gin.Context) {
	var dto services.CancellationWebhookDTO
	raw, ok := bindWebhook(c, &dto)
	if !ok {
		return
	}
	dto.RawBody = raw

	res, err := h.Webhooks.HandleCancellation(dto)
	respond(c, res, err)
}

func bindWebhook(c *gin.Context, dto interface{}) (string, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unreadable request body", nil, http.StatusBadRequest))
		return "", false
	}
	if err := json.Unmarshal(raw, dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Malformed JSON payload", nil, http.StatusBadRequest))
		return "", false
	}
	return string(raw), true
}
