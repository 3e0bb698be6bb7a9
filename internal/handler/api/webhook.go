package api

import (
	"net/http"

	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/httperr"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds what the gateway may post to us.
const maxWebhookBody = 64 << 10

type WebhookHandler struct {
	payments commands.PaymentCommands
}

func NewWebhookHandler(payments commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{payments: payments}
}

// @Summary Payment gateway notification
// @Description Receives the gateway's form-encoded delivery. Processed deliveries,
// @Description including failures and late conflicts, answer 200 so the gateway stops retrying.
// @Tags payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /webhooks/payment [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	if err := c.Request.ParseForm(); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid form body", nil)
		return
	}

	fields := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	result, err := h.payments.ProcessWebhookDelivery(c.Request.Context(), fields)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to process payment notification")
		return
	}
	c.JSON(http.StatusOK, resdto.FromWebhookResult(result))
}
