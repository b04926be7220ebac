package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/draftproxy/internal/config"
	"github.com/jafarshop/draftproxy/internal/service"
)

func verifyShopifyHMAC(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	// constant-time compare
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header)))
}

// HandleDraftOrderCreatedWebhook handles POST /webhooks/draft-orders-create.
// Configure the Shopify webhook topic:
// - draft_orders/create
// This runs asynchronously with respect to the create endpoint and applies
// the same remaining-value augmentation against the already-created draft
// order.
func HandleDraftOrderCreatedWebhook(cfg *config.Config, svc *service.DraftOrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := strings.TrimSpace(cfg.Shopify.WebhookSecret)
		if secret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shopify webhook not configured"})
			return
		}

		// Read raw body (Shopify HMAC is computed over raw bytes)
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		hmacHeader := c.GetHeader("X-Shopify-Hmac-Sha256")
		if !verifyShopifyHMAC(secret, bodyBytes, hmacHeader) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
			return
		}

		var payload service.WebhookDraftOrder
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON", "details": err.Error()})
			return
		}

		logger.Info("Draft order webhook received",
			zap.Int64("draft_order_id", payload.ID),
			zap.String("draft_order_name", payload.Name),
			zap.String("total_price", payload.TotalPrice),
			zap.Int("line_items", len(payload.LineItems)),
			zap.String("topic", c.GetHeader("X-Shopify-Topic")),
		)

		valueAdded, err := svc.AugmentDraftOrder(c.Request.Context(), payload)
		if err != nil {
			logger.Error("Failed to add remaining value to draft order",
				zap.Int64("draft_order_id", payload.ID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":        "Failed to add Remaining Value to draft order",
				"errorMessage": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"valueAdded":     valueAdded,
			"draftOrderId":   payload.ID,
			"draftOrderName": payload.Name,
		})
	}
}
