package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/draftproxy/internal/service"
	"github.com/jafarshop/draftproxy/pkg/errors"
)

// alternativeCustomerIDParams are probed on GET /list for callers that don't
// send the canonical logged_in_customer_id parameter.
var alternativeCustomerIDParams = []string{"customer_id", "customerId", "customer"}

type createResponse struct {
	Success bool `json:"success"`
	*service.DraftOrderSummary
}

// HandleCreateDraftOrder handles POST /create
func HandleCreateDraftOrder(svc *service.DraftOrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Query("logged_in_customer_id")

		var req service.CreateDraftOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON in request body"})
			return
		}

		summary, err := svc.CreateDraftOrder(c.Request.Context(), customerID, req)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, createResponse{Success: true, DraftOrderSummary: summary})
	}
}

// CancelRequest is the cancel endpoint body
type CancelRequest struct {
	OrderID string `json:"orderId"`
}

// HandleCancelDraftOrder handles POST /cancel
func HandleCancelDraftOrder(svc *service.DraftOrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CancelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON in request body"})
			return
		}
		if req.OrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order ID is required"})
			return
		}

		deletedID, err := svc.CancelDraftOrder(c.Request.Context(), req.OrderID)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "deletedId": deletedID})
	}
}

// HandleListDraftOrders handles POST /list
func HandleListDraftOrders(svc *service.DraftOrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Query("logged_in_customer_id")
		if customerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Customer ID is required"})
			return
		}

		listDraftOrders(c, svc, logger, customerID)
	}
}

// HandleListDraftOrdersGET handles GET /list. Some storefront callers put
// the customer id in nonstandard query parameters or a cookie, so the GET
// path probes those before delegating to the shared list logic.
func HandleListDraftOrdersGET(svc *service.DraftOrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Query("logged_in_customer_id")
		for _, param := range alternativeCustomerIDParams {
			if customerID != "" {
				break
			}
			if value := c.Query(param); value != "" {
				logger.Info("Using alternative customer ID parameter",
					zap.String("param", param),
				)
				customerID = value
			}
		}
		if customerID == "" {
			if cookie, err := c.Cookie("customer_id"); err == nil && cookie != "" {
				customerID = cookie
			}
		}

		if customerID == "" {
			params := map[string]string{}
			for k, v := range c.Request.URL.Query() {
				if len(v) > 0 {
					params[k] = v[0]
				}
			}
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"debug":   true,
				"message": "Draft order list endpoint is working but no customer ID was found.",
				"params":  params,
			})
			return
		}

		listDraftOrders(c, svc, logger, customerID)
	}
}

func listDraftOrders(c *gin.Context, svc *service.DraftOrderService, logger *zap.Logger, customerID string) {
	draftOrders, err := svc.ListDraftOrders(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "draftOrders": draftOrders})
}

// HandleProbe returns a sanity-check response for GET requests against the
// POST-only proxy endpoints.
func HandleProbe(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
	}
}

// writeError maps a pipeline error to the client contract: typed status plus
// a {success:false, error} envelope.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Draft order request failed", zap.Error(err))
	} else {
		logger.Warn("Draft order request rejected", zap.Error(err))
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
