package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/draftproxy/internal/config"
	"github.com/jafarshop/draftproxy/internal/shopify"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookRouter(secret string, stub *stubExecutor) *gin.Engine {
	cfg := &config.Config{
		Shopify:  config.ShopifyConfig{WebhookSecret: secret},
		Defaults: config.LoadDefaults(),
	}
	router := gin.New()
	router.POST("/webhooks/draft-orders-create",
		HandleDraftOrderCreatedWebhook(cfg, newTestService(stub), zap.NewNop()))
	return router
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/draft-orders-create", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_RejectsInvalidSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubExecutor{}
	router := webhookRouter("secret", stub)

	body := []byte(`{"id": 42, "name": "#D42", "line_items": []}`)

	tests := []struct {
		name      string
		signature string
	}{
		{"missing signature", ""},
		{"wrong signature", "bm90LXRoZS1yaWdodC1zaWduYXR1cmU="},
		{"signature for different body", signBody("secret", []byte(`{}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postWebhook(router, body, tt.signature)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}

	if stub.calls != 0 {
		t.Errorf("expected no platform call on rejected webhooks, got %d", stub.calls)
	}
}

func TestWebhook_UnconfiguredSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := webhookRouter("", &stubExecutor{})

	w := postWebhook(router, []byte(`{}`), "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestWebhook_SkipsWhenItemAlreadyPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubExecutor{}
	router := webhookRouter("secret", stub)

	body := []byte(`{
		"id": 42,
		"name": "#D42",
		"total_price": "47.00",
		"line_items": [
			{"title": "Blue Shirt", "quantity": 1},
			{"title": "Remaining Value", "quantity": 1}
		]
	}`)

	w := postWebhook(router, body, signBody("secret", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["success"] != true || resp["valueAdded"] != false {
		t.Errorf("expected valueAdded=false, got %v", resp)
	}
	if stub.calls != 0 {
		t.Errorf("expected no platform call, got %d", stub.calls)
	}
}

func TestWebhook_AddsRemainingValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubExecutor{responses: []*shopify.GraphQLResponse{envelope(`{
		"draftOrderUpdate": {
			"draftOrder": {"id": "gid://shopify/DraftOrder/42"},
			"userErrors": []
		}
	}`)}}
	router := webhookRouter("secret", stub)

	body := []byte(`{
		"id": 42,
		"name": "#D42",
		"total_price": "42.00",
		"admin_graphql_api_id": "gid://shopify/DraftOrder/42",
		"line_items": [{"title": "Blue Shirt", "quantity": 1}]
	}`)

	w := postWebhook(router, body, signBody("secret", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["success"] != true || resp["valueAdded"] != true {
		t.Errorf("expected valueAdded=true, got %v", resp)
	}
	if stub.calls != 1 {
		t.Errorf("expected one platform call, got %d", stub.calls)
	}
}

func TestWebhook_UpstreamFailureReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubExecutor{responses: []*shopify.GraphQLResponse{envelope(`{
		"draftOrderUpdate": {
			"draftOrder": null,
			"userErrors": [{"field": null, "message": "Cannot update completed draft order"}]
		}
	}`)}}
	router := webhookRouter("secret", stub)

	body := []byte(`{"id": 42, "name": "#D42", "line_items": [{"title": "Blue Shirt", "quantity": 1}]}`)

	w := postWebhook(router, body, signBody("secret", body))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if _, ok := resp["error"]; !ok {
		t.Errorf("expected error field, got %v", resp)
	}
}
