package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/draftproxy/internal/config"
)

// ProxyAuth authenticates Shopify app proxy requests. The shop parameter is
// required for every proxy call; the signature parameter is verified against
// the app API secret. An empty secret outside production skips verification
// so local development doesn't need signed requests.
func ProxyAuth(cfg config.ShopifyConfig, environment string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := c.Query("shop")
		if shop == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Shop parameter is required"})
			c.Abort()
			return
		}

		if cfg.APISecret == "" {
			if environment == "production" {
				logger.Error("App proxy secret not configured in production")
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "proxy authentication not configured"})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !VerifyProxySignature(c.Request.URL.Query(), cfg.APISecret) {
			logger.Warn("Invalid app proxy signature",
				zap.String("shop", shop),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid proxy signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// VerifyProxySignature verifies Shopify's app proxy signature. Shopify
// computes hex(HMAC_SHA256) over the query parameters (excluding signature)
// sorted lexicographically, each as "key=value" with multiple values joined
// by commas, concatenated without a separator.
func VerifyProxySignature(values url.Values, apiSecret string) bool {
	given := values.Get("signature")
	if given == "" || apiSecret == "" {
		return false
	}

	var keys []string
	for k := range values {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(values[k], ","))
	}
	msg := strings.Join(parts, "")

	mac := hmac.New(sha256.New, []byte(apiSecret))
	_, _ = mac.Write([]byte(msg))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(given))
}
