package middleware

import (
	"context"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const clientIPKey ctxKey = "client_ip"

// ClientIP resolves the viewer address once per request and stores it on
// both the gin context and the request context.
//
//	router.Use(middleware.ClientIP())
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := extractClientIP(c)

		c.Set(string(clientIPKey), ip)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey, ip))

		c.Next()
	}
}

// ClientIPFromContext returns "" when ClientIP did not run.
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip
	}
	return ""
}

// X-Forwarded-For (first hop), then X-Real-IP, then RemoteAddr.
func extractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		ip = c.Request.RemoteAddr
	}
	if net.ParseIP(ip) != nil {
		return ip
	}
	return "127.0.0.1"
}
