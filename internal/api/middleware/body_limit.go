package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"college-admin/backend/pkg/response"
)

// BodyLimit 请求体大小限制中间件，maxBytes <= 0 时不限制
// Content-Length 已知且超限时直接返回 413；分块传输的请求体由 MaxBytesReader 截断，
// Handler 绑定时识别 *http.MaxBytesError 并返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.PayloadTooLarge(c)
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
