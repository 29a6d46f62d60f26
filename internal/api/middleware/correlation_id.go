package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const correlationIDKey = "correlationID"

// CorrelationIDMiddleware 透传请求头里的 X-Correlation-ID，缺失时生成一个，
// 并写回响应头，方便把 API 日志和导出任务日志串起来。
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Correlation-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header("X-Correlation-ID", id)

		c.Next()
	}
}

// GetCorrelationID 返回当前请求的 Correlation ID，未设置时为空串。
func GetCorrelationID(c *gin.Context) string {
	value, ok := c.Get(correlationIDKey)
	if !ok {
		return ""
	}
	id, _ := value.(string)
	return id
}
