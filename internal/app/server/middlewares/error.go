package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
)

// Recovery 统一兜底中间件，panic 转 500 并记录日志
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "panic recovered: path=%s error=%v", c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"meta": gin.H{
						"code":    500,
						"message": "internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}
