package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
	"github.com/ballnaha/treetelu-sub002/internal/app/server/handlers/checkout"
	"github.com/ballnaha/treetelu-sub002/internal/app/server/handlers/payment"
	"github.com/ballnaha/treetelu-sub002/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	checkoutHandler *checkout.CheckoutHandler,
	paymentHandler *payment.PaymentHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.Recovery(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "treetelu",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/checkout", checkoutHandler.Create)

		pay := v1.Group("/payment")
		{
			pay.GET("/status", paymentHandler.Status)
		}

		v1.GET("/gateway/callback", paymentHandler.Callback)
		v1.POST("/payment-confirmation", paymentHandler.SubmitConfirmation)
	}

	return r
}
