package router

import (
	"fadu-store/internal/service"
	"fadu-store/internal/transport/http/handlers"
	"fadu-store/internal/transport/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Orders    service.OrderService
	Coupons   service.CouponService
	Reviews   service.ReviewService
	Questions service.QuestionService
}

func Router(svc Services, jwtSecret string, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	orderHandler := handlers.NewOrderHandler(svc.Orders, log)
	engagement := handlers.NewEngagementHandler(svc.Coupons, svc.Reviews, svc.Questions, log)
	admin := handlers.NewAdminHandler(svc.Orders, svc.Coupons, svc.Reviews, svc.Questions, log)

	auth := middleware.AuthRequired(jwtSecret, log)

	api := r.Group("/api")
	{
		// публичные (без токена)
		api.POST("/coupons/validate", engagement.ValidateCoupon)
		api.GET("/products/:id/reviews", engagement.ListReviews)
		api.GET("/products/:id/questions", engagement.ListQuestions)

		// требуют аутентификации
		api.POST("/orders", auth, orderHandler.Create)
		api.GET("/orders", auth, orderHandler.List)
		api.GET("/orders/:id", auth, orderHandler.Get)
		api.POST("/products/:id/reviews", auth, engagement.SubmitReview)
		api.POST("/products/:id/questions", auth, engagement.AskQuestion)
	}

	adm := r.Group("/api/admin", auth, middleware.AdminRequired())
	{
		adm.GET("/orders", admin.ListOrders)
		adm.PATCH("/orders/:id/status", admin.ChangeStatus)
		adm.POST("/validate-pickup", admin.ValidatePickup)
		adm.POST("/complete-pickup", admin.CompletePickup)

		adm.GET("/coupons", admin.ListCoupons)
		adm.POST("/coupons", admin.CreateCoupon)
		adm.PATCH("/coupons/:id", admin.UpdateCoupon)
		adm.DELETE("/coupons/:id", admin.DeleteCoupon)

		adm.GET("/reviews", admin.ListReviews)
		adm.PATCH("/reviews/:id", admin.ModerateReview)

		adm.GET("/questions", admin.ListQuestions)
		adm.PATCH("/questions/:id", admin.AnswerQuestion)
		adm.DELETE("/questions/:id", admin.DeleteQuestion)
	}

	return r
}
