package main

import (
	"os"
	"os/signal"
	"syscall"

	"fadu-store/config"
	"fadu-store/internal/database"
	"fadu-store/internal/logger"
	"fadu-store/internal/producer"
	"fadu-store/internal/repository"
	"fadu-store/internal/service"
	"fadu-store/internal/transport/http/router"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title Fadu.store API
// @Version 1.0
// @Description API магазина с самовывозом (заказы, купоны, отзывы, вопросы)
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	// Event bus опционален: без брокеров письма просто не публикуются
	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic != "" {
		prod := producer.NewEmailProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer prod.Close()
		events = prod
		log.Info("kafka email producer enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	} else {
		log.Info("kafka email producer disabled")
	}

	coupons := service.NewCouponService(repos)
	orders := service.NewOrderService(repos, coupons, events)
	reviews := service.NewReviewService(repos)
	questions := service.NewQuestionService(repos)

	r := router.Router(router.Services{
		Orders:    orders,
		Coupons:   coupons,
		Reviews:   reviews,
		Questions: questions,
	}, cfg.JWTSecret, log)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := r.Run(cfg.Port); err != nil {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down HTTP server...")
}
