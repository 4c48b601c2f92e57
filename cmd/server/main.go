package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/lottostack/lottery-booking/internal/config"
	"github.com/lottostack/lottery-booking/internal/database"
	"github.com/lottostack/lottery-booking/internal/handler"
	"github.com/lottostack/lottery-booking/internal/middleware"
	"github.com/lottostack/lottery-booking/internal/notify"
	"github.com/lottostack/lottery-booking/internal/queue"
	"github.com/lottostack/lottery-booking/internal/repository"
	"github.com/lottostack/lottery-booking/internal/router"
	queue_publisher "github.com/lottostack/lottery-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(schemaCtx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Redis is optional: a nil client turns caching and rate limiting
	// into pass-throughs
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	lotteries := repository.NewLotteryRepo(db)
	cart := repository.NewCartRepo(db)
	orders := repository.NewOrderRepo(db)
	results := repository.NewResultRepo(db)
	withdrawals := repository.NewWithdrawalRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	lotteryH := handler.NewLotteryHandler(cfg, lotteries, orders)
	cartH := handler.NewCartHandler(cfg, cart, lotteries)
	paymentH := handler.NewPaymentHandler(cfg, cart, orders, users, queue_publisher.PublishOrderConfirmed)
	resultH := handler.NewResultHandler(results, orders)
	withdrawalH := handler.NewWithdrawalHandler(withdrawals, orders)
	adminLotteryH := handler.NewAdminLotteryHandler(lotteries, results)
	adminWithdrawalH := handler.NewAdminWithdrawalHandler(withdrawals)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS()) // browser clients call the API directly
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, lotteryH, resultH)
	router.RegisterCustomer(e, lotteryH, cartH, paymentH, resultH, withdrawalH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminLotteryH, adminWithdrawalH, cfg.JWTSecret)

	// background consumer: order.confirmed -> WhatsApp confirmation
	sender := notify.NewSender(cfg.WhatsAppToken, cfg.WhatsAppPhoneID)
	go func() {
		if err := queue.StartOrderConsumer(sender, func(ev queue.OrderConfirmedEvent) (string, string) {
			return notify.FormatPhone(ev.Phone), notify.Message(ev.UserName, ev)
		}); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
