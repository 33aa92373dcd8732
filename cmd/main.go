package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	authapp "github.com/nedasoft/marketplace-api/application/auth"
	cartapp "github.com/nedasoft/marketplace-api/application/cart"
	checkoutapp "github.com/nedasoft/marketplace-api/application/checkout"
	discountapp "github.com/nedasoft/marketplace-api/application/discount"
	giftcardapp "github.com/nedasoft/marketplace-api/application/giftcard"
	orderapp "github.com/nedasoft/marketplace-api/application/order"
	refundapp "github.com/nedasoft/marketplace-api/application/refund"
	walletapp "github.com/nedasoft/marketplace-api/application/wallet"
	"github.com/nedasoft/marketplace-api/cmd/config"
	redisclient "github.com/nedasoft/marketplace-api/cmd/redis"
	_ "github.com/nedasoft/marketplace-api/docs"
	cartRepo "github.com/nedasoft/marketplace-api/repository/cart"
	conversationRepo "github.com/nedasoft/marketplace-api/repository/conversation"
	discountRepo "github.com/nedasoft/marketplace-api/repository/discount"
	giftcardRepo "github.com/nedasoft/marketplace-api/repository/giftcard"
	orderRepo "github.com/nedasoft/marketplace-api/repository/order"
	paymentRepo "github.com/nedasoft/marketplace-api/repository/payment"
	productRepo "github.com/nedasoft/marketplace-api/repository/product"
	redisRepo "github.com/nedasoft/marketplace-api/repository/redis"
	txRepo "github.com/nedasoft/marketplace-api/repository/tx"
	userRepo "github.com/nedasoft/marketplace-api/repository/user"
	walletRepo "github.com/nedasoft/marketplace-api/repository/wallet"
	"github.com/nedasoft/marketplace-api/thirdparty/gateway"
	"github.com/nedasoft/marketplace-api/thirdparty/rabbitmq"
	"github.com/nedasoft/marketplace-api/thirdparty/storage"
	"github.com/nedasoft/marketplace-api/transport"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

// @title MARKETPLACE API
// @version 1.0
// @description Marketplace order, payment and refund API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// The broker is optional: without it the API runs, events are just dropped
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Error("err connect rabbitmq, events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	blobStore := storage.NewLocalStorage(cfg.Storage.BasePath)
	paymentGateway := gateway.NewHTTPGateway(cfg.Gateway.BaseURL, cfg.Gateway.MerchantID)

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository()
	ProductRepo := productRepo.NewProductRepository(db)
	CartRepo := cartRepo.NewCartRepository(db)
	DiscountRepo := discountRepo.NewDiscountRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	PaymentRepo := paymentRepo.NewPaymentRepository(db)
	WalletRepo := walletRepo.NewWalletRepository(db)
	GiftCardRepo := giftcardRepo.NewGiftCardRepository(db)
	ConversationRepo := conversationRepo.NewConversationRepository(db)

	// Initialize application layers
	AuthApp := authapp.NewAuthApp(cfg, UserRepo, RedisRepo)
	DiscountApp := discountapp.NewDiscountApp(DiscountRepo)
	CartApp := cartapp.NewCartApp(TxRepo, CartRepo, ProductRepo, DiscountApp)
	WalletApp := walletapp.NewWalletApp(TxRepo, WalletRepo)
	GiftCardApp := giftcardapp.NewGiftCardApp(TxRepo, GiftCardRepo, WalletRepo)
	CheckoutApp := checkoutapp.NewCheckoutApp(cfg, TxRepo, CartRepo, OrderRepo, PaymentRepo, WalletApp, DiscountApp, paymentGateway, publisher)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, ConversationRepo, blobStore, publisher)
	RefundApp := refundapp.NewRefundApp(TxRepo, OrderRepo, PaymentRepo, WalletApp, GiftCardApp, publisher)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		AuthApp:     AuthApp,
		CartApp:     CartApp,
		CheckoutApp: CheckoutApp,
		OrderApp:    OrderApp,
		RefundApp:   RefundApp,
		WalletApp:   WalletApp,
		GiftCardApp: GiftCardApp,
	}, cfg.InternalKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
