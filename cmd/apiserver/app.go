package main

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ballnaha/treetelu-sub002/internal/app/config"
	"github.com/ballnaha/treetelu-sub002/internal/app/consumer"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/modules/mdorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/modules/mdpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/repo/rporder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/repo/rppayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svcheckout"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svconfirm"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svnotify"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/services/svpricing"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/gateway/omiseapi"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/gateway/stripeapi"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/mq/lmstfy"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/notify"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/persistence/mysql"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/persistence/redis"
	"github.com/ballnaha/treetelu-sub002/internal/app/infra/storage"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/idgen"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
	"github.com/ballnaha/treetelu-sub002/internal/app/server/handlers/checkout"
	"github.com/ballnaha/treetelu-sub002/internal/app/server/handlers/payment"
	"github.com/ballnaha/treetelu-sub002/internal/app/server/routers"
)

// App 应用实例
type App struct {
	Engine         *gin.Engine
	NotifyConsumer *consumer.NotifyConsumer
	Logger         logger.Logger
}

// InitializeApp 手工依赖装配
// 装配顺序：基础设施 → 仓储 → 模块 → 服务 → 处理器 → 路由
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	log, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger failed: %w", err)
	}

	// 基础设施
	db, err := mysql.NewDB(cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("init mysql failed: %w", err)
	}
	if err := mysql.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate failed: %w", err)
	}

	pubsub, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis failed: %w", err)
	}

	queue, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("init lmstfy failed: %w", err)
	}

	stripeClient := stripeapi.NewClient(
		cfg.Stripe.BaseURL, cfg.Stripe.SecretKey,
		cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL,
		cfg.Stripe.Timeout,
	)
	omiseClient := omiseapi.NewClient(cfg.Omise.BaseURL, cfg.Omise.SecretKey, cfg.Omise.Timeout)
	emailClient := notify.NewEmailClient(cfg.Notify.Email.BaseURL, cfg.Notify.Email.APIKey, cfg.Notify.Email.From)
	webhookClient := notify.NewWebhookClient(cfg.Notify.Webhook.URL)

	slipStore, err := storage.NewLocalSlipStore(cfg.Upload.SlipDir)
	if err != nil {
		return nil, nil, fmt.Errorf("init slip store failed: %w", err)
	}

	// 仓储与模块
	orderModule := mdorder.NewOrderModule(rporder.NewOrderRepository(db))
	paymentModule := mdpayment.NewPaymentModule(rppayment.NewPaymentRepository(db))

	// 服务
	pricing := svpricing.NewCalculator(svpricing.Policy{
		FreeShippingMinAmount: cfg.Shipping.FreeShippingMin(),
		StandardShippingCost:  cfg.Shipping.StandardCost(),
	})

	notifyService := svnotify.NewNotifyService(queue, cfg.Lmstfy.NotifyQueue, emailClient, webhookClient, log)

	reconcileService := svpayment.NewReconcileService(
		orderModule, paymentModule,
		stripeClient, omiseClient,
		notifyService, pubsub, log,
	)

	checkoutService := svcheckout.NewCheckoutService(
		orderModule, paymentModule,
		stripeClient, reconcileService,
		pricing, idgen.NewOrderNumberGenerator(0), log,
	)

	confirmationService := svconfirm.NewConfirmationService(paymentModule, orderModule, slipStore, log)

	// 处理器与路由
	checkoutHandler := checkout.NewCheckoutHandler(checkoutService)
	paymentHandler := payment.NewPaymentHandler(
		reconcileService, confirmationService,
		cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL,
	)

	engine := routers.SetupRoutes(checkoutHandler, paymentHandler, log)

	// 通知消费者
	notifyConsumer := consumer.NewNotifyConsumer(queue, notifyService, &consumer.Config{
		QueueName:    cfg.Lmstfy.NotifyQueue,
		Timeout:      3 * time.Second,
		TTR:          30 * time.Second,
		PollInterval: time.Second,
	}, log)

	cleanup := func() {
		_ = pubsub.Close()
		_ = log.Sync()
	}

	return &App{
		Engine:         engine,
		NotifyConsumer: notifyConsumer,
		Logger:         log,
	}, cleanup, nil
}
