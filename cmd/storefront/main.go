package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nandanicollection/storefront/internal/cart"
	"github.com/nandanicollection/storefront/internal/checkout"
	"github.com/nandanicollection/storefront/internal/commerce"
	"github.com/nandanicollection/storefront/internal/config"
	"github.com/nandanicollection/storefront/internal/coupon"
	"github.com/nandanicollection/storefront/internal/events"
	"github.com/nandanicollection/storefront/internal/httpx"
	kafkax "github.com/nandanicollection/storefront/internal/kafka"
	"github.com/nandanicollection/storefront/internal/payment"
	"github.com/nandanicollection/storefront/internal/postgres"
	"github.com/nandanicollection/storefront/internal/redisx"
	"github.com/nandanicollection/storefront/internal/spin"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB (payment session ledger)
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis (session state, catalog cache)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	checkoutProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicCheckoutCompleted, 1024)
	checkoutProd.Start(ctx)
	paymentProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicPaymentResolved, 1024)
	paymentProd.Start(ctx)

	// Upstream commerce API
	client := commerce.NewClient(cfg.CommerceAPIURL)
	catalog := &commerce.Catalog{Client: client, RDB: rdb}

	// Session-scoped cart + coupon state
	carts := &cart.Service{Repo: &cart.RedisRepository{RDB: rdb}}
	coupons := &coupon.Engine{Validator: client, Store: &coupon.RedisStore{RDB: rdb}}

	// Payment gateway bridge
	gateway := payment.NewProvider(
		cfg.PhonePeMerchantID,
		cfg.PhonePeClientID,
		cfg.PhonePeClientSecret,
		cfg.PhonePeClientVersion,
		cfg.PhonePeAuthURL,
		cfg.PhonePePayURL,
		cfg.PhonePeStatusURL,
	)
	bridge := &payment.Bridge{
		Gateway:  gateway,
		Ledger:   &payment.SessionRepo{DB: db},
		Producer: paymentProd,
		BaseURL:  cfg.PublicBaseURL,
		Service:  cfg.ServiceName,
	}

	orchestrator := &checkout.Orchestrator{
		Carts:    carts,
		Coupons:  coupons,
		Orders:   client,
		Payments: &paymentAdapter{bridge: bridge},
		Producer: checkoutProd,
		Service:  cfg.ServiceName,
	}

	flows := spin.NewManager(spinAPI{catalog: catalog, client: client})

	router := httpx.NewRouter()
	router.Use(httpx.WithSession)
	(&httpx.CartHandler{Carts: carts}).Register(router)
	(&httpx.CheckoutHandler{Flow: orchestrator, Coupons: coupons}).Register(router)
	(&httpx.CatalogHandler{Catalog: catalog}).Register(router)
	(&httpx.AccountsHandler{Client: client}).Register(router)
	(&httpx.ReviewsHandler{Client: client}).Register(router)
	(&httpx.SpinHandler{Flows: flows}).Register(router)
	bridge.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	checkoutProd.Close()
	paymentProd.Close()
	cancel()
	checkoutProd.WaitClosed()
	paymentProd.WaitClosed()
}

// paymentAdapter lets checkout initiate payments through the bridge without
// the two packages importing each other.
type paymentAdapter struct {
	bridge *payment.Bridge
}

func (a *paymentAdapter) Initiate(ctx context.Context, req checkout.PaymentRequest) (string, error) {
	return a.bridge.InitiateSession(ctx, payment.InitiateRequest{
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Name:          req.Name,
		Mobile:        req.Mobile,
	})
}

// spinAPI reads wheel config through the cache but spin results straight from
// the commerce API, since the result is per-order and must never be cached.
type spinAPI struct {
	catalog *commerce.Catalog
	client  *commerce.Client
}

func (s spinAPI) WheelItems(ctx context.Context) ([]commerce.WheelSegment, error) {
	return s.catalog.WheelItems(ctx)
}

func (s spinAPI) SpinResult(ctx context.Context, orderID string) (*commerce.SpinResult, error) {
	return s.client.SpinResult(ctx, orderID)
}
