package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/tarot-frames/configs"
	"github.com/avvvet/tarot-frames/internal/framesvc/broker"
	"github.com/avvvet/tarot-frames/internal/framesvc/chain"
	framecfg "github.com/avvvet/tarot-frames/internal/framesvc/config"
	"github.com/avvvet/tarot-frames/internal/framesvc/db"
	"github.com/avvvet/tarot-frames/internal/framesvc/frame"
	handlers "github.com/avvvet/tarot-frames/internal/framesvc/handlers"
	"github.com/avvvet/tarot-frames/internal/framesvc/service"
	"github.com/avvvet/tarot-frames/internal/framesvc/store"
	nats "github.com/avvvet/tarot-frames/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "frame"

func init() {
	instanceId := "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	config.CreateUniqueInstance(SERVICE_NAME)

	cfg, err := framecfg.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// pg connection
	dbpool, err := db.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	if cfg.DBMigrate {
		if err := db.Migrate(context.Background(), dbpool); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
		log.Info("db schema applied")
	}

	var cardFinder store.CardFinder = store.NewCardStore(dbpool)
	if cfg.RedisURL != "" {
		rdb, err := store.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warnf("card cache disabled: %v", err)
		} else {
			defer rdb.Close()
			cardFinder = store.NewCachedCardStore(cardFinder, rdb, 24*time.Hour)
			log.Printf("redis card cache enabled")
		}
	}
	cardService := service.NewCardService(cardFinder, cfg.ImageBaseURL)

	readingStore := store.NewReadingStore(dbpool)
	readingService := service.NewReadingService(readingStore)

	// chain rpc
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := chain.Dial(ctx, cfg.RPCUrl, cfg.Mint.ChainID)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to chain rpc %s: %v", cfg.RPCUrl, err)
	}
	defer client.Close()
	log.Printf("chain %d rpc connection established successfully", cfg.Mint.ChainID)

	// reading events are optional, the frame works without a broker
	var publisher service.ReadingPublisher
	if nats.Enabled() {
		n, err := nats.Connect(SERVICE_NAME + "_service")
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Close()
		log.Printf("NATS connection established successfully %s", n.Url)

		publisher = broker.NewBroker(n.Conn)
	}

	revealService := service.NewRevealService(
		chain.NewReceiptWaiter(client, cfg.ReceiptPollInterval),
		cardService, readingStore, publisher, cfg.Mint.ContractAddress)

	mintService := service.NewMintService(cfg.Mint)
	selector := service.NewSelector(nil, cfg.DeckSize, cfg.FixedTokenID)
	flow := frame.NewFlow(cfg.BaseURL, cfg.AboutURL)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(flow, selector, cardService, mintService, revealService, readingService, cfg.AssetsDir)
	h.InitAuth(os.Getenv("JWT_SECRET_KEY"))
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s, frames served from %s", SERVICE_NAME, server.Addr, cfg.BaseURL)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
