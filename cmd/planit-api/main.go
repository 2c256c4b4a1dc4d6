// README: Entry point; loads config, wires services and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"planit/internal/ai"
	"planit/internal/config"
	httptransport "planit/internal/http"
	"planit/internal/infra"
	"planit/internal/maps"
	"planit/internal/modules/aiusage"
	"planit/internal/modules/itinerary"
	"planit/internal/modules/plan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Options)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	var resolver itinerary.AddressResolver
	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		resolver = geocoder
	} else {
		log.Printf("PLANIT_MAPS_API_KEY not set; coordinates without an address stay unresolved")
	}

	itinerarySvc := itinerary.NewService(provider, itinerary.NewStore(redisClient, cfg.SessionTTL), resolver)
	planSvc := plan.NewService(plan.NewStore(dbPool))
	usageSvc := aiusage.NewService(aiusage.NewStore(dbPool, cfg.Limits.MonthlyTokens))

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(httptransport.ServerDeps{
		Itinerary:     itinerarySvc,
		Plans:         planSvc,
		Usage:         usageSvc,
		Verifier:      verifier,
		RatePerMinute: cfg.Limits.RatePerMinute,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("planit api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
