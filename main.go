package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-healthai/config"
	"go-healthai/cronjobs"
	"go-healthai/db"
	"go-healthai/geocode"
	"go-healthai/handlers"
	"go-healthai/hospitals"
	"go-healthai/llm"
	"go-healthai/metrics"
	"go-healthai/middleware"
	"go-healthai/nlp"
	"go-healthai/processor"
	"go-healthai/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	fmt.Println("CLIENT_URL: ", cfg.ClientURL)

	// Hospital directory
	directory, err := loadHospitals(ctx, cfg.Hospitals)
	if err != nil {
		log.Fatalf("Failed to load hospital directory: %v", err)
	}
	log.Printf("Hospital directory ready with %d hospitals", directory.Len())

	// Language models
	var models []llm.Model
	if cfg.OpenAI.APIKey != "" {
		fmt.Println("OPENAI_API_KEY loaded")
		client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
		models = llm.NewOpenAIModels(client, cfg.OpenAI.Models)
	} else {
		log.Println("OPENAI_API_KEY not set, chat requests will fail with 500")
	}
	chain := llm.NewChain(models...)
	chain.OnAttempt = metrics.RecordLLMAttempt

	// Location services are optional; the gazetteer works without them.
	resolver := &processor.LocationResolver{}
	var places handlers.PlacesSearcher

	if langClient, err := nlp.InitLanguageClient(ctx); err != nil {
		log.Printf("Natural Language disabled: %v", err)
	} else {
		defer nlp.CloseLanguageClient()
		resolver.Entities = nlp.NewLocationExtractor(langClient)
	}

	if mapsClient, err := geocode.InitMapsClient(); err != nil {
		log.Printf("Google Maps disabled: %v", err)
	} else {
		resolver.Geocoder = geocode.NewMapsGeocoder(mapsClient)
		places = func(ctx context.Context, lat, lon float64, radius uint) ([]geocode.Place, error) {
			return geocode.NearbyHospitals(ctx, mapsClient, lat, lon, radius)
		}
	}

	// Initialize cron jobs
	probe := cronjobs.NewModelProbe(models)
	if len(models) > 0 {
		c, err := cronjobs.InitCronJobs(probe, cfg.ModelProbeSchedule)
		if err != nil {
			log.Fatalf("Failed to schedule model probe: %v", err)
		}
		defer c.Stop()
	}

	r := routes.SetupRouter(routes.Dependencies{
		Pipeline:       processor.NewPipeline(chain, directory, resolver),
		Hospitals:      directory,
		Places:         places,
		Probe:          probe,
		RateLimiter:    middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		ClientURL:      cfg.ClientURL,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}

// loadHospitals builds the directory from the configured source. An empty
// Firestore collection is seeded from the embedded directory.
func loadHospitals(ctx context.Context, cfg config.HospitalsConfig) (*hospitals.Directory, error) {
	switch cfg.Source {
	case config.SourceFile:
		return hospitals.LoadFile(cfg.File)

	case config.SourceFirestore:
		client, err := db.InitFirestore(ctx)
		if err != nil {
			return nil, err
		}
		defer db.CloseFirestore()

		dir, err := db.LoadHospitals(ctx, client)
		if errors.Is(err, hospitals.ErrEmpty) {
			seed := hospitals.Default()
			if _, err := db.SeedHospitals(ctx, client, seed); err != nil {
				return nil, err
			}
			return seed, nil
		}
		return dir, err

	default:
		return hospitals.Default(), nil
	}
}
