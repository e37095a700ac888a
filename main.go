package main

import (
	"log"
	"net/http"
	"os"

	"surveytranslator/api"
	"surveytranslator/batch"
	"surveytranslator/config"
	"surveytranslator/progress"
	"surveytranslator/translation"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	svc, err := buildTranslationService()
	if err != nil {
		log.Fatalf("translation service: %v", err)
	}

	tracker := progress.NewTracker()
	store := batch.NewStore(config.JobTTL)
	scheduler := batch.NewScheduler(svc, tracker)
	server := api.NewServer(scheduler, store, tracker)

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := api.NewRouter(server)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/upload")
	log.Println("  POST /api/batch/start")
	log.Println("  POST /api/batch/continue")
	log.Println("  POST /api/batch/auto-continue")
	log.Println("  GET  /api/progress")
	log.Println("  GET  /api/progress/stream")
	log.Println("  POST /api/export")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildTranslationService selects the client strategy: deterministic in
// test mode, DeepSeek otherwise, with an optional Redis cache in front
// when REDIS_ADDR is configured.
func buildTranslationService() (translation.Service, error) {
	if config.GetEnvBool("TEST_MODE") {
		log.Println("TEST_MODE enabled: using deterministic translation service")
		return translation.Static{}, nil
	}

	svc, err := translation.NewDeepSeekFromEnv()
	if err != nil {
		return nil, err
	}

	if os.Getenv("REDIS_ADDR") != "" {
		log.Printf("Translation cache enabled via %s", os.Getenv("REDIS_ADDR"))
		return translation.NewCachedFromEnv(svc), nil
	}
	return svc, nil
}
