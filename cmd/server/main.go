package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/jusunglee/bikeshare-go/api/handlers"
	"github.com/jusunglee/bikeshare-go/internal/config"
	"github.com/jusunglee/bikeshare-go/pkg/bikeshare"
)

func main() {
	config.LoadEnv()
	settings := config.FromEnv("info")

	var (
		port     = flag.String("port", settings.Port, "Server port")
		dataDir  = flag.String("data-dir", settings.DataDir, "Directory holding the city CSV files")
		catalog  = flag.String("catalog", settings.CatalogFile, "YAML file mapping cities to CSV files")
		logLevel = flag.String("log-level", settings.LogLevel, "Log level")
	)
	flag.Parse()

	if err := config.InitLogger(*logLevel); err != nil {
		log.Fatalf("Invalid log level %q: %v", *logLevel, err)
	}

	client, err := bikeshare.NewLocal(bikeshare.Config{
		DataDir:     *dataDir,
		CatalogFile: *catalog,
	})
	if err != nil {
		log.Fatalf("Failed to create bikeshare client: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      newRouter(client),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Infof("Server starting on port %s", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}

// newRouter wraps the routes in CORS and request logging.
// CORS sits outside the router so preflight requests never reach method matching.
func newRouter(client bikeshare.Client) http.Handler {
	r := mux.NewRouter()
	h := handlers.NewHandler(client)
	h.RegisterRoutes(r)

	withCORS := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
	return loggingMiddleware(withCORS(r))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"uri":        r.RequestURI,
			"duration":   time.Since(start),
		}).Info("request handled")
	})
}
