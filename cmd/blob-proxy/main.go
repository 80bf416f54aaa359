package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-catalog/internal/blobproxy"
	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
	"media-catalog/internal/middleware"
	"media-catalog/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadProxyConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	metrics.InitializeMetrics()

	lister, err := blobproxy.NewMinioLister(blobproxy.MinioConfig{
		Endpoint:  config.Endpoint,
		AccessKey: config.AccessKey,
		SecretKey: config.SecretKey,
		Bucket:    config.Bucket,
		Region:    config.Region,
		UseSSL:    config.UseSSL,
	})
	if err != nil {
		startup.LogFatal("Storage error: %v", err)
	}

	baseURL := blobproxy.BaseURL(config.PublicURL, lister.EndpointURL(), lister.Bucket())
	logging.Info("  Bucket %s served as %s", lister.Bucket(), baseURL)

	router := setupRouter(blobproxy.NewHandler(lister, blobproxy.Config{
		Token:   config.Token,
		BaseURL: baseURL,
	}))
	startup.LogHTTPRoutes(router, true)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           buildHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		m := http.NewServeMux()
		m.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: ":" + config.MetricsPort, Handler: m, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
}

// setupRouter mounts the list handler for every method; it answers
// OPTIONS and rejects the rest itself.
func setupRouter(list http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle(blobproxy.ListPath, list)
	r.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"alive"}` + "\n"))
	}).Methods("GET", "HEAD")
	return r
}

func buildHandler(router http.Handler) http.Handler {
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.ServiceName = "MediaCatalogBlobProxy/1.0"

	return middleware.Chain(router,
		middleware.RequestID(),
		middleware.Logger(loggingConfig),
		middleware.Metrics(middleware.DefaultMetricsConfig()),
		middleware.Compression(middleware.DefaultCompressionConfig()),
	)
}

func handleShutdown(srv, metricsSrv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
