// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging for the catalog server and the blob proxy.
//
// # Configuration
//
// Configuration is read from environment variables through viper. Empty
// variables count as unset. The catalog server ([LoadConfig]) supports:
//
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable the metrics server (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - BLOB_API_URL: Blob-list proxy endpoint (default: http://localhost:8081/api/blob/list)
//   - MUSIC_BLOB_READ_WRITE_TOKEN: Audio blob token; MUJSIC_BLOB_READ_WRITE_TOKEN is accepted as an alias
//   - VIDEO_BLOB_READ_WRITE_TOKEN: Video blob token
//   - MUSIC_URL, VIDEO_URL: Public base URLs used to absolutize relative blob URLs
//   - MEGA_API_URL: Cloud-drive proxy endpoint; enables the fallback tier
//   - MUSIC_MEGA_RECOVERY_KEY, VIDEO_MEGA_RECOVERY_KEY: Cloud-drive recovery keys
//
// A missing token or proxy URL disables the matching tier instead of failing.
//
// The blob proxy ([LoadProxyConfig]) supports PROXY_PORT (default: 8081),
// BLOB_PROXY_TOKEN, S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET,
// S3_REGION, S3_USE_SSL (default: true) and S3_PUBLIC_URL. The token, the
// endpoint and the bucket are required.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//
//	agg := catalog.New(config.Catalog(), blob, drive)
//	startup.LogStorageInit(agg.Status())
//
//	startup.LogServerStarted(startup.ServerConfig{
//	    Port:            config.Port,
//	    MetricsPort:     config.MetricsPort,
//	    MetricsEnabled:  config.MetricsEnabled,
//	    StartupDuration: time.Since(startTime),
//	})
package startup
