package startup

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"media-catalog/internal/catalog"
	"media-catalog/internal/logging"

	"github.com/gorilla/mux"
	"github.com/spf13/viper"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// DefaultBlobAPIURL is the blob-list proxy served by cmd/blob-proxy on its
// default port.
const DefaultBlobAPIURL = "http://localhost:8081/api/blob/list"

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds the catalog server configuration
type Config struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogHealthChecks bool

	// Blob storage (tier 1)
	BlobAPIURL     string
	MusicBlobToken string
	VideoBlobToken string
	MusicURL       string
	VideoURL       string

	// Cloud drive (tier 2)
	DriveAPIURL      string
	MusicRecoveryKey string
	VideoRecoveryKey string
}

// Catalog returns the tier configuration for the aggregator. A kind's blob
// tier is enabled by its token; the drive tier by the proxy URL.
func (c *Config) Catalog() catalog.Config {
	driveEnabled := c.DriveAPIURL != ""
	return catalog.Config{
		Audio: catalog.Source{
			BlobToken:        c.MusicBlobToken,
			BlobBaseURL:      c.MusicURL,
			DriveEnabled:     driveEnabled,
			DriveRecoveryKey: c.MusicRecoveryKey,
		},
		Video: catalog.Source{
			BlobToken:        c.VideoBlobToken,
			BlobBaseURL:      c.VideoURL,
			DriveEnabled:     driveEnabled,
			DriveRecoveryKey: c.VideoRecoveryKey,
		},
	}
}

// LoadConfig loads and validates the catalog configuration from environment
// variables. Missing storage settings disable the matching tier; only
// malformed values are errors.
func LoadConfig() (*Config, error) {
	printBanner("MEDIA CATALOG")
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	v := newEnv()

	config := &Config{
		Port:             getEnv(v, "PORT", "8080"),
		MetricsPort:      getEnv(v, "METRICS_PORT", "9090"),
		MetricsEnabled:   getEnvBool(v, "METRICS_ENABLED", true),
		LogHealthChecks:  getEnvBool(v, "LOG_HEALTH_CHECKS", true),
		BlobAPIURL:       getEnv(v, "BLOB_API_URL", DefaultBlobAPIURL),
		MusicBlobToken:   getEnv(v, "MUSIC_BLOB_READ_WRITE_TOKEN", getEnv(v, "MUJSIC_BLOB_READ_WRITE_TOKEN", "")),
		VideoBlobToken:   getEnv(v, "VIDEO_BLOB_READ_WRITE_TOKEN", ""),
		MusicURL:         strings.TrimSuffix(getEnv(v, "MUSIC_URL", ""), "/"),
		VideoURL:         strings.TrimSuffix(getEnv(v, "VIDEO_URL", ""), "/"),
		DriveAPIURL:      getEnv(v, "MEGA_API_URL", ""),
		MusicRecoveryKey: getEnv(v, "MUSIC_MEGA_RECOVERY_KEY", ""),
		VideoRecoveryKey: getEnv(v, "VIDEO_MEGA_RECOVERY_KEY", ""),
	}

	logging.Info("  PORT:                         %s", config.Port)
	logging.Info("  METRICS_PORT:                 %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:              %v", config.MetricsEnabled)
	logging.Info("  LOG_HEALTH_CHECKS:            %v", config.LogHealthChecks)
	logging.Info("  LOG_LEVEL:                    %s", logging.GetLevel())
	logging.Info("  BLOB_API_URL:                 %s", config.BlobAPIURL)
	logging.Info("  MUSIC_BLOB_READ_WRITE_TOKEN:  %s", secretState(config.MusicBlobToken))
	logging.Info("  VIDEO_BLOB_READ_WRITE_TOKEN:  %s", secretState(config.VideoBlobToken))
	logging.Info("  MUSIC_URL:                    %s", valueOrUnset(config.MusicURL))
	logging.Info("  VIDEO_URL:                    %s", valueOrUnset(config.VideoURL))
	logging.Info("  MEGA_API_URL:                 %s", valueOrUnset(config.DriveAPIURL))
	logging.Info("  MUSIC_MEGA_RECOVERY_KEY:      %s", secretState(config.MusicRecoveryKey))
	logging.Info("  VIDEO_MEGA_RECOVERY_KEY:      %s", secretState(config.VideoRecoveryKey))

	if err := validatePort("PORT", config.Port); err != nil {
		return nil, err
	}
	if config.MetricsEnabled {
		if err := validatePort("METRICS_PORT", config.MetricsPort); err != nil {
			return nil, err
		}
	}

	logging.Info("")
	logging.Info("  Storage tiers:")
	logging.Info("    Audio blob:   %s", enabledString(config.MusicBlobToken != ""))
	logging.Info("    Video blob:   %s", enabledString(config.VideoBlobToken != ""))
	logging.Info("    Cloud drive:  %s", enabledString(config.DriveAPIURL != ""))
	logging.Info("    Metrics:      %s", enabledString(config.MetricsEnabled))

	if config.MusicBlobToken == "" && config.VideoBlobToken == "" && config.DriveAPIURL == "" {
		logging.Warn("  No storage configured; every listing will be empty")
	}

	return config, nil
}

// ProxyConfig holds the blob-list proxy configuration
type ProxyConfig struct {
	Port           string
	MetricsPort    string
	MetricsEnabled bool
	Token          string

	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

// LoadProxyConfig loads the blob-list proxy configuration. Unlike the
// catalog, the proxy cannot run without its bucket and token.
func LoadProxyConfig() (*ProxyConfig, error) {
	printBanner("BLOB PROXY")
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	v := newEnv()

	config := &ProxyConfig{
		Port:           getEnv(v, "PROXY_PORT", "8081"),
		MetricsPort:    getEnv(v, "METRICS_PORT", "9091"),
		MetricsEnabled: getEnvBool(v, "METRICS_ENABLED", true),
		Token:          getEnv(v, "BLOB_PROXY_TOKEN", ""),
		Endpoint:       getEnv(v, "S3_ENDPOINT", ""),
		AccessKey:      getEnv(v, "S3_ACCESS_KEY", ""),
		SecretKey:      getEnv(v, "S3_SECRET_KEY", ""),
		Bucket:         getEnv(v, "S3_BUCKET", ""),
		Region:         getEnv(v, "S3_REGION", ""),
		UseSSL:         getEnvBool(v, "S3_USE_SSL", true),
		PublicURL:      strings.TrimSuffix(getEnv(v, "S3_PUBLIC_URL", ""), "/"),
	}

	logging.Info("  PROXY_PORT:        %s", config.Port)
	logging.Info("  METRICS_PORT:      %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:   %v", config.MetricsEnabled)
	logging.Info("  LOG_LEVEL:         %s", logging.GetLevel())
	logging.Info("  BLOB_PROXY_TOKEN:  %s", secretState(config.Token))
	logging.Info("  S3_ENDPOINT:       %s", valueOrUnset(config.Endpoint))
	logging.Info("  S3_ACCESS_KEY:     %s", secretState(config.AccessKey))
	logging.Info("  S3_SECRET_KEY:     %s", secretState(config.SecretKey))
	logging.Info("  S3_BUCKET:         %s", valueOrUnset(config.Bucket))
	logging.Info("  S3_REGION:         %s", valueOrUnset(config.Region))
	logging.Info("  S3_USE_SSL:        %v", config.UseSSL)
	logging.Info("  S3_PUBLIC_URL:     %s", valueOrUnset(config.PublicURL))

	if err := validatePort("PROXY_PORT", config.Port); err != nil {
		return nil, err
	}
	if config.MetricsEnabled {
		if err := validatePort("METRICS_PORT", config.MetricsPort); err != nil {
			return nil, err
		}
	}

	var missing []string
	if config.Token == "" {
		missing = append(missing, "BLOB_PROXY_TOKEN")
	}
	if config.Endpoint == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if config.Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if strings.Contains(config.Endpoint, "://") {
		return nil, fmt.Errorf("S3_ENDPOINT must be host[:port] without a scheme, got %q", config.Endpoint)
	}

	return config, nil
}

func validatePort(name, port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid %s %q: must be a number between 1 and 65535", name, port)
	}
	return nil
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

func secretState(value string) string {
	if value == "" {
		return "(not set)"
	}
	return "(set)"
}

func valueOrUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// LogStorageInit logs which storage tier serves each media kind
func LogStorageInit(statuses []catalog.TierStatus) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("STORAGE INITIALIZATION")
	logging.Info("------------------------------------------------------------")

	for _, s := range statuses {
		switch {
		case s.Blob && s.Drive:
			logging.Info("  %-6s blob storage, cloud drive fallback", s.Kind)
		case s.Blob:
			logging.Info("  %-6s blob storage only", s.Kind)
		case s.Drive:
			logging.Info("  %-6s cloud drive only", s.Kind)
		default:
			logging.Warn("  %-6s no storage configured", s.Kind)
		}
	}
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			// Route might not have methods specified
			methods = []string{"*"}
		}

		name := route.GetName()

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   name,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		// Group routes by prefix for cleaner output
		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	// Special handling for API routes
	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://0.0.0.0:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner(title string) {
	banner := `
------------------------------------------------------------
    __  ___         ___         ______      __        __
   /  |/  /__  ____/ (_)___ _  / ____/___ _/ /_____ _/ /___  ____ _
  / /|_/ / _ \/ __  / / __ '/ / /   / __ '/ __/ __ '/ / __ \/ __ '/
 / /  / /  __/ /_/ / / /_/ / / /___/ /_/ / /_/ /_/ / / /_/ / /_/ /
/_/  /_/\___/\__,_/_/\__,_/  \____/\__,_/\__/\__,_/_/\____/\__, /
                                                          /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  %s", title)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

// newEnv returns a viper instance reading straight from the process
// environment. Empty variables count as unset.
func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func getEnv(v *viper.Viper, key, defaultValue string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(v *viper.Viper, key string, defaultValue bool) bool {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
