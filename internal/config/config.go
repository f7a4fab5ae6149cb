package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error reading test config file", "error", err)
			}
		}
	})
}

func setDefaults() {
	viper.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5")
	viper.SetDefault("geocoding.api_url", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("geocoding.user_agent", "weather-dashboard/1.0")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("store.driver", "redis")
	viper.SetDefault("store.prefix", "dashboard:")
	viper.SetDefault("store.sqlite_path", "dashboard.db")
	viper.SetDefault("http_client.timeout", "10s")
	viper.SetDefault("notifications.ttl", "1500ms")
	viper.SetDefault("dashboard.default_city", "kolkata")
	viper.SetDefault("dashboard.default_units", "metric")
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return strings.TrimRight(viper.GetString("openweathermap.api_url"), "/")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

func GetGeocodingApiUrl() string {
	initConfig()
	return viper.GetString("geocoding.api_url")
}

// GetGeocodingUserAgent returns the User-Agent sent to the geocoding provider.
// Nominatim rejects requests without one.
func GetGeocodingUserAgent() string {
	initConfig()
	return viper.GetString("geocoding.user_agent")
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	return serverPort
}

func GetServerTimeout(key string) string {
	initConfig()
	return viper.GetString("server." + key)
}

// GetServerTimeoutDuration parses a server timeout, falling back to def when unset or invalid.
func GetServerTimeoutDuration(key string, def time.Duration) time.Duration {
	return parseDuration(GetServerTimeout(key), def)
}

// GetStoreDriver returns the persisted state backend: redis, sqlite or memory.
func GetStoreDriver() string {
	initConfig()
	return strings.ToLower(viper.GetString("store.driver"))
}

func GetStorePrefix() string {
	initConfig()
	return viper.GetString("store.prefix")
}

func GetSQLitePath() string {
	initConfig()
	return viper.GetString("store.sqlite_path")
}

// GetHTTPClientTimeout returns the timeout for outbound provider calls. Defaults to 10s.
func GetHTTPClientTimeout() time.Duration {
	initConfig()
	return parseDuration(viper.GetString("http_client.timeout"), 10*time.Second)
}

// GetNotificationTTL returns how long a notification stays visible. Defaults to 1.5s.
func GetNotificationTTL() time.Duration {
	initConfig()
	return parseDuration(viper.GetString("notifications.ttl"), 1500*time.Millisecond)
}

func GetDefaultCity() string {
	initConfig()
	return viper.GetString("dashboard.default_city")
}

func GetDefaultUnits() string {
	initConfig()
	return viper.GetString("dashboard.default_units")
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
