package config

import (
	"log"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds every value the service reads from the environment.
type Settings struct {
	AppPort string `mapstructure:"APP_PORT"`
	Env     string `mapstructure:"ENV"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	AdminUserID string `mapstructure:"ADMIN_USER_ID"`

	SupabaseURL        string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey    string `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseServiceKey string `mapstructure:"SUPABASE_SERVICE_KEY"`
	SupabaseSchema     string `mapstructure:"SUPABASE_SCHEMA"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	SubjectCacheTTL time.Duration `mapstructure:"SUBJECT_CACHE_TTL"`

	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	RateLimitPerMin    int    `mapstructure:"RATE_LIMIT_PER_MIN"`
	BookingJobSchedule string `mapstructure:"BOOKING_JOB_SCHEDULE"`
}

var (
	AppConfig Settings
	loadOnce  sync.Once
)

func loadDotEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
}

// LoadConfig reads .env into the process environment and resolves AppConfig from it.
func LoadConfig() Settings {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_USER_ID", "")
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_ANON_KEY", "")
	v.SetDefault("SUPABASE_SERVICE_KEY", "")
	v.SetDefault("SUPABASE_SCHEMA", "public")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SUBJECT_CACHE_TTL", "10m")
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("RATE_LIMIT_PER_MIN", 120)
	v.SetDefault("BOOKING_JOB_SCHEDULE", "*/5 * * * *")

	if err := v.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("🔥 Failed to load config: %v", err)
	}
	return AppConfig
}

// Config returns a single raw value, for settings read outside of AppConfig.
func Config(key string) string {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	return v.GetString(key)
}

func IsProduction() bool {
	return AppConfig.Env == "production"
}
