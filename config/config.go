package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port    string `mapstructure:"port"`
			Enabled bool   `mapstructure:"enabled"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	LLM struct {
		Model          string        `mapstructure:"model"`
		EmbeddingModel string        `mapstructure:"embeddingModel"`
		Temperature    float32       `mapstructure:"temperature"`
		Timeout        time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`
	Search struct {
		CacheTTL        time.Duration `mapstructure:"cacheTTL"`
		CacheCleanup    time.Duration `mapstructure:"cacheCleanup"`
		BreakerFailures uint32        `mapstructure:"breakerFailures"`
		BreakerTimeout  time.Duration `mapstructure:"breakerTimeout"`
	} `mapstructure:"search"`
	Recommend struct {
		Destination        string   `mapstructure:"destination"`
		ReferenceLat       float64  `mapstructure:"referenceLat"`
		ReferenceLon       float64  `mapstructure:"referenceLon"`
		MaxDistanceKm      float64  `mapstructure:"maxDistanceKm"`
		MinRating          float64  `mapstructure:"minRating"`
		AllowedCategories  []string `mapstructure:"allowedCategories"`
		POIWeight          float64  `mapstructure:"poiWeight"`
		InterestSearchCap  int      `mapstructure:"interestSearchCap"`
		GeneralSearchCap   int      `mapstructure:"generalSearchCap"`
		RestaurantCap      int      `mapstructure:"restaurantSearchCap"`
		TipCatalogLimit    int      `mapstructure:"tipCatalogLimit"`
		TipEventWindowDays int      `mapstructure:"tipEventWindowDays"`
		EventLimit         int      `mapstructure:"eventLimit"`
		EventSlotTolerance int      `mapstructure:"eventSlotToleranceHours"`
		Timezone           string   `mapstructure:"timezone"`
	} `mapstructure:"recommend"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("TOURISM")
	v.AutomaticEnv()

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
