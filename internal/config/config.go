package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Notion struct {
		Token         string `mapstructure:"token"`
		TokenV2       string `mapstructure:"token_v2"`
		ActiveUser    string `mapstructure:"active_user"`
		APIBaseURL    string `mapstructure:"api_base_url"`
		LegacyBaseURL string `mapstructure:"legacy_base_url"`
		RootPageID    string `mapstructure:"root_page_id"`
	} `mapstructure:"notion"`
	Site struct {
		GitHub string `mapstructure:"github"`
	} `mapstructure:"site"`
	Comments struct {
		RepoName string `mapstructure:"repo_name"`
	} `mapstructure:"comments"`
	GitHub struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"github"`
	Search struct {
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"search"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

// LoadConfig reads .env and config.yaml from the given directories (the
// working directory when none are passed) and overlays environment variables.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("notion.api_base_url", "https://api.notion.com")
	v.SetDefault("notion.legacy_base_url", "https://www.notion.so")
	v.SetDefault("search.cache_ttl", 30*time.Second)
	v.SetDefault("auth.token_lifespan", 24*time.Hour)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")

	v.BindEnv("notion.token", "NOTION_TOKEN")
	v.BindEnv("notion.token_v2", "NOTION_TOKEN_V2")
	v.BindEnv("notion.active_user", "NOTION_ACTIVE_USER")
	v.BindEnv("notion.api_base_url", "NOTION_API_BASE_URL")
	v.BindEnv("notion.legacy_base_url", "NOTION_LEGACY_BASE_URL")
	v.BindEnv("notion.root_page_id", "NOTION_ROOT_PAGE_ID")

	v.BindEnv("site.github", "SITE_GITHUB")
	v.BindEnv("comments.repo_name", "COMMENTS_REPO_NAME")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("search.cache_ttl", "SEARCH_CACHE_TTL")

	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}
