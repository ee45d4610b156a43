package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	GoogleAds      GoogleAds      `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	CampaignSync   CampaignSync   `mapstructure:",squash"`
	OpenAI         OpenAI         `mapstructure:",squash"`
	Anthropic      Anthropic      `mapstructure:",squash"`
	Gemini         Gemini         `mapstructure:",squash"`
	Consensus      Consensus      `mapstructure:",squash"`
	Recommendation Recommendation `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	AutoMigrate     bool          `mapstructure:"database_auto_migrate"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type GoogleAds struct {
	BaseURL        string        `mapstructure:"google_ads_base_url"`
	Version        string        `mapstructure:"google_ads_version"`
	URL            string        `mapstructure:"-"`
	DeveloperToken string        `mapstructure:"google_ads_developer_token"`
	ClientID       string        `mapstructure:"google_ads_client_id"`
	ClientSecret   string        `mapstructure:"google_ads_client_secret"`
	TokenURL       string        `mapstructure:"google_ads_token_url"`
	RequestTimeout time.Duration `mapstructure:"google_ads_request_timeout"`
	PageSize       int           `mapstructure:"google_ads_page_size"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type CampaignSync struct {
	At                string `mapstructure:"campaign_sync_at"`
	LookbackDays      int    `mapstructure:"campaign_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"campaign_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"campaign_sync_enabled"`
}

type OpenAI struct {
	APIKey  string        `mapstructure:"openai_api_key"`
	BaseURL string        `mapstructure:"openai_base_url"`
	Model   string        `mapstructure:"openai_model"`
	Timeout time.Duration `mapstructure:"openai_timeout"`
}

type Anthropic struct {
	APIKey    string        `mapstructure:"anthropic_api_key"`
	BaseURL   string        `mapstructure:"anthropic_base_url"`
	Model     string        `mapstructure:"anthropic_model"`
	MaxTokens int           `mapstructure:"anthropic_max_tokens"`
	Timeout   time.Duration `mapstructure:"anthropic_timeout"`
}

type Gemini struct {
	APIKey  string        `mapstructure:"gemini_api_key"`
	Model   string        `mapstructure:"gemini_model"`
	Timeout time.Duration `mapstructure:"gemini_timeout"`
}

type Consensus struct {
	DefaultProvider string        `mapstructure:"consensus_default_provider"`
	JoinTimeout     time.Duration `mapstructure:"consensus_join_timeout"`
	ProviderTimeout time.Duration `mapstructure:"consensus_provider_timeout"`
}

type Recommendation struct {
	RetentionDays int `mapstructure:"recommendation_retention_days"`
	BurnInDays    int `mapstructure:"recommendation_burn_in_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/advisor?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)
	// a sincronização abre até CAMPAIGN_SYNC_MAX_CONCURRENT_JOBS transações ao mesmo tempo
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v21")
	viper.SetDefault("GOOGLE_ADS_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("GOOGLE_ADS_PAGE_SIZE", 0) // 0 = padrão da API

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Sincronização diária de campanhas
	viper.SetDefault("CAMPAIGN_SYNC_AT", "01:00")              // Todos os dias à 1h da manhã (horário local)
	viper.SetDefault("CAMPAIGN_SYNC_LOOKBACK_DAYS", 7)         // Janela de 7 dias
	viper.SetDefault("CAMPAIGN_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 administradores em paralelo
	viper.SetDefault("CAMPAIGN_SYNC_ENABLED", true)

	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")
	viper.SetDefault("OPENAI_TIMEOUT", "60s")

	viper.SetDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com/v1")
	viper.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5")
	viper.SetDefault("ANTHROPIC_MAX_TOKENS", 2048)
	viper.SetDefault("ANTHROPIC_TIMEOUT", "60s")

	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_TIMEOUT", "60s")

	viper.SetDefault("CONSENSUS_DEFAULT_PROVIDER", "openai")
	viper.SetDefault("CONSENSUS_JOIN_TIMEOUT", "90s")
	viper.SetDefault("CONSENSUS_PROVIDER_TIMEOUT", "60s") // limite de cada chamada dentro do adaptador

	viper.SetDefault("RECOMMENDATION_RETENTION_DAYS", 90)
	viper.SetDefault("RECOMMENDATION_BURN_IN_DAYS", 7)

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.GoogleAds.URL = fmt.Sprintf("%s/%s", config.GoogleAds.BaseURL, config.GoogleAds.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) validate() error {
	if _, err := time.Parse("15:04", c.CampaignSync.At); err != nil {
		return fmt.Errorf("CAMPAIGN_SYNC_AT inválido (%q): esperado HH:MM", c.CampaignSync.At)
	}

	if c.CampaignSync.LookbackDays <= 0 {
		c.CampaignSync.LookbackDays = 7
	}

	if c.CampaignSync.MaxConcurrentJobs <= 0 {
		c.CampaignSync.MaxConcurrentJobs = 1
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
