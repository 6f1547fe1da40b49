package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Crypto       Crypto       `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	LinkedIn     LinkedIn     `mapstructure:",squash"`
	TikTok       TikTok       `mapstructure:",squash"`
	Google       Google       `mapstructure:",squash"`
	Reddit       Reddit       `mapstructure:",squash"`
	ChannelSync  ChannelSync  `mapstructure:",squash"`
	ReportPoller ReportPoller `mapstructure:",squash"`
	Dispatch     Dispatch     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Crypto struct {
	// SecretKey é a chave (base64, 32 bytes) usada para criptografar tokens em repouso
	SecretKey string `mapstructure:"crypto_secret_key"`
	// StateSecret assina o parâmetro state do fluxo OAuth
	StateSecret string `mapstructure:"crypto_state_secret"`
}

type Meta struct {
	BaseURL     string `mapstructure:"meta_base_url"`
	Version     string `mapstructure:"meta_version"`
	URL         string `mapstructure:"-"`
	AppID       string `mapstructure:"meta_app_id"`
	AppSecret   string `mapstructure:"meta_app_secret"`
	RedirectURL string `mapstructure:"meta_redirect_url"`
}

type LinkedIn struct {
	BaseURL      string `mapstructure:"linkedin_base_url"`
	AuthURL      string `mapstructure:"linkedin_auth_url"`
	ClientID     string `mapstructure:"linkedin_client_id"`
	ClientSecret string `mapstructure:"linkedin_client_secret"`
	RedirectURL  string `mapstructure:"linkedin_redirect_url"`
}

type TikTok struct {
	BaseURL     string `mapstructure:"tiktok_base_url"`
	AuthURL     string `mapstructure:"tiktok_auth_url"`
	AppID       string `mapstructure:"tiktok_app_id"`
	AppSecret   string `mapstructure:"tiktok_app_secret"`
	RedirectURL string `mapstructure:"tiktok_redirect_url"`
}

type Google struct {
	BaseURL        string `mapstructure:"google_base_url"`
	AuthURL        string `mapstructure:"google_auth_url"`
	TokenURL       string `mapstructure:"google_token_url"`
	ClientID       string `mapstructure:"google_client_id"`
	ClientSecret   string `mapstructure:"google_client_secret"`
	RedirectURL    string `mapstructure:"google_redirect_url"`
	DeveloperToken string `mapstructure:"google_developer_token"`
}

type Reddit struct {
	BaseURL      string `mapstructure:"reddit_base_url"`
	AuthURL      string `mapstructure:"reddit_auth_url"`
	ClientID     string `mapstructure:"reddit_client_id"`
	ClientSecret string `mapstructure:"reddit_client_secret"`
	RedirectURL  string `mapstructure:"reddit_redirect_url"`
}

type ChannelSync struct {
	CronSchedule      string `mapstructure:"channel_sync_cron"`
	LookbackDays      int    `mapstructure:"channel_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"channel_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"channel_sync_enabled"`
}

type ReportPoller struct {
	IntervalSeconds         int  `mapstructure:"report_poller_interval_seconds"`
	MaxProcessingPerChannel int  `mapstructure:"report_poller_max_processing_per_channel"`
	SuccessMarkerTTLSeconds int  `mapstructure:"report_poller_success_marker_ttl_seconds"`
	JobTTLHours             int  `mapstructure:"report_poller_job_ttl_hours"`
	Enabled                 bool `mapstructure:"report_poller_enabled"`
}

type Dispatch struct {
	// Inline executa o processamento de relatórios no próprio processo
	// (ambiente local); em produção os jobs vão para a fila durável
	Inline   bool   `mapstructure:"dispatch_inline"`
	QueueKey string `mapstructure:"dispatch_queue_key"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/channelsync")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("CRYPTO_SECRET_KEY", "")
	viper.SetDefault("CRYPTO_STATE_SECRET", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URL", "http://localhost:8000/v1/channels/META/callback")

	viper.SetDefault("LINKEDIN_BASE_URL", "https://api.linkedin.com")
	viper.SetDefault("LINKEDIN_AUTH_URL", "https://www.linkedin.com/oauth/v2")
	viper.SetDefault("LINKEDIN_CLIENT_ID", "your_client_id")
	viper.SetDefault("LINKEDIN_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("LINKEDIN_REDIRECT_URL", "http://localhost:8000/v1/channels/LINKEDIN/callback")

	viper.SetDefault("TIKTOK_BASE_URL", "https://business-api.tiktok.com/open_api/v1.3")
	viper.SetDefault("TIKTOK_AUTH_URL", "https://business-api.tiktok.com/portal/auth")
	viper.SetDefault("TIKTOK_APP_ID", "your_app_id")
	viper.SetDefault("TIKTOK_APP_SECRET", "your_app_secret")
	viper.SetDefault("TIKTOK_REDIRECT_URL", "http://localhost:8000/v1/channels/TIKTOK/callback")

	viper.SetDefault("GOOGLE_BASE_URL", "https://googleads.googleapis.com/v17")
	viper.SetDefault("GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth")
	viper.SetDefault("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_CLIENT_ID", "your_client_id")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8000/v1/channels/GOOGLE/callback")
	viper.SetDefault("GOOGLE_DEVELOPER_TOKEN", "")

	viper.SetDefault("REDDIT_BASE_URL", "https://ads-api.reddit.com/api/v3")
	viper.SetDefault("REDDIT_AUTH_URL", "https://www.reddit.com/api/v1")
	viper.SetDefault("REDDIT_CLIENT_ID", "your_client_id")
	viper.SetDefault("REDDIT_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("REDDIT_REDIRECT_URL", "http://localhost:8000/v1/channels/REDDIT/callback")

	// Defaults para a sincronização de canais
	viper.SetDefault("CHANNEL_SYNC_CRON", "0 3 * * *")      // Todos os dias às 3h da manhã
	viper.SetDefault("CHANNEL_SYNC_LOOKBACK_DAYS", 7)       // 7 dias para buscar dados
	viper.SetDefault("CHANNEL_SYNC_MAX_CONCURRENT_JOBS", 3) // 3 integrações concorrentes
	viper.SetDefault("CHANNEL_SYNC_ENABLED", false)

	// Defaults para o poller de relatórios assíncronos
	viper.SetDefault("REPORT_POLLER_INTERVAL_SECONDS", 10)
	viper.SetDefault("REPORT_POLLER_MAX_PROCESSING_PER_CHANNEL", 5)
	viper.SetDefault("REPORT_POLLER_SUCCESS_MARKER_TTL_SECONDS", 120)
	viper.SetDefault("REPORT_POLLER_JOB_TTL_HOURS", 12)
	viper.SetDefault("REPORT_POLLER_ENABLED", false)

	viper.SetDefault("DISPATCH_INLINE", true)
	viper.SetDefault("DISPATCH_QUEUE_KEY", "channel-sync:report-jobs")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
