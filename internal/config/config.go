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

// Fontes de agregados suportadas
const (
	AggregateSourceRPC      = "rpc"
	AggregateSourcePostgres = "postgres"
)

// Drivers de change feed suportados
const (
	ChangeFeedPostgres = "postgres"
	ChangeFeedNATS     = "nats"
	ChangeFeedNone     = "none"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Backend          Backend          `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	ChangeFeed       ChangeFeed       `mapstructure:",squash"`
	MeetingReminders MeetingReminders `mapstructure:",squash"`
	PulseRefresh     PulseRefresh     `mapstructure:",squash"`
	AggregateSource  string           `mapstructure:"aggregate_source"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// DashboardMaxAge é a idade a partir da qual o dashboard busca os agregados de novo; zero desliga
	DashboardMaxAge time.Duration `mapstructure:"dashboard_max_age"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

// Backend é o backend hospedado que expõe os procedimentos de agregação via RPC
type Backend struct {
	URL       string        `mapstructure:"backend_url"`
	APIKey    string        `mapstructure:"backend_api_key"`
	RateLimit float64       `mapstructure:"backend_rate_limit"` // Requisições por segundo
	RateBurst int           `mapstructure:"backend_rate_burst"`
	Timeout   time.Duration `mapstructure:"backend_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type ChangeFeed struct {
	Driver  string `mapstructure:"change_feed_driver"`
	NATSURL string `mapstructure:"nats_url"`
}

type MeetingReminders struct {
	IntervalSeconds int  `mapstructure:"meeting_reminder_interval_seconds"`
	LeadMinutes     int  `mapstructure:"meeting_reminder_lead_minutes"`
	Enabled         bool `mapstructure:"meeting_reminder_enabled"`
}

type PulseRefresh struct {
	CronSchedule string `mapstructure:"pulse_refresh_cron"`
	Enabled      bool   `mapstructure:"pulse_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")
	viper.SetDefault("DASHBOARD_MAX_AGE", "5m")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/crm")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("AGGREGATE_SOURCE", AggregateSourceRPC)

	viper.SetDefault("BACKEND_URL", "http://localhost:54321")
	viper.SetDefault("BACKEND_API_KEY", "")
	viper.SetDefault("BACKEND_RATE_LIMIT", 10) // 10 requisições por segundo
	viper.SetDefault("BACKEND_RATE_BURST", 8)  // As quatro buscas paralelas de dois tenants
	viper.SetDefault("BACKEND_TIMEOUT", "30s")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("CHANGE_FEED_DRIVER", ChangeFeedPostgres)
	viper.SetDefault("NATS_URL", "nats://localhost:4222")

	// Defaults para lembretes de reunião
	viper.SetDefault("MEETING_REMINDER_INTERVAL_SECONDS", 10) // Verifica a cada 10 segundos
	viper.SetDefault("MEETING_REMINDER_LEAD_MINUTES", 15)     // Avisa 15 minutos antes
	viper.SetDefault("MEETING_REMINDER_ENABLED", true)

	// Defaults para atualização periódica dos agregados
	viper.SetDefault("PULSE_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("PULSE_REFRESH_ENABLED", false)

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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica as opções que selecionam implementações
func (c *Config) Validate() error {
	switch c.AggregateSource {
	case AggregateSourceRPC, AggregateSourcePostgres:
	default:
		return fmt.Errorf("AGGREGATE_SOURCE inválido: %q", c.AggregateSource)
	}

	switch c.ChangeFeed.Driver {
	case ChangeFeedPostgres, ChangeFeedNATS, ChangeFeedNone:
	default:
		return fmt.Errorf("CHANGE_FEED_DRIVER inválido: %q", c.ChangeFeed.Driver)
	}

	if c.MeetingReminders.Enabled && c.MeetingReminders.IntervalSeconds <= 0 {
		return fmt.Errorf("MEETING_REMINDER_INTERVAL_SECONDS deve ser maior que zero")
	}

	if c.Backend.RateLimit <= 0 {
		return fmt.Errorf("BACKEND_RATE_LIMIT deve ser maior que zero")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
