package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Backends aceitos em RECORD_STORE_DRIVER
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverREST     = "rest"
)

const (
	placeholderSecretKey = "your_secret_key"
	minSecretKeyLength   = 16
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	RecordStore RecordStore `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	SQLite      SQLite      `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Backup      Backup      `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RecordStore struct {
	Driver         string `mapstructure:"record_store_driver"`
	URL            string `mapstructure:"record_store_url"`
	APIKey         string `mapstructure:"record_store_api_key"`
	TimeoutSeconds int    `mapstructure:"record_store_timeout_seconds"`
}

func (r RecordStore) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type SQLite struct {
	Path string `mapstructure:"sqlite_path"`
}

type Auth struct {
	OwnerPasswordHash string `mapstructure:"owner_password_hash"`
	TokenTTLHours     int    `mapstructure:"auth_token_ttl_hours"`
}

type Backup struct {
	CronSchedule string `mapstructure:"backup_cron"`
	Dir          string `mapstructure:"backup_dir"`
	Enabled      bool   `mapstructure:"backup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("RECORD_STORE_DRIVER", DriverSQLite)
	viper.SetDefault("RECORD_STORE_URL", "")
	viper.SetDefault("RECORD_STORE_API_KEY", "")
	viper.SetDefault("RECORD_STORE_TIMEOUT_SECONDS", 30)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/resale?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SQLITE_PATH", "resale.db")

	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("OWNER_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("BACKUP_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("BACKUP_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	return load()
}

func load() (*Config, error) {
	config := &Config{}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.RecordStore.Driver = strings.ToLower(strings.TrimSpace(config.RecordStore.Driver))
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

// Validate confere se o backend escolhido tem o que precisa para subir
// e se a chave de assinatura dos tokens foi definida
func (c *Config) Validate() error {
	if err := validateSecretKey(c.SecretKey); err != nil {
		return err
	}

	switch c.RecordStore.Driver {
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH é obrigatório para o driver %s", DriverSQLite)
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatório para o driver %s", DriverPostgres)
		}
	case DriverREST:
		if c.RecordStore.URL == "" || c.RecordStore.APIKey == "" {
			return fmt.Errorf("RECORD_STORE_URL e RECORD_STORE_API_KEY são obrigatórios para o driver %s", DriverREST)
		}
	default:
		return fmt.Errorf("RECORD_STORE_DRIVER inválido: %q", c.RecordStore.Driver)
	}

	return nil
}

// validateSecretKey recusa chave vazia, curta ou o valor de exemplo
func validateSecretKey(key string) error {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return fmt.Errorf("SECRET_KEY é obrigatório")
	case key == placeholderSecretKey:
		return fmt.Errorf("SECRET_KEY está com o valor de exemplo %q", placeholderSecretKey)
	case len(key) < minSecretKeyLength:
		return fmt.Errorf("SECRET_KEY deve ter pelo menos %d caracteres", minSecretKeyLength)
	}
	return nil
}

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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
