package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config reúne tudo que os subcomandos leem do ambiente.
type Config struct {
	Porta       string
	PainelPorta string
	APIURL      string

	DB DBConfig

	CORSOrigins []string
	JWTSecret   string
	APIToken    string
	WebhookURL  string
	HTTPTimeout time.Duration
	LogLevel    string
}

type DBConfig struct {
	Driver     string
	Host       string
	Port       uint
	User       string
	Password   string
	Name       string
	SSLDisable bool
	Path       string

	MaxIdleConns int
	MaxOpenConns int
}

// Carregar lê o .env (se existir) e depois as variáveis de ambiente.
func Carregar() (*Config, error) {
	_ = godotenv.Load()
	return DoAmbiente()
}

// DoAmbiente monta a Config apenas a partir das variáveis já presentes no processo.
func DoAmbiente() (*Config, error) {
	cfg := &Config{
		Porta:       envOu("PORT", "8080"),
		PainelPorta: envOu("PAINEL_PORT", "3000"),
		APIURL:      strings.TrimRight(envOu("API_URL", "http://localhost:8080/api/v1/colaborador"), "/"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		APIToken:    os.Getenv("API_TOKEN"),
		WebhookURL:  os.Getenv("WEBHOOK_URL"),
		LogLevel:    envOu("LOG_LEVEL", "info"),
		CORSOrigins: listaCSV(envOu("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		DB: DBConfig{
			Driver:     strings.ToLower(envOu("DB_DRIVER", DriverPostgres)),
			Host:       envOu("DB_HOST", "localhost"),
			User:       envOu("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       envOu("DB_NAME", "colaboradores"),
			SSLDisable: os.Getenv("DB_SSL_MODE_DISABLE") == "true",
			Path:       envOu("DB_PATH", "colaboradores.db"),
		},
	}

	port, err := strconv.ParseUint(envOu("DB_PORT", "5432"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("DB_PORT inválida: %w", err)
	}
	cfg.DB.Port = uint(port)

	if cfg.DB.MaxIdleConns, err = envInt("DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DB.MaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}

	cfg.HTTPTimeout, err = time.ParseDuration(envOu("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_TIMEOUT inválido: %w", err)
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("DB_DRIVER não suportado: %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func envOu(chave, padrao string) string {
	if v := strings.TrimSpace(os.Getenv(chave)); v != "" {
		return v
	}
	return padrao
}

func envInt(chave string, padrao int) (int, error) {
	v := strings.TrimSpace(os.Getenv(chave))
	if v == "" {
		return padrao, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválida: %w", chave, err)
	}
	return n, nil
}

func listaCSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
