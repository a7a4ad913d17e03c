package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Backend   BackendConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	State     StateConfig
	DB        DBConfig
	Editor    EditorConfig
	Search    SearchConfig
	Workspace WorkspaceConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// BackendConfig destino REST que consume el Resource Client.
type BackendConfig struct {
	BaseURL    string
	Timeout    time.Duration
	AuthSource string // valor fijo del header auth-source
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig firma de los tokens de workspace emitidos por este servicio.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Backends soportados para el estado persistido de cliente.
const (
	StateMemory   = "memory"
	StateRedis    = "redis"
	StatePostgres = "postgres"
)

// StateConfig dónde vive el estado persistido (token, perfil, cachés de listas).
type StateConfig struct {
	Backend  string
	RedisURL string
	TTL      time.Duration // 0 = sin expiración
}

// DBConfig configuración de PostgreSQL (solo si State.Backend = postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// EditorConfig parámetros del editor de listas de precios.
type EditorConfig struct {
	PageSize      int
	RedirectDelay time.Duration // espera sugerida a la UI antes de salir tras guardar
}

// SearchConfig parámetros de búsqueda con debounce.
type SearchConfig struct {
	Debounce  time.Duration
	ListLimit int // tamaño de página de listados y búsquedas
}

// WorkspaceConfig vida en memoria de los workspaces.
type WorkspaceConfig struct {
	Idle       time.Duration // sin actividad por más de Idle se descarta de memoria
	SweepEvery time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ladger-workspace"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			BaseURL:    strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
			Timeout:    time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 20)) * time.Second,
			AuthSource: getString(v, "BACKEND_AUTH_SOURCE", "api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "ladger-workspace"),
		},
		State: StateConfig{
			Backend:  strings.ToLower(getString(v, "STATE_BACKEND", StateMemory)),
			RedisURL: getString(v, "REDIS_URL", "redis://localhost:6379/0"),
			TTL:      time.Duration(getInt(v, "STATE_TTL_MINUTES", 0)) * time.Minute,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ladger"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Editor: EditorConfig{
			PageSize:      getInt(v, "EDITOR_PAGE_SIZE", 40),
			RedirectDelay: time.Duration(getInt(v, "EDITOR_REDIRECT_DELAY_MS", 1500)) * time.Millisecond,
		},
		Search: SearchConfig{
			Debounce:  time.Duration(getInt(v, "SEARCH_DEBOUNCE_MS", 400)) * time.Millisecond,
			ListLimit: getInt(v, "LIST_LIMIT", 20),
		},
		Workspace: WorkspaceConfig{
			Idle:       time.Duration(getInt(v, "WORKSPACE_IDLE_MINUTES", 60)) * time.Minute,
			SweepEvery: time.Duration(getInt(v, "WORKSPACE_SWEEP_MINUTES", 5)) * time.Minute,
		},
	}

	switch cfg.State.Backend {
	case StateMemory, StateRedis, StatePostgres:
	default:
		return nil, fmt.Errorf("config: STATE_BACKEND desconocido %q", cfg.State.Backend)
	}
	if cfg.Editor.PageSize <= 0 {
		cfg.Editor.PageSize = 40
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
