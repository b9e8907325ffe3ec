package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Redis      RedisConfig
	Attendance AttendanceConfig
	Stock      StockConfig
	Phone      PhoneConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string
	CompanyName string // encabezado de comprobantes de pago
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Driver "memory" levanta la API sin base de datos (desarrollo y demos).
type DBConfig struct {
	Driver      string // postgres | memory
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// RedisConfig conexión a Redis para los bloqueos distribuidos de asistencia.
// Address vacío = bloqueo en memoria (una sola instancia).
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Enabled indica si hay un Redis configurado.
func (c RedisConfig) Enabled() bool {
	return c.Address != ""
}

// AttendanceConfig política de jornada laboral.
type AttendanceConfig struct {
	Timezone       string // IANA, ej. Africa/Lagos
	WorkStart      string // HH:MM; entradas posteriores quedan como LATE
	StandardHours  float64
	LockTTLSeconds int
}

// StockConfig umbrales de estado de inventario.
// CriticalRatio no tiene valor por defecto: debe configurarse explícitamente.
type StockConfig struct {
	CriticalRatio string
}

// PhoneConfig región por defecto para normalizar teléfonos sin prefijo internacional.
type PhoneConfig struct {
	DefaultRegion string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	cfg := read()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase lee la misma configuración que Load pero solo valida lo necesario
// para conectarse a la base de datos (usado por cmd/seed).
func LoadDatabase() (*Config, error) {
	cfg := read()
	if err := cfg.validateDB(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() *Config {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "ivanstamas-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
			CompanyName: getString(v, "COMPANY_NAME", "IVANSTAMAS"),
		},
		DB: DBConfig{
			Driver:      getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ivanstamas"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "ivanstamas-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Address:  getString(v, "REDIS_ADDRESS", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Attendance: AttendanceConfig{
			Timezone:       getString(v, "ATTENDANCE_TIMEZONE", "Africa/Lagos"),
			WorkStart:      getString(v, "ATTENDANCE_WORK_START", "09:00"),
			StandardHours:  getFloat(v, "ATTENDANCE_STANDARD_HOURS", 8),
			LockTTLSeconds: getInt(v, "ATTENDANCE_LOCK_TTL_SECONDS", 10),
		},
		Stock: StockConfig{
			CriticalRatio: getString(v, "STOCK_CRITICAL_RATIO", ""),
		},
		Phone: PhoneConfig{
			DefaultRegion: getString(v, "PHONE_DEFAULT_REGION", "NG"),
		},
	}
	return cfg
}

func (c *Config) validateDB() error {
	if c.DB.Driver != "postgres" && c.DB.Driver != "memory" {
		return fmt.Errorf("config: DB_DRIVER inválido %q (postgres|memory)", c.DB.Driver)
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.validateDB(); err != nil {
		return err
	}
	if c.Stock.CriticalRatio == "" {
		return fmt.Errorf("config: STOCK_CRITICAL_RATIO es obligatorio (fracción de min_stock bajo la cual el ítem es Critical)")
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}
	if c.Attendance.StandardHours <= 0 {
		return fmt.Errorf("config: ATTENDANCE_STANDARD_HOURS debe ser > 0")
	}
	return nil
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
