package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPort            = 3000
	DefaultSpecPath        = "./openapidist.yaml"
	DefaultPrefix          = "/api-docs"
	DefaultLogFormat       = "text"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second

	envPrefix = "APIDOCS"
)

// Config is built once at startup and handed by value to everything that
// needs it.
type Config struct {
	Host            string
	Port            int
	SpecPath        string
	Prefix          string
	LogFormat       string
	LogLevel        string
	CORSOrigins     []string
	OpsEndpoints    bool
	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Port:            DefaultPort,
		SpecPath:        DefaultSpecPath,
		Prefix:          DefaultPrefix,
		LogFormat:       DefaultLogFormat,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DocsURL is the browser URL of the documentation page for a bound listener.
func (c Config) DocsURL(bound net.Addr) string {
	port := strconv.Itoa(c.Port)
	if tcp, ok := bound.(*net.TCPAddr); ok && tcp != nil {
		port = strconv.Itoa(tcp.Port)
	}
	host := c.Host
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + c.Prefix
}

// Normalize trims user input and fills zero values with defaults.
func (c *Config) Normalize() {
	c.Host = strings.Trim(strings.TrimSpace(c.Host), "[]")
	c.SpecPath = strings.TrimSpace(c.SpecPath)
	if c.SpecPath == "" {
		c.SpecPath = DefaultSpecPath
	}
	c.Prefix = NormalizePrefix(c.Prefix)
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = DefaultLogFormat
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	origins := make([]string, 0, len(c.CORSOrigins))
	for _, o := range c.CORSOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSOrigins = origins
}

func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d (expected 0-65535)", c.Port))
	}
	if c.SpecPath == "" {
		errs = append(errs, errors.New("spec path must not be empty"))
	}
	if !strings.HasPrefix(c.Prefix, "/") || c.Prefix == "/" {
		errs = append(errs, fmt.Errorf("invalid prefix %q (expected a path like /api-docs)", c.Prefix))
	}
	return errors.Join(errs...)
}

// NormalizePrefix returns the prefix with a single leading slash and no
// trailing slash. An empty or root prefix normalizes to "".
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// LoadEnvFiles loads .env.local and then .env from the working directory.
// Variables already present in the environment are never overwritten, so
// .env.local wins over .env. Missing files are ignored.
func LoadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		_ = godotenv.Load(name)
	}
}

// NewViper wires defaults, APIDOCS_* environment variables and the given
// flags into a fresh viper instance.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("host", d.Host)
	v.SetDefault("port", d.Port)
	v.SetDefault("spec", d.SpecPath)
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("cors-origins", "")
	v.SetDefault("ops", false)
	v.SetDefault("shutdown-timeout", d.ShutdownTimeout)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	return v, nil
}

// ReadFile merges an optional YAML/JSON/TOML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Host:            v.GetString("host"),
		Port:            v.GetInt("port"),
		SpecPath:        v.GetString("spec"),
		Prefix:          v.GetString("prefix"),
		LogFormat:       v.GetString("log-format"),
		LogLevel:        v.GetString("log-level"),
		CORSOrigins:     splitList(v.GetString("cors-origins")),
		OpsEndpoints:    v.GetBool("ops"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
