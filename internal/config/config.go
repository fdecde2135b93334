package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	Analysis AnalysisConfig
	Bulk     BulkConfig
	Upload   UploadConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// EngineProviderConfig holds settings for a single reasoning engine provider.
type EngineProviderConfig struct {
	Provider        string `mapstructure:"provider"`
	APIKey          string `mapstructure:"api_key"`
	DefaultModel    string `mapstructure:"default_model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
}

// EngineConfig holds reasoning engine settings with multi-provider support.
type EngineConfig struct {
	// Flat fields describe the primary provider when Primary is not set.
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	MaxOutputTokens int `mapstructure:"max_output_tokens"`
	// CallTimeoutSecs bounds a single analysis call, including fallbacks.
	CallTimeoutSecs int `mapstructure:"call_timeout_secs"`

	Primary   EngineProviderConfig `mapstructure:"primary"`
	Secondary EngineProviderConfig `mapstructure:"secondary"`
	Tertiary  EngineProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to the flat fields.
func (e *EngineConfig) PrimaryConfig() *EngineProviderConfig {
	if e.Primary.Provider != "" {
		return e.withShared(&e.Primary)
	}
	return e.withShared(&EngineProviderConfig{
		Provider:     e.Provider,
		APIKey:       e.APIKey,
		DefaultModel: e.DefaultModel,
		TimeoutSecs:  e.TimeoutSecs,
	})
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (e *EngineConfig) SecondaryConfig() *EngineProviderConfig {
	if e.Secondary.Provider != "" {
		return e.withShared(&e.Secondary)
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (e *EngineConfig) TertiaryConfig() *EngineProviderConfig {
	if e.Tertiary.Provider != "" {
		return e.withShared(&e.Tertiary)
	}
	return nil
}

// ProviderConfigs returns the configured providers in fallback order.
func (e *EngineConfig) ProviderConfigs() []*EngineProviderConfig {
	cfgs := []*EngineProviderConfig{e.PrimaryConfig()}
	if s := e.SecondaryConfig(); s != nil {
		cfgs = append(cfgs, s)
	}
	if t := e.TertiaryConfig(); t != nil {
		cfgs = append(cfgs, t)
	}
	return cfgs
}

func (e *EngineConfig) withShared(p *EngineProviderConfig) *EngineProviderConfig {
	out := *p
	if out.MaxOutputTokens == 0 {
		out.MaxOutputTokens = e.MaxOutputTokens
	}
	return &out
}

// CallTimeout returns the per-call engine timeout.
func (e *EngineConfig) CallTimeout() time.Duration {
	if e.CallTimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(e.CallTimeoutSecs) * time.Second
}

// AnalysisConfig holds orchestration settings.
type AnalysisConfig struct {
	CacheSize int `mapstructure:"cache_size"`
	// HistorySize bounds the in-memory history used when the database is disabled.
	HistorySize int `mapstructure:"history_size"`
}

// BulkConfig holds bulk analysis worker pool settings.
type BulkConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxItems    int `mapstructure:"max_items"`
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// DBConfig holds PostgreSQL connection settings for analysis history.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for archiving uploaded contracts. An empty bucket disables archiving.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from a .env file (if any) and environment variables with the LEGALYNX_ prefix.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LEGALYNX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Engine defaults
	v.SetDefault("engine.provider", "openai")
	v.SetDefault("engine.api_key", "")
	v.SetDefault("engine.default_model", "gpt-4")
	v.SetDefault("engine.timeout_secs", 120)
	v.SetDefault("engine.max_output_tokens", 2048)
	v.SetDefault("engine.call_timeout_secs", 60)
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("engine."+tier+".provider", "")
		v.SetDefault("engine."+tier+".api_key", "")
		v.SetDefault("engine."+tier+".default_model", "")
		v.SetDefault("engine."+tier+".timeout_secs", 120)
		v.SetDefault("engine."+tier+".max_output_tokens", 0)
	}

	v.SetDefault("analysis.cache_size", 256)
	v.SetDefault("analysis.history_size", 500)
	v.SetDefault("bulk.concurrency", 4)
	v.SetDefault("bulk.max_items", 50)
	v.SetDefault("upload.max_file_size_mb", 20)

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "legalynx")
	v.SetDefault("db.password", "legalynx_secret")
	v.SetDefault("db.name", "legalynx_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,https://www.legalynx.ai")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string][]string{
		"server.port":                        {"LEGALYNX_SERVER_PORT"},
		"server.read_timeout":                {"LEGALYNX_SERVER_READ_TIMEOUT"},
		"server.write_timeout":               {"LEGALYNX_SERVER_WRITE_TIMEOUT"},
		"server.environment":                 {"LEGALYNX_SERVER_ENVIRONMENT"},
		"engine.provider":                    {"LEGALYNX_ENGINE_PROVIDER"},
		"engine.api_key":                     {"LEGALYNX_ENGINE_API_KEY", "OPENAI_API_KEY"},
		"engine.default_model":               {"LEGALYNX_ENGINE_DEFAULT_MODEL"},
		"engine.timeout_secs":                {"LEGALYNX_ENGINE_TIMEOUT_SECS"},
		"engine.max_output_tokens":           {"LEGALYNX_ENGINE_MAX_OUTPUT_TOKENS"},
		"engine.call_timeout_secs":           {"LEGALYNX_ENGINE_CALL_TIMEOUT_SECS"},
		"engine.primary.provider":            {"LEGALYNX_ENGINE_PRIMARY_PROVIDER"},
		"engine.primary.api_key":             {"LEGALYNX_ENGINE_PRIMARY_API_KEY"},
		"engine.primary.default_model":       {"LEGALYNX_ENGINE_PRIMARY_DEFAULT_MODEL"},
		"engine.primary.timeout_secs":        {"LEGALYNX_ENGINE_PRIMARY_TIMEOUT_SECS"},
		"engine.primary.max_output_tokens":   {"LEGALYNX_ENGINE_PRIMARY_MAX_OUTPUT_TOKENS"},
		"engine.secondary.provider":          {"LEGALYNX_ENGINE_SECONDARY_PROVIDER"},
		"engine.secondary.api_key":           {"LEGALYNX_ENGINE_SECONDARY_API_KEY"},
		"engine.secondary.default_model":     {"LEGALYNX_ENGINE_SECONDARY_DEFAULT_MODEL"},
		"engine.secondary.timeout_secs":      {"LEGALYNX_ENGINE_SECONDARY_TIMEOUT_SECS"},
		"engine.secondary.max_output_tokens": {"LEGALYNX_ENGINE_SECONDARY_MAX_OUTPUT_TOKENS"},
		"engine.tertiary.provider":           {"LEGALYNX_ENGINE_TERTIARY_PROVIDER"},
		"engine.tertiary.api_key":            {"LEGALYNX_ENGINE_TERTIARY_API_KEY"},
		"engine.tertiary.default_model":      {"LEGALYNX_ENGINE_TERTIARY_DEFAULT_MODEL"},
		"engine.tertiary.timeout_secs":       {"LEGALYNX_ENGINE_TERTIARY_TIMEOUT_SECS"},
		"engine.tertiary.max_output_tokens":  {"LEGALYNX_ENGINE_TERTIARY_MAX_OUTPUT_TOKENS"},
		"analysis.cache_size":                {"LEGALYNX_ANALYSIS_CACHE_SIZE"},
		"analysis.history_size":              {"LEGALYNX_ANALYSIS_HISTORY_SIZE"},
		"bulk.concurrency":                   {"LEGALYNX_BULK_CONCURRENCY"},
		"bulk.max_items":                     {"LEGALYNX_BULK_MAX_ITEMS"},
		"upload.max_file_size_mb":            {"LEGALYNX_UPLOAD_MAX_FILE_SIZE_MB"},
		"db.enabled":                         {"LEGALYNX_DB_ENABLED"},
		"db.host":                            {"LEGALYNX_DB_HOST"},
		"db.port":                            {"LEGALYNX_DB_PORT"},
		"db.user":                            {"LEGALYNX_DB_USER"},
		"db.password":                        {"LEGALYNX_DB_PASSWORD"},
		"db.name":                            {"LEGALYNX_DB_NAME"},
		"db.sslmode":                         {"LEGALYNX_DB_SSLMODE"},
		"db.max_open":                        {"LEGALYNX_DB_MAX_OPEN"},
		"db.max_idle":                        {"LEGALYNX_DB_MAX_IDLE"},
		"s3.region":                          {"LEGALYNX_S3_REGION"},
		"s3.bucket":                          {"LEGALYNX_S3_BUCKET"},
		"s3.endpoint":                        {"LEGALYNX_S3_ENDPOINT"},
		"s3.access_key":                      {"LEGALYNX_S3_ACCESS_KEY"},
		"s3.secret_key":                      {"LEGALYNX_S3_SECRET_KEY"},
		"log.level":                          {"LEGALYNX_LOG_LEVEL"},
		"log.format":                         {"LEGALYNX_LOG_FORMAT"},
		"cors.allowed_origins":               {"LEGALYNX_CORS_ALLOWED_ORIGINS"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if LEGALYNX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LEGALYNX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}

	cfg.Engine = EngineConfig{
		Provider:        v.GetString("engine.provider"),
		APIKey:          v.GetString("engine.api_key"),
		DefaultModel:    v.GetString("engine.default_model"),
		TimeoutSecs:     v.GetInt("engine.timeout_secs"),
		MaxOutputTokens: v.GetInt("engine.max_output_tokens"),
		CallTimeoutSecs: v.GetInt("engine.call_timeout_secs"),
		Primary:         loadProvider(v, "engine.primary"),
		Secondary:       loadProvider(v, "engine.secondary"),
		Tertiary:        loadProvider(v, "engine.tertiary"),
	}

	cfg.Analysis = AnalysisConfig{
		CacheSize:   v.GetInt("analysis.cache_size"),
		HistorySize: v.GetInt("analysis.history_size"),
	}
	cfg.Bulk = BulkConfig{
		Concurrency: v.GetInt("bulk.concurrency"),
		MaxItems:    v.GetInt("bulk.max_items"),
	}
	cfg.Upload = UploadConfig{MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb")}

	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}

	return cfg, nil
}

func loadProvider(v *viper.Viper, prefix string) EngineProviderConfig {
	return EngineProviderConfig{
		Provider:        v.GetString(prefix + ".provider"),
		APIKey:          v.GetString(prefix + ".api_key"),
		DefaultModel:    v.GetString(prefix + ".default_model"),
		TimeoutSecs:     v.GetInt(prefix + ".timeout_secs"),
		MaxOutputTokens: v.GetInt(prefix + ".max_output_tokens"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
