package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"jaac-backend/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: credentials and values that differ between environments
// - default: values common across all environments (timeouts, template ids, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	Site       SiteConfig
	CORS       CORSConfig
	Log        LogConfig
	Stripe     StripeConfig
	Email      EmailConfig
	Upload     UploadConfig
	Redis      RedisConfig
	Scheduling SchedulingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

type SiteConfig struct {
	BaseURL string `envconfig:"PUBLIC_BASE_URL" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Toronto"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-18000"` // -5*60*60
}

type StripeConfig struct {
	SecretKey           string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	PublishableKey      string `envconfig:"STRIPE_PUBLISHABLE_KEY"`
	PriceIndividual     string `envconfig:"STRIPE_PRICE_INDIVIDUAL" default:"price_INDIVIDUAL_TEST_ID"`
	PriceCoupDeMain     string `envconfig:"STRIPE_PRICE_COUPDEMAIN" default:"price_COUPDEMAIN_TEST_ID"`
	PriceEnterprise     string `envconfig:"STRIPE_PRICE_ENTERPRISE" default:"price_ENTERPRISE_TEST_ID"`
	ProvisionTestPrices bool   `envconfig:"STRIPE_PROVISION_TEST_PRICES" default:"false"`
	// Overrides the API host; used against stripe-mock in tests.
	APIURL string `envconfig:"STRIPE_API_URL"`
}

type EmailConfig struct {
	APIKey          string        `envconfig:"BREVO_API_KEY" required:"true"`
	BaseURL         string        `envconfig:"BREVO_BASE_URL" default:"https://api.brevo.com"`
	SenderAddress   string        `envconfig:"EMAIL_SENDER_ADDRESS" default:"jaac.team@gmail.com"`
	SenderName      string        `envconfig:"EMAIL_SENDER_NAME" default:"JAAC"`
	AdminAddress    string        `envconfig:"ADMIN_EMAIL" required:"true"`
	AdminName       string        `envconfig:"ADMIN_NAME" default:"JAAC Admin"`
	UserTemplateID  int64         `envconfig:"EMAIL_USER_TEMPLATE_ID" default:"1"`
	AdminTemplateID int64         `envconfig:"EMAIL_ADMIN_TEMPLATE_ID" default:"2"`
	Timeout         time.Duration `envconfig:"EMAIL_TIMEOUT" default:"10s"`
	MaxRetries      uint64        `envconfig:"EMAIL_MAX_RETRIES" default:"3"`
}

type UploadConfig struct {
	Backend  string `envconfig:"UPLOAD_BACKEND" default:"local"`
	Dir      string `envconfig:"UPLOAD_DIR" default:"public/uploads"`
	S3Bucket string `envconfig:"UPLOAD_S3_BUCKET"`
	S3Region string `envconfig:"UPLOAD_S3_REGION" default:"ca-central-1"`
	S3Prefix string `envconfig:"UPLOAD_S3_PREFIX" default:"uploads"`
}

type RedisConfig struct {
	// Empty selects the in-process confirmation guard.
	URL             string        `envconfig:"REDIS_URL"`
	Timeout         time.Duration `envconfig:"REDIS_TIMEOUT" default:"3s"` // dial, read, write and startup ping
	ConfirmationTTL time.Duration `envconfig:"CONFIRMATION_TTL" default:"720h"`
}

type SchedulingConfig struct {
	ScriptURL   string `envconfig:"CALENDLY_SCRIPT_URL" default:"https://assets.calendly.com/assets/external/widget.js"`
	InPersonURL string `envconfig:"CALENDLY_INPERSON_URL" default:"https://calendly.com/jaac-team/30-minutes-de-reunion-individuelle"`
	VirtualURL  string `envconfig:"CALENDLY_VIRTUAL_URL" default:"https://calendly.com/jaac-team/reunion-virtuelle-de-30-minutes"`
	UTMSource   string `envconfig:"CALENDLY_UTM_SOURCE" default:"JAAC Website"`
	UTMMedium   string `envconfig:"CALENDLY_UTM_MEDIUM" default:"Booking"`
}

const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

// LoadConfig reads a .env file when present, then the process environment.
// All missing or invalid variables are reported together in an *errs.ConfigError.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errs.Wrap(err, "failed to read .env file")
	}

	var cfg Config
	cerr := &errs.ConfigError{}
	for _, group := range []any{
		&cfg.Server, &cfg.Site, &cfg.CORS, &cfg.Log, &cfg.Stripe,
		&cfg.Email, &cfg.Upload, &cfg.Redis, &cfg.Scheduling,
	} {
		collect(cerr, group)
	}

	if cerr.Empty() {
		cfg.Validate(cerr)
	}
	if !cerr.Empty() {
		return Config{}, cerr
	}
	return cfg, nil
}

// collect processes each group on its own so that one bad group does not
// hide the next one. Required keys set to an empty string count as missing.
func collect(cerr *errs.ConfigError, group any) {
	missing := false
	for _, key := range requiredKeys(group) {
		if os.Getenv(key) == "" {
			cerr.AddMissing(key)
			missing = true
		}
	}
	if missing {
		return
	}

	err := envconfig.Process("", group)
	if err == nil {
		return
	}
	var parseErr *envconfig.ParseError
	if errors.As(err, &parseErr) {
		cerr.AddInvalid(parseErr.KeyName, parseErr.Err.Error())
		return
	}
	cerr.AddInvalid(fmt.Sprintf("%T", group), err.Error())
}

// requiredKeys lists the envconfig keys tagged required:"true" on a flat
// group struct.
func requiredKeys(group any) []string {
	t := reflect.TypeOf(group)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("required") != "true" {
			continue
		}
		key := f.Tag.Get("envconfig")
		if key == "" {
			key = strings.ToUpper(f.Name)
		}
		keys = append(keys, key)
	}
	return keys
}

// Validate adds semantic problems that struct tags cannot express.
func (c *Config) Validate(cerr *errs.ConfigError) {
	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			cerr.AddInvalid("PUBLIC_BASE_URL", "must be an absolute URL")
		}
		c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
	}

	switch c.Upload.Backend {
	case UploadBackendLocal:
	case UploadBackendS3:
		if c.Upload.S3Bucket == "" {
			cerr.AddMissing("UPLOAD_S3_BUCKET")
		}
	default:
		cerr.AddInvalid("UPLOAD_BACKEND", "must be local or s3")
	}

	if c.Email.Timeout <= 0 {
		cerr.AddInvalid("EMAIL_TIMEOUT", "must be positive")
	}
	if c.Redis.URL != "" && c.Redis.Timeout <= 0 {
		cerr.AddInvalid("REDIS_TIMEOUT", "must be positive")
	}
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Site: SiteConfig{
			BaseURL: "http://localhost:3000",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Toronto",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -18000,
		},
		Stripe: StripeConfig{
			SecretKey:       "sk_test_dummy",
			PriceIndividual: "price_individual",
			PriceCoupDeMain: "price_coupdemain",
			PriceEnterprise: "price_ENTERPRISE_TEST_ID",
		},
		Email: EmailConfig{
			APIKey:          "xkeysib-test",
			BaseURL:         "http://localhost:0",
			SenderAddress:   "jaac.team@gmail.com",
			SenderName:      "JAAC",
			AdminAddress:    "admin@example.com",
			AdminName:       "JAAC Admin",
			UserTemplateID:  1,
			AdminTemplateID: 2,
			Timeout:         2 * time.Second,
			MaxRetries:      1,
		},
		Upload: UploadConfig{
			Backend: UploadBackendLocal,
			Dir:     "public/uploads",
		},
		Redis: RedisConfig{
			Timeout:         time.Second,
			ConfirmationTTL: time.Hour,
		},
		Scheduling: SchedulingConfig{
			ScriptURL:   "https://assets.calendly.com/assets/external/widget.js",
			InPersonURL: "https://calendly.com/jaac-team/30-minutes-de-reunion-individuelle",
			VirtualURL:  "https://calendly.com/jaac-team/reunion-virtuelle-de-30-minutes",
			UTMSource:   "JAAC Website",
			UTMMedium:   "Booking",
		},
	}
}
