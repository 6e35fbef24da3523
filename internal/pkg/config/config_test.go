//go:build unit

package config_test

import (
	"testing"
	"time"

	"jaac-backend/internal/pkg/config"
	"jaac-backend/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredEnv = map[string]string{
	"PUBLIC_BASE_URL":   "https://jaac.example.com/",
	"STRIPE_SECRET_KEY": "sk_test_123",
	"BREVO_API_KEY":     "xkeysib-123",
	"ADMIN_EMAIL":       "admin@jaac.example.com",
}

// setEnv runs from an empty directory so no .env file is picked up.
func setEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	t.Chdir(t.TempDir())
	for k, v := range requiredEnv {
		t.Setenv(k, v)
	}
	t.Setenv("UPLOAD_BACKEND", config.UploadBackendLocal)
	t.Setenv("EMAIL_TIMEOUT", "10s")
	for k, v := range overrides {
		t.Setenv(k, v)
	}
}

func asConfigError(t *testing.T, err error) *errs.ConfigError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrConfiguration))
	cerr, ok := err.(*errs.ConfigError)
	require.True(t, ok, "expected *errs.ConfigError, got %T", err)
	return cerr
}

func TestLoadConfig(t *testing.T) {
	setEnv(t, nil)

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "https://jaac.example.com", cfg.Site.BaseURL)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, int64(1), cfg.Email.UserTemplateID)
	assert.Equal(t, int64(2), cfg.Email.AdminTemplateID)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
	assert.Equal(t, config.UploadBackendLocal, cfg.Upload.Backend)
}

func TestLoadConfig_ReportsEveryMissingCredential(t *testing.T) {
	setEnv(t, map[string]string{
		"PUBLIC_BASE_URL":   "",
		"STRIPE_SECRET_KEY": "",
		"BREVO_API_KEY":     "",
		"ADMIN_EMAIL":       "",
	})

	_, err := config.LoadConfig()

	cerr := asConfigError(t, err)
	assert.ElementsMatch(t,
		[]string{"PUBLIC_BASE_URL", "STRIPE_SECRET_KEY", "BREVO_API_KEY", "ADMIN_EMAIL"},
		cerr.Missing)
	assert.Empty(t, cerr.Invalid)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantMissing []string
		wantInvalid string
	}{
		{
			name:        "relative base url",
			env:         map[string]string{"PUBLIC_BASE_URL": "jaac.example.com"},
			wantInvalid: "PUBLIC_BASE_URL",
		},
		{
			name:        "unknown upload backend",
			env:         map[string]string{"UPLOAD_BACKEND": "ftp"},
			wantInvalid: "UPLOAD_BACKEND",
		},
		{
			name:        "unparsable timeout",
			env:         map[string]string{"EMAIL_TIMEOUT": "soon"},
			wantInvalid: "EMAIL_TIMEOUT",
		},
		{
			name:        "redis without timeout",
			env:         map[string]string{"REDIS_URL": "redis://localhost:6379", "REDIS_TIMEOUT": "0s"},
			wantInvalid: "REDIS_TIMEOUT",
		},
		{
			name:        "s3 without bucket",
			env:         map[string]string{"UPLOAD_BACKEND": config.UploadBackendS3, "UPLOAD_S3_BUCKET": ""},
			wantMissing: []string{"UPLOAD_S3_BUCKET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)

			_, err := config.LoadConfig()

			cerr := asConfigError(t, err)
			if tt.wantInvalid != "" {
				assert.Contains(t, cerr.Invalid, tt.wantInvalid)
			}
			assert.Equal(t, tt.wantMissing, cerr.Missing)
		})
	}
}
