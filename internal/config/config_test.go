// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "ONMS CRM",
			Environment: "development",
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			ApplicantsPath: "data/applicants.csv",
			UsersPath:      "data/users.csv",
		},
		JWT: JWTConfig{
			PrivateKeyPath: "keys/private.pem",
			PublicKeyPath:  "keys/public.pem",
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowCredentials: true,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name: "missing applicants path",
			mutate: func(c *Config) {
				c.Storage.ApplicantsPath = ""
			},
			wantErr: true,
		},
		{
			name: "missing users path",
			mutate: func(c *Config) {
				c.Storage.UsersPath = ""
			},
			wantErr: true,
		},
		{
			name: "identical storage paths",
			mutate: func(c *Config) {
				c.Storage.UsersPath = c.Storage.ApplicantsPath
			},
			wantErr: true,
		},
		{
			name: "missing private key path",
			mutate: func(c *Config) {
				c.JWT.PrivateKeyPath = ""
			},
			wantErr: true,
		},
		{
			name: "rate limit enabled without redis url",
			mutate: func(c *Config) {
				c.RateLimit.Enabled = true
			},
			wantErr: true,
		},
		{
			name: "rate limit enabled with redis url",
			mutate: func(c *Config) {
				c.RateLimit.Enabled = true
				c.Redis.URL = "redis://localhost:6379/0"
			},
		},
		{
			name: "wildcard origin with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowedOrigins = []string{"*"}
			},
			wantErr: true,
		},
		{
			name: "wildcard origin without credentials",
			mutate: func(c *Config) {
				c.CORS.AllowedOrigins = []string{"*"}
				c.CORS.AllowCredentials = false
			},
		},
		{
			name: "insecure otel in production",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Otel.Enabled = true
				c.Otel.Insecure = true
			},
			wantErr: true,
		},
		{
			name: "zero read timeout",
			mutate: func(c *Config) {
				c.Server.ReadTimeout = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := validate(c)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "APPLICANTS_PATH", want: "storage.applicants_path"},
		{in: "REDIS_URL", want: "redis.url"},
		{in: "RATE_LIMIT_ENABLED", want: "rate_limit.enabled"},
		{in: "OTEL_EXPORTER_OTLP_ENDPOINT", want: "otel.endpoint"},
		{in: "PATH", want: ""},
		{in: "HOME", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := envKeyReplacer(tt.in); got != tt.want {
				t.Errorf("envKeyReplacer(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultsAreRunnable(t *testing.T) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		t.Fatalf("loadDefaults() error = %v", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	// A zero-config start must be valid and point at the fixed data paths.
	if err := validate(c); err != nil {
		t.Errorf("validate(defaults) error = %v", err)
	}
	if c.Storage.ApplicantsPath != "data/applicants.csv" {
		t.Errorf(
			"applicants path = %q, want data/applicants.csv",
			c.Storage.ApplicantsPath,
		)
	}
	if c.Storage.UsersPath != "data/users.csv" {
		t.Errorf("users path = %q, want data/users.csv", c.Storage.UsersPath)
	}
	if !c.Storage.Seed {
		t.Error("seeding disabled by default")
	}
	if c.RateLimit.Enabled {
		t.Error("rate limiting enabled by default without redis")
	}
	if c.JWT.AccessTokenExpire != 12*time.Hour {
		t.Errorf(
			"access token expire = %v, want 12h",
			c.JWT.AccessTokenExpire,
		)
	}
}

func TestAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9090}
	if got := s.Address(); got != "127.0.0.1:9090" {
		t.Errorf("Address() = %q, want 127.0.0.1:9090", got)
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	c := validConfig()

	if !c.IsDevelopment() || c.IsProduction() {
		t.Error("development config misclassified")
	}

	c.App.Environment = "production"
	if c.IsDevelopment() || !c.IsProduction() {
		t.Error("production config misclassified")
	}
}
