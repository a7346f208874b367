package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 50052, cfg.Server.Port)
	assert.Equal(t, "kernel", cfg.ServiceIdentity.Name)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("KERNEL_STORAGE_DRIVER", "memory")
	t.Setenv("KERNEL_SERVER_PORT", "6000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:6000", cfg.Server.Address())
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("KERNEL_STORAGE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"postgres", Config{Storage: StorageConfig{Driver: "postgres"}}, false},
		{"memory", Config{Storage: StorageConfig{Driver: "memory"}}, false},
		{"empty driver", Config{}, true},
		{"telemetry without name", Config{Storage: StorageConfig{Driver: "memory"}, Telemetry: TelemetryConfig{Enabled: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "k", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=k sslmode=disable", c.ConnectionString())
}
