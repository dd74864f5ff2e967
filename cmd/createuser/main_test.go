package main

import (
	"bytes"
	"context"
	"testing"

	"wallet-service/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name  string
		admin config.AdminConfig
	}{
		{"both missing", config.AdminConfig{}},
		{"missing password", config.AdminConfig{Email: "admin@example.com"}},
		{"missing email", config.AdminConfig{Password: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), &config.Config{Admin: tt.admin}, true, zerolog.Nop(), &out)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "ADMIN_EMAIL and ADMIN_PASSWORD")
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_ReturnsConnectionError(t *testing.T) {
	cfg := &config.Config{
		Admin:    config.AdminConfig{Email: "admin@example.com", Password: "secret"},
		Database: config.DatabaseConfig{URL: "postgres://user@localhost:notaport/wallets"},
	}

	var out bytes.Buffer
	err := run(context.Background(), cfg, false, zerolog.Nop(), &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to postgres")
	assert.Empty(t, out.String())
}
