package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("환경변수에서 로드", func(t *testing.T) {
		t.Setenv("MEXC_WEB_TOKEN", "WEBabc123")
		t.Setenv("REQUEST_TIMEOUT", "10s")
		t.Setenv("LOG_LEVEL", "DEBUG")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "WEBabc123", cfg.Mexc.WebToken)
		assert.Equal(t, 10*time.Second, cfg.App.RequestTimeout)
		assert.Equal(t, "DEBUG", cfg.App.LogLevel)
		assert.Equal(t, "BTC_USDT", cfg.App.Symbol)
	})

	t.Run("토큰이 없으면 실패", func(t *testing.T) {
		t.Setenv("MEXC_WEB_TOKEN", "")

		_, err := LoadConfig()

		assert.Error(t, err)
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Mexc.WebToken = "WEBabc123"
		cfg.App.RequestTimeout = 30 * time.Second
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "유효한 설정",
			modify:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "WEB으로 시작하지 않는 토큰",
			modify:  func(cfg *Config) { cfg.Mexc.WebToken = "abc123" },
			wantErr: true,
		},
		{
			name:    "너무 짧은 타임아웃",
			modify:  func(cfg *Config) { cfg.App.RequestTimeout = 500 * time.Millisecond },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := ValidateConfig(cfg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
