package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// MEXC API 설정
	Mexc struct {
		WebToken string `envconfig:"MEXC_WEB_TOKEN" required:"true"`
		BaseURL  string `envconfig:"MEXC_BASE_URL"`
	}

	// 애플리케이션 설정
	App struct {
		RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
		LogLevel       string        `envconfig:"LOG_LEVEL" default:"WARN"`
		Symbol         string        `envconfig:"SYMBOL" default:"BTC_USDT"`
	}
}

// ValidateConfig는 설정이 유효한지 확인합니다.
func ValidateConfig(cfg *Config) error {
	// WEB 토큰은 브라우저 세션에서 발급되며 항상 "WEB"으로 시작합니다
	if !strings.HasPrefix(cfg.Mexc.WebToken, "WEB") {
		return fmt.Errorf("MEXC_WEB_TOKEN은 \"WEB\"으로 시작해야 합니다")
	}

	if cfg.App.RequestTimeout < 1*time.Second {
		return fmt.Errorf("REQUEST_TIMEOUT은 1초 이상이어야 합니다")
	}

	return nil
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
func LoadConfig() (*Config, error) {
	// .env 파일이 없으면 환경변수만 사용합니다
	_ = godotenv.Load()

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}
