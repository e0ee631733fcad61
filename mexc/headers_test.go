package mexc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeaders(t *testing.T) {
	opts := sdkOptions{authToken: "WEBtesttoken"}
	at := time.UnixMilli(1700000000000)

	t.Run("기본 헤더 집합이 항상 포함됨", func(t *testing.T) {
		headers := buildHeaders(opts, false, nil, at)

		assert.Equal(t, "application/json", headers["content-type"])
		assert.NotEmpty(t, headers["user-agent"])
		assert.NotEmpty(t, headers["origin"])
	})

	t.Run("user-agent 덮어쓰기", func(t *testing.T) {
		custom := opts
		custom.userAgent = "my-bot/1.0"

		headers := buildHeaders(custom, false, nil, at)

		assert.Equal(t, "my-bot/1.0", headers["user-agent"])
	})

	t.Run("커스텀 헤더가 기본 헤더를 덮어씀", func(t *testing.T) {
		custom := opts
		custom.customHeaders = map[string]string{
			"accept":     "text/html",
			"x-custom":   "value",
			"user-agent": "custom-agent",
		}

		headers := buildHeaders(custom, false, nil, at)

		assert.Equal(t, "text/html", headers["accept"])
		assert.Equal(t, "value", headers["x-custom"])
		assert.Equal(t, "custom-agent", headers["user-agent"])
	})

	t.Run("인증 불필요 시 토큰 미첨부", func(t *testing.T) {
		headers := buildHeaders(opts, false, []byte(`{}`), at)

		assert.NotContains(t, headers, headerAuthorization)
		assert.NotContains(t, headers, headerNonce)
		assert.NotContains(t, headers, headerSign)
	})

	t.Run("인증 필요 + 본문 없음은 토큰만 첨부", func(t *testing.T) {
		headers := buildHeaders(opts, true, nil, at)

		assert.Equal(t, "WEBtesttoken", headers[headerAuthorization])
		assert.NotContains(t, headers, headerNonce)
		assert.NotContains(t, headers, headerSign)
	})

	t.Run("인증 필요 + 본문 있음은 서명 헤더 첨부", func(t *testing.T) {
		body := []byte(`{"symbol":"BTC_USDT"}`)
		headers := buildHeaders(opts, true, body, at)

		require.Equal(t, "WEBtesttoken", headers[headerAuthorization])
		assert.Equal(t, "1700000000000", headers[headerNonce])
		assert.Equal(t, referenceSignature("WEBtesttoken", "1700000000000", body), headers[headerSign])
	})

	t.Run("호출 간 기본 헤더 원본이 오염되지 않음", func(t *testing.T) {
		custom := opts
		custom.customHeaders = map[string]string{"content-type": "text/plain"}
		_ = buildHeaders(custom, false, nil, at)

		headers := buildHeaders(opts, false, nil, at)
		assert.Equal(t, "application/json", headers["content-type"])
	})
}
