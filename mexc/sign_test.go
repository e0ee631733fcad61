package mexc

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceSignature는 서버 검증 로직을 테스트 안에서 독립적으로 재현합니다
func referenceSignature(token, ts string, body []byte) string {
	gSum := md5.Sum([]byte(token + ts))
	g := hex.EncodeToString(gSum[:])[7:]

	signSum := md5.Sum([]byte(ts + string(body) + g))
	return hex.EncodeToString(signSum[:])
}

func TestGenerateSignature(t *testing.T) {
	token := "WEB1234567890abcdef"
	body := []byte(`{"symbol":"BTC_USDT","price":113035.6,"vol":1}`)
	at := time.UnixMilli(1700000000000)

	t.Run("동일한 밀리초와 본문은 동일한 서명을 생성", func(t *testing.T) {
		first := generateSignature(token, body, at)
		second := generateSignature(token, body, at)

		assert.Equal(t, first, second)
	})

	t.Run("타임스탬프는 밀리초 10진수 문자열", func(t *testing.T) {
		sig := generateSignature(token, body, at)

		assert.Equal(t, "1700000000000", sig.Time)
	})

	t.Run("서명은 32자리 16진수 MD5 다이제스트", func(t *testing.T) {
		sig := generateSignature(token, body, at)

		require.Len(t, sig.Sign, 32)
		_, err := hex.DecodeString(sig.Sign)
		assert.NoError(t, err)
	})

	t.Run("문서화된 공식과 일치", func(t *testing.T) {
		sig := generateSignature(token, body, at)

		expected := referenceSignature(token, sig.Time, body)
		assert.Equal(t, expected, sig.Sign)
	})

	t.Run("다른 밀리초는 타임스탬프와 서명을 모두 바꿈", func(t *testing.T) {
		first := generateSignature(token, body, at)
		second := generateSignature(token, body, at.Add(time.Millisecond))

		assert.NotEqual(t, first.Time, second.Time)
		assert.NotEqual(t, first.Sign, second.Sign)
	})

	t.Run("다른 본문은 다른 서명을 생성", func(t *testing.T) {
		first := generateSignature(token, body, at)
		second := generateSignature(token, []byte(`{"symbol":"ETH_USDT"}`), at)

		assert.NotEqual(t, first.Sign, second.Sign)
	})
}

// 주문 요청의 직렬화 결과가 필드 순서 유지, 공백 없는 압축 형태인지 확인합니다.
// 서명과 전송에 같은 바이트가 쓰이므로 이 형태가 바뀌면 서버가 서명을 거부합니다
func TestSubmitOrderRequestSerialization(t *testing.T) {
	leverage := 20
	req := SubmitOrderRequest{
		Symbol:   "BTC_USDT",
		Price:    113035.6,
		Vol:      1,
		Leverage: &leverage,
		Side:     SideOpenLong,
		Type:     OrderTypeMarket,
		OpenType: OpenTypeIsolated,
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	expected := `{"symbol":"BTC_USDT","price":113035.6,"vol":1,"leverage":20,"side":1,"type":5,"openType":1}`
	assert.Equal(t, expected, string(data))
}
