package mexc

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"
)

// Signature는 서명된 요청에 첨부되는 (타임스탬프, 서명) 쌍을 표현합니다
type Signature struct {
	Time string // 밀리초 타임스탬프 (x-mxc-nonce)
	Sign string // MD5 서명 (x-mxc-sign)
}

// generateSignature는 WEB 토큰과 직렬화된 요청 본문으로 서명을 생성합니다.
// 알고리즘은 MEXC 서버의 검증 로직과 비트 단위로 일치해야 합니다:
//
//	T    = 현재 시각 (밀리초, 10진수 문자열)
//	g    = md5hex(token + T)의 8번째 바이트 이후
//	sign = md5hex(T + body + g)
//
// MD5와 [7:] 오프셋은 서버 호환성 요구사항이므로 변경하면 안 됩니다.
// 동일한 밀리초, 동일한 본문 바이트에 대해 결과는 항상 동일합니다.
func generateSignature(token string, body []byte, now time.Time) Signature {
	ts := strconv.FormatInt(now.UnixMilli(), 10)

	g := md5Hex([]byte(token + ts))[7:]
	sign := md5Hex(append(append([]byte(ts), body...), g...))

	return Signature{Time: ts, Sign: sign}
}

// md5Hex는 입력의 MD5 해시를 소문자 16진수 문자열로 반환합니다
func md5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
