package mexc

import "time"

// 인증 헤더 이름들. MEXC 웹 API가 요구하는 고정 이름입니다
const (
	headerAuthorization = "authorization"
	headerNonce         = "x-mxc-nonce"
	headerSign          = "x-mxc-sign"
)

// defaultHeaders는 모든 요청에 기본으로 첨부되는 헤더 집합입니다.
// WEB 토큰 인증은 브라우저 세션을 흉내내므로 브라우저와 유사한 값을 사용합니다
var defaultHeaders = map[string]string{
	"content-type": "application/json",
	"accept":       "application/json, text/plain, */*",
	"user-agent":   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"origin":       "https://futures.mexc.com",
	"referer":      "https://futures.mexc.com/exchange",
}

// sdkOptions는 헤더 생성에 필요한 클라이언트 설정을 담습니다
type sdkOptions struct {
	authToken     string
	userAgent     string
	customHeaders map[string]string
}

// buildHeaders는 요청에 첨부할 최종 헤더 맵을 생성합니다.
// 기본 헤더 → user-agent 덮어쓰기 → 커스텀 헤더 덮어쓰기 →
// 인증 필요 시 토큰 첨부 → 본문이 있으면 서명 헤더 첨부 순서로 적용됩니다.
// body는 실제 전송될 직렬화 결과와 동일한 바이트여야 서명이 유효합니다
func buildHeaders(opts sdkOptions, includeAuth bool, body []byte, now time.Time) map[string]string {
	headers := make(map[string]string, len(defaultHeaders)+len(opts.customHeaders)+3)
	for k, v := range defaultHeaders {
		headers[k] = v
	}

	if opts.userAgent != "" {
		headers["user-agent"] = opts.userAgent
	}

	for k, v := range opts.customHeaders {
		headers[k] = v
	}

	if includeAuth {
		headers[headerAuthorization] = opts.authToken

		// 본문이 있는 요청(POST)만 서명합니다. GET은 토큰만 첨부합니다
		if body != nil {
			sig := generateSignature(opts.authToken, body, now)
			headers[headerNonce] = sig.Time
			headers[headerSign] = sig.Sign
		}
	}

	return headers
}
