package mexc

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	simplejson "github.com/bitly/go-simplejson"
)

// ErrorKind는 SDK가 반환하는 에러의 분류를 정의합니다
type ErrorKind string

const (
	KindUnknown        ErrorKind = "UNKNOWN"
	KindAuthentication ErrorKind = "AUTHENTICATION"
	KindAPI            ErrorKind = "API"
	KindNetwork        ErrorKind = "NETWORK"
	KindValidation     ErrorKind = "VALIDATION"
	KindSignature      ErrorKind = "SIGNATURE"
	KindRateLimit      ErrorKind = "RATE_LIMIT"
)

// 기계 판독용 에러 코드들
const (
	codeAuthError       = "AUTH_ERROR"
	codeNetworkError    = "NETWORK_ERROR"
	codeValidationError = "VALIDATION_ERROR"
	codeSignatureError  = "SIGNATURE_ERROR"
	codeRateLimit       = "RATE_LIMIT"
	codeUnknownError    = "UNKNOWN_ERROR"
)

// 서버가 서명 검증 실패 시 응답 본문에 내려주는 예약 코드
const serverCodeInvalidSignature = 602

// Error는 전송 계층 예외와 무관하게 호출자에게 전달되는 정규화된 에러입니다.
// Kind로 분류를 확인하고, Unwrap으로 원인 에러에 접근할 수 있습니다
type Error struct {
	Kind       ErrorKind // 에러 분류
	Message    string    // 로그용 메시지
	Code       string    // 기계 판독용 코드 (서버 코드는 문자열로 정규화)
	StatusCode int       // HTTP 상태 코드 (전송 실패 시 0)
	Endpoint   string    // 요청 엔드포인트
	Method     string    // HTTP 메서드
	RetryAfter int       // RateLimit일 때 retry-after 초 (없으면 0)
	Field      string    // Validation일 때 문제가 된 필드
	Body       string    // API 에러일 때 원본 응답 본문
	Err        error     // 원인 에러 (진단 체이닝용)

	timeout bool // Network 에러 중 타임아웃 여부
}

// Error는 error 인터페이스를 구현합니다
func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Endpoint != "":
		return fmt.Sprintf("mexc %s 에러 [%s %s, 상태: %d]: %s", e.Kind, e.Method, e.Endpoint, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("mexc %s 에러 [상태: %d]: %s", e.Kind, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("mexc %s 에러: %s", e.Kind, e.Message)
	}
}

// Unwrap은 원인 에러를 반환합니다 (errors.Is/As 지원을 위함)
func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage는 로그용 메시지와 별개로 사용자에게 보여줄 메시지를 반환합니다
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindAuthentication:
		return "❌ 인증에 실패했습니다. 토큰이 만료되었거나 잘못되었을 수 있습니다. 브라우저 개발자 도구에서 새 WEB 토큰을 발급받아 주세요."
	case KindSignature:
		return "❌ 서명 검증에 실패했습니다. 대부분 토큰이 유효하지 않거나 만료된 경우입니다. 브라우저에서 새 WEB 토큰을 가져와 주세요."
	case KindNetwork:
		if e.timeout {
			return "❌ 요청 시간이 초과되었습니다. 네트워크 연결을 확인한 뒤 다시 시도해 주세요."
		}
		return "❌ 연결에 실패했습니다. 네트워크 연결을 확인해 주세요."
	case KindValidation:
		if e.Field != "" {
			return fmt.Sprintf("❌ 입력값 검증 실패 ('%s' 필드): %s", e.Field, e.Message)
		}
		return fmt.Sprintf("❌ 입력값 검증 실패: %s", e.Message)
	case KindRateLimit:
		if e.RetryAfter > 0 {
			return fmt.Sprintf("❌ 요청 한도를 초과했습니다: %s. %d초 후에 다시 시도해 주세요.", e.Message, e.RetryAfter)
		}
		return fmt.Sprintf("❌ 요청 한도를 초과했습니다: %s. 요청 빈도를 줄여 주세요.", e.Message)
	case KindAPI:
		return apiUserMessage(e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("❌ 알 수 없는 에러: %s", e.Message)
	}
}

// apiUserMessage는 HTTP 상태별 사용자 메시지를 생성합니다
func apiUserMessage(status int, message string) string {
	switch status {
	case http.StatusBadRequest:
		return fmt.Sprintf("❌ 잘못된 요청: %s. 요청 파라미터를 확인해 주세요.", message)
	case http.StatusUnauthorized:
		return fmt.Sprintf("❌ 인증 실패: %s. 토큰이 만료되었을 수 있습니다.", message)
	case http.StatusForbidden:
		return fmt.Sprintf("❌ 접근 거부: %s. 해당 작업에 대한 권한이 없습니다.", message)
	case http.StatusNotFound:
		return fmt.Sprintf("❌ 찾을 수 없음: %s. 요청한 리소스가 존재하지 않습니다.", message)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("❌ 요청 한도 초과: %s. 요청 빈도를 줄여 주세요.", message)
	case http.StatusInternalServerError:
		return fmt.Sprintf("❌ 서버 에러: %s. MEXC 서버에 문제가 발생했습니다.", message)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Sprintf("❌ 서비스 이용 불가: %s. MEXC 서비스를 일시적으로 사용할 수 없습니다.", message)
	default:
		return fmt.Sprintf("❌ API 에러 (%d): %s", status, message)
	}
}

// newValidationError는 네트워크 호출 전에 발견된 입력값 에러를 생성합니다
func newValidationError(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Code:    codeValidationError,
		Field:   field,
	}
}

// classifyTransportError는 전송 계층 실패를 도메인 에러로 변환합니다.
// HTTP 응답을 받기 전에 실패한 경우(연결 거부, DNS 실패, 타임아웃)를 다룹니다
func classifyTransportError(err error, endpoint, method string) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{
			Kind:     KindNetwork,
			Message:  "요청 시간 초과",
			Code:     codeNetworkError,
			Endpoint: endpoint,
			Method:   method,
			Err:      err,
			timeout:  true,
		}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return &Error{
			Kind:     KindNetwork,
			Message:  err.Error(),
			Code:     codeNetworkError,
			Endpoint: endpoint,
			Method:   method,
			Err:      err,
		}
	}

	return &Error{
		Kind:     KindUnknown,
		Message:  err.Error(),
		Code:     codeUnknownError,
		Endpoint: endpoint,
		Method:   method,
		Err:      err,
	}
}

// classifyStatusError는 2xx가 아닌 HTTP 응답을 도메인 에러로 변환합니다.
// 분류 순서: 401 → 인증, 429 → 요청 한도, 코드 602 또는 서명 관련 메시지 → 서명,
// 나머지 → 일반 API 에러. 상태와 무관한 순수 함수입니다
func classifyStatusError(status int, header http.Header, body []byte, endpoint, method string) *Error {
	message, codeNum, codeStr := parseErrorBody(body)
	if message == "" {
		message = http.StatusText(status)
	}
	if codeStr == "" {
		codeStr = strconv.Itoa(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return &Error{
			Kind:       KindAuthentication,
			Message:    message,
			Code:       codeAuthError,
			StatusCode: status,
			Endpoint:   endpoint,
			Method:     method,
		}

	case status == http.StatusTooManyRequests:
		retryAfter := 0
		if v := header.Get("retry-after"); v != "" {
			// 파싱에 실패한 retry-after 값은 무시합니다
			if n, err := strconv.Atoi(v); err == nil {
				retryAfter = n
			}
		}
		return &Error{
			Kind:       KindRateLimit,
			Message:    message,
			Code:       codeRateLimit,
			StatusCode: status,
			Endpoint:   endpoint,
			Method:     method,
			RetryAfter: retryAfter,
		}

	case codeNum == serverCodeInvalidSignature || strings.Contains(strings.ToLower(message), "signature"):
		return &Error{
			Kind:       KindSignature,
			Message:    message,
			Code:       codeSignatureError,
			StatusCode: status,
			Endpoint:   endpoint,
			Method:     method,
		}

	default:
		return &Error{
			Kind:       KindAPI,
			Message:    message,
			Code:       codeStr,
			StatusCode: status,
			Endpoint:   endpoint,
			Method:     method,
			Body:       string(body),
		}
	}
}

// parseErrorBody는 형태를 알 수 없는 에러 응답 본문에서 message/code를 추출합니다.
// 서버에 따라 code가 숫자 또는 문자열로 내려오므로 둘 다 처리합니다
func parseErrorBody(body []byte) (message string, codeNum int, codeStr string) {
	sj, err := simplejson.NewJson(body)
	if err != nil {
		return "", 0, ""
	}

	message = sj.Get("message").MustString()

	if n, err := sj.Get("code").Int(); err == nil {
		codeNum = n
		codeStr = strconv.Itoa(n)
	} else if s, err := sj.Get("code").String(); err == nil {
		codeStr = s
		if n, err := strconv.Atoi(s); err == nil {
			codeNum = n
		}
	}

	return message, codeNum, codeStr
}

// AsError는 err가 SDK 에러인 경우 *Error로 변환합니다
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func isKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

// IsAuthentication은 인증 에러 여부를 확인합니다
func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }

// IsNetwork는 네트워크 에러 여부를 확인합니다
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsValidation은 입력값 검증 에러 여부를 확인합니다
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsSignature는 서명 검증 실패 여부를 확인합니다
func IsSignature(err error) bool { return isKind(err, KindSignature) }

// IsRateLimit은 요청 한도 초과 여부를 확인합니다
func IsRateLimit(err error) bool { return isKind(err, KindRateLimit) }
