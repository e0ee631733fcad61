// Package mexc는 MEXC 선물 거래소 REST API의 타입 클라이언트를 제공합니다.
// 마켓 데이터 조회, 주문 제출/취소, 계정/포지션 조회를 지원하며 WEB 토큰
// 인증과 요청 서명, 에러 정규화를 처리합니다
package mexc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://futures.mexc.com"

// API 엔드포인트 경로들
const (
	endpointTicker             = "/api/v1/contract/ticker"
	endpointContractDetail     = "/api/v1/contract/detail"
	endpointContractDepth      = "/api/v1/contract/depth" // + /{symbol}
	endpointSubmitOrder        = "/api/v1/private/order/submit"
	endpointCancelOrder        = "/api/v1/private/order/cancel"
	endpointCancelWithExternal = "/api/v1/private/order/cancel_with_external"
	endpointCancelAll          = "/api/v1/private/order/cancel_all"
	endpointOrderHistory       = "/api/v1/private/order/list/history_orders"
	endpointOrderDeals         = "/api/v1/private/order/list/order_deals"
	endpointGetOrder           = "/api/v1/private/order/get"      // + /{orderId}
	endpointOrderByExternal    = "/api/v1/private/order/external" // + /{symbol}/{externalOid}
	endpointRiskLimit          = "/api/v1/private/account/risk_limit"
	endpointFeeRate            = "/api/v1/private/account/tiered_fee_rate"
	endpointAccountAsset       = "/api/v1/private/account/asset" // + /{currency}
	endpointOpenPositions      = "/api/v1/private/position/open_positions"
	endpointPositionHistory    = "/api/v1/private/position/list/history_positions"
)

// Client는 MEXC 선물 API 클라이언트를 구현합니다.
// 호출마다 HTTP 요청 하나를 보내고 완료까지 기다립니다. 재시도, 캐싱,
// 요청 큐는 제공하지 않으며 토큰은 생성 시점에 고정됩니다
type Client struct {
	opts       sdkOptions
	baseURL    string
	httpClient *http.Client
	logger     *Logger
	now        func() time.Time
}

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL은 기본 URL을 설정합니다
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient는 직접 구성한 http.Client를 사용하도록 설정합니다
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent는 기본 user-agent를 덮어씁니다
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.opts.userAgent = userAgent
	}
}

// WithCustomHeaders는 모든 요청에 첨부할 추가 헤더를 설정합니다
func WithCustomHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		c.opts.customHeaders = headers
	}
}

// WithLogger는 SDK 로거를 교체합니다
func WithLogger(logger *Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLogLevel은 기본 로거의 출력 수준을 설정합니다
func WithLogLevel(level LogLevel) ClientOption {
	return func(c *Client) {
		c.logger = NewLogger(level)
	}
}

// NewClient는 새로운 MEXC 선물 API 클라이언트를 생성합니다.
// authToken은 브라우저 세션의 WEB 인증 토큰입니다 ("WEB..."으로 시작)
func NewClient(authToken string, opts ...ClientOption) *Client {
	c := &Client{
		opts:       sdkOptions{authToken: authToken},
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     NewLogger(LogWarn),
		now:        time.Now,
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// doRequest는 HTTP 요청을 실행하고 응답 본문을 반환합니다.
// body는 한 번만 직렬화되어 서명과 전송에 동일한 바이트가 사용됩니다.
// 실패는 모두 *Error로 정규화되어 반환됩니다
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, body interface{}, requireAuth bool) ([]byte, error) {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("요청 본문 직렬화 실패: %w", err)
		}
	}

	headers := buildHeaders(c.opts, requireAuth, bodyBytes, c.now())

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debugf("🌐 %s %s", method, reqURL)
	if bodyBytes != nil {
		c.logger.Debugf("📦 요청 본문: %s", bodyBytes)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		mexcErr := classifyTransportError(err, endpoint, method)
		c.logger.Errorf("%s", mexcErr.UserMessage())
		return nil, mexcErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		mexcErr := classifyTransportError(err, endpoint, method)
		c.logger.Errorf("%s", mexcErr.UserMessage())
		return nil, mexcErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		mexcErr := classifyStatusError(resp.StatusCode, resp.Header, respBody, endpoint, method)
		c.logger.Errorf("%s", mexcErr.UserMessage())
		if c.logger.DebugEnabled() {
			c.logger.Debugf("에러 상세: %s", mexcErr.Error())
		}
		return nil, mexcErr
	}

	c.logger.Debugf("✅ %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	return respBody, nil
}

// TestConnection은 공개 엔드포인트로 API 연결을 확인합니다.
// 데모 편의용이므로 분류된 에러는 그대로 버립니다
func (c *Client) TestConnection(ctx context.Context) bool {
	_, err := c.GetTicker(ctx, "BTC_USDT")
	return err == nil
}
