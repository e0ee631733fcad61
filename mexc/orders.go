package mexc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// OrderSide는 주문 방향을 정의합니다
type OrderSide int

const (
	SideOpenLong   OrderSide = 1 // 롱 진입
	SideCloseShort OrderSide = 2 // 숏 청산
	SideOpenShort  OrderSide = 3 // 숏 진입
	SideCloseLong  OrderSide = 4 // 롱 청산
)

// OrderType은 주문 유형을 정의합니다
type OrderType int

const (
	OrderTypeLimit    OrderType = 1 // 지정가
	OrderTypePostOnly OrderType = 2 // Post Only
	OrderTypeIOC      OrderType = 3 // IOC
	OrderTypeFOK      OrderType = 4 // FOK
	OrderTypeMarket   OrderType = 5 // 시장가
	OrderTypeConvert  OrderType = 6 // 전환
)

// OpenType은 마진 모드를 정의합니다
type OpenType int

const (
	OpenTypeIsolated OpenType = 1 // 격리 마진
	OpenTypeCross    OpenType = 2 // 교차 마진
)

// PositionMode는 포지션 모드를 정의합니다
type PositionMode int

const (
	PositionModeHedge  PositionMode = 1 // 헤지 모드
	PositionModeOneWay PositionMode = 2 // 단방향 모드
)

// 취소 요청 한 번에 담을 수 있는 최대 주문 수
const maxCancelBatch = 50

// SubmitOrderRequest는 주문 제출 요청을 표현합니다.
// 선택 필드는 포인터로 두어 직렬화에서 제외할 수 있게 합니다
type SubmitOrderRequest struct {
	Symbol          string        `json:"symbol"`                    // 계약 심볼 (필수)
	Price           float64       `json:"price"`                     // 가격 (필수)
	Vol             float64       `json:"vol"`                       // 수량 (필수)
	Leverage        *int          `json:"leverage,omitempty"`        // 레버리지 (격리 마진 시 필수)
	Side            OrderSide     `json:"side"`                      // 주문 방향
	Type            OrderType     `json:"type"`                      // 주문 유형
	OpenType        OpenType      `json:"openType"`                  // 마진 모드 (필수)
	PositionID      *int64        `json:"positionId,omitempty"`      // 포지션 ID (청산 시 권장)
	ExternalOid     *string       `json:"externalOid,omitempty"`     // 외부 주문 ID
	StopLossPrice   *float64      `json:"stopLossPrice,omitempty"`   // 손절 가격
	TakeProfitPrice *float64      `json:"takeProfitPrice,omitempty"` // 익절 가격
	PositionMode    *PositionMode `json:"positionMode,omitempty"`    // 포지션 모드
	ReduceOnly      *bool         `json:"reduceOnly,omitempty"`      // 단방향 포지션 전용
}

// Validate는 네트워크 호출 전에 주문 파라미터를 검증합니다
func (r *SubmitOrderRequest) Validate() error {
	if r.Symbol == "" {
		return newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}
	if r.Vol <= 0 {
		return newValidationError("vol", "수량은 0보다 커야 합니다")
	}
	if r.Side < SideOpenLong || r.Side > SideCloseLong {
		return newValidationError("side", fmt.Sprintf("잘못된 주문 방향: %d (1~4 중 하나여야 합니다)", r.Side))
	}
	if r.Type < OrderTypeLimit || r.Type > OrderTypeConvert {
		return newValidationError("type", fmt.Sprintf("잘못된 주문 유형: %d (1~6 중 하나여야 합니다)", r.Type))
	}
	if r.OpenType != OpenTypeIsolated && r.OpenType != OpenTypeCross {
		return newValidationError("openType", fmt.Sprintf("잘못된 마진 모드: %d (1 또는 2여야 합니다)", r.OpenType))
	}
	if r.PositionMode != nil && *r.PositionMode != PositionModeHedge && *r.PositionMode != PositionModeOneWay {
		return newValidationError("positionMode", fmt.Sprintf("잘못된 포지션 모드: %d (1 또는 2여야 합니다)", *r.PositionMode))
	}
	return nil
}

// SubmitOrderResponse는 주문 제출 응답입니다.
// 주문 ID가 데이터 필드에 숫자로 직접 내려옵니다
type SubmitOrderResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    int64  `json:"data"` // 주문 ID
}

// CancelOrderResult는 개별 주문 취소 결과입니다
type CancelOrderResult struct {
	OrderID   int64  `json:"orderId"`
	ErrorCode int    `json:"errorCode"` // 0이면 성공
	ErrorMsg  string `json:"errorMsg"`
}

// CancelOrderResponse는 주문 취소 응답입니다
type CancelOrderResponse struct {
	Success bool                `json:"success"`
	Code    int                 `json:"code"`
	Data    []CancelOrderResult `json:"data"`
}

// CancelOrderByExternalIDRequest는 외부 주문 ID 기반 취소 요청입니다
type CancelOrderByExternalIDRequest struct {
	Symbol      string `json:"symbol"`
	ExternalOid string `json:"externalOid"`
}

// CancelOrderByExternalIDData는 외부 주문 ID 취소 응답 데이터입니다
type CancelOrderByExternalIDData struct {
	Symbol      string `json:"symbol"`
	ExternalOid string `json:"externalOid"`
}

// CancelOrderByExternalIDResponse는 외부 주문 ID 취소 응답입니다
type CancelOrderByExternalIDResponse struct {
	Success bool                         `json:"success"`
	Code    int                          `json:"code"`
	Data    *CancelOrderByExternalIDData `json:"data"`
}

// CancelAllOrdersRequest는 전체 주문 취소 요청입니다
type CancelAllOrdersRequest struct {
	Symbol string `json:"symbol,omitempty"` // 비어 있으면 전체 계약 대상
}

// CancelAllOrdersResponse는 전체 주문 취소 응답입니다
type CancelAllOrdersResponse struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// OrderHistoryParams는 주문 이력 조회 파라미터입니다
type OrderHistoryParams struct {
	Category int    // 1: 지정가, 2: 시스템 위탁, 3: 청산 위탁, 4: ADL 감축
	PageNum  int    // 페이지 번호 (1부터)
	PageSize int    // 페이지 크기
	States   int    // 주문 상태 필터
	Symbol   string // 계약 심볼
}

// Order는 주문 정보를 표현합니다
type Order struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Side       int     `json:"side"`
	Type       string  `json:"type"`
	Vol        float64 `json:"vol"`
	Price      string  `json:"price"`
	Leverage   int     `json:"leverage"`
	Status     string  `json:"status"`
	CreateTime int64   `json:"createTime"`
	UpdateTime int64   `json:"updateTime"`
}

// OrderHistoryData는 주문 이력 데이터입니다
type OrderHistoryData struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// UnmarshalJSON은 데이터가 빈 배열로 내려오는 경우를 처리합니다
func (d *OrderHistoryData) UnmarshalJSON(data []byte) error {
	if string(data) == "[]" || string(data) == "null" {
		*d = OrderHistoryData{Orders: []Order{}}
		return nil
	}

	type alias OrderHistoryData
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = OrderHistoryData(a)
	return nil
}

// OrderHistoryResponse는 주문 이력 조회 응답입니다
type OrderHistoryResponse struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Data    *OrderHistoryData `json:"data"`
}

// OrderDealsParams는 체결 내역 조회 파라미터입니다
type OrderDealsParams struct {
	Symbol    string // 계약 심볼 (필수)
	StartTime int64  // 시작 시각 (밀리초, 0이면 생략)
	EndTime   int64  // 종료 시각 (밀리초, 0이면 생략)
	PageNum   int    // 페이지 번호
	PageSize  int    // 페이지 크기
}

// OrderDeal은 주문 체결 정보를 표현합니다
type OrderDeal struct {
	ID          int64  `json:"id"`
	Symbol      string `json:"symbol"`
	Side        int    `json:"side"` // 1: 롱 진입, 2: 숏 청산, 3: 숏 진입, 4: 롱 청산
	Vol         string `json:"vol"`
	Price       string `json:"price"`
	Fee         string `json:"fee"`
	FeeCurrency string `json:"feeCurrency"`
	Profit      string `json:"profit"`
	IsTaker     bool   `json:"isTaker"`
	Category    int    `json:"category"`
	OrderID     int64  `json:"orderId"`
	Timestamp   int64  `json:"timestamp"`
}

// OrderDealsResponse는 체결 내역 조회 응답입니다
type OrderDealsResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Data    []OrderDeal `json:"data"`
}

// GetOrderData는 개별 주문 상세 정보입니다
type GetOrderData struct {
	OrderID      string  `json:"orderId"`
	Symbol       string  `json:"symbol"`
	PositionID   int64   `json:"positionId"`
	Price        float64 `json:"price"`
	Vol          float64 `json:"vol"`
	Leverage     int     `json:"leverage"`
	Side         int     `json:"side"`
	Category     int     `json:"category"`
	OrderType    int     `json:"orderType"`
	DealAvgPrice float64 `json:"dealAvgPrice"`
	DealVol      float64 `json:"dealVol"`
	OrderMargin  float64 `json:"orderMargin"`
	TakerFee     float64 `json:"takerFee"`
	MakerFee     float64 `json:"makerFee"`
	Profit       float64 `json:"profit"`
	FeeCurrency  string  `json:"feeCurrency"`
	OpenType     int     `json:"openType"`
	State        int     `json:"state"` // 1: 미통보, 2: 미완료, 3: 완료, 4: 취소, 5: 무효
	ExternalOid  string  `json:"externalOid"`
	ErrorCode    int     `json:"errorCode"`
	UsedMargin   float64 `json:"usedMargin"`
	CreateTime   int64   `json:"createTime"`
	UpdateTime   int64   `json:"updateTime"`
}

// GetOrderResponse는 주문 조회 응답입니다
type GetOrderResponse struct {
	Success bool         `json:"success"`
	Code    int          `json:"code"`
	Data    GetOrderData `json:"data"`
}

// SubmitOrder는 주문을 제출합니다.
// 파라미터는 네트워크 호출 전에 로컬에서 검증됩니다
func (c *Client) SubmitOrder(ctx context.Context, order SubmitOrderRequest) (*SubmitOrderResponse, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	c.logger.Infof("🚀 주문 제출: %s", order.Symbol)

	resp, err := c.doRequest(ctx, http.MethodPost, endpointSubmitOrder, nil, order, true)
	if err != nil {
		return nil, err
	}

	var result SubmitOrderResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("주문 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// CancelOrder는 주문 ID 목록으로 주문을 취소합니다 (한 번에 최대 50개)
func (c *Client) CancelOrder(ctx context.Context, orderIDs []int64) (*CancelOrderResponse, error) {
	if len(orderIDs) == 0 {
		return nil, newValidationError("orderIds", "주문 ID 목록은 비어 있을 수 없습니다")
	}
	if len(orderIDs) > maxCancelBatch {
		return nil, newValidationError("orderIds", fmt.Sprintf("한 번에 %d개를 초과하는 주문을 취소할 수 없습니다", maxCancelBatch))
	}

	resp, err := c.doRequest(ctx, http.MethodPost, endpointCancelOrder, nil, orderIDs, true)
	if err != nil {
		return nil, err
	}

	var result CancelOrderResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("주문 취소 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// CancelOrderByExternalID는 외부 주문 ID로 주문을 취소합니다
func (c *Client) CancelOrderByExternalID(ctx context.Context, req CancelOrderByExternalIDRequest) (*CancelOrderByExternalIDResponse, error) {
	if req.Symbol == "" {
		return nil, newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}
	if req.ExternalOid == "" {
		return nil, newValidationError("externalOid", "외부 주문 ID는 비어 있을 수 없습니다")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, endpointCancelWithExternal, nil, req, true)
	if err != nil {
		return nil, err
	}

	var result CancelOrderByExternalIDResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("주문 취소 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// CancelAllOrders는 특정 계약 또는 전체 계약의 모든 주문을 취소합니다
func (c *Client) CancelAllOrders(ctx context.Context, req CancelAllOrdersRequest) (*CancelAllOrdersResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, endpointCancelAll, nil, req, true)
	if err != nil {
		return nil, err
	}

	var result CancelAllOrdersResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("전체 취소 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetOrderHistory는 주문 이력을 조회합니다
func (c *Client) GetOrderHistory(ctx context.Context, p OrderHistoryParams) (*OrderHistoryResponse, error) {
	if p.Symbol == "" {
		return nil, newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}

	params := url.Values{}
	params.Add("category", strconv.Itoa(p.Category))
	params.Add("page_num", strconv.Itoa(p.PageNum))
	params.Add("page_size", strconv.Itoa(p.PageSize))
	params.Add("states", strconv.Itoa(p.States))
	params.Add("symbol", p.Symbol)

	resp, err := c.doRequest(ctx, http.MethodGet, endpointOrderHistory, params, nil, true)
	if err != nil {
		return nil, err
	}

	var result OrderHistoryResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("주문 이력 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetOrderDeals는 주문 체결 내역을 조회합니다
func (c *Client) GetOrderDeals(ctx context.Context, p OrderDealsParams) (*OrderDealsResponse, error) {
	if p.Symbol == "" {
		return nil, newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}

	params := url.Values{}
	params.Add("symbol", p.Symbol)
	if p.StartTime > 0 {
		params.Add("start_time", strconv.FormatInt(p.StartTime, 10))
	}
	if p.EndTime > 0 {
		params.Add("end_time", strconv.FormatInt(p.EndTime, 10))
	}
	params.Add("page_num", strconv.Itoa(p.PageNum))
	params.Add("page_size", strconv.Itoa(p.PageSize))

	resp, err := c.doRequest(ctx, http.MethodGet, endpointOrderDeals, params, nil, true)
	if err != nil {
		return nil, err
	}

	var result OrderDealsResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("체결 내역 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetOrder는 주문 ID로 주문 정보를 조회합니다
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*GetOrderResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, endpointGetOrder+"/"+strconv.FormatInt(orderID, 10), nil, nil, true)
	if err != nil {
		return nil, err
	}

	var result GetOrderResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("주문 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetOrderByExternalID는 외부 주문 ID로 주문 정보를 조회합니다
func (c *Client) GetOrderByExternalID(ctx context.Context, symbol, externalOid string) (*GetOrderResponse, error) {
	if symbol == "" {
		return nil, newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}
	if externalOid == "" {
		return nil, newValidationError("externalOid", "외부 주문 ID는 비어 있을 수 없습니다")
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpointOrderByExternal+"/"+symbol+"/"+externalOid, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var result GetOrderResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("주문 응답 파싱 실패: %w", err)
	}

	return &result, nil
}
