package mexc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// RiskLimit은 리스크 한도 정보를 표현합니다
type RiskLimit struct {
	Symbol       string   `json:"symbol"`
	Level        int      `json:"level"`
	MaxVol       float64  `json:"maxVol"`       // 최대 수량
	Mmr          float64  `json:"mmr"`          // 유지증거금율
	Imr          float64  `json:"imr"`          // 개시증거금율
	MaxLeverage  int      `json:"maxLeverage"`
	PositionType int      `json:"positionType"` // 1: 롱, 2: 숏
	OpenType     int      `json:"openType"`     // 1: 격리, 2: 교차
	Leverage     int      `json:"leverage"`
	LimitBySys   bool     `json:"limitBySys"`
	CurrentMmr   *float64 `json:"currentMmr"` // 현재 유지증거금율 (없을 수 있음)
}

// RiskLimitResponse는 리스크 한도 조회 응답입니다.
// 데이터는 심볼별 한도 목록으로 내려옵니다
type RiskLimitResponse struct {
	Success bool                   `json:"success"`
	Code    int                    `json:"code"`
	Data    map[string][]RiskLimit `json:"data"`
}

// FeeRate는 수수료율 정보를 표현합니다
type FeeRate struct {
	Symbol       string  `json:"symbol"`
	TakerFeeRate float64 `json:"takerFeeRate"`
	MakerFeeRate float64 `json:"makerFeeRate"`
}

// FeeRateResponse는 수수료율 조회 응답입니다
type FeeRateResponse struct {
	Success bool      `json:"success"`
	Code    int       `json:"code"`
	Data    []FeeRate `json:"data"`
}

// AccountAsset은 단일 통화 자산 정보를 표현합니다
type AccountAsset struct {
	Currency         string  `json:"currency"`
	PositionMargin   float64 `json:"positionMargin"`
	AvailableBalance float64 `json:"availableBalance"`
	CashBalance      float64 `json:"cashBalance"`
	FrozenBalance    float64 `json:"frozenBalance"`
	Equity           float64 `json:"equity"`
	Unrealized       float64 `json:"unrealized"`
	Bonus            float64 `json:"bonus"`
}

// AccountAssetResponse는 자산 조회 응답입니다
type AccountAssetResponse struct {
	Success bool         `json:"success"`
	Code    int          `json:"code"`
	Data    AccountAsset `json:"data"`
}

// Position은 포지션 정보를 표현합니다
type Position struct {
	PositionID     int64   `json:"positionId"`
	Symbol         string  `json:"symbol"`
	PositionType   int     `json:"positionType"` // 1: 롱, 2: 숏
	OpenType       int     `json:"openType"`     // 1: 격리, 2: 교차
	State          int     `json:"state"`        // 1: 보유, 2: 시스템 보유, 3: 종료
	HoldVol        float64 `json:"holdVol"`      // 보유 수량
	FrozenVol      float64 `json:"frozenVol"`    // 동결 수량
	CloseVol       float64 `json:"closeVol"`     // 청산 수량
	HoldAvgPrice   float64 `json:"holdAvgPrice"` // 보유 평균가
	OpenAvgPrice   float64 `json:"openAvgPrice"` // 진입 평균가
	CloseAvgPrice  float64 `json:"closeAvgPrice"`
	LiquidatePrice float64 `json:"liquidatePrice"` // 청산가
	Oim            float64 `json:"oim"`            // 최초 개시증거금
	AdlLevel       *int    `json:"adlLevel"`       // ADL 레벨 1~5 (없을 수 있음)
	Im             float64 `json:"im"`             // 개시증거금
	HoldFee        float64 `json:"holdFee"`        // 펀딩 수수료 (양수: 수취, 음수: 지급)
	Realised       float64 `json:"realised"`       // 실현 손익
	Leverage       int     `json:"leverage"`
	CreateTime     int64   `json:"createTime"`
	UpdateTime     int64   `json:"updateTime"`
	AutoAddIm      *bool   `json:"autoAddIm"`
}

// OpenPositionsResponse는 보유 포지션 조회 응답입니다
type OpenPositionsResponse struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Data    []Position `json:"data"`
}

// PositionHistoryParams는 포지션 이력 조회 파라미터입니다
type PositionHistoryParams struct {
	Symbol   string // 계약 심볼 (비어 있으면 전체)
	Type     int    // 포지션 유형 (1: 롱, 2: 숏, 0이면 전체)
	PageNum  int    // 페이지 번호 (1부터)
	PageSize int    // 페이지 크기 (최대 100)
}

// PositionHistoryResponse는 포지션 이력 조회 응답입니다
type PositionHistoryResponse struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    []Position `json:"data"`
}

// GetRiskLimit은 계정의 리스크 한도를 조회합니다
func (c *Client) GetRiskLimit(ctx context.Context) (*RiskLimitResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, endpointRiskLimit, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var result RiskLimitResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("리스크 한도 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetFeeRate는 계약별 수수료율을 조회합니다
func (c *Client) GetFeeRate(ctx context.Context) (*FeeRateResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, endpointFeeRate, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var result FeeRateResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("수수료율 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetAccountAsset은 단일 통화의 자산 정보를 조회합니다
func (c *Client) GetAccountAsset(ctx context.Context, currency string) (*AccountAssetResponse, error) {
	if currency == "" {
		return nil, newValidationError("currency", "통화는 비어 있을 수 없습니다")
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpointAccountAsset+"/"+currency, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var result AccountAssetResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("자산 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetOpenPositions는 현재 보유 중인 포지션을 조회합니다.
// symbol이 비어 있으면 전체 포지션을 반환합니다
func (c *Client) GetOpenPositions(ctx context.Context, symbol string) (*OpenPositionsResponse, error) {
	params := url.Values{}
	if symbol != "" {
		params.Add("symbol", symbol)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpointOpenPositions, params, nil, true)
	if err != nil {
		return nil, err
	}

	var result OpenPositionsResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("포지션 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetPositionHistory는 과거 포지션 이력을 조회합니다
func (c *Client) GetPositionHistory(ctx context.Context, p PositionHistoryParams) (*PositionHistoryResponse, error) {
	if p.PageSize > 100 {
		return nil, newValidationError("pageSize", "페이지 크기는 100을 초과할 수 없습니다")
	}

	params := url.Values{}
	if p.Symbol != "" {
		params.Add("symbol", p.Symbol)
	}
	if p.Type > 0 {
		params.Add("type", strconv.Itoa(p.Type))
	}
	params.Add("page_num", strconv.Itoa(p.PageNum))
	params.Add("page_size", strconv.Itoa(p.PageSize))

	resp, err := c.doRequest(ctx, http.MethodGet, endpointPositionHistory, params, nil, true)
	if err != nil {
		return nil, err
	}

	var result PositionHistoryResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("포지션 이력 응답 파싱 실패: %w", err)
	}

	return &result, nil
}
