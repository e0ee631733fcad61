package mexc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// RiseFallRates는 기간별 등락률 정보를 표현합니다
type RiseFallRates struct {
	Zone string   `json:"zone"` // 타임존
	R    float64  `json:"r"`    // 현재 등락률
	V    float64  `json:"v"`    // 현재 등락값
	R7   float64  `json:"r7"`   // 7일 등락률
	R30  *float64 `json:"r30"`  // 30일 등락률
	R90  *float64 `json:"r90"`  // 90일 등락률
	R180 *float64 `json:"r180"` // 180일 등락률
	R365 *float64 `json:"r365"` // 365일 등락률
}

// TickerData는 티커 정보를 표현합니다
type TickerData struct {
	ContractID              int64         `json:"contractId"`
	Symbol                  string        `json:"symbol"`
	LastPrice               float64       `json:"lastPrice"`
	Bid1                    float64       `json:"bid1"`
	Ask1                    float64       `json:"ask1"`
	Volume24                float64       `json:"volume24"`      // 24시간 거래량
	Amount24                float64       `json:"amount24"`      // 24시간 거래대금
	HoldVol                 float64       `json:"holdVol"`       // 미결제 약정
	Lower24Price            float64       `json:"lower24Price"`  // 24시간 최저가
	High24Price             float64       `json:"high24Price"`   // 24시간 최고가
	RiseFallRate            float64       `json:"riseFallRate"`  // 등락률
	RiseFallValue           float64       `json:"riseFallValue"` // 등락값
	IndexPrice              float64       `json:"indexPrice"`
	FairPrice               float64       `json:"fairPrice"`
	FundingRate             float64       `json:"fundingRate"`
	MaxBidPrice             float64       `json:"maxBidPrice"`
	MinAskPrice             float64       `json:"minAskPrice"`
	Timestamp               int64         `json:"timestamp"`
	RiseFallRates           RiseFallRates `json:"riseFallRates"`
	RiseFallRatesOfTimezone []float64     `json:"riseFallRatesOfTimezone"`
}

// TickerResponse는 티커 조회 응답입니다
type TickerResponse struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Data    TickerData `json:"data"`
}

// ContractDetail은 계약 상세 정보를 표현합니다
type ContractDetail struct {
	Symbol                     string   `json:"symbol"`
	DisplayName                string   `json:"displayName"`
	DisplayNameEn              string   `json:"displayNameEn"`
	PositionOpenType           int      `json:"positionOpenType"` // 1: 격리, 2: 교차, 3: 둘 다
	BaseCoin                   string   `json:"baseCoin"`
	QuoteCoin                  string   `json:"quoteCoin"`
	SettleCoin                 string   `json:"settleCoin"`
	ContractSize               float64  `json:"contractSize"`
	MinLeverage                int      `json:"minLeverage"`
	MaxLeverage                int      `json:"maxLeverage"`
	PriceScale                 int      `json:"priceScale"`
	VolScale                   int      `json:"volScale"`
	AmountScale                int      `json:"amountScale"`
	PriceUnit                  float64  `json:"priceUnit"`
	VolUnit                    float64  `json:"volUnit"`
	MinVol                     float64  `json:"minVol"`
	MaxVol                     float64  `json:"maxVol"`
	BidLimitPriceRate          float64  `json:"bidLimitPriceRate"`
	AskLimitPriceRate          float64  `json:"askLimitPriceRate"`
	TakerFeeRate               float64  `json:"takerFeeRate"`
	MakerFeeRate               float64  `json:"makerFeeRate"`
	MaintenanceMarginRate      float64  `json:"maintenanceMarginRate"`
	InitialMarginRate          float64  `json:"initialMarginRate"`
	RiskBaseVol                float64  `json:"riskBaseVol"`
	RiskIncrVol                float64  `json:"riskIncrVol"`
	RiskIncrMmr                float64  `json:"riskIncrMmr"`
	RiskIncrImr                float64  `json:"riskIncrImr"`
	RiskLevelLimit             int      `json:"riskLevelLimit"`
	PriceCoefficientVariation  float64  `json:"priceCoefficientVariation"`
	IndexOrigin                []string `json:"indexOrigin"`
	State                      int      `json:"state"` // 0: 활성, 1: 결제, 2: 완료, 3: 중단, 4: 일시정지
	IsNew                      bool     `json:"isNew"`
	IsHot                      bool     `json:"isHot"`
	IsHidden                   bool     `json:"isHidden"`
	ConceptPlate               []string `json:"conceptPlate"`
	RiskLimitType              string   `json:"riskLimitType"` // "BY_VOLUME" 또는 "BY_VALUE"
	MaxNumOrders               []int    `json:"maxNumOrders"`
	MarketOrderMaxLevel        int      `json:"marketOrderMaxLevel"`
	MarketOrderPriceLimitRate1 float64  `json:"marketOrderPriceLimitRate1"`
	MarketOrderPriceLimitRate2 float64  `json:"marketOrderPriceLimitRate2"`
	TriggerProtect             float64  `json:"triggerProtect"`
	Appraisal                  float64  `json:"appraisal"`
	ShowAppraisalCountdown     int      `json:"showAppraisalCountdown"`
	AutomaticDelivery          int      `json:"automaticDelivery"`
	APIAllowed                 bool     `json:"apiAllowed"`
}

// ContractDetailList는 계약 상세 목록입니다.
// 서버는 단일 심볼 조회 시 객체 하나를, 전체 조회 시 배열을 내려주므로
// 역직렬화 시점에 항상 목록 하나로 정규화합니다
type ContractDetailList []ContractDetail

// UnmarshalJSON은 단일 객체와 배열 형태를 모두 목록으로 변환합니다
func (l *ContractDetailList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []ContractDetail
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}

	var single ContractDetail
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*l = ContractDetailList{single}
	return nil
}

// ContractDetailResponse는 계약 상세 조회 응답입니다
type ContractDetailResponse struct {
	Success bool               `json:"success"`
	Code    int                `json:"code"`
	Data    ContractDetailList `json:"data"`
}

// DepthEntry는 호가창의 한 단계를 표현합니다.
// 서버는 {price, volume, count} 객체 또는 [price, volume, count?] 배열로
// 내려주며, 두 형태 모두 동일한 항목으로 정규화됩니다.
// 배열에 요소가 두 개뿐이면 Count는 nil입니다
type DepthEntry struct {
	Price  float64 // 가격
	Volume float64 // 수량
	Count  *int64  // 주문 건수 (없을 수 있음)
}

// UnmarshalJSON은 객체와 배열 두 형태의 호가 항목을 처리합니다
func (d *DepthEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("빈 호가 항목")
	}

	if trimmed[0] == '[' {
		var arr []json.Number
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return fmt.Errorf("호가 배열 파싱 실패: %w", err)
		}
		if len(arr) < 2 {
			return fmt.Errorf("호가 배열 요소 부족: %d개", len(arr))
		}

		price, err := arr[0].Float64()
		if err != nil {
			return fmt.Errorf("호가 가격 파싱 실패: %w", err)
		}
		volume, err := arr[1].Float64()
		if err != nil {
			return fmt.Errorf("호가 수량 파싱 실패: %w", err)
		}

		d.Price = price
		d.Volume = volume
		d.Count = nil
		if len(arr) > 2 {
			count, err := arr[2].Int64()
			if err != nil {
				return fmt.Errorf("호가 주문 건수 파싱 실패: %w", err)
			}
			d.Count = &count
		}
		return nil
	}

	var obj struct {
		Price  float64 `json:"price"`
		Volume float64 `json:"volume"`
		Count  *int64  `json:"count"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("호가 객체 파싱 실패: %w", err)
	}

	d.Price = obj.Price
	d.Volume = obj.Volume
	d.Count = obj.Count
	return nil
}

// MarshalJSON은 정규화된 객체 형태로 직렬화합니다
func (d DepthEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Price  float64 `json:"price"`
		Volume float64 `json:"volume"`
		Count  *int64  `json:"count"`
	}{d.Price, d.Volume, d.Count})
}

// ContractDepthData는 호가창 데이터를 표현합니다
type ContractDepthData struct {
	Asks      []DepthEntry `json:"asks"` // 매도 호가 (가격 오름차순)
	Bids      []DepthEntry `json:"bids"` // 매수 호가 (가격 내림차순)
	Version   int64        `json:"version"`
	Timestamp int64        `json:"timestamp"`
}

// rawDepthResponse는 호가 엔드포인트의 두 가지 응답 형태를 수용합니다.
// success/code 봉투에 감싸져 오거나, 호가 데이터가 그대로 오기도 합니다
type rawDepthResponse struct {
	Success   *bool              `json:"success"`
	Code      *int               `json:"code"`
	Data      *ContractDepthData `json:"data"`
	Asks      []DepthEntry       `json:"asks"`
	Bids      []DepthEntry       `json:"bids"`
	Version   *int64             `json:"version"`
	Timestamp *int64             `json:"timestamp"`
}

// GetTicker는 특정 심볼의 티커 데이터를 조회합니다
func (c *Client) GetTicker(ctx context.Context, symbol string) (*TickerResponse, error) {
	if symbol == "" {
		return nil, newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}

	params := url.Values{}
	params.Add("symbol", symbol)

	resp, err := c.doRequest(ctx, http.MethodGet, endpointTicker, params, nil, false)
	if err != nil {
		return nil, err
	}

	var result TickerResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("티커 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetContractDetail은 계약 정보를 조회합니다.
// symbol이 비어 있으면 전체 계약을 반환합니다
func (c *Client) GetContractDetail(ctx context.Context, symbol string) (*ContractDetailResponse, error) {
	params := url.Values{}
	if symbol != "" {
		params.Add("symbol", symbol)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpointContractDetail, params, nil, false)
	if err != nil {
		return nil, err
	}

	var result ContractDetailResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("계약 상세 응답 파싱 실패: %w", err)
	}

	return &result, nil
}

// GetContractDepth는 계약의 호가창 정보를 조회합니다.
// limit이 0보다 크면 호가 단계 수를 제한합니다.
// 응답 형태와 무관하게 항상 정규화된 호가 데이터를 반환합니다
func (c *Client) GetContractDepth(ctx context.Context, symbol string, limit int) (*ContractDepthData, error) {
	if symbol == "" {
		return nil, newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}

	params := url.Values{}
	if limit > 0 {
		params.Add("limit", strconv.Itoa(limit))
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpointContractDepth+"/"+symbol, params, nil, false)
	if err != nil {
		return nil, err
	}

	var raw rawDepthResponse
	if err := json.Unmarshal(resp, &raw); err != nil {
		return nil, fmt.Errorf("호가 응답 파싱 실패: %w", err)
	}

	// 봉투에 감싸진 형태
	if raw.Data != nil {
		return raw.Data, nil
	}

	// 데이터가 그대로 온 형태
	depth := &ContractDepthData{
		Asks: raw.Asks,
		Bids: raw.Bids,
	}
	if raw.Version != nil {
		depth.Version = *raw.Version
	}
	if raw.Timestamp != nil {
		depth.Timestamp = *raw.Timestamp
	}

	return depth, nil
}
