package mexc

import (
	"context"
	"time"
)

// SyncClient는 컨텍스트 없이 호출할 수 있는 동기 래퍼입니다.
// 인스턴스마다 자신만의 루트 컨텍스트를 소유하며 다른 인스턴스와 공유하지
// 않습니다. Close를 호출하면 진행 중인 요청이 모두 취소됩니다
type SyncClient struct {
	client  *Client
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// NewSyncClient는 새로운 동기 클라이언트를 생성합니다.
// timeout은 호출당 대기 시간이며 0이면 30초가 사용됩니다
func NewSyncClient(authToken string, timeout time.Duration, opts ...ClientOption) *SyncClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SyncClient{
		client:  NewClient(authToken, opts...),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Close는 래퍼의 루트 컨텍스트를 취소합니다.
// 이후의 모든 호출은 즉시 실패합니다
func (s *SyncClient) Close() {
	s.cancel()
}

// Client는 내부의 비동기 클라이언트를 반환합니다.
// 컨텍스트를 직접 제어해야 하는 호출에 사용합니다
func (s *SyncClient) Client() *Client {
	return s.client
}

func (s *SyncClient) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.ctx, s.timeout)
}

// SubmitOrder는 주문을 동기적으로 제출합니다
func (s *SyncClient) SubmitOrder(order SubmitOrderRequest) (*SubmitOrderResponse, error) {
	ctx, cancel := s.callCtx()
	defer cancel()
	return s.client.SubmitOrder(ctx, order)
}

// CancelOrder는 주문을 동기적으로 취소합니다
func (s *SyncClient) CancelOrder(orderIDs []int64) (*CancelOrderResponse, error) {
	ctx, cancel := s.callCtx()
	defer cancel()
	return s.client.CancelOrder(ctx, orderIDs)
}

// GetTicker는 티커를 동기적으로 조회합니다
func (s *SyncClient) GetTicker(symbol string) (*TickerResponse, error) {
	ctx, cancel := s.callCtx()
	defer cancel()
	return s.client.GetTicker(ctx, symbol)
}

// GetAccountAsset은 자산 정보를 동기적으로 조회합니다
func (s *SyncClient) GetAccountAsset(currency string) (*AccountAssetResponse, error) {
	ctx, cancel := s.callCtx()
	defer cancel()
	return s.client.GetAccountAsset(ctx, currency)
}

// GetOpenPositions는 보유 포지션을 동기적으로 조회합니다
func (s *SyncClient) GetOpenPositions(symbol string) (*OpenPositionsResponse, error) {
	ctx, cancel := s.callCtx()
	defer cancel()
	return s.client.GetOpenPositions(ctx, symbol)
}

// TestConnection은 API 연결을 동기적으로 확인합니다
func (s *SyncClient) TestConnection() bool {
	ctx, cancel := s.callCtx()
	defer cancel()
	return s.client.TestConnection(ctx)
}
