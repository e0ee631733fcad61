package mexc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// 공개 웹소켓 엔드포인트
const defaultStreamURL = "wss://contract.mexc.com/edge"

const (
	streamPingInterval = 15 * time.Second
	streamReadTimeout  = 60 * time.Second
)

// wsRequest는 웹소켓 구독/핑 메시지입니다
type wsRequest struct {
	Method string            `json:"method"`
	Param  map[string]string `json:"param,omitempty"`
}

// wsMessage는 서버가 내려주는 푸시 메시지입니다
type wsMessage struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
	Ts      int64           `json:"ts"`
}

// TickerEvent는 티커 스트림의 푸시 한 건을 표현합니다
type TickerEvent struct {
	Symbol       string  `json:"symbol"`
	LastPrice    float64 `json:"lastPrice"`
	Bid1         float64 `json:"bid1"`
	Ask1         float64 `json:"ask1"`
	Volume24     float64 `json:"volume24"`
	HoldVol      float64 `json:"holdVol"`
	RiseFallRate float64 `json:"riseFallRate"`
	IndexPrice   float64 `json:"indexPrice"`
	FairPrice    float64 `json:"fairPrice"`
	FundingRate  float64 `json:"fundingRate"`
	Timestamp    int64   `json:"timestamp"`
}

// StreamOption은 스트림 연결 옵션을 정의합니다
type StreamOption func(*streamConfig)

type streamConfig struct {
	url string
}

// WithStreamURL은 웹소켓 엔드포인트를 덮어씁니다
func WithStreamURL(url string) StreamOption {
	return func(cfg *streamConfig) {
		cfg.url = url
	}
}

// StreamTicker는 심볼의 티커 푸시를 구독하고 수신한 이벤트마다 handler를
// 호출합니다. 컨텍스트가 취소될 때까지 블로킹하며, 연결이 끊어지면 에러를
// 반환합니다. 재연결은 호출자의 몫입니다.
// 수신한 푸시는 handler에 전달된 뒤 버려지며 로컬 상태를 유지하지 않습니다
func (c *Client) StreamTicker(ctx context.Context, symbol string, handler func(TickerEvent), opts ...StreamOption) error {
	if symbol == "" {
		return newValidationError("symbol", "심볼은 비어 있을 수 없습니다")
	}
	if handler == nil {
		return newValidationError("handler", "핸들러는 nil일 수 없습니다")
	}

	cfg := streamConfig{url: defaultStreamURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.url, nil)
	if err != nil {
		return fmt.Errorf("웹소켓 연결 실패: %w", err)
	}
	defer conn.Close()

	// 티커 채널 구독
	sub := wsRequest{
		Method: "sub.ticker",
		Param:  map[string]string{"symbol": symbol},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("구독 요청 실패: %w", err)
	}

	c.logger.Infof("📡 티커 스트림 구독: %s", symbol)

	// 서버는 주기적인 핑이 없으면 연결을 닫습니다
	pingTicker := time.NewTicker(streamPingInterval)
	defer pingTicker.Stop()

	// 컨텍스트 취소 시 읽기 루프를 깨우기 위해 연결을 닫습니다
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go func() {
		for {
			select {
			case <-pingTicker.C:
				if err := conn.WriteJSON(wsRequest{Method: "ping"}); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("웹소켓 수신 실패: %w", err)
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Warnf("웹소켓 메시지 파싱 실패: %v", err)
			continue
		}

		switch msg.Channel {
		case "push.ticker":
			var event TickerEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				c.logger.Warnf("티커 푸시 파싱 실패: %v", err)
				continue
			}
			if event.Timestamp == 0 {
				event.Timestamp = msg.Ts
			}
			handler(event)

		case "pong", "rs.sub.ticker":
			// 유지 응답, 무시

		case "rs.error":
			return fmt.Errorf("웹소켓 에러 응답: %s", msg.Data)
		}
	}
}
