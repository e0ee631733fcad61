package mexc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStreamServer는 구독 요청을 검증한 뒤 serve 콜백에 연결을 넘기는
// 웹소켓 서버를 띄우고 ws:// URL을 반환합니다
func newTestStreamServer(t *testing.T, serve func(conn *websocket.Conn, sub wsRequest)) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var sub wsRequest
		if err := conn.ReadJSON(&sub); err != nil {
			return
		}
		serve(conn, sub)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestStreamTicker(t *testing.T) {
	t.Run("구독 후 푸시 수신", func(t *testing.T) {
		url := newTestStreamServer(t, func(conn *websocket.Conn, sub wsRequest) {
			assert.Equal(t, "sub.ticker", sub.Method)
			assert.Equal(t, "BTC_USDT", sub.Param["symbol"])

			conn.WriteJSON(map[string]interface{}{"channel": "rs.sub.ticker"})
			conn.WriteJSON(map[string]interface{}{
				"channel": "push.ticker",
				"ts":      1700000000000,
				"data": map[string]interface{}{
					"symbol":    "BTC_USDT",
					"lastPrice": 113035.6,
					"bid1":      113035.5,
					"ask1":      113035.7,
				},
			})

			// 클라이언트가 컨텍스트 취소로 연결을 닫을 때까지 대기
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		client := NewClient("WEBtesttoken", WithLogLevel(LogSilent))

		events := make(chan TickerEvent, 1)
		errCh := make(chan error, 1)
		go func() {
			errCh <- client.StreamTicker(ctx, "BTC_USDT", func(event TickerEvent) {
				select {
				case events <- event:
				default:
				}
			}, WithStreamURL(url))
		}()

		select {
		case event := <-events:
			assert.Equal(t, "BTC_USDT", event.Symbol)
			assert.Equal(t, 113035.6, event.LastPrice)
			// 푸시에 timestamp가 없으면 메시지의 ts로 채웁니다
			assert.Equal(t, int64(1700000000000), event.Timestamp)
		case <-time.After(5 * time.Second):
			t.Fatal("티커 이벤트 수신 시간 초과")
		}

		cancel()

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("스트림 종료 시간 초과")
		}
	})

	t.Run("서버 에러 응답이면 종료", func(t *testing.T) {
		url := newTestStreamServer(t, func(conn *websocket.Conn, sub wsRequest) {
			conn.WriteJSON(map[string]interface{}{
				"channel": "rs.error",
				"data":    "Contract not exists",
			})
		})

		client := NewClient("WEBtesttoken", WithLogLevel(LogSilent))

		err := client.StreamTicker(context.Background(), "NOPE_USDT", func(TickerEvent) {}, WithStreamURL(url))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "에러 응답")
	})

	t.Run("빈 심볼은 연결 전에 거부", func(t *testing.T) {
		client := NewClient("WEBtesttoken", WithLogLevel(LogSilent))

		err := client.StreamTicker(context.Background(), "", func(TickerEvent) {})

		assert.True(t, IsValidation(err))
	})

	t.Run("nil 핸들러는 연결 전에 거부", func(t *testing.T) {
		client := NewClient("WEBtesttoken", WithLogLevel(LogSilent))

		err := client.StreamTicker(context.Background(), "BTC_USDT", nil)

		assert.True(t, IsValidation(err))
	})
}
