package mexc

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepthEntryUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPrice  float64
		wantVolume float64
		wantCount  *int64
		wantErr    bool
	}{
		{
			name:       "요소 3개 배열",
			input:      `[113035.6, 79465, 1]`,
			wantPrice:  113035.6,
			wantVolume: 79465,
			wantCount:  int64Ptr(1),
		},
		{
			name:       "요소 2개 배열은 count 없음",
			input:      `[113035.7, 75669]`,
			wantPrice:  113035.7,
			wantVolume: 75669,
			wantCount:  nil,
		},
		{
			name:       "객체 형태는 그대로 통과하고 count 기본값은 없음",
			input:      `{"price": 1, "volume": 2}`,
			wantPrice:  1,
			wantVolume: 2,
			wantCount:  nil,
		},
		{
			name:       "count가 포함된 객체 형태",
			input:      `{"price": 113035.6, "volume": 79465, "count": 3}`,
			wantPrice:  113035.6,
			wantVolume: 79465,
			wantCount:  int64Ptr(3),
		},
		{
			name:    "요소 1개 배열은 에러",
			input:   `[113035.6]`,
			wantErr: true,
		},
		{
			name:    "숫자가 아닌 배열 요소는 에러",
			input:   `["abc", "def"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entry DepthEntry
			err := json.Unmarshal([]byte(tt.input), &entry)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, entry.Price)
			assert.Equal(t, tt.wantVolume, entry.Volume)
			if tt.wantCount == nil {
				assert.Nil(t, entry.Count)
			} else {
				require.NotNil(t, entry.Count)
				assert.Equal(t, *tt.wantCount, *entry.Count)
			}
		})
	}
}

func TestContractDetailListUnmarshal(t *testing.T) {
	t.Run("단일 객체는 요소 1개 목록으로 정규화", func(t *testing.T) {
		var list ContractDetailList
		err := json.Unmarshal([]byte(`{"symbol":"BTC_USDT","maxLeverage":500}`), &list)

		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "BTC_USDT", list[0].Symbol)
		assert.Equal(t, 500, list[0].MaxLeverage)
	})

	t.Run("배열은 그대로 목록이 됨", func(t *testing.T) {
		var list ContractDetailList
		err := json.Unmarshal([]byte(`[{"symbol":"BTC_USDT"},{"symbol":"ETH_USDT"}]`), &list)

		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "ETH_USDT", list[1].Symbol)
	})

	t.Run("null은 빈 목록", func(t *testing.T) {
		var list ContractDetailList
		err := json.Unmarshal([]byte(`null`), &list)

		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestGetTicker(t *testing.T) {
	t.Run("티커 응답 파싱", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, endpointTicker, r.URL.Path)
			assert.Equal(t, "BTC_USDT", r.URL.Query().Get("symbol"))
			// 공개 엔드포인트에는 인증 헤더가 없어야 합니다
			assert.Empty(t, r.Header.Get(headerAuthorization))
			assert.Empty(t, r.Header.Get(headerSign))

			w.Write([]byte(`{
				"success": true,
				"code": 0,
				"data": {
					"contractId": 10,
					"symbol": "BTC_USDT",
					"lastPrice": 113035.6,
					"fundingRate": 0.0001,
					"riseFallRates": {"zone": "UTC+8", "r": 0.01, "v": 100, "r7": 0.05},
					"riseFallRatesOfTimezone": [0.01, 0.02]
				}
			}`))
		})

		resp, err := client.GetTicker(context.Background(), "BTC_USDT")

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "BTC_USDT", resp.Data.Symbol)
		assert.Equal(t, 113035.6, resp.Data.LastPrice)
		assert.Equal(t, "UTC+8", resp.Data.RiseFallRates.Zone)
	})

	t.Run("빈 심볼은 네트워크 호출 전에 거부", func(t *testing.T) {
		calls := 0
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})

		_, err := client.GetTicker(context.Background(), "")

		assert.True(t, IsValidation(err))
		assert.Zero(t, calls)
	})

	t.Run("깨진 응답 본문은 파싱 에러로 감싸서 반환", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.GetTicker(context.Background(), "BTC_USDT")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "파싱 실패")
	})
}

func TestGetContractDepth(t *testing.T) {
	t.Run("봉투 없는 직접 응답 정규화", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, endpointContractDepth+"/BTC_USDT", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("limit"))

			w.Write([]byte(`{
				"asks": [[113035.6, 79465, 1], [113035.7, 75669]],
				"bids": [{"price": 113035.5, "volume": 100, "count": 2}],
				"version": 123,
				"timestamp": 1700000000000
			}`))
		})

		depth, err := client.GetContractDepth(context.Background(), "BTC_USDT", 5)

		require.NoError(t, err)
		require.Len(t, depth.Asks, 2)
		assert.Equal(t, 113035.6, depth.Asks[0].Price)
		require.NotNil(t, depth.Asks[0].Count)
		assert.Equal(t, int64(1), *depth.Asks[0].Count)
		assert.Nil(t, depth.Asks[1].Count)
		require.Len(t, depth.Bids, 1)
		assert.Equal(t, int64(123), depth.Version)
		assert.Equal(t, int64(1700000000000), depth.Timestamp)
	})

	t.Run("봉투에 감싸진 응답 정규화", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"success": true,
				"code": 0,
				"data": {
					"asks": [[113035.6, 79465, 1]],
					"bids": [],
					"version": 7,
					"timestamp": 1700000000001
				}
			}`))
		})

		depth, err := client.GetContractDepth(context.Background(), "BTC_USDT", 0)

		require.NoError(t, err)
		require.Len(t, depth.Asks, 1)
		assert.Equal(t, float64(79465), depth.Asks[0].Volume)
		assert.Equal(t, int64(7), depth.Version)
	})
}

func TestGetContractDetail(t *testing.T) {
	t.Run("단일 심볼 조회는 목록으로 정규화", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"code":0,"data":{"symbol":"BTC_USDT","maxLeverage":500,"takerFeeRate":0.0006}}`))
		})

		resp, err := client.GetContractDetail(context.Background(), "BTC_USDT")

		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, 500, resp.Data[0].MaxLeverage)
	})

	t.Run("전체 조회는 심볼 파라미터 없이 요청", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("symbol"))
			w.Write([]byte(`{"success":true,"code":0,"data":[{"symbol":"BTC_USDT"},{"symbol":"ETH_USDT"}]}`))
		})

		resp, err := client.GetContractDetail(context.Background(), "")

		require.NoError(t, err)
		assert.Len(t, resp.Data, 2)
	})
}

func int64Ptr(v int64) *int64 {
	return &v
}
