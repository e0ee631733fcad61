package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/assist-by/mexc-futures/internal/config"
	"github.com/assist-by/mexc-futures/mexc"
)

func main() {
	// 명령줄 플래그 정의
	streamFlag := flag.Bool("stream", false, "티커 웹소켓 스트림 구독")
	accountFlag := flag.Bool("account", false, "계정 자산/포지션 조회 (인증 필요)")

	// 플래그 파싱
	flag.Parse()

	// 종료 시그널과 연동된 컨텍스트 생성
	ctx, cancel := osSignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 로그 설정
	log.SetFlags(log.Ldate | log.Ltime)

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 클라이언트 생성
	opts := []mexc.ClientOption{
		mexc.WithTimeout(cfg.App.RequestTimeout),
		mexc.WithLogLevel(mexc.ParseLogLevel(cfg.App.LogLevel)),
	}
	if cfg.Mexc.BaseURL != "" {
		opts = append(opts, mexc.WithBaseURL(cfg.Mexc.BaseURL))
	}
	client := mexc.NewClient(cfg.Mexc.WebToken, opts...)

	// 연결 확인
	fmt.Println("🔌 연결 확인 중...")
	if !client.TestConnection(ctx) {
		log.Fatal("❌ 연결에 실패했습니다. WEB 토큰을 확인해 주세요.")
	}
	fmt.Println("✅ 연결 성공")

	symbol := cfg.App.Symbol

	// 마켓 데이터 조회
	fmt.Printf("\n📈 %s 티커 조회 중...\n", symbol)
	if ticker, err := client.GetTicker(ctx, symbol); err != nil {
		printError(err)
	} else {
		fmt.Printf("  💰 현재가: %v\n", ticker.Data.LastPrice)
		fmt.Printf("  📈 24시간 등락률: %.2f%%\n", ticker.Data.RiseFallRate*100)
		fmt.Printf("  📊 24시간 거래량: %.0f\n", ticker.Data.Volume24)
		fmt.Printf("  🏦 미결제 약정: %.0f\n", ticker.Data.HoldVol)
		fmt.Printf("  💸 펀딩 비율: %v\n", ticker.Data.FundingRate)
	}

	// 계약 상세 조회
	fmt.Printf("\n📋 %s 계약 상세 조회 중...\n", symbol)
	if detail, err := client.GetContractDetail(ctx, symbol); err != nil {
		printError(err)
	} else if len(detail.Data) > 0 {
		contract := detail.Data[0]
		fmt.Printf("  최대 레버리지: %dx\n", contract.MaxLeverage)
		fmt.Printf("  계약 크기: %v\n", contract.ContractSize)
		fmt.Printf("  테이커 수수료: %.4f%%\n", contract.TakerFeeRate*100)
		fmt.Printf("  메이커 수수료: %.4f%%\n", contract.MakerFeeRate*100)
	}

	// 호가창 조회
	fmt.Printf("\n📊 %s 호가창 조회 중...\n", symbol)
	if depth, err := client.GetContractDepth(ctx, symbol, 5); err != nil {
		printError(err)
	} else {
		fmt.Println("  매도 호가:")
		for _, ask := range depth.Asks {
			fmt.Printf("    %v x %v\n", ask.Price, ask.Volume)
		}
		fmt.Println("  매수 호가:")
		for _, bid := range depth.Bids {
			fmt.Printf("    %v x %v\n", bid.Price, bid.Volume)
		}
	}

	// 계정 조회 (옵션)
	if *accountFlag {
		fmt.Println("\n💼 USDT 자산 조회 중...")
		if asset, err := client.GetAccountAsset(ctx, "USDT"); err != nil {
			printError(err)
		} else {
			fmt.Printf("  사용 가능 잔고: %v USDT\n", asset.Data.AvailableBalance)
			fmt.Printf("  자본: %v USDT\n", asset.Data.Equity)
			fmt.Printf("  미실현 손익: %v USDT\n", asset.Data.Unrealized)
		}

		fmt.Println("\n📌 보유 포지션 조회 중...")
		if positions, err := client.GetOpenPositions(ctx, ""); err != nil {
			printError(err)
		} else if len(positions.Data) == 0 {
			fmt.Println("  보유 중인 포지션이 없습니다.")
		} else {
			for _, p := range positions.Data {
				fmt.Printf("  %s: 수량 %v, 진입가 %v, 레버리지 %dx\n",
					p.Symbol, p.HoldVol, p.OpenAvgPrice, p.Leverage)
			}
		}
	}

	// 티커 스트림 구독 (옵션)
	if *streamFlag {
		fmt.Printf("\n📡 %s 티커 스트림 구독 중... (Ctrl+C로 종료)\n", symbol)
		err := client.StreamTicker(ctx, symbol, func(event mexc.TickerEvent) {
			ts := time.UnixMilli(event.Timestamp).Format("15:04:05")
			fmt.Printf("  [%s] %s 현재가: %v (펀딩: %v)\n", ts, event.Symbol, event.LastPrice, event.FundingRate)
		})
		if err != nil && ctx.Err() == nil {
			printError(err)
			os.Exit(1)
		}
	}

	fmt.Println("\n완료")
}

// printError는 분류된 에러의 사용자 메시지를 출력합니다
func printError(err error) {
	if mexcErr, ok := mexc.AsError(err); ok {
		fmt.Println(" ", mexcErr.UserMessage())
		return
	}
	fmt.Println("  ❌", err)
}
