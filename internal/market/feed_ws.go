package market

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// PriceUpdate is one live probability refresh from the CLOB market channel.
type PriceUpdate struct {
	MarketID string
	Price    float64
	Ts       time.Time
}

type clobSubscribe struct {
	AssetIDs []string `json:"assets_ids"`
	Type     string   `json:"type"`
}

type clobEvent struct {
	EventType string `json:"event_type"`
	AssetID   string `json:"asset_id"`
	Price     string `json:"price"`
	Timestamp string `json:"timestamp"`
}

// StreamPrices subscribes to the market channel for the given asset ids and
// pushes trade-price updates onto out until the context is canceled.
// Disconnects are retried with backoff.
func (f *Feed) StreamPrices(ctx context.Context, assetIDs []string, out chan<- PriceUpdate) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.consumeMarketChannel(ctx, assetIDs, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.log.Warn().Err(err).Msg("clob price stream disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (f *Feed) consumeMarketChannel(ctx context.Context, assetIDs []string, out chan<- PriceUpdate) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, f.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(clobSubscribe{AssetIDs: assetIDs, Type: "market"}); err != nil {
		return err
	}
	f.log.Info().Int("assets", len(assetIDs)).Msg("connected clob price stream")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					f.log.Warn().Err(err).Msg("clob ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var events []clobEvent
		if err := json.Unmarshal(message, &events); err != nil {
			// Single-object frames occur on some channel messages.
			var single clobEvent
			if err := json.Unmarshal(message, &single); err != nil {
				f.log.Warn().Err(err).Msg("failed to decode clob message")
				continue
			}
			events = append(events, single)
		}

		for _, ev := range events {
			if ev.EventType != "last_trade_price" && ev.EventType != "price_change" {
				continue
			}
			px, err := strconv.ParseFloat(ev.Price, 64)
			if err != nil {
				continue
			}
			ts := time.Now()
			if ms, err := strconv.ParseInt(ev.Timestamp, 10, 64); err == nil {
				ts = time.UnixMilli(ms)
			}
			update := PriceUpdate{MarketID: ev.AssetID, Price: px, Ts: ts}
			select {
			case out <- update:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
