package feeds

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

const (
	tickerReconnectDelay    = 5 * time.Second
	tickerMaxReconnectDelay = 5 * time.Minute
	tickerPongWait          = 60 * time.Second
	tickerPingInterval      = 30 * time.Second
)

// PriceTick is one steel price observation from the ticker stream
type PriceTick struct {
	Symbol     string    `json:"symbol"`
	PriceUSD   float64   `json:"price_usd"`
	ReceivedAt time.Time `json:"received_at"`
}

// Ticker maintains a live steel price over a WebSocket stream. It is
// informational only: the pipeline never blocks on it, the API serves
// the latest tick when one exists.
type Ticker struct {
	config config.TickerConfig
	logger *logger.Logger

	conn   *websocket.Conn
	connMu sync.Mutex

	latest   map[string]PriceTick
	latestMu sync.RWMutex

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewTicker creates a price ticker
func NewTicker(cfg config.TickerConfig, log *logger.Logger) *Ticker {
	return &Ticker{
		config: cfg,
		logger: log,
		latest: make(map[string]PriceTick),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start connects and begins the read loop. Returns immediately when
// the ticker is disabled.
func (t *Ticker) Start(ctx context.Context) error {
	if !t.config.Enabled || t.config.URL == "" {
		t.logger.Info("Price ticker disabled")
		close(t.doneCh)
		return nil
	}

	go t.run(ctx)
	return nil
}

// Stop closes the connection and waits for the read loop to exit
func (t *Ticker) Stop() {
	close(t.stopCh)

	t.connMu.Lock()
	if t.conn != nil {
		t.conn.Close()
	}
	t.connMu.Unlock()

	<-t.doneCh
}

// Latest returns the most recent tick for a symbol
func (t *Ticker) Latest(symbol string) (PriceTick, bool) {
	t.latestMu.RLock()
	defer t.latestMu.RUnlock()
	tick, ok := t.latest[symbol]
	return tick, ok
}

// Snapshot returns all current ticks
func (t *Ticker) Snapshot() []PriceTick {
	t.latestMu.RLock()
	defer t.latestMu.RUnlock()

	ticks := make([]PriceTick, 0, len(t.latest))
	for _, tick := range t.latest {
		ticks = append(ticks, tick)
	}
	return ticks
}

// run reconnects with exponential backoff until stopped
func (t *Ticker) run(ctx context.Context) {
	defer close(t.doneCh)

	delay := tickerReconnectDelay
	for {
		select {
		case <-t.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := t.connect(ctx); err != nil {
			t.logger.WithError(err).Warn("Ticker connection failed")

			select {
			case <-t.stopCh:
				return
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}

			delay *= 2
			if delay > tickerMaxReconnectDelay {
				delay = tickerMaxReconnectDelay
			}
			continue
		}

		delay = tickerReconnectDelay
		t.readLoop(ctx)
	}
}

func (t *Ticker) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.config.URL, nil)
	if err != nil {
		return err
	}

	conn.SetReadDeadline(time.Now().Add(tickerPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(tickerPongWait))
		return nil
	})

	t.connMu.Lock()
	t.conn = conn
	t.connMu.Unlock()

	t.logger.WithField("url", t.config.URL).Info("Ticker connected")
	return nil
}

// readLoop consumes ticks until the connection drops
func (t *Ticker) readLoop(ctx context.Context) {
	connDone := make(chan struct{})
	defer close(connDone)

	go func() {
		ticker := time.NewTicker(tickerPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.connMu.Lock()
				if t.conn != nil {
					t.conn.WriteMessage(websocket.PingMessage, nil)
				}
				t.connMu.Unlock()
			case <-connDone:
				return
			case <-t.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var tick PriceTick
		if err := t.conn.ReadJSON(&tick); err != nil {
			select {
			case <-t.stopCh:
			case <-ctx.Done():
			default:
				t.logger.WithError(err).Warn("Ticker read failed, reconnecting")
			}
			return
		}

		tick.ReceivedAt = time.Now()
		t.record(tick)
	}
}

func (t *Ticker) record(tick PriceTick) {
	if tick.Symbol == "" || tick.PriceUSD <= 0 {
		return
	}

	t.latestMu.Lock()
	t.latest[tick.Symbol] = tick
	t.latestMu.Unlock()
}
