package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/chain"
	"github.com/dmitrijs2005/landgrab/internal/client/config"
	"github.com/dmitrijs2005/landgrab/internal/client/geocoder"
	"github.com/dmitrijs2005/landgrab/internal/client/locator"
	"github.com/dmitrijs2005/landgrab/internal/client/metrics"
	"github.com/dmitrijs2005/landgrab/internal/client/services"
	"github.com/dmitrijs2005/landgrab/internal/client/storage"
	"github.com/dmitrijs2005/landgrab/internal/client/wallet"
	"github.com/dmitrijs2005/landgrab/internal/logging"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Pinger reports whether the RPC node is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Wallet is the session signer as seen by the connect commands.
type Wallet interface {
	ConnectHex(hexKey string) error
	ConnectKeystore(keyJSON []byte, password string) error
	Disconnect()
	Connected() bool
	Address() (ethcommon.Address, error)
}

type App struct {
	config *config.Config
	log    logging.Logger

	wallet  Wallet
	claims  services.ClaimService
	swaps   services.SwapService
	parcels services.ParcelService
	account services.AccountService
	names   services.UsernameSource
	history services.HistoryService

	pinger  Pinger
	metrics *metrics.Metrics
	closers []func() error

	mu   sync.RWMutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, prepares the chain and geocoder clients
// and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = logging.Nop()
	}

	db, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", c.DBPath, err)
	}

	node, err := chain.Dial(ctx, c.RPCURL, c.ChainID)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	contracts, err := chain.Bind(node.Backend(), chain.Addresses{
		UserRegistry: ethcommon.HexToAddress(c.UserRegistry),
		LandRegistry: ethcommon.HexToAddress(c.LandRegistry),
		LandSwap:     ethcommon.HexToAddress(c.LandSwap),
	})
	if err != nil {
		node.Close()
		_ = db.Close()
		return nil, err
	}

	m := metrics.New()
	session := wallet.NewSession(node.ChainID())
	reader := chain.NewReader(contracts, m)
	writer := services.NewJournalingWriter(chain.NewWriter(contracts, session, node.WaitMined, m), db.Journal, log)
	geo := geocoder.NewHTTPClient(c.GeocoderURL,
		geocoder.WithAPIKey(c.GeocoderKey),
		geocoder.WithRateLimit(c.GeocoderRPS),
		geocoder.WithMetrics(m),
	)
	names := services.NewUsernameSource(reader, db.Metadata, nil)
	parcels := services.NewParcelService(reader, session, services.DefaultDetailConcurrency)

	return &App{
		config:  c,
		log:     log,
		wallet:  session,
		claims:  services.NewClaimService(locator.FromPosition(c.Position), geo, reader, writer, session, names, log),
		swaps:   services.NewSwapService(parcels, writer, log),
		parcels: parcels,
		account: services.NewAccountService(reader, writer, session, log),
		names:   names,
		history: services.NewHistoryService(db.Journal, db),
		pinger:  node,
		metrics: m,
		closers: []func() error{
			func() error { node.Close(); return nil },
			db.Close,
		},
		mode:   ModeOffline,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the background watchers and the REPL, and releases resources
// when the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	if a.config.MetricsAddr != "" && a.metrics != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.metrics.Serve(ctx, a.config.MetricsAddr); err != nil {
				a.log.Error(ctx, "metrics endpoint stopped", "addr", a.config.MetricsAddr, "error", err)
			}
		}()
	}

	a.Root(ctx)
	cancel()
	wg.Wait()
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c()
	}
	a.closers = nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher pings the node immediately and then every
// interval, switching the mode accordingly, until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.checkOnline(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.pinger.Ping(pingCtx)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		a.log.Debug(ctx, "node ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
