// Package steamtrade polls IEconService for trade offers and turns the raw
// listing into exactly-once lifecycle events. The engine keeps a snapshot of
// every offer it has seen; each poll is diffed against the snapshot and the
// differences are delivered through callbacks. Offer actions (accept,
// decline, cancel, counter) delegate to the community endpoints and, where
// Steam demands it, to the mobile confirmation flow.
package steamtrade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/k64z/steamcore/steamapi"
	"github.com/k64z/steamcore/steamcommunity"
	"github.com/k64z/steamcore/steamid"
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultMaxPollInterval = 30 * time.Second

	// defaultServerRetryWait is how long to wait after an upstream 5xx
	// before polling again. Server failures don't feed the empty-poll
	// backoff.
	defaultServerRetryWait = 15 * time.Second

	// cutoffMargin (seconds) widens the historical cutoff sent to
	// GetTradeOffers so offers updated just before the previous poll aren't
	// missed when Steam's web servers disagree on the clock.
	cutoffMargin = 300
)

// OfferSource lists trade offers. *steamapi.API satisfies it.
type OfferSource interface {
	GetTradeOffers(ctx context.Context, opts steamapi.GetTradeOffersOptions) (*steamapi.TradeOffersResponse, error)
}

// OfferActor acts on trade offers and their mobile confirmations.
// *steamcommunity.Community satisfies it.
type OfferActor interface {
	AcceptTradeOffer(ctx context.Context, offerID string, partner steamid.SteamID) (*steamcommunity.AcceptTradeOfferResponse, error)
	DeclineTradeOffer(ctx context.Context, offerID string) error
	CancelTradeOffer(ctx context.Context, offerID string) error
	CounterTradeOffer(ctx context.Context, originalOfferID string, opts steamcommunity.SendTradeOfferOptions) (*steamcommunity.SendTradeOfferResponse, error)
	ConfirmationForTrade(ctx context.Context, identitySecret []byte, tradeOfferID string) (*steamcommunity.Confirmation, error)
	AcceptConfirmation(ctx context.Context, conf steamcommunity.Confirmation, identitySecret []byte) error
}

// Engine watches the account's trade offers.
//
// Set the callbacks before calling Run. They fire from the polling
// goroutine, so a slow callback delays the next poll.
type Engine struct {
	// OnReceive fires once for each offer another user sends us.
	OnReceive func(offer steamapi.TradeOffer)
	// OnSent fires once for each offer sent from our account, whether it
	// was created through this engine or elsewhere.
	OnSent func(offer steamapi.TradeOffer)
	// OnChange fires when a known offer transitions state.
	OnChange func(change Change)

	source OfferSource
	actor  OfferActor
	logger *slog.Logger

	pollInterval     time.Duration
	maxPollInterval  time.Duration
	replayHistorical bool
	identitySecret   []byte

	// Retry pacing, overridable in tests.
	confirmRetryWait time.Duration
	serverRetryWait  time.Duration

	pollNow chan struct{}

	// Snapshot state is owned by the polling goroutine. settled holds the
	// IDs of offers whose terminal event has been delivered; they are never
	// emitted again for the lifetime of the engine.
	snapshot     map[string]steamapi.TradeOffer
	settled      map[string]struct{}
	lastPollTime int64
}

type config struct {
	pollInterval     time.Duration
	maxPollInterval  time.Duration
	replayHistorical bool
	identitySecret   []byte
	logger           *slog.Logger
}

type Option func(options *config) error

// WithPollInterval sets the base polling interval. Default 5s.
func WithPollInterval(d time.Duration) Option {
	return func(options *config) error {
		if d < time.Second {
			return errors.New("poll interval should be at least one second")
		}
		options.pollInterval = d
		return nil
	}
}

// WithMaxPollInterval caps the backed-off polling interval. Default 30s.
func WithMaxPollInterval(d time.Duration) Option {
	return func(options *config) error {
		if d < time.Second {
			return errors.New("max poll interval should be at least one second")
		}
		options.maxPollInterval = d
		return nil
	}
}

// WithReplayHistorical makes the first poll emit events for offers that
// settled before the engine started. Off by default: the backlog is
// history, not news.
func WithReplayHistorical() Option {
	return func(options *config) error {
		options.replayHistorical = true
		return nil
	}
}

// WithConfirmer provides the identity secret used to resolve the mobile
// confirmations created by Accept and Counter.
func WithConfirmer(identitySecret []byte) Option {
	return func(options *config) error {
		if len(identitySecret) == 0 {
			return errors.New("identitySecret should be non-empty")
		}
		options.identitySecret = identitySecret
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(options *config) error {
		if logger == nil {
			return errors.New("logger should be non-nil")
		}
		options.logger = logger
		return nil
	}
}

func New(source OfferSource, actor OfferActor, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, errors.New("source should be non-nil")
	}
	if actor == nil {
		return nil, errors.New("actor should be non-nil")
	}

	cfg := config{
		pollInterval:    defaultPollInterval,
		maxPollInterval: defaultMaxPollInterval,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}
	if cfg.maxPollInterval < cfg.pollInterval {
		return nil, errors.New("max poll interval should not be below the poll interval")
	}

	return &Engine{
		source:           source,
		actor:            actor,
		logger:           cfg.logger,
		pollInterval:     cfg.pollInterval,
		maxPollInterval:  cfg.maxPollInterval,
		replayHistorical: cfg.replayHistorical,
		identitySecret:   cfg.identitySecret,
		confirmRetryWait: time.Second,
		serverRetryWait:  defaultServerRetryWait,
		pollNow:          make(chan struct{}, 1),
		snapshot:         make(map[string]steamapi.TradeOffer),
		settled:          make(map[string]struct{}),
	}, nil
}

// Run polls until ctx is cancelled. The interval starts at the base,
// doubles after every poll that produced no events up to the maximum, and
// resets on activity. Poll failures are logged and the loop keeps going.
func (e *Engine) Run(ctx context.Context) error {
	interval := e.pollInterval
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		case <-e.pollNow:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		changed, err := e.poll(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch {
		case steamapi.ServerError(err):
			e.logger.Warn("trade poll failed upstream", "err", err)
			timer.Reset(e.serverRetryWait)
			continue
		case err != nil:
			e.logger.Warn("trade poll failed", "err", err)
		case changed:
			interval = e.pollInterval
		default:
			interval = min(interval*2, e.maxPollInterval)
		}
		timer.Reset(interval)
	}
}

// PollNow schedules an immediate poll. Safe to call from any goroutine; a
// poll already pending absorbs the request.
func (e *Engine) PollNow() {
	select {
	case e.pollNow <- struct{}{}:
	default:
	}
}

// poll fetches the full offer listing (both directions, settled offers
// included) and diffs it against the snapshot. It reports whether anything
// moved.
func (e *Engine) poll(ctx context.Context) (bool, error) {
	opts := steamapi.GetTradeOffersOptions{
		GetSentOffers:        true,
		GetReceivedOffers:    true,
		TimeHistoricalCutoff: max(e.lastPollTime-cutoffMargin, 0),
	}

	resp, err := e.source.GetTradeOffers(ctx, opts)
	if err != nil {
		return false, fmt.Errorf("get trade offers: %w", err)
	}

	offers := make([]steamapi.TradeOffer, 0, len(resp.SentOffers)+len(resp.ReceivedOffers))
	offers = append(offers, resp.SentOffers...)
	offers = append(offers, resp.ReceivedOffers...)

	return e.apply(offers), nil
}
