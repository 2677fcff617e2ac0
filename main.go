// Command steamcore runs a demo trade bot on the full stack: a token logon
// for the web session, a CM connection for presence and push notifications,
// and the trade engine polling IEconService. Received gift offers can be
// accepted automatically, mobile confirmations included.
package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/k64z/steamcore/protocol"
	"github.com/k64z/steamcore/steamapi"
	"github.com/k64z/steamcore/steamclient"
	"github.com/k64z/steamcore/steamcommunity"
	"github.com/k64z/steamcore/steamid"
	"github.com/k64z/steamcore/steamtotp"
	"github.com/k64z/steamcore/steamtrade"
	"github.com/k64z/steamcore/steamweb"
)

// environment holds the account material, read from the environment with
// .env support.
type environment struct {
	Username       string `env:"STEAM_USERNAME,required"`
	Password       string `env:"STEAM_PASSWORD,required"`
	SharedSecret   string `env:"STEAM_SHARED_SECRET"`
	IdentitySecret string `env:"STEAM_IDENTITY_SECRET"`
	ConfigPath     string `env:"STEAMCORE_CONFIG,default=steamcore.yaml"`
}

// botConfig tunes bot behavior. Missing file means defaults; zero-valued
// intervals fall back to the package defaults.
type botConfig struct {
	SessionPath            string   `yaml:"session_path"`
	SentryPath             string   `yaml:"sentry_path"`
	CMCachePath            string   `yaml:"cm_cache_path"`
	PollIntervalSeconds    float64  `yaml:"poll_interval_seconds"`
	PollIntervalMax        float64  `yaml:"poll_interval_max"`
	ReconnectBaseSeconds   float64  `yaml:"reconnect_base_seconds"`
	ReconnectCapSeconds    float64  `yaml:"reconnect_cap_seconds"`
	KickOthersOnReconnect  bool     `yaml:"kick_others_on_reconnect"`
	ReplayHistoricalTrades bool     `yaml:"replay_historical_trades"`
	Intents                []string `yaml:"intents"`
	AcceptGifts            bool     `yaml:"accept_gifts"`
	Debug                  bool     `yaml:"debug"`
}

func loadBotConfig(path string) (*botConfig, error) {
	cfg := &botConfig{
		SessionPath:           "session.json",
		SentryPath:            "sentry.json",
		KickOthersOnReconnect: true,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func parseIntents(names []string) (steamclient.Intent, error) {
	var intents steamclient.Intent
	for _, name := range names {
		switch name {
		case "friends":
			intents |= steamclient.IntentFriends
		case "persona":
			intents |= steamclient.IntentPersona
		case "notifications":
			intents |= steamclient.IntentNotifications
		case "trades":
			intents |= steamclient.IntentTrades
		case "all":
			intents |= steamclient.IntentAll
		default:
			return 0, fmt.Errorf("unknown intent %q", name)
		}
	}
	return intents, nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("bot stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var env environment
	if err := envdecode.Decode(&env); err != nil {
		return fmt.Errorf("decode environment: %w", err)
	}

	cfg, err := loadBotConfig(env.ConfigPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var identitySecret []byte
	if env.IdentitySecret != "" {
		identitySecret, err = base64.StdEncoding.DecodeString(env.IdentitySecret)
		if err != nil {
			return fmt.Errorf("decode identity secret: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := steamapi.New()
	if err != nil {
		return err
	}

	session, refreshToken, err := openWebSession(ctx, api, env, cfg, logger)
	if err != nil {
		return err
	}
	api.SetAccessToken(session.AccessToken())

	community, err := steamcommunity.New(session)
	if err != nil {
		return err
	}

	engine, err := newEngine(api, community, cfg, identitySecret, logger)
	if err != nil {
		return err
	}

	engine.OnReceive = func(offer steamapi.TradeOffer) {
		logger.Info("trade offer received",
			"offer_id", offer.ID,
			"partner", steamid.FromAccountID(offer.PartnerAccountID).ToSteamID64(),
			"give", len(offer.ItemsToGive),
			"receive", len(offer.ItemsToReceive),
			"gift", offer.IsGift())
		if cfg.AcceptGifts && offer.IsGift() {
			if err := engine.Accept(ctx, offer); err != nil {
				logger.Error("accept gift", "offer_id", offer.ID, "err", err)
			}
		}
	}
	engine.OnSent = func(offer steamapi.TradeOffer) {
		logger.Info("trade offer sent", "offer_id", offer.ID,
			"partner", steamid.FromAccountID(offer.PartnerAccountID).ToSteamID64())
	}
	engine.OnChange = func(change steamtrade.Change) {
		logger.Info("trade offer "+change.Event.String(), "offer_id", change.Offer.ID)
	}

	client, err := newClient(cfg, engine, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Run(ctx, func(ctx context.Context) error {
			return client.LogOnWithToken(ctx, env.Username, refreshToken, session.SteamID())
		})
	})
	g.Go(func() error {
		return engine.Run(ctx)
	})

	logger.Info("bot running", "steam_id", session.SteamID().ToSteamID64())

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openWebSession restores the persisted session when possible and falls back
// to a fresh token logon. It returns the session and the refresh token the
// CM connection logs on with.
func openWebSession(ctx context.Context, api *steamapi.API, env environment, cfg *botConfig, logger *slog.Logger) (*steamweb.Session, string, error) {
	if persisted, err := steamweb.LoadPersistentSession(cfg.SessionPath); err == nil && persisted.Valid() {
		session, err := steamweb.RestoreSession(ctx, api, persisted, steamweb.WithLogger(logger))
		if err == nil {
			logger.Info("web session restored", "path", cfg.SessionPath)
			return session, persisted.RefreshToken, nil
		}
		logger.Warn("stored session rejected, logging in again", "err", err)
	}

	login, err := steamweb.NewLogin(api)
	if err != nil {
		return nil, "", err
	}

	guardTypes, err := login.StartWithCredentials(ctx, env.Username, env.Password)
	if err != nil {
		return nil, "", fmt.Errorf("start login: %w", err)
	}

	switch {
	case env.SharedSecret != "" && slices.Contains(guardTypes, protocol.EAuthSessionGuardType_DeviceCode):
		code, err := steamtotp.GenerateAuthCode(env.SharedSecret, 0)
		if err != nil {
			return nil, "", fmt.Errorf("generate guard code: %w", err)
		}
		if err := login.SubmitSteamGuardCode(ctx, code, protocol.EAuthSessionGuardType_DeviceCode); err != nil {
			return nil, "", fmt.Errorf("submit guard code: %w", err)
		}
	case slices.Contains(guardTypes, protocol.EAuthSessionGuardType_DeviceConfirmation):
		logger.Info("confirm the login in the Steam mobile app")
	default:
		return nil, "", fmt.Errorf("no usable Steam Guard method offered: %v", guardTypes)
	}

	if err := login.PollAuthSessionStatus(ctx); err != nil {
		return nil, "", fmt.Errorf("wait for approval: %w", err)
	}

	if err := login.Persistent().Save(cfg.SessionPath); err != nil {
		logger.Warn("persist session", "err", err)
	}

	session, err := login.Session(steamweb.WithLogger(logger))
	if err != nil {
		return nil, "", err
	}
	return session, login.RefreshToken, nil
}

func newEngine(api *steamapi.API, community *steamcommunity.Community, cfg *botConfig, identitySecret []byte, logger *slog.Logger) (*steamtrade.Engine, error) {
	opts := []steamtrade.Option{steamtrade.WithLogger(logger)}
	if cfg.PollIntervalSeconds > 0 {
		opts = append(opts, steamtrade.WithPollInterval(seconds(cfg.PollIntervalSeconds)))
	}
	if cfg.PollIntervalMax > 0 {
		opts = append(opts, steamtrade.WithMaxPollInterval(seconds(cfg.PollIntervalMax)))
	}
	if cfg.ReplayHistoricalTrades {
		opts = append(opts, steamtrade.WithReplayHistorical())
	}
	if len(identitySecret) > 0 {
		opts = append(opts, steamtrade.WithConfirmer(identitySecret))
	}
	return steamtrade.New(api, community, opts...)
}

func newClient(cfg *botConfig, engine *steamtrade.Engine, logger *slog.Logger) (*steamclient.Client, error) {
	sentry, err := steamclient.NewSentryStore(cfg.SentryPath)
	if err != nil {
		return nil, fmt.Errorf("open sentry store: %w", err)
	}

	opts := []steamclient.Option{
		steamclient.WithLogger(logger),
		steamclient.WithSentryStore(sentry),
		steamclient.WithReadyHandler(func() {
			logger.Info("CM session ready")
		}),
		steamclient.WithTradeNotificationHandler(func(n *steamclient.TradeNotification) {
			if n.TradeOffersCount > 0 {
				engine.PollNow()
			}
		}),
		steamclient.WithItemNotificationHandler(func(n *steamclient.ItemNotification) {
			if n.NewItemCount > 0 {
				engine.PollNow()
			}
		}),
	}
	if cfg.CMCachePath != "" {
		opts = append(opts, steamclient.WithDirectory(steamclient.NewDirectory(
			steamclient.WithCachePath(cfg.CMCachePath),
			steamclient.WithDirectoryLogger(logger),
		)))
	}
	if cfg.ReconnectBaseSeconds > 0 || cfg.ReconnectCapSeconds > 0 {
		base, ceiling := time.Second, time.Minute
		if cfg.ReconnectBaseSeconds > 0 {
			base = seconds(cfg.ReconnectBaseSeconds)
		}
		if cfg.ReconnectCapSeconds > 0 {
			ceiling = seconds(cfg.ReconnectCapSeconds)
		}
		opts = append(opts, steamclient.WithReconnectBackoff(base, ceiling))
	}
	if !cfg.KickOthersOnReconnect {
		opts = append(opts, steamclient.WithKickOthersOnReconnect(false))
	}
	if len(cfg.Intents) > 0 {
		intents, err := parseIntents(cfg.Intents)
		if err != nil {
			return nil, err
		}
		opts = append(opts, steamclient.WithIntents(intents))
	}
	return steamclient.New(opts...), nil
}
