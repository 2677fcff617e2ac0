package steamtrade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k64z/steamcore/steamapi"
	"github.com/k64z/steamcore/steamcommunity"
	"github.com/k64z/steamcore/steamid"
)

// confirmAttempts is how many times an action looks for its mobile
// confirmation before giving up. Steam creates the confirmation
// asynchronously, sometimes seconds after the offer call returns.
const confirmAttempts = 3

// Accept accepts a received offer. If Steam demands a mobile confirmation
// and an identity secret is configured, the confirmation is resolved too.
// Accepting an offer that already settled returns
// steamcommunity.ErrAlreadyClosed.
func (e *Engine) Accept(ctx context.Context, offer steamapi.TradeOffer) error {
	resp, err := e.actor.AcceptTradeOffer(ctx, offer.ID, steamid.FromAccountID(offer.PartnerAccountID))
	if err != nil {
		return fmt.Errorf("accept offer %s: %w", offer.ID, err)
	}

	if resp.NeedsConfirmation {
		if len(e.identitySecret) == 0 {
			return fmt.Errorf("offer %s needs mobile confirmation and no identity secret is configured", offer.ID)
		}
		if err := e.confirmOffer(ctx, offer.ID); err != nil {
			return err
		}
	}

	e.PollNow()
	return nil
}

// Decline declines a received offer. Declining an offer that already
// settled returns steamcommunity.ErrAlreadyClosed.
func (e *Engine) Decline(ctx context.Context, offer steamapi.TradeOffer) error {
	if err := e.actor.DeclineTradeOffer(ctx, offer.ID); err != nil {
		return fmt.Errorf("decline offer %s: %w", offer.ID, err)
	}
	e.PollNow()
	return nil
}

// Cancel cancels an offer we sent. Cancelling an offer that already
// settled returns steamcommunity.ErrAlreadyClosed.
func (e *Engine) Cancel(ctx context.Context, offer steamapi.TradeOffer) error {
	if err := e.actor.CancelTradeOffer(ctx, offer.ID); err != nil {
		return fmt.Errorf("cancel offer %s: %w", offer.ID, err)
	}
	e.PollNow()
	return nil
}

// Counter replies to a received offer with different terms. The original
// offer moves to Countered and the returned ID identifies the replacement.
// opts.Partner defaults to the original offer's partner when unset.
func (e *Engine) Counter(ctx context.Context, offer steamapi.TradeOffer, opts steamcommunity.SendTradeOfferOptions) (string, error) {
	if !opts.Partner.IsValid() {
		opts.Partner = steamid.FromAccountID(offer.PartnerAccountID)
	}

	resp, err := e.actor.CounterTradeOffer(ctx, offer.ID, opts)
	if err != nil {
		return "", fmt.Errorf("counter offer %s: %w", offer.ID, err)
	}

	if resp.NeedsConfirmation && len(e.identitySecret) > 0 {
		if err := e.confirmOffer(ctx, resp.TradeOfferID); err != nil {
			return resp.TradeOfferID, err
		}
	}

	e.PollNow()
	return resp.TradeOfferID, nil
}

// confirmOffer resolves the mobile confirmation guarding a trade offer.
func (e *Engine) confirmOffer(ctx context.Context, offerID string) error {
	conf, err := e.findConfirmation(ctx, offerID)
	if err != nil {
		return err
	}
	if err := e.actor.AcceptConfirmation(ctx, *conf, e.identitySecret); err != nil {
		return fmt.Errorf("accept confirmation for offer %s: %w", offerID, err)
	}
	return nil
}

// findConfirmation looks up the confirmation created for an offer,
// retrying misses with widening sleeps.
func (e *Engine) findConfirmation(ctx context.Context, offerID string) (*steamcommunity.Confirmation, error) {
	var conf *steamcommunity.Confirmation
	var err error
	for attempt := range confirmAttempts {
		if attempt > 0 {
			if serr := sleepContext(ctx, time.Duration(attempt)*e.confirmRetryWait); serr != nil {
				return nil, serr
			}
		}
		conf, err = e.actor.ConfirmationForTrade(ctx, e.identitySecret, offerID)
		if err == nil {
			return conf, nil
		}
		if !errors.Is(err, steamcommunity.ErrConfirmationNotFound) {
			break
		}
	}
	return nil, fmt.Errorf("find confirmation for offer %s: %w", offerID, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
