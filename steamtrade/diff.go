package steamtrade

import (
	"time"

	"github.com/k64z/steamcore/steamapi"
)

// Event classifies a state transition on a known offer.
type Event int

const (
	EventAccept Event = iota + 1
	EventDecline
	EventCancel
	EventExpire
	EventCounter
	EventInvalid
	EventInEscrow
)

func (e Event) String() string {
	switch e {
	case EventAccept:
		return "accept"
	case EventDecline:
		return "decline"
	case EventCancel:
		return "cancel"
	case EventExpire:
		return "expire"
	case EventCounter:
		return "counter"
	case EventInvalid:
		return "invalid"
	case EventInEscrow:
		return "in_escrow"
	default:
		return "unknown"
	}
}

// Change is a state transition observed on a known offer.
type Change struct {
	// Offer is the offer after the transition.
	Offer steamapi.TradeOffer
	Event Event
	// Counter is the replacement offer when Event is EventCounter and the
	// replacement appeared in the same poll window.
	Counter *steamapi.TradeOffer
}

// eventForState maps an offer state to the event its transition emits.
// Active and CreatedNeedsConfirmation are starting states, not
// transitions; they map to nothing.
func eventForState(state steamapi.ETradeOfferState) (Event, bool) {
	switch state {
	case steamapi.ETradeOfferStateAccepted:
		return EventAccept, true
	case steamapi.ETradeOfferStateDeclined:
		return EventDecline, true
	case steamapi.ETradeOfferStateCanceled, steamapi.ETradeOfferStateCanceledBySecondFactor:
		return EventCancel, true
	case steamapi.ETradeOfferStateExpired:
		return EventExpire, true
	case steamapi.ETradeOfferStateCountered:
		return EventCounter, true
	case steamapi.ETradeOfferStateInvalid, steamapi.ETradeOfferStateInvalidItems:
		return EventInvalid, true
	case steamapi.ETradeOfferStateInEscrow:
		return EventInEscrow, true
	}
	return 0, false
}

// isTerminal reports whether the state is final. InEscrow is not: Steam
// flips the offer to Accepted once the hold ends.
func isTerminal(state steamapi.ETradeOfferState) bool {
	switch state {
	case steamapi.ETradeOfferStateInvalid,
		steamapi.ETradeOfferStateAccepted,
		steamapi.ETradeOfferStateCountered,
		steamapi.ETradeOfferStateExpired,
		steamapi.ETradeOfferStateCanceled,
		steamapi.ETradeOfferStateDeclined,
		steamapi.ETradeOfferStateInvalidItems,
		steamapi.ETradeOfferStateCanceledBySecondFactor:
		return true
	}
	return false
}

// apply diffs one poll's listing against the snapshot, fires the callbacks
// and installs the listing as the new snapshot. It reports whether anything
// moved.
func (e *Engine) apply(offers []steamapi.TradeOffer) bool {
	now := time.Now().Unix()

	next := make(map[string]steamapi.TradeOffer, len(offers))
	for _, offer := range offers {
		next[offer.ID] = offer
		if offer.TimeUpdated > e.lastPollTime {
			e.lastPollTime = offer.TimeUpdated
		}
	}

	var changed bool

	// Transitions before new offers: a countered offer pairs with its
	// replacement, and the pairing lands before the replacement announces
	// itself.
	for _, offer := range offers {
		prev, seen := e.snapshot[offer.ID]
		if !seen || prev.State == offer.State {
			continue
		}
		changed = true
		e.transition(offer, offers)
	}

	for _, offer := range offers {
		if _, seen := e.snapshot[offer.ID]; seen {
			continue
		}
		if e.announce(offer) {
			changed = true
		}
	}

	// Offers that vanished from the listing. Settled ones are simply
	// forgotten. A live offer past its expiry gets its expire event;
	// anything else is a poll-window artifact and is carried over.
	for id, prev := range e.snapshot {
		if _, ok := next[id]; ok {
			continue
		}
		if isTerminal(prev.State) {
			continue
		}
		if prev.ExpirationTime > 0 && prev.ExpirationTime <= now {
			if e.emitTerminal(Change{Offer: prev, Event: EventExpire}) {
				changed = true
			}
			continue
		}
		next[id] = prev
	}

	e.snapshot = next
	return changed
}

// transition emits the event for an offer whose state moved since the last
// poll.
func (e *Engine) transition(offer steamapi.TradeOffer, offers []steamapi.TradeOffer) {
	event, ok := eventForState(offer.State)
	if !ok {
		return
	}

	change := Change{Offer: offer, Event: event}
	if event == EventCounter {
		change.Counter = e.findReplacement(offers, offer.ID)
	}

	if isTerminal(offer.State) {
		e.emitTerminal(change)
		return
	}
	if e.OnChange != nil {
		e.OnChange(change)
	}
}

// announce handles a never-before-seen offer. Live offers are classified by
// direction. Offers already settled are history: they seed the snapshot
// silently unless historical replay is on.
func (e *Engine) announce(offer steamapi.TradeOffer) bool {
	if _, dup := e.settled[offer.ID]; dup {
		return false
	}
	if !isTerminal(offer.State) {
		e.classify(offer)
		return true
	}
	if !e.replayHistorical {
		e.settled[offer.ID] = struct{}{}
		return false
	}

	e.classify(offer)
	if event, ok := eventForState(offer.State); ok {
		e.emitTerminal(Change{Offer: offer, Event: event})
	}
	return true
}

// classify fires the direction callback for a fresh offer.
func (e *Engine) classify(offer steamapi.TradeOffer) {
	if offer.IsOurOffer {
		if e.OnSent != nil {
			e.OnSent(offer)
		}
		return
	}
	if e.OnReceive != nil {
		e.OnReceive(offer)
	}
}

// emitTerminal fires OnChange for a terminal transition at most once per
// offer for the lifetime of the engine.
func (e *Engine) emitTerminal(change Change) bool {
	if _, dup := e.settled[change.Offer.ID]; dup {
		return false
	}
	e.settled[change.Offer.ID] = struct{}{}
	if e.OnChange != nil {
		e.OnChange(change)
	}
	return true
}

// findReplacement locates the fresh offer that countered originalID within
// the same listing.
func (e *Engine) findReplacement(offers []steamapi.TradeOffer, originalID string) *steamapi.TradeOffer {
	for i := range offers {
		if offers[i].CounteredID != originalID {
			continue
		}
		if _, seen := e.snapshot[offers[i].ID]; seen {
			continue
		}
		return &offers[i]
	}
	return nil
}
