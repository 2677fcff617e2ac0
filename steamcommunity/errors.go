package steamcommunity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/k64z/steamcore/protocol"
)

// ErrAlreadyClosed is returned when a trade offer action lands on an offer
// already in a terminal state. The action had no effect; callers that just
// want the offer closed can treat it as success.
var ErrAlreadyClosed = errors.New("trade offer already closed")

// ErrConfirmationNotFound is returned when no pending confirmation matches.
var ErrConfirmationNotFound = errors.New("no matching confirmation")

// ConfirmationError reports a confirmation the backend refused to resolve
// after the replay retry was exhausted.
type ConfirmationError struct {
	ID      string
	Message string
}

func (e *ConfirmationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("confirmation %s failed", e.ID)
	}
	return fmt.Sprintf("confirmation %s failed: %s", e.ID, e.Message)
}

// TradeError is a strError payload from a trade offer endpoint. Result holds
// the EResult parsed from the trailing "(nn)", EResultInvalid if the message
// carried none.
type TradeError struct {
	Message string
	Result  protocol.EResult
}

func (e *TradeError) Error() string {
	return "steam: " + e.Message
}

// strErrorCode matches the numeric EResult Steam appends to some strError
// messages, e.g. "There was an error accepting this trade offer. (11)".
var strErrorCode = regexp.MustCompile(`\((\d+)\)\s*$`)

func parseStrError(msg string) protocol.EResult {
	m := strErrorCode.FindStringSubmatch(strings.TrimSpace(msg))
	if m == nil {
		return protocol.EResultInvalid
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return protocol.EResultInvalid
	}
	return protocol.EResult(code)
}

// strError maps a strError message to an error. Results meaning the offer is
// already in a terminal state collapse to ErrAlreadyClosed, which keeps
// repeated accept/decline/cancel calls idempotent.
func strError(msg string) error {
	result := parseStrError(msg)
	switch result {
	case protocol.EResultInvalidState, protocol.EResultExpired, protocol.EResultDuplicateRequest:
		return ErrAlreadyClosed
	}
	return &TradeError{Message: msg, Result: result}
}
