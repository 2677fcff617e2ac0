package steamcommunity

import (
	"errors"
	"testing"

	"github.com/k64z/steamcore/protocol"
)

func TestParseStrError(t *testing.T) {
	tests := []struct {
		msg  string
		want protocol.EResult
	}{
		{"There was an error accepting this trade offer. Please try again later. (11)", protocol.EResultInvalidState},
		{"Something went wrong (28)", protocol.EResult(28)},
		{"Trailing space (29) ", protocol.EResultDuplicateRequest},
		{"No code at all", protocol.EResultInvalid},
		{"Code not at end (11) more text", protocol.EResultInvalid},
		{"", protocol.EResultInvalid},
	}

	for _, tt := range tests {
		if got := parseStrError(tt.msg); got != tt.want {
			t.Errorf("parseStrError(%q) = %v; want %v", tt.msg, got, tt.want)
		}
	}
}

func TestStrError(t *testing.T) {
	closed := []string{
		"There was an error accepting this trade offer. (11)",
		"This trade offer is no longer valid. (27)",
		"There was an error cancelling the offer. (29)",
	}
	for _, msg := range closed {
		if err := strError(msg); !errors.Is(err, ErrAlreadyClosed) {
			t.Errorf("strError(%q) = %v; want ErrAlreadyClosed", msg, err)
		}
	}

	err := strError("You cannot trade with Partner because they have a trade ban. (15)")
	var tradeErr *TradeError
	if !errors.As(err, &tradeErr) {
		t.Fatalf("strError = %v; want *TradeError", err)
	}
	if got, want := tradeErr.Result, protocol.EResultAccessDenied; got != want {
		t.Errorf("Result = %v; want %v", got, want)
	}
	if got, want := tradeErr.Error(), "steam: You cannot trade with Partner because they have a trade ban. (15)"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}

func TestConfirmationErrorMessage(t *testing.T) {
	err := &ConfirmationError{ID: "14000001"}
	if got, want := err.Error(), "confirmation 14000001 failed"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}

	err = &ConfirmationError{ID: "14000001", Message: "Invalid authenticator"}
	if got, want := err.Error(), "confirmation 14000001 failed: Invalid authenticator"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}
