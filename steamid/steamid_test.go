package steamid_test

import (
	"testing"

	"github.com/k64z/steamcore/steamid"
)

func TestFromSteam2ID(t *testing.T) {
	tests := map[string]struct {
		id      string
		want    steamid.SteamID
		wantErr bool
	}{
		"universe zero normalized": {
			id:   "STEAM_0:0:11101",
			want: 76561197960287930,
		},
		"public universe": {
			id:   "STEAM_1:1:29940093",
			want: 76561198020145915,
		},
		"missing prefix": {
			id:      "76561197960287930",
			wantErr: true,
		},
		"bad auth server bit": {
			id:      "STEAM_1:7:29940093",
			wantErr: true,
		},
		"not enough parts": {
			id:      "STEAM_1:1",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := steamid.FromSteam2ID(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromSteam3ID(t *testing.T) {
	testCases := map[string]struct {
		id      string
		want    steamid.SteamID
		wantErr bool
	}{
		"valid": {
			id:   "[U:1:22202]",
			want: 76561197960287930,
		},
		"missing brackets": {
			id:      "U:1:22202",
			wantErr: true,
		},
		"group account": {
			id:      "[g:1:4]",
			wantErr: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := steamid.FromSteam3ID(tc.id)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("got %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFromSteamID64(t *testing.T) {
	testCases := map[string]struct {
		id   uint64
		want steamid.SteamID
	}{
		"valid": {
			id:   76561197960287930,
			want: 76561197960287930,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got := steamid.FromSteamID64(tc.id)
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFromString(t *testing.T) {
	testCases := map[string]struct {
		id   string
		want steamid.SteamID
	}{
		"valid": {
			id:   "76561197960287930",
			want: 76561197960287930,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := steamid.FromString(tc.id)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRenderings(t *testing.T) {
	testCases := map[string]struct {
		id            uint64
		wantSteam2ID  string
		wantSteam3ID  string
		wantSteamID64 uint64
		wantAccountID uint64
		wantString    string
		wantURL       string
	}{
		"orange box era": {
			id:            76561197960287930,
			wantSteam2ID:  "STEAM_1:0:11101",
			wantSteam3ID:  "[U:1:22202]",
			wantSteamID64: 76561197960287930,
			wantAccountID: 22202,
			wantString:    "76561197960287930",
			wantURL:       "https://steamcommunity.com/profiles/76561197960287930",
		},
		"modern account": {
			id:            76561198020145915,
			wantSteam2ID:  "STEAM_1:1:29940093",
			wantSteam3ID:  "[U:1:59880187]",
			wantSteamID64: 76561198020145915,
			wantAccountID: 59880187,
			wantString:    "76561198020145915",
			wantURL:       "https://steamcommunity.com/profiles/76561198020145915",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			sid := steamid.SteamID(tc.id)

			steam2ID := sid.ToSteam2ID()
			if steam2ID != tc.wantSteam2ID {
				t.Errorf("got %s, want %s", steam2ID, tc.wantSteam2ID)
			}

			steam3ID := sid.ToSteam3ID()
			if steam3ID != tc.wantSteam3ID {
				t.Errorf("got %s, want %s", steam3ID, tc.wantSteam3ID)
			}

			steamID64 := sid.ToSteamID64()
			if steamID64 != tc.wantSteamID64 {
				t.Errorf("got %d, want %d", steamID64, tc.wantSteamID64)
			}

			accountID := sid.ToAccountID()
			if accountID != tc.wantAccountID {
				t.Errorf("got %d, want %d", accountID, tc.wantAccountID)
			}

			str := sid.String()
			if str != tc.wantString {
				t.Errorf("got %s, want %s", str, tc.wantString)
			}

			url := sid.ProfileURL()
			if url != tc.wantURL {
				t.Errorf("got %s, want %s", url, tc.wantURL)
			}
		})
	}
}

// Parsing a rendered ID must yield the original bits for any individual account.
func TestRoundTrip(t *testing.T) {
	ids := []uint64{
		76561197960287930,
		76561198020145915,
		76561198012345678,
	}

	for _, id := range ids {
		sid := steamid.FromSteamID64(id)

		fromSteam2, err := steamid.FromSteam2ID(sid.ToSteam2ID())
		if err != nil {
			t.Fatalf("FromSteam2ID(%s): %v", sid.ToSteam2ID(), err)
		}
		if fromSteam2 != sid {
			t.Errorf("Steam2 round-trip: got %d, want %d", fromSteam2, sid)
		}

		fromSteam3, err := steamid.FromSteam3ID(sid.ToSteam3ID())
		if err != nil {
			t.Fatalf("FromSteam3ID(%s): %v", sid.ToSteam3ID(), err)
		}
		if fromSteam3 != sid {
			t.Errorf("Steam3 round-trip: got %d, want %d", fromSteam3, sid)
		}
	}
}

func TestBitFields(t *testing.T) {
	sid := steamid.SteamID(76561198020145915)

	if got := sid.Universe(); got != 1 {
		t.Errorf("Universe() = %d, want 1", got)
	}
	if got := sid.Type(); got != 1 {
		t.Errorf("Type() = %d, want 1", got)
	}
	if got := sid.Instance(); got != 1 {
		t.Errorf("Instance() = %d, want 1", got)
	}
	if got := sid.AccountID(); got != 59880187 {
		t.Errorf("AccountID() = %d, want 59880187", got)
	}

	rebuilt := steamid.FromAccountID(59880187)
	if rebuilt != sid {
		t.Errorf("FromAccountID(59880187) = %d, want %d", rebuilt, sid)
	}
}

func TestIsValid(t *testing.T) {
	tests := map[string]struct {
		id   steamid.SteamID
		want bool
	}{
		"zero is reserved":      {id: 0, want: false},
		"no universe":           {id: steamid.SteamID(59880187), want: false},
		"individual no account": {id: steamid.FromAccountID(0), want: false},
		"valid individual":      {id: steamid.SteamID(76561198020145915), want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.id.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
