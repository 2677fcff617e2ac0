// Package steamid converts between the textual and numeric renderings of
// Steam identifiers: SteamID64, Steam2 ("STEAM_X:Y:Z"), Steam3 ("[U:1:Z]"),
// the bare 32-bit account ID, and community profile URLs.
package steamid

import (
	"fmt"
	"strconv"
	"strings"
)

// SteamID represents a Steam identifier (from steamid.h). The 64 bits decompose
// into {universe: 8, type: 4, instance: 20, accountID: 32}. The zero value is
// reserved and never identifies an account.
type SteamID uint64

const (
	UniversePublic int32 = 1

	TypeIndividual int32 = 1

	InstanceDesktop int32 = 1
)

// SetUniverse sets the universe part of the SteamID and returns the new SteamID.
func (s SteamID) SetUniverse(u int32) SteamID {
	s &= ^SteamID(0xFF << 56)     // Clear the universe part
	s |= SteamID(uint64(u) << 56) // Set the new universe
	return s
}

// Universe returns the universe part of the SteamID.
func (s SteamID) Universe() int32 {
	return int32(s >> 56)
}

// SetType sets the type part of the SteamID and returns the new SteamID.
func (s SteamID) SetType(t int32) SteamID {
	s &= ^SteamID(0xF << 52)      // Clear the type part
	s |= SteamID(uint64(t) << 52) // Set the new type
	return s
}

// Type returns the type part of the SteamID.
func (s SteamID) Type() int32 {
	return int32((s >> 52) & 0xF)
}

// SetInstance sets the instance part of the SteamID and returns the new SteamID.
func (s SteamID) SetInstance(i int32) SteamID {
	s &= ^SteamID(0xFFFFF << 32)  // Clear the instance part
	s |= SteamID(uint64(i) << 32) // Set the new instance
	return s
}

// Instance returns the instance part of the SteamID.
func (s SteamID) Instance() int32 {
	return int32((s >> 32) & 0xFFFFF)
}

// SetAccountID sets the account ID part of the SteamID and returns the new SteamID.
func (s SteamID) SetAccountID(a uint32) SteamID {
	s &= ^SteamID(0xFFFFFFFF) // Clear the account ID part
	s |= SteamID(a)           // Set the new account ID
	return s
}

// AccountID returns the account ID part of the SteamID.
func (s SteamID) AccountID() uint32 {
	return uint32(s & 0xFFFFFFFF)
}

// IsValid reports whether the SteamID identifies an account. The zero ID is
// reserved, and an individual ID must carry a universe and account ID.
func (s SteamID) IsValid() bool {
	if s == 0 {
		return false
	}
	if s.Universe() == 0 {
		return false
	}
	if s.Type() == TypeIndividual && s.AccountID() == 0 {
		return false
	}
	return true
}

// FromAccountID returns an individual desktop SteamID in the public universe
// for the given 32-bit account ID.
func FromAccountID(accountID uint32) SteamID {
	return SteamID(0).
		SetUniverse(UniversePublic).
		SetType(TypeIndividual).
		SetInstance(InstanceDesktop).
		SetAccountID(accountID)
}

// FromSteam2ID parses the Steam2 ID format ("STEAM_X:Y:Z").
// Example: STEAM_1:1:278391449. Universe 0 is normalized to public, matching
// how the Steam client renders pre-Orange-Box IDs.
func FromSteam2ID(id string) (SteamID, error) {
	rest, ok := strings.CutPrefix(id, "STEAM_")
	if !ok {
		return 0, fmt.Errorf("steamid: %q is not a Steam2 ID", id)
	}

	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("steamid: %q is not a Steam2 ID", id)
	}

	universe, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("steamid: bad universe in %q: %w", id, err)
	}
	mod, err := strconv.ParseUint(parts[1], 10, 1)
	if err != nil {
		return 0, fmt.Errorf("steamid: bad auth server bit in %q: %w", id, err)
	}
	z, err := strconv.ParseUint(parts[2], 10, 31)
	if err != nil {
		return 0, fmt.Errorf("steamid: bad account number in %q: %w", id, err)
	}

	if universe == 0 { // EUniverse_Invalid
		universe = 1 // EUniverse_Public
	}

	return FromAccountID(uint32(z*2 + mod)).SetUniverse(int32(universe)), nil
}

// FromSteam3ID parses the Steam3 ID format ("[U:1:Z]").
// Example: [U:1:556782899]. Only individual accounts are supported.
func FromSteam3ID(steam3ID string) (SteamID, error) {
	inner, ok := strings.CutPrefix(steam3ID, "[")
	if !ok {
		return 0, fmt.Errorf("steamid: %q is not a Steam3 ID", steam3ID)
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return 0, fmt.Errorf("steamid: %q is not a Steam3 ID", steam3ID)
	}

	parts := strings.Split(inner, ":")
	if len(parts) != 3 || parts[0] != "U" {
		return 0, fmt.Errorf("steamid: %q is not an individual Steam3 ID", steam3ID)
	}

	universe, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("steamid: bad universe in %q: %w", steam3ID, err)
	}
	z, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("steamid: bad account ID in %q: %w", steam3ID, err)
	}

	return FromAccountID(uint32(z)).SetUniverse(int32(universe)), nil
}

// FromSteamID64 returns a new SteamID based on the SteamID64 format.
func FromSteamID64(steamID64 uint64) SteamID {
	return SteamID(steamID64)
}

// FromString takes a string ("765611...") and returns a new SteamID.
func FromString(str string) (SteamID, error) {
	num, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return SteamID(num), nil
}

// ToSteam2ID returns the SteamID in Steam2 ID format ("STEAM_X:Y:Z").
func (s SteamID) ToSteam2ID() string {
	universe := s >> 56
	accountID := uint32(s & 0xFFFFFFFF)
	y := accountID % 2
	z := accountID / 2
	return fmt.Sprintf("STEAM_%d:%d:%d", universe, y, z)
}

// ToSteam3ID returns the SteamID in Steam3 ID format ("[U:1:Z]").
func (s SteamID) ToSteam3ID() string {
	accountID := uint32(s & 0xFFFFFFFF)
	return fmt.Sprintf("[U:1:%d]", accountID)
}

// ToSteamID64 returns the SteamID in SteamID64 format. Ex. 76561197960287930.
func (s SteamID) ToSteamID64() uint64 {
	return uint64(s)
}

// ToAccountID return the last part of Steam3ID. This can be used in trade offers.
// Example: 386798732
func (s SteamID) ToAccountID() uint64 {
	return uint64(s & 0xFFFFFFFF)
}

// ProfileURL returns the steamcommunity.com profile URL for the SteamID.
func (s SteamID) ProfileURL() string {
	return "https://steamcommunity.com/profiles/" + s.String()
}

// String returns the SteamID as a string. Ex. "76561197960287930".
func (s SteamID) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
