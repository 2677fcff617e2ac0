package protocol

import "google.golang.org/protobuf/encoding/protowire"

// CMsgClientGamesPlayed_GamePlayed identifies one game the client is playing.
type CMsgClientGamesPlayed_GamePlayed struct {
	GameId *uint64 // 2
}

func (m *CMsgClientGamesPlayed_GamePlayed) GetGameId() uint64 {
	if m != nil && m.GameId != nil {
		return *m.GameId
	}
	return 0
}

func (m *CMsgClientGamesPlayed_GamePlayed) appendTo(b []byte) []byte {
	if m.GameId != nil {
		b = appendVarint(b, 2, *m.GameId)
	}
	return b
}

func (m *CMsgClientGamesPlayed_GamePlayed) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 2 && typ == protowire.VarintType:
			m.GameId, n = consumeVarintU64(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// CMsgClientGamesPlayed announces the set of games the client is playing.
type CMsgClientGamesPlayed struct {
	GamesPlayed []*CMsgClientGamesPlayed_GamePlayed // 1, repeated
}

func (m *CMsgClientGamesPlayed) GetGamesPlayed() []*CMsgClientGamesPlayed_GamePlayed {
	if m != nil {
		return m.GamesPlayed
	}
	return nil
}

func (m *CMsgClientGamesPlayed) appendTo(b []byte) []byte {
	for _, g := range m.GamesPlayed {
		b = appendMessage(b, 1, g)
	}
	return b
}

func (m *CMsgClientGamesPlayed) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			g := &CMsgClientGamesPlayed_GamePlayed{}
			nn, err := consumeMessage(b, g)
			if err != nil {
				return err
			}
			m.GamesPlayed = append(m.GamesPlayed, g)
			n = nn
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}
