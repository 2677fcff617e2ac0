package protocol

import "google.golang.org/protobuf/encoding/protowire"

// CMsgClientFriendsList_Friend is one entry in a friends list push.
type CMsgClientFriendsList_Friend struct {
	Ulfriendid          *uint64 // 1, fixed64
	Efriendrelationship *uint32 // 2
}

func (m *CMsgClientFriendsList_Friend) GetUlfriendid() uint64 {
	if m != nil && m.Ulfriendid != nil {
		return *m.Ulfriendid
	}
	return 0
}

func (m *CMsgClientFriendsList_Friend) GetEfriendrelationship() uint32 {
	if m != nil && m.Efriendrelationship != nil {
		return *m.Efriendrelationship
	}
	return 0
}

func (m *CMsgClientFriendsList_Friend) appendTo(b []byte) []byte {
	if m.Ulfriendid != nil {
		b = appendFixed64(b, 1, *m.Ulfriendid)
	}
	if m.Efriendrelationship != nil {
		b = appendVarint(b, 2, uint64(*m.Efriendrelationship))
	}
	return b
}

func (m *CMsgClientFriendsList_Friend) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			m.Ulfriendid, n = consumeFixed64Val(b)
		case num == 2 && typ == protowire.VarintType:
			m.Efriendrelationship, n = consumeVarintU32(b)
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

// CMsgClientFriendsList is the server push of the friends roster,
// sent in full after logon and incrementally on changes.
type CMsgClientFriendsList struct {
	Bincremental      *bool                           // 1
	Friends           []*CMsgClientFriendsList_Friend // 2, repeated
	MaxFriendCount    *uint32                         // 3
	ActiveFriendCount *uint32                         // 4
	FriendsLimitHit   *bool                           // 5
}

func (m *CMsgClientFriendsList) GetBincremental() bool {
	if m != nil && m.Bincremental != nil {
		return *m.Bincremental
	}
	return false
}

func (m *CMsgClientFriendsList) GetFriends() []*CMsgClientFriendsList_Friend {
	if m != nil {
		return m.Friends
	}
	return nil
}

func (m *CMsgClientFriendsList) GetMaxFriendCount() uint32 {
	if m != nil && m.MaxFriendCount != nil {
		return *m.MaxFriendCount
	}
	return 0
}

func (m *CMsgClientFriendsList) GetActiveFriendCount() uint32 {
	if m != nil && m.ActiveFriendCount != nil {
		return *m.ActiveFriendCount
	}
	return 0
}

func (m *CMsgClientFriendsList) GetFriendsLimitHit() bool {
	if m != nil && m.FriendsLimitHit != nil {
		return *m.FriendsLimitHit
	}
	return false
}

func (m *CMsgClientFriendsList) appendTo(b []byte) []byte {
	if m.Bincremental != nil {
		b = appendBool(b, 1, *m.Bincremental)
	}
	for _, f := range m.Friends {
		b = appendMessage(b, 2, f)
	}
	if m.MaxFriendCount != nil {
		b = appendVarint(b, 3, uint64(*m.MaxFriendCount))
	}
	if m.ActiveFriendCount != nil {
		b = appendVarint(b, 4, uint64(*m.ActiveFriendCount))
	}
	if m.FriendsLimitHit != nil {
		b = appendBool(b, 5, *m.FriendsLimitHit)
	}
	return b
}

func (m *CMsgClientFriendsList) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Bincremental, n = consumeVarintBool(b)
		case num == 2 && typ == protowire.BytesType:
			f := &CMsgClientFriendsList_Friend{}
			nn, err := consumeMessage(b, f)
			if err != nil {
				return err
			}
			m.Friends = append(m.Friends, f)
			n = nn
		case num == 3 && typ == protowire.VarintType:
			m.MaxFriendCount, n = consumeVarintU32(b)
		case num == 4 && typ == protowire.VarintType:
			m.ActiveFriendCount, n = consumeVarintU32(b)
		case num == 5 && typ == protowire.VarintType:
			m.FriendsLimitHit, n = consumeVarintBool(b)
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

// CMsgClientFriendMsg is an outgoing chat message to a friend.
type CMsgClientFriendMsg struct {
	Steamid                *uint64 // 1, fixed64
	ChatEntryType          *int32  // 2
	Message                []byte  // 3
	Rtime32ServerTimestamp *uint32 // 4, fixed32
	EchoToSender           *bool   // 5
}

func (m *CMsgClientFriendMsg) GetSteamid() uint64 {
	if m != nil && m.Steamid != nil {
		return *m.Steamid
	}
	return 0
}

func (m *CMsgClientFriendMsg) GetChatEntryType() int32 {
	if m != nil && m.ChatEntryType != nil {
		return *m.ChatEntryType
	}
	return 0
}

func (m *CMsgClientFriendMsg) GetMessage() []byte {
	if m != nil {
		return m.Message
	}
	return nil
}

func (m *CMsgClientFriendMsg) appendTo(b []byte) []byte {
	if m.Steamid != nil {
		b = appendFixed64(b, 1, *m.Steamid)
	}
	if m.ChatEntryType != nil {
		b = appendInt32(b, 2, *m.ChatEntryType)
	}
	if m.Message != nil {
		b = appendBytes(b, 3, m.Message)
	}
	if m.Rtime32ServerTimestamp != nil {
		b = appendFixed32(b, 4, *m.Rtime32ServerTimestamp)
	}
	if m.EchoToSender != nil {
		b = appendBool(b, 5, *m.EchoToSender)
	}
	return b
}

func (m *CMsgClientFriendMsg) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			m.Steamid, n = consumeFixed64Val(b)
		case num == 2 && typ == protowire.VarintType:
			m.ChatEntryType, n = consumeVarintI32(b)
		case num == 3 && typ == protowire.BytesType:
			m.Message, n = consumeBytesVal(b)
		case num == 4 && typ == protowire.Fixed32Type:
			m.Rtime32ServerTimestamp, n = consumeFixed32Val(b)
		case num == 5 && typ == protowire.VarintType:
			m.EchoToSender, n = consumeVarintBool(b)
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

// CMsgClientFriendMsgIncoming is an incoming chat message from a friend.
type CMsgClientFriendMsgIncoming struct {
	SteamidFrom            *uint64 // 1, fixed64
	ChatEntryType          *int32  // 2
	FromLimitedAccount     *bool   // 3
	Message                []byte  // 4
	Rtime32ServerTimestamp *uint32 // 5, fixed32
}

func (m *CMsgClientFriendMsgIncoming) GetSteamidFrom() uint64 {
	if m != nil && m.SteamidFrom != nil {
		return *m.SteamidFrom
	}
	return 0
}

func (m *CMsgClientFriendMsgIncoming) GetChatEntryType() int32 {
	if m != nil && m.ChatEntryType != nil {
		return *m.ChatEntryType
	}
	return 0
}

func (m *CMsgClientFriendMsgIncoming) GetFromLimitedAccount() bool {
	if m != nil && m.FromLimitedAccount != nil {
		return *m.FromLimitedAccount
	}
	return false
}

func (m *CMsgClientFriendMsgIncoming) GetMessage() []byte {
	if m != nil {
		return m.Message
	}
	return nil
}

func (m *CMsgClientFriendMsgIncoming) GetRtime32ServerTimestamp() uint32 {
	if m != nil && m.Rtime32ServerTimestamp != nil {
		return *m.Rtime32ServerTimestamp
	}
	return 0
}

func (m *CMsgClientFriendMsgIncoming) appendTo(b []byte) []byte {
	if m.SteamidFrom != nil {
		b = appendFixed64(b, 1, *m.SteamidFrom)
	}
	if m.ChatEntryType != nil {
		b = appendInt32(b, 2, *m.ChatEntryType)
	}
	if m.FromLimitedAccount != nil {
		b = appendBool(b, 3, *m.FromLimitedAccount)
	}
	if m.Message != nil {
		b = appendBytes(b, 4, m.Message)
	}
	if m.Rtime32ServerTimestamp != nil {
		b = appendFixed32(b, 5, *m.Rtime32ServerTimestamp)
	}
	return b
}

func (m *CMsgClientFriendMsgIncoming) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			m.SteamidFrom, n = consumeFixed64Val(b)
		case num == 2 && typ == protowire.VarintType:
			m.ChatEntryType, n = consumeVarintI32(b)
		case num == 3 && typ == protowire.VarintType:
			m.FromLimitedAccount, n = consumeVarintBool(b)
		case num == 4 && typ == protowire.BytesType:
			m.Message, n = consumeBytesVal(b)
		case num == 5 && typ == protowire.Fixed32Type:
			m.Rtime32ServerTimestamp, n = consumeFixed32Val(b)
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

// CMsgClientAddFriend sends a friend invite by Steam ID or account name.
type CMsgClientAddFriend struct {
	SteamidToAdd            *uint64 // 1, fixed64
	AccountnameOrEmailToAdd *string // 2
}

func (m *CMsgClientAddFriend) GetSteamidToAdd() uint64 {
	if m != nil && m.SteamidToAdd != nil {
		return *m.SteamidToAdd
	}
	return 0
}

func (m *CMsgClientAddFriend) appendTo(b []byte) []byte {
	if m.SteamidToAdd != nil {
		b = appendFixed64(b, 1, *m.SteamidToAdd)
	}
	if m.AccountnameOrEmailToAdd != nil {
		b = appendString(b, 2, *m.AccountnameOrEmailToAdd)
	}
	return b
}

func (m *CMsgClientAddFriend) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			m.SteamidToAdd, n = consumeFixed64Val(b)
		case num == 2 && typ == protowire.BytesType:
			m.AccountnameOrEmailToAdd, n = consumeStringVal(b)
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

// CMsgClientAddFriendResponse is the server's answer to a friend invite.
type CMsgClientAddFriendResponse struct {
	Eresult          *int32  // 1
	SteamIdAdded     *uint64 // 2, fixed64
	PersonaNameAdded *string // 3
}

func (m *CMsgClientAddFriendResponse) GetEresult() int32 {
	if m != nil && m.Eresult != nil {
		return *m.Eresult
	}
	return 2
}

func (m *CMsgClientAddFriendResponse) GetSteamIdAdded() uint64 {
	if m != nil && m.SteamIdAdded != nil {
		return *m.SteamIdAdded
	}
	return 0
}

func (m *CMsgClientAddFriendResponse) GetPersonaNameAdded() string {
	if m != nil && m.PersonaNameAdded != nil {
		return *m.PersonaNameAdded
	}
	return ""
}

func (m *CMsgClientAddFriendResponse) appendTo(b []byte) []byte {
	if m.Eresult != nil {
		b = appendInt32(b, 1, *m.Eresult)
	}
	if m.SteamIdAdded != nil {
		b = appendFixed64(b, 2, *m.SteamIdAdded)
	}
	if m.PersonaNameAdded != nil {
		b = appendString(b, 3, *m.PersonaNameAdded)
	}
	return b
}

func (m *CMsgClientAddFriendResponse) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Eresult, n = consumeVarintI32(b)
		case num == 2 && typ == protowire.Fixed64Type:
			m.SteamIdAdded, n = consumeFixed64Val(b)
		case num == 3 && typ == protowire.BytesType:
			m.PersonaNameAdded, n = consumeStringVal(b)
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

// CMsgClientRemoveFriend removes a friend from the roster.
type CMsgClientRemoveFriend struct {
	Friendid *uint64 // 1, fixed64
}

func (m *CMsgClientRemoveFriend) GetFriendid() uint64 {
	if m != nil && m.Friendid != nil {
		return *m.Friendid
	}
	return 0
}

func (m *CMsgClientRemoveFriend) appendTo(b []byte) []byte {
	if m.Friendid != nil {
		b = appendFixed64(b, 1, *m.Friendid)
	}
	return b
}

func (m *CMsgClientRemoveFriend) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			m.Friendid, n = consumeFixed64Val(b)
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

// CMsgClientChangeStatus sets the logged-in user's persona state or name.
type CMsgClientChangeStatus struct {
	PersonaState     *uint32 // 1
	PlayerName       *string // 2
	PersonaSetByUser *bool   // 5
}

func (m *CMsgClientChangeStatus) GetPersonaState() uint32 {
	if m != nil && m.PersonaState != nil {
		return *m.PersonaState
	}
	return 0
}

func (m *CMsgClientChangeStatus) GetPersonaSetByUser() bool {
	if m != nil && m.PersonaSetByUser != nil {
		return *m.PersonaSetByUser
	}
	return false
}

func (m *CMsgClientChangeStatus) appendTo(b []byte) []byte {
	if m.PersonaState != nil {
		b = appendVarint(b, 1, uint64(*m.PersonaState))
	}
	if m.PlayerName != nil {
		b = appendString(b, 2, *m.PlayerName)
	}
	if m.PersonaSetByUser != nil {
		b = appendBool(b, 5, *m.PersonaSetByUser)
	}
	return b
}

func (m *CMsgClientChangeStatus) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.PersonaState, n = consumeVarintU32(b)
		case num == 2 && typ == protowire.BytesType:
			m.PlayerName, n = consumeStringVal(b)
		case num == 5 && typ == protowire.VarintType:
			m.PersonaSetByUser, n = consumeVarintBool(b)
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

// CMsgClientRequestFriendData asks the server to push persona state for friends.
type CMsgClientRequestFriendData struct {
	PersonaStateRequested *uint32  // 1
	Friends               []uint64 // 2, repeated fixed64
}

func (m *CMsgClientRequestFriendData) GetPersonaStateRequested() uint32 {
	if m != nil && m.PersonaStateRequested != nil {
		return *m.PersonaStateRequested
	}
	return 0
}

func (m *CMsgClientRequestFriendData) GetFriends() []uint64 {
	if m != nil {
		return m.Friends
	}
	return nil
}

func (m *CMsgClientRequestFriendData) appendTo(b []byte) []byte {
	if m.PersonaStateRequested != nil {
		b = appendVarint(b, 1, uint64(*m.PersonaStateRequested))
	}
	for _, f := range m.Friends {
		b = appendFixed64(b, 2, f)
	}
	return b
}

func (m *CMsgClientRequestFriendData) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.PersonaStateRequested, n = consumeVarintU32(b)
		case num == 2 && typ == protowire.Fixed64Type:
			v, nn := protowire.ConsumeFixed64(b)
			if nn < 0 {
				return protowire.ParseError(nn)
			}
			m.Friends = append(m.Friends, v)
			n = nn
		case num == 2 && typ == protowire.BytesType:
			packed, nn := protowire.ConsumeBytes(b)
			if nn < 0 {
				return protowire.ParseError(nn)
			}
			for len(packed) > 0 {
				v, k := protowire.ConsumeFixed64(packed)
				if k < 0 {
					return protowire.ParseError(k)
				}
				m.Friends = append(m.Friends, v)
				packed = packed[k:]
			}
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

// CMsgClientPersonaState_Friend carries persona data for one user.
type CMsgClientPersonaState_Friend struct {
	Friendid          *uint64 // 1, fixed64
	PersonaState      *uint32 // 2
	GamePlayedAppId   *uint32 // 3
	PersonaStateFlags *uint32 // 6
	PlayerName        *string // 15
	AvatarHash        []byte  // 31
	LastLogoff        *uint32 // 45
	LastLogon         *uint32 // 46
	LastSeenOnline    *uint32 // 47
	GameName          *string // 55
	Gameid            *uint64 // 56, fixed64
}

func (m *CMsgClientPersonaState_Friend) GetFriendid() uint64 {
	if m != nil && m.Friendid != nil {
		return *m.Friendid
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) GetPersonaState() uint32 {
	if m != nil && m.PersonaState != nil {
		return *m.PersonaState
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) GetGamePlayedAppId() uint32 {
	if m != nil && m.GamePlayedAppId != nil {
		return *m.GamePlayedAppId
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) GetPersonaStateFlags() uint32 {
	if m != nil && m.PersonaStateFlags != nil {
		return *m.PersonaStateFlags
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) GetPlayerName() string {
	if m != nil && m.PlayerName != nil {
		return *m.PlayerName
	}
	return ""
}

func (m *CMsgClientPersonaState_Friend) GetAvatarHash() []byte {
	if m != nil {
		return m.AvatarHash
	}
	return nil
}

func (m *CMsgClientPersonaState_Friend) GetLastLogoff() uint32 {
	if m != nil && m.LastLogoff != nil {
		return *m.LastLogoff
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) GetLastLogon() uint32 {
	if m != nil && m.LastLogon != nil {
		return *m.LastLogon
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) GetLastSeenOnline() uint32 {
	if m != nil && m.LastSeenOnline != nil {
		return *m.LastSeenOnline
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) GetGameName() string {
	if m != nil && m.GameName != nil {
		return *m.GameName
	}
	return ""
}

func (m *CMsgClientPersonaState_Friend) GetGameid() uint64 {
	if m != nil && m.Gameid != nil {
		return *m.Gameid
	}
	return 0
}

func (m *CMsgClientPersonaState_Friend) appendTo(b []byte) []byte {
	if m.Friendid != nil {
		b = appendFixed64(b, 1, *m.Friendid)
	}
	if m.PersonaState != nil {
		b = appendVarint(b, 2, uint64(*m.PersonaState))
	}
	if m.GamePlayedAppId != nil {
		b = appendVarint(b, 3, uint64(*m.GamePlayedAppId))
	}
	if m.PersonaStateFlags != nil {
		b = appendVarint(b, 6, uint64(*m.PersonaStateFlags))
	}
	if m.PlayerName != nil {
		b = appendString(b, 15, *m.PlayerName)
	}
	if m.AvatarHash != nil {
		b = appendBytes(b, 31, m.AvatarHash)
	}
	if m.LastLogoff != nil {
		b = appendVarint(b, 45, uint64(*m.LastLogoff))
	}
	if m.LastLogon != nil {
		b = appendVarint(b, 46, uint64(*m.LastLogon))
	}
	if m.LastSeenOnline != nil {
		b = appendVarint(b, 47, uint64(*m.LastSeenOnline))
	}
	if m.GameName != nil {
		b = appendString(b, 55, *m.GameName)
	}
	if m.Gameid != nil {
		b = appendFixed64(b, 56, *m.Gameid)
	}
	return b
}

func (m *CMsgClientPersonaState_Friend) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			m.Friendid, n = consumeFixed64Val(b)
		case num == 2 && typ == protowire.VarintType:
			m.PersonaState, n = consumeVarintU32(b)
		case num == 3 && typ == protowire.VarintType:
			m.GamePlayedAppId, n = consumeVarintU32(b)
		case num == 6 && typ == protowire.VarintType:
			m.PersonaStateFlags, n = consumeVarintU32(b)
		case num == 15 && typ == protowire.BytesType:
			m.PlayerName, n = consumeStringVal(b)
		case num == 31 && typ == protowire.BytesType:
			m.AvatarHash, n = consumeBytesVal(b)
		case num == 45 && typ == protowire.VarintType:
			m.LastLogoff, n = consumeVarintU32(b)
		case num == 46 && typ == protowire.VarintType:
			m.LastLogon, n = consumeVarintU32(b)
		case num == 47 && typ == protowire.VarintType:
			m.LastSeenOnline, n = consumeVarintU32(b)
		case num == 55 && typ == protowire.BytesType:
			m.GameName, n = consumeStringVal(b)
		case num == 56 && typ == protowire.Fixed64Type:
			m.Gameid, n = consumeFixed64Val(b)
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

// CMsgClientPersonaState is the server push of persona updates for one or more users.
type CMsgClientPersonaState struct {
	StatusFlags *uint32                          // 1
	Friends     []*CMsgClientPersonaState_Friend // 2, repeated
}

func (m *CMsgClientPersonaState) GetStatusFlags() uint32 {
	if m != nil && m.StatusFlags != nil {
		return *m.StatusFlags
	}
	return 0
}

func (m *CMsgClientPersonaState) GetFriends() []*CMsgClientPersonaState_Friend {
	if m != nil {
		return m.Friends
	}
	return nil
}

func (m *CMsgClientPersonaState) appendTo(b []byte) []byte {
	if m.StatusFlags != nil {
		b = appendVarint(b, 1, uint64(*m.StatusFlags))
	}
	for _, f := range m.Friends {
		b = appendMessage(b, 2, f)
	}
	return b
}

func (m *CMsgClientPersonaState) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.StatusFlags, n = consumeVarintU32(b)
		case num == 2 && typ == protowire.BytesType:
			f := &CMsgClientPersonaState_Friend{}
			nn, err := consumeMessage(b, f)
			if err != nil {
				return err
			}
			m.Friends = append(m.Friends, f)
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
