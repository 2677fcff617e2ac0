package protocol

import "google.golang.org/protobuf/encoding/protowire"

// CMsgClientLogon requests a CM session for an account.
type CMsgClientLogon struct {
	ProtocolVersion           *uint32 // 1
	CellId                    *uint32 // 3
	ClientPackageVersion      *uint32 // 5
	ClientLanguage            *string // 6
	ClientOsType              *uint32 // 7
	ShouldRememberPassword    *bool   // 8
	ChatMode                  *uint32 // 33
	AccountName               *string // 50
	Password                  *string // 51
	EresultSentryfile         *int32  // 82
	ShaSentryfile             []byte  // 83
	AuthCode                  *string // 84
	MachineName               *string // 96
	TwoFactorCode             *string // 101
	SupportsRateLimitResponse *bool   // 102
	AccessToken               *string // 108
}

func (m *CMsgClientLogon) GetAccountName() string {
	if m != nil && m.AccountName != nil {
		return *m.AccountName
	}
	return ""
}

func (m *CMsgClientLogon) GetAccessToken() string {
	if m != nil && m.AccessToken != nil {
		return *m.AccessToken
	}
	return ""
}

func (m *CMsgClientLogon) appendTo(b []byte) []byte {
	if m.ProtocolVersion != nil {
		b = appendVarint(b, 1, uint64(*m.ProtocolVersion))
	}
	if m.CellId != nil {
		b = appendVarint(b, 3, uint64(*m.CellId))
	}
	if m.ClientPackageVersion != nil {
		b = appendVarint(b, 5, uint64(*m.ClientPackageVersion))
	}
	if m.ClientLanguage != nil {
		b = appendString(b, 6, *m.ClientLanguage)
	}
	if m.ClientOsType != nil {
		b = appendVarint(b, 7, uint64(*m.ClientOsType))
	}
	if m.ShouldRememberPassword != nil {
		b = appendBool(b, 8, *m.ShouldRememberPassword)
	}
	if m.ChatMode != nil {
		b = appendVarint(b, 33, uint64(*m.ChatMode))
	}
	if m.AccountName != nil {
		b = appendString(b, 50, *m.AccountName)
	}
	if m.Password != nil {
		b = appendString(b, 51, *m.Password)
	}
	if m.EresultSentryfile != nil {
		b = appendInt32(b, 82, *m.EresultSentryfile)
	}
	if m.ShaSentryfile != nil {
		b = appendBytes(b, 83, m.ShaSentryfile)
	}
	if m.AuthCode != nil {
		b = appendString(b, 84, *m.AuthCode)
	}
	if m.MachineName != nil {
		b = appendString(b, 96, *m.MachineName)
	}
	if m.TwoFactorCode != nil {
		b = appendString(b, 101, *m.TwoFactorCode)
	}
	if m.SupportsRateLimitResponse != nil {
		b = appendBool(b, 102, *m.SupportsRateLimitResponse)
	}
	if m.AccessToken != nil {
		b = appendString(b, 108, *m.AccessToken)
	}
	return b
}

func (m *CMsgClientLogon) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ProtocolVersion, n = consumeVarintU32(b)
		case num == 3 && typ == protowire.VarintType:
			m.CellId, n = consumeVarintU32(b)
		case num == 5 && typ == protowire.VarintType:
			m.ClientPackageVersion, n = consumeVarintU32(b)
		case num == 6 && typ == protowire.BytesType:
			m.ClientLanguage, n = consumeStringVal(b)
		case num == 7 && typ == protowire.VarintType:
			m.ClientOsType, n = consumeVarintU32(b)
		case num == 8 && typ == protowire.VarintType:
			m.ShouldRememberPassword, n = consumeVarintBool(b)
		case num == 33 && typ == protowire.VarintType:
			m.ChatMode, n = consumeVarintU32(b)
		case num == 50 && typ == protowire.BytesType:
			m.AccountName, n = consumeStringVal(b)
		case num == 51 && typ == protowire.BytesType:
			m.Password, n = consumeStringVal(b)
		case num == 82 && typ == protowire.VarintType:
			m.EresultSentryfile, n = consumeVarintI32(b)
		case num == 83 && typ == protowire.BytesType:
			m.ShaSentryfile, n = consumeBytesVal(b)
		case num == 84 && typ == protowire.BytesType:
			m.AuthCode, n = consumeStringVal(b)
		case num == 96 && typ == protowire.BytesType:
			m.MachineName, n = consumeStringVal(b)
		case num == 101 && typ == protowire.BytesType:
			m.TwoFactorCode, n = consumeStringVal(b)
		case num == 102 && typ == protowire.VarintType:
			m.SupportsRateLimitResponse, n = consumeVarintBool(b)
		case num == 108 && typ == protowire.BytesType:
			m.AccessToken, n = consumeStringVal(b)
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

// CMsgClientLogonResponse reports the outcome of a logon attempt.
type CMsgClientLogonResponse struct {
	Eresult                         *int32  // 1
	LegacyOutOfGameHeartbeatSeconds *int32  // 2
	HeartbeatSeconds                *int32  // 3
	Rtime32ServerTime               *uint32 // 5, fixed32
	AccountFlags                    *uint32 // 6
	CellId                          *uint32 // 7
	EmailDomain                     *string // 8
	EresultExtended                 *int32  // 10
	WebapiAuthenticateUserNonce     *string // 11
	VanityUrl                       *string // 14
	ClientSuppliedSteamid           *uint64 // 20, fixed64
	IpCountryCode                   *string // 21
	ClientInstanceId                *uint64 // 27
}

func (m *CMsgClientLogonResponse) GetEresult() int32 {
	if m != nil && m.Eresult != nil {
		return *m.Eresult
	}
	return 2
}

func (m *CMsgClientLogonResponse) GetLegacyOutOfGameHeartbeatSeconds() int32 {
	if m != nil && m.LegacyOutOfGameHeartbeatSeconds != nil {
		return *m.LegacyOutOfGameHeartbeatSeconds
	}
	return 0
}

func (m *CMsgClientLogonResponse) GetHeartbeatSeconds() int32 {
	if m != nil && m.HeartbeatSeconds != nil {
		return *m.HeartbeatSeconds
	}
	return 0
}

func (m *CMsgClientLogonResponse) GetRtime32ServerTime() uint32 {
	if m != nil && m.Rtime32ServerTime != nil {
		return *m.Rtime32ServerTime
	}
	return 0
}

func (m *CMsgClientLogonResponse) GetCellId() uint32 {
	if m != nil && m.CellId != nil {
		return *m.CellId
	}
	return 0
}

func (m *CMsgClientLogonResponse) GetEmailDomain() string {
	if m != nil && m.EmailDomain != nil {
		return *m.EmailDomain
	}
	return ""
}

func (m *CMsgClientLogonResponse) GetEresultExtended() int32 {
	if m != nil && m.EresultExtended != nil {
		return *m.EresultExtended
	}
	return 0
}

func (m *CMsgClientLogonResponse) GetWebapiAuthenticateUserNonce() string {
	if m != nil && m.WebapiAuthenticateUserNonce != nil {
		return *m.WebapiAuthenticateUserNonce
	}
	return ""
}

func (m *CMsgClientLogonResponse) GetClientSuppliedSteamid() uint64 {
	if m != nil && m.ClientSuppliedSteamid != nil {
		return *m.ClientSuppliedSteamid
	}
	return 0
}

func (m *CMsgClientLogonResponse) GetIpCountryCode() string {
	if m != nil && m.IpCountryCode != nil {
		return *m.IpCountryCode
	}
	return ""
}

func (m *CMsgClientLogonResponse) appendTo(b []byte) []byte {
	if m.Eresult != nil {
		b = appendInt32(b, 1, *m.Eresult)
	}
	if m.LegacyOutOfGameHeartbeatSeconds != nil {
		b = appendInt32(b, 2, *m.LegacyOutOfGameHeartbeatSeconds)
	}
	if m.HeartbeatSeconds != nil {
		b = appendInt32(b, 3, *m.HeartbeatSeconds)
	}
	if m.Rtime32ServerTime != nil {
		b = appendFixed32(b, 5, *m.Rtime32ServerTime)
	}
	if m.AccountFlags != nil {
		b = appendVarint(b, 6, uint64(*m.AccountFlags))
	}
	if m.CellId != nil {
		b = appendVarint(b, 7, uint64(*m.CellId))
	}
	if m.EmailDomain != nil {
		b = appendString(b, 8, *m.EmailDomain)
	}
	if m.EresultExtended != nil {
		b = appendInt32(b, 10, *m.EresultExtended)
	}
	if m.WebapiAuthenticateUserNonce != nil {
		b = appendString(b, 11, *m.WebapiAuthenticateUserNonce)
	}
	if m.VanityUrl != nil {
		b = appendString(b, 14, *m.VanityUrl)
	}
	if m.ClientSuppliedSteamid != nil {
		b = appendFixed64(b, 20, *m.ClientSuppliedSteamid)
	}
	if m.IpCountryCode != nil {
		b = appendString(b, 21, *m.IpCountryCode)
	}
	if m.ClientInstanceId != nil {
		b = appendVarint(b, 27, *m.ClientInstanceId)
	}
	return b
}

func (m *CMsgClientLogonResponse) decodeFrom(b []byte) error {
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
		case num == 2 && typ == protowire.VarintType:
			m.LegacyOutOfGameHeartbeatSeconds, n = consumeVarintI32(b)
		case num == 3 && typ == protowire.VarintType:
			m.HeartbeatSeconds, n = consumeVarintI32(b)
		case num == 5 && typ == protowire.Fixed32Type:
			m.Rtime32ServerTime, n = consumeFixed32Val(b)
		case num == 6 && typ == protowire.VarintType:
			m.AccountFlags, n = consumeVarintU32(b)
		case num == 7 && typ == protowire.VarintType:
			m.CellId, n = consumeVarintU32(b)
		case num == 8 && typ == protowire.BytesType:
			m.EmailDomain, n = consumeStringVal(b)
		case num == 10 && typ == protowire.VarintType:
			m.EresultExtended, n = consumeVarintI32(b)
		case num == 11 && typ == protowire.BytesType:
			m.WebapiAuthenticateUserNonce, n = consumeStringVal(b)
		case num == 14 && typ == protowire.BytesType:
			m.VanityUrl, n = consumeStringVal(b)
		case num == 20 && typ == protowire.Fixed64Type:
			m.ClientSuppliedSteamid, n = consumeFixed64Val(b)
		case num == 21 && typ == protowire.BytesType:
			m.IpCountryCode, n = consumeStringVal(b)
		case num == 27 && typ == protowire.VarintType:
			m.ClientInstanceId, n = consumeVarintU64(b)
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

// CMsgClientUpdateMachineAuth asks the client to persist a sentry file chunk.
type CMsgClientUpdateMachineAuth struct {
	Filename   *string // 1
	Offset     *uint32 // 2
	Cubtowrite *uint32 // 3
	Bytes      []byte  // 4
}

func (m *CMsgClientUpdateMachineAuth) GetFilename() string {
	if m != nil && m.Filename != nil {
		return *m.Filename
	}
	return ""
}

func (m *CMsgClientUpdateMachineAuth) GetOffset() uint32 {
	if m != nil && m.Offset != nil {
		return *m.Offset
	}
	return 0
}

func (m *CMsgClientUpdateMachineAuth) GetCubtowrite() uint32 {
	if m != nil && m.Cubtowrite != nil {
		return *m.Cubtowrite
	}
	return 0
}

func (m *CMsgClientUpdateMachineAuth) GetBytes() []byte {
	if m != nil {
		return m.Bytes
	}
	return nil
}

func (m *CMsgClientUpdateMachineAuth) appendTo(b []byte) []byte {
	if m.Filename != nil {
		b = appendString(b, 1, *m.Filename)
	}
	if m.Offset != nil {
		b = appendVarint(b, 2, uint64(*m.Offset))
	}
	if m.Cubtowrite != nil {
		b = appendVarint(b, 3, uint64(*m.Cubtowrite))
	}
	if m.Bytes != nil {
		b = appendBytes(b, 4, m.Bytes)
	}
	return b
}

func (m *CMsgClientUpdateMachineAuth) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Filename, n = consumeStringVal(b)
		case num == 2 && typ == protowire.VarintType:
			m.Offset, n = consumeVarintU32(b)
		case num == 3 && typ == protowire.VarintType:
			m.Cubtowrite, n = consumeVarintU32(b)
		case num == 4 && typ == protowire.BytesType:
			m.Bytes, n = consumeBytesVal(b)
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

// CMsgClientUpdateMachineAuthResponse acknowledges a persisted sentry chunk.
type CMsgClientUpdateMachineAuthResponse struct {
	Filename     *string // 1
	Eresult      *uint32 // 2
	Filesize     *uint32 // 3
	ShaFile      []byte  // 4
	Getlasterror *uint32 // 5
	Offset       *uint32 // 6
	Cubwrote     *uint32 // 7
}

func (m *CMsgClientUpdateMachineAuthResponse) appendTo(b []byte) []byte {
	if m.Filename != nil {
		b = appendString(b, 1, *m.Filename)
	}
	if m.Eresult != nil {
		b = appendVarint(b, 2, uint64(*m.Eresult))
	}
	if m.Filesize != nil {
		b = appendVarint(b, 3, uint64(*m.Filesize))
	}
	if m.ShaFile != nil {
		b = appendBytes(b, 4, m.ShaFile)
	}
	if m.Getlasterror != nil {
		b = appendVarint(b, 5, uint64(*m.Getlasterror))
	}
	if m.Offset != nil {
		b = appendVarint(b, 6, uint64(*m.Offset))
	}
	if m.Cubwrote != nil {
		b = appendVarint(b, 7, uint64(*m.Cubwrote))
	}
	return b
}

func (m *CMsgClientUpdateMachineAuthResponse) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Filename, n = consumeStringVal(b)
		case num == 2 && typ == protowire.VarintType:
			m.Eresult, n = consumeVarintU32(b)
		case num == 3 && typ == protowire.VarintType:
			m.Filesize, n = consumeVarintU32(b)
		case num == 4 && typ == protowire.BytesType:
			m.ShaFile, n = consumeBytesVal(b)
		case num == 5 && typ == protowire.VarintType:
			m.Getlasterror, n = consumeVarintU32(b)
		case num == 6 && typ == protowire.VarintType:
			m.Offset, n = consumeVarintU32(b)
		case num == 7 && typ == protowire.VarintType:
			m.Cubwrote, n = consumeVarintU32(b)
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

// CMsgClientRequestWebAPIAuthenticateUserNonce requests a fresh web auth nonce.
type CMsgClientRequestWebAPIAuthenticateUserNonce struct {
	TokenType *int32 // 1
}

func (m *CMsgClientRequestWebAPIAuthenticateUserNonce) appendTo(b []byte) []byte {
	if m.TokenType != nil {
		b = appendInt32(b, 1, *m.TokenType)
	}
	return b
}

func (m *CMsgClientRequestWebAPIAuthenticateUserNonce) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.TokenType, n = consumeVarintI32(b)
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

// CMsgClientRequestWebAPIAuthenticateUserNonceResponse carries the nonce.
type CMsgClientRequestWebAPIAuthenticateUserNonceResponse struct {
	Eresult                     *int32  // 1
	TokenType                   *int32  // 2
	WebapiAuthenticateUserNonce *string // 11
}

func (m *CMsgClientRequestWebAPIAuthenticateUserNonceResponse) GetEresult() int32 {
	if m != nil && m.Eresult != nil {
		return *m.Eresult
	}
	return 2
}

func (m *CMsgClientRequestWebAPIAuthenticateUserNonceResponse) GetWebapiAuthenticateUserNonce() string {
	if m != nil && m.WebapiAuthenticateUserNonce != nil {
		return *m.WebapiAuthenticateUserNonce
	}
	return ""
}

func (m *CMsgClientRequestWebAPIAuthenticateUserNonceResponse) appendTo(b []byte) []byte {
	if m.Eresult != nil {
		b = appendInt32(b, 1, *m.Eresult)
	}
	if m.TokenType != nil {
		b = appendInt32(b, 2, *m.TokenType)
	}
	if m.WebapiAuthenticateUserNonce != nil {
		b = appendString(b, 11, *m.WebapiAuthenticateUserNonce)
	}
	return b
}

func (m *CMsgClientRequestWebAPIAuthenticateUserNonceResponse) decodeFrom(b []byte) error {
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
		case num == 2 && typ == protowire.VarintType:
			m.TokenType, n = consumeVarintI32(b)
		case num == 11 && typ == protowire.BytesType:
			m.WebapiAuthenticateUserNonce, n = consumeStringVal(b)
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
