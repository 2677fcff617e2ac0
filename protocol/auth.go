package protocol

import "google.golang.org/protobuf/encoding/protowire"

// EAuthTokenPlatformType identifies the platform a token is minted for.
type EAuthTokenPlatformType int32

const (
	EAuthTokenPlatformType_Unknown     EAuthTokenPlatformType = 0
	EAuthTokenPlatformType_SteamClient EAuthTokenPlatformType = 1
	EAuthTokenPlatformType_WebBrowser  EAuthTokenPlatformType = 2
	EAuthTokenPlatformType_MobileApp   EAuthTokenPlatformType = 3
)

// ESessionPersistence controls whether a minted session outlives the browser.
type ESessionPersistence int32

const (
	ESessionPersistence_Invalid    ESessionPersistence = -1
	ESessionPersistence_Ephemeral  ESessionPersistence = 0
	ESessionPersistence_Persistent ESessionPersistence = 1
)

// EAuthSessionGuardType enumerates the Steam Guard confirmation methods.
type EAuthSessionGuardType int32

const (
	EAuthSessionGuardType_Unknown            EAuthSessionGuardType = 0
	EAuthSessionGuardType_None               EAuthSessionGuardType = 1
	EAuthSessionGuardType_EmailCode          EAuthSessionGuardType = 2
	EAuthSessionGuardType_DeviceCode         EAuthSessionGuardType = 3
	EAuthSessionGuardType_DeviceConfirmation EAuthSessionGuardType = 4
	EAuthSessionGuardType_EmailConfirmation  EAuthSessionGuardType = 5
	EAuthSessionGuardType_MachineToken       EAuthSessionGuardType = 6
	EAuthSessionGuardType_LegacyMachineAuth  EAuthSessionGuardType = 7
)

// ETokenRenewalType controls refresh token rotation in GenerateForApp.
type ETokenRenewalType int32

const (
	ETokenRenewalType_None  ETokenRenewalType = 0
	ETokenRenewalType_Allow ETokenRenewalType = 1
)

type CAuthentication_GetPasswordRSAPublicKey_Request struct {
	AccountName *string // 1
}

func (m *CAuthentication_GetPasswordRSAPublicKey_Request) appendTo(b []byte) []byte {
	if m.AccountName != nil {
		b = appendString(b, 1, *m.AccountName)
	}
	return b
}

func (m *CAuthentication_GetPasswordRSAPublicKey_Request) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.AccountName, n = consumeStringVal(b)
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

type CAuthentication_GetPasswordRSAPublicKey_Response struct {
	PublickeyMod *string // 1
	PublickeyExp *string // 2
	Timestamp    *uint64 // 3
}

func (m *CAuthentication_GetPasswordRSAPublicKey_Response) appendTo(b []byte) []byte {
	if m.PublickeyMod != nil {
		b = appendString(b, 1, *m.PublickeyMod)
	}
	if m.PublickeyExp != nil {
		b = appendString(b, 2, *m.PublickeyExp)
	}
	if m.Timestamp != nil {
		b = appendVarint(b, 3, *m.Timestamp)
	}
	return b
}

func (m *CAuthentication_GetPasswordRSAPublicKey_Response) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.PublickeyMod, n = consumeStringVal(b)
		case num == 2 && typ == protowire.BytesType:
			m.PublickeyExp, n = consumeStringVal(b)
		case num == 3 && typ == protowire.VarintType:
			m.Timestamp, n = consumeVarintU64(b)
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

type CAuthentication_DeviceDetails struct {
	DeviceFriendlyName *string                 // 1
	PlatformType       *EAuthTokenPlatformType // 2
	OsType             *int32                  // 3
	GamingDeviceType   *uint32                 // 4
}

func (m *CAuthentication_DeviceDetails) appendTo(b []byte) []byte {
	if m.DeviceFriendlyName != nil {
		b = appendString(b, 1, *m.DeviceFriendlyName)
	}
	if m.PlatformType != nil {
		b = appendInt32(b, 2, int32(*m.PlatformType))
	}
	if m.OsType != nil {
		b = appendInt32(b, 3, *m.OsType)
	}
	if m.GamingDeviceType != nil {
		b = appendVarint(b, 4, uint64(*m.GamingDeviceType))
	}
	return b
}

func (m *CAuthentication_DeviceDetails) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.DeviceFriendlyName, n = consumeStringVal(b)
		case num == 2 && typ == protowire.VarintType:
			m.PlatformType, n = consumeEnum[EAuthTokenPlatformType](b)
		case num == 3 && typ == protowire.VarintType:
			m.OsType, n = consumeVarintI32(b)
		case num == 4 && typ == protowire.VarintType:
			m.GamingDeviceType, n = consumeVarintU32(b)
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

type CAuthentication_BeginAuthSessionViaCredentials_Request struct {
	DeviceFriendlyName  *string                        // 1
	AccountName         *string                        // 2
	EncryptedPassword   *string                        // 3
	EncryptionTimestamp *uint64                        // 4
	RememberLogin       *bool                          // 5
	PlatformType        *EAuthTokenPlatformType        // 6
	Persistence         *ESessionPersistence           // 7
	WebsiteId           *string                        // 8
	DeviceDetails       *CAuthentication_DeviceDetails // 9
	GuardData           *string                        // 10
	Language            *uint32                        // 11
}

func (m *CAuthentication_BeginAuthSessionViaCredentials_Request) appendTo(b []byte) []byte {
	if m.DeviceFriendlyName != nil {
		b = appendString(b, 1, *m.DeviceFriendlyName)
	}
	if m.AccountName != nil {
		b = appendString(b, 2, *m.AccountName)
	}
	if m.EncryptedPassword != nil {
		b = appendString(b, 3, *m.EncryptedPassword)
	}
	if m.EncryptionTimestamp != nil {
		b = appendVarint(b, 4, *m.EncryptionTimestamp)
	}
	if m.RememberLogin != nil {
		b = appendBool(b, 5, *m.RememberLogin)
	}
	if m.PlatformType != nil {
		b = appendInt32(b, 6, int32(*m.PlatformType))
	}
	if m.Persistence != nil {
		b = appendInt32(b, 7, int32(*m.Persistence))
	}
	if m.WebsiteId != nil {
		b = appendString(b, 8, *m.WebsiteId)
	}
	if m.DeviceDetails != nil {
		b = appendMessage(b, 9, m.DeviceDetails)
	}
	if m.GuardData != nil {
		b = appendString(b, 10, *m.GuardData)
	}
	if m.Language != nil {
		b = appendVarint(b, 11, uint64(*m.Language))
	}
	return b
}

func (m *CAuthentication_BeginAuthSessionViaCredentials_Request) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.DeviceFriendlyName, n = consumeStringVal(b)
		case num == 2 && typ == protowire.BytesType:
			m.AccountName, n = consumeStringVal(b)
		case num == 3 && typ == protowire.BytesType:
			m.EncryptedPassword, n = consumeStringVal(b)
		case num == 4 && typ == protowire.VarintType:
			m.EncryptionTimestamp, n = consumeVarintU64(b)
		case num == 5 && typ == protowire.VarintType:
			m.RememberLogin, n = consumeVarintBool(b)
		case num == 6 && typ == protowire.VarintType:
			m.PlatformType, n = consumeEnum[EAuthTokenPlatformType](b)
		case num == 7 && typ == protowire.VarintType:
			m.Persistence, n = consumeEnum[ESessionPersistence](b)
		case num == 8 && typ == protowire.BytesType:
			m.WebsiteId, n = consumeStringVal(b)
		case num == 9 && typ == protowire.BytesType:
			m.DeviceDetails = &CAuthentication_DeviceDetails{}
			nn, err := consumeMessage(b, m.DeviceDetails)
			if err != nil {
				return err
			}
			n = nn
		case num == 10 && typ == protowire.BytesType:
			m.GuardData, n = consumeStringVal(b)
		case num == 11 && typ == protowire.VarintType:
			m.Language, n = consumeVarintU32(b)
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

type CAuthentication_AllowedConfirmation struct {
	ConfirmationType  *EAuthSessionGuardType // 1
	AssociatedMessage *string                // 2
}

func (m *CAuthentication_AllowedConfirmation) GetConfirmationType() EAuthSessionGuardType {
	if m != nil && m.ConfirmationType != nil {
		return *m.ConfirmationType
	}
	return EAuthSessionGuardType_Unknown
}

func (m *CAuthentication_AllowedConfirmation) appendTo(b []byte) []byte {
	if m.ConfirmationType != nil {
		b = appendInt32(b, 1, int32(*m.ConfirmationType))
	}
	if m.AssociatedMessage != nil {
		b = appendString(b, 2, *m.AssociatedMessage)
	}
	return b
}

func (m *CAuthentication_AllowedConfirmation) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ConfirmationType, n = consumeEnum[EAuthSessionGuardType](b)
		case num == 2 && typ == protowire.BytesType:
			m.AssociatedMessage, n = consumeStringVal(b)
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

type CAuthentication_BeginAuthSessionViaCredentials_Response struct {
	ClientId             *uint64                                // 1
	RequestId            []byte                                 // 2
	Interval             *float32                               // 3
	AllowedConfirmations []*CAuthentication_AllowedConfirmation // 4, repeated
	Steamid              *uint64                                // 5
	WeakToken            *string                                // 6
	AgreementSessionUrl  *string                                // 7
	ExtendedErrorMessage *string                                // 8
}

func (m *CAuthentication_BeginAuthSessionViaCredentials_Response) appendTo(b []byte) []byte {
	if m.ClientId != nil {
		b = appendVarint(b, 1, *m.ClientId)
	}
	if m.RequestId != nil {
		b = appendBytes(b, 2, m.RequestId)
	}
	if m.Interval != nil {
		b = appendFloat(b, 3, *m.Interval)
	}
	for _, c := range m.AllowedConfirmations {
		b = appendMessage(b, 4, c)
	}
	if m.Steamid != nil {
		b = appendVarint(b, 5, *m.Steamid)
	}
	if m.WeakToken != nil {
		b = appendString(b, 6, *m.WeakToken)
	}
	if m.AgreementSessionUrl != nil {
		b = appendString(b, 7, *m.AgreementSessionUrl)
	}
	if m.ExtendedErrorMessage != nil {
		b = appendString(b, 8, *m.ExtendedErrorMessage)
	}
	return b
}

func (m *CAuthentication_BeginAuthSessionViaCredentials_Response) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ClientId, n = consumeVarintU64(b)
		case num == 2 && typ == protowire.BytesType:
			m.RequestId, n = consumeBytesVal(b)
		case num == 3 && typ == protowire.Fixed32Type:
			m.Interval, n = consumeFloatVal(b)
		case num == 4 && typ == protowire.BytesType:
			c := &CAuthentication_AllowedConfirmation{}
			nn, err := consumeMessage(b, c)
			if err != nil {
				return err
			}
			m.AllowedConfirmations = append(m.AllowedConfirmations, c)
			n = nn
		case num == 5 && typ == protowire.VarintType:
			m.Steamid, n = consumeVarintU64(b)
		case num == 6 && typ == protowire.BytesType:
			m.WeakToken, n = consumeStringVal(b)
		case num == 7 && typ == protowire.BytesType:
			m.AgreementSessionUrl, n = consumeStringVal(b)
		case num == 8 && typ == protowire.BytesType:
			m.ExtendedErrorMessage, n = consumeStringVal(b)
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

type CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request struct {
	ClientId *uint64                // 1
	Steamid  *uint64                // 2, fixed64
	Code     *string                // 3
	CodeType *EAuthSessionGuardType // 4
}

func (m *CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request) appendTo(b []byte) []byte {
	if m.ClientId != nil {
		b = appendVarint(b, 1, *m.ClientId)
	}
	if m.Steamid != nil {
		b = appendFixed64(b, 2, *m.Steamid)
	}
	if m.Code != nil {
		b = appendString(b, 3, *m.Code)
	}
	if m.CodeType != nil {
		b = appendInt32(b, 4, int32(*m.CodeType))
	}
	return b
}

func (m *CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ClientId, n = consumeVarintU64(b)
		case num == 2 && typ == protowire.Fixed64Type:
			m.Steamid, n = consumeFixed64Val(b)
		case num == 3 && typ == protowire.BytesType:
			m.Code, n = consumeStringVal(b)
		case num == 4 && typ == protowire.VarintType:
			m.CodeType, n = consumeEnum[EAuthSessionGuardType](b)
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

type CAuthentication_UpdateAuthSessionWithSteamGuardCode_Response struct {
	AgreementSessionUrl *string // 7
}

func (m *CAuthentication_UpdateAuthSessionWithSteamGuardCode_Response) appendTo(b []byte) []byte {
	if m.AgreementSessionUrl != nil {
		b = appendString(b, 7, *m.AgreementSessionUrl)
	}
	return b
}

func (m *CAuthentication_UpdateAuthSessionWithSteamGuardCode_Response) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 7 && typ == protowire.BytesType:
			m.AgreementSessionUrl, n = consumeStringVal(b)
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

type CAuthentication_PollAuthSessionStatus_Request struct {
	ClientId  *uint64 // 1
	RequestId []byte  // 2
}

func (m *CAuthentication_PollAuthSessionStatus_Request) appendTo(b []byte) []byte {
	if m.ClientId != nil {
		b = appendVarint(b, 1, *m.ClientId)
	}
	if m.RequestId != nil {
		b = appendBytes(b, 2, m.RequestId)
	}
	return b
}

func (m *CAuthentication_PollAuthSessionStatus_Request) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ClientId, n = consumeVarintU64(b)
		case num == 2 && typ == protowire.BytesType:
			m.RequestId, n = consumeBytesVal(b)
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

type CAuthentication_PollAuthSessionStatus_Response struct {
	NewClientId          *uint64 // 1
	NewChallengeUrl      *string // 2
	RefreshToken         *string // 3
	AccessToken          *string // 4
	HadRemoteInteraction *bool   // 5
	AccountName          *string // 6
	NewGuardData         *string // 7
	AgreementSessionUrl  *string // 8
}

func (m *CAuthentication_PollAuthSessionStatus_Response) GetAccountName() string {
	if m != nil && m.AccountName != nil {
		return *m.AccountName
	}
	return ""
}

func (m *CAuthentication_PollAuthSessionStatus_Response) appendTo(b []byte) []byte {
	if m.NewClientId != nil {
		b = appendVarint(b, 1, *m.NewClientId)
	}
	if m.NewChallengeUrl != nil {
		b = appendString(b, 2, *m.NewChallengeUrl)
	}
	if m.RefreshToken != nil {
		b = appendString(b, 3, *m.RefreshToken)
	}
	if m.AccessToken != nil {
		b = appendString(b, 4, *m.AccessToken)
	}
	if m.HadRemoteInteraction != nil {
		b = appendBool(b, 5, *m.HadRemoteInteraction)
	}
	if m.AccountName != nil {
		b = appendString(b, 6, *m.AccountName)
	}
	if m.NewGuardData != nil {
		b = appendString(b, 7, *m.NewGuardData)
	}
	if m.AgreementSessionUrl != nil {
		b = appendString(b, 8, *m.AgreementSessionUrl)
	}
	return b
}

func (m *CAuthentication_PollAuthSessionStatus_Response) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.NewClientId, n = consumeVarintU64(b)
		case num == 2 && typ == protowire.BytesType:
			m.NewChallengeUrl, n = consumeStringVal(b)
		case num == 3 && typ == protowire.BytesType:
			m.RefreshToken, n = consumeStringVal(b)
		case num == 4 && typ == protowire.BytesType:
			m.AccessToken, n = consumeStringVal(b)
		case num == 5 && typ == protowire.VarintType:
			m.HadRemoteInteraction, n = consumeVarintBool(b)
		case num == 6 && typ == protowire.BytesType:
			m.AccountName, n = consumeStringVal(b)
		case num == 7 && typ == protowire.BytesType:
			m.NewGuardData, n = consumeStringVal(b)
		case num == 8 && typ == protowire.BytesType:
			m.AgreementSessionUrl, n = consumeStringVal(b)
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

type CAuthentication_AccessToken_GenerateForApp_Request struct {
	RefreshToken *string            // 1
	Steamid      *uint64            // 2, fixed64
	RenewalType  *ETokenRenewalType // 3
}

func (m *CAuthentication_AccessToken_GenerateForApp_Request) appendTo(b []byte) []byte {
	if m.RefreshToken != nil {
		b = appendString(b, 1, *m.RefreshToken)
	}
	if m.Steamid != nil {
		b = appendFixed64(b, 2, *m.Steamid)
	}
	if m.RenewalType != nil {
		b = appendInt32(b, 3, int32(*m.RenewalType))
	}
	return b
}

func (m *CAuthentication_AccessToken_GenerateForApp_Request) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.RefreshToken, n = consumeStringVal(b)
		case num == 2 && typ == protowire.Fixed64Type:
			m.Steamid, n = consumeFixed64Val(b)
		case num == 3 && typ == protowire.VarintType:
			m.RenewalType, n = consumeEnum[ETokenRenewalType](b)
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

type CAuthentication_AccessToken_GenerateForApp_Response struct {
	AccessToken  *string // 1
	RefreshToken *string // 2
}

func (m *CAuthentication_AccessToken_GenerateForApp_Response) GetAccessToken() string {
	if m != nil && m.AccessToken != nil {
		return *m.AccessToken
	}
	return ""
}

func (m *CAuthentication_AccessToken_GenerateForApp_Response) GetRefreshToken() string {
	if m != nil && m.RefreshToken != nil {
		return *m.RefreshToken
	}
	return ""
}

func (m *CAuthentication_AccessToken_GenerateForApp_Response) appendTo(b []byte) []byte {
	if m.AccessToken != nil {
		b = appendString(b, 1, *m.AccessToken)
	}
	if m.RefreshToken != nil {
		b = appendString(b, 2, *m.RefreshToken)
	}
	return b
}

func (m *CAuthentication_AccessToken_GenerateForApp_Response) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.AccessToken, n = consumeStringVal(b)
		case num == 2 && typ == protowire.BytesType:
			m.RefreshToken, n = consumeStringVal(b)
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
