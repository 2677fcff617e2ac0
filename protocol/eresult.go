package protocol

import "fmt"

// EResult is the generic Steam operation result code. OK is 1, not 0;
// the zero value means the result was never set.
type EResult int32

const (
	EResultInvalid                         EResult = 0
	EResultOK                              EResult = 1
	EResultFail                            EResult = 2
	EResultNoConnection                    EResult = 3
	EResultInvalidPassword                 EResult = 5
	EResultLoggedInElsewhere               EResult = 6
	EResultInvalidProtocolVer              EResult = 7
	EResultFileNotFound                    EResult = 9
	EResultBusy                            EResult = 10
	EResultInvalidState                    EResult = 11
	EResultAccessDenied                    EResult = 15
	EResultTimeout                         EResult = 16
	EResultBanned                          EResult = 17
	EResultAccountNotFound                 EResult = 18
	EResultServiceUnavailable              EResult = 20
	EResultNotLoggedOn                     EResult = 21
	EResultPending                         EResult = 22
	EResultLimitExceeded                   EResult = 25
	EResultExpired                         EResult = 27
	EResultDuplicateRequest                EResult = 29
	EResultTryAnotherCM                    EResult = 48
	EResultPasswordRequiredToKickSession   EResult = 49
	EResultAlreadyLoggedInElsewhere        EResult = 50
	EResultAccountLogonDenied              EResult = 63
	EResultInvalidLoginAuthCode            EResult = 65
	EResultRateLimitExceeded               EResult = 84
	EResultAccountLoginDeniedNeedTwoFactor EResult = 85
	EResultTwoFactorCodeMismatch           EResult = 88
)

var eresultNames = map[EResult]string{
	EResultInvalid:                         "Invalid",
	EResultOK:                              "OK",
	EResultFail:                            "Fail",
	EResultNoConnection:                    "NoConnection",
	EResultInvalidPassword:                 "InvalidPassword",
	EResultLoggedInElsewhere:               "LoggedInElsewhere",
	EResultInvalidProtocolVer:              "InvalidProtocolVer",
	EResultFileNotFound:                    "FileNotFound",
	EResultBusy:                            "Busy",
	EResultInvalidState:                    "InvalidState",
	EResultAccessDenied:                    "AccessDenied",
	EResultTimeout:                         "Timeout",
	EResultBanned:                          "Banned",
	EResultAccountNotFound:                 "AccountNotFound",
	EResultServiceUnavailable:              "ServiceUnavailable",
	EResultNotLoggedOn:                     "NotLoggedOn",
	EResultPending:                         "Pending",
	EResultLimitExceeded:                   "LimitExceeded",
	EResultExpired:                         "Expired",
	EResultDuplicateRequest:                "DuplicateRequest",
	EResultTryAnotherCM:                    "TryAnotherCM",
	EResultPasswordRequiredToKickSession:   "PasswordRequiredToKickSession",
	EResultAlreadyLoggedInElsewhere:        "AlreadyLoggedInElsewhere",
	EResultAccountLogonDenied:              "AccountLogonDenied",
	EResultInvalidLoginAuthCode:            "InvalidLoginAuthCode",
	EResultRateLimitExceeded:               "RateLimitExceeded",
	EResultAccountLoginDeniedNeedTwoFactor: "AccountLoginDeniedNeedTwoFactor",
	EResultTwoFactorCodeMismatch:           "TwoFactorCodeMismatch",
}

func (r EResult) String() string {
	if name, ok := eresultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("EResult(%d)", int32(r))
}
