package steamclient

import (
	"errors"
	"fmt"

	"github.com/k64z/steamcore/protocol"
)

// ErrDisconnected is returned by pending calls when the connection closes.
var ErrDisconnected = errors.New("steamclient: disconnected")

// ErrNoEndpoints is returned when CM discovery fails and no fallback
// endpoint remains.
var ErrNoEndpoints = errors.New("steamclient: no CM endpoints available")

// ResultError reports a non-OK eresult in a server response.
type ResultError struct {
	Method string // unified service method, when applicable
	Result protocol.EResult
}

func (e *ResultError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("steamclient: %s: eresult %s", e.Method, e.Result)
	}
	return fmt.Sprintf("steamclient: eresult %s", e.Result)
}

// LoginError reports a rejected logon. NeedEmailCode and NeedTwoFactorCode
// mark rejections the caller can repair by supplying guard material;
// everything else is fatal for the given credentials.
type LoginError struct {
	Result            protocol.EResult
	NeedEmailCode     bool   // AccountLogonDenied: email guard code required
	NeedTwoFactorCode bool   // AccountLoginDeniedNeedTwoFactor: authenticator code required
	EmailDomain       string // domain hint when an email guard code is needed
}

func (e *LoginError) Error() string {
	switch {
	case e.NeedEmailCode:
		return fmt.Sprintf("steamclient: logon rejected (%s): email guard code required", e.Result)
	case e.NeedTwoFactorCode:
		return fmt.Sprintf("steamclient: logon rejected (%s): two-factor code required", e.Result)
	}
	return fmt.Sprintf("steamclient: logon rejected: eresult %s", e.Result)
}
