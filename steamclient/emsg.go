package steamclient

import "fmt"

// EMsg identifies Steam CM message types.
type EMsg uint32

const (
	EMsgMulti                                            EMsg = 1
	EMsgServiceMethod                                    EMsg = 146
	EMsgServiceMethodResponse                            EMsg = 147
	EMsgServiceMethodCallFromClient                      EMsg = 151
	EMsgServiceMethodSendToClient                        EMsg = 152
	EMsgClientHeartBeat                                  EMsg = 703
	EMsgClientLogOff                                     EMsg = 706
	EMsgClientRemoveFriend                               EMsg = 714
	EMsgClientChangeStatus                               EMsg = 716
	EMsgClientFriendMsg                                  EMsg = 718
	EMsgClientGamesPlayed                                EMsg = 742
	EMsgClientLogOnResponse                              EMsg = 751
	EMsgClientLoggedOff                                  EMsg = 757
	EMsgClientPersonaState                               EMsg = 766
	EMsgClientFriendsList                                EMsg = 767
	EMsgClientCMList                                     EMsg = 783
	EMsgClientAddFriend                                  EMsg = 791
	EMsgClientAddFriendResponse                          EMsg = 792
	EMsgClientRequestFriendData                          EMsg = 815
	EMsgClientSessionToken                               EMsg = 850
	EMsgClientSetIgnoreFriend                            EMsg = 855
	EMsgClientSetIgnoreFriendResponse                    EMsg = 856
	EMsgClientUpdateMachineAuth                          EMsg = 1216
	EMsgClientUpdateMachineAuthResponse                  EMsg = 1217
	EMsgChannelEncryptRequest                            EMsg = 1303
	EMsgChannelEncryptResponse                           EMsg = 1304
	EMsgChannelEncryptResult                             EMsg = 1305
	EMsgClientFriendMsgIncoming                          EMsg = 5427
	EMsgClientUserNotifications                          EMsg = 5444
	EMsgClientLogon                                      EMsg = 5514
	EMsgClientItemAnnouncements                          EMsg = 5576
	EMsgClientFriendMsgEchoToSender                      EMsg = 5578
	EMsgClientRequestWebAPIAuthenticateUserNonce         EMsg = 5585
	EMsgClientRequestWebAPIAuthenticateUserNonceResponse EMsg = 5586
	EMsgClientHello                                      EMsg = 9805
)

// ProtoMask flags the high bit of the raw EMsg when the header is protobuf-encoded.
const ProtoMask uint32 = 0x80000000

// ProtoVersion is the CM protocol version announced in ClientHello and ClientLogon.
const ProtoVersion uint32 = 65581

var emsgNames = map[EMsg]string{
	EMsgMulti:                                            "Multi",
	EMsgServiceMethod:                                    "ServiceMethod",
	EMsgServiceMethodResponse:                            "ServiceMethodResponse",
	EMsgServiceMethodCallFromClient:                      "ServiceMethodCallFromClient",
	EMsgServiceMethodSendToClient:                        "ServiceMethodSendToClient",
	EMsgClientHeartBeat:                                  "ClientHeartBeat",
	EMsgClientLogOff:                                     "ClientLogOff",
	EMsgClientRemoveFriend:                               "ClientRemoveFriend",
	EMsgClientChangeStatus:                               "ClientChangeStatus",
	EMsgClientFriendMsg:                                  "ClientFriendMsg",
	EMsgClientGamesPlayed:                                "ClientGamesPlayed",
	EMsgClientLogOnResponse:                              "ClientLogOnResponse",
	EMsgClientLoggedOff:                                  "ClientLoggedOff",
	EMsgClientPersonaState:                               "ClientPersonaState",
	EMsgClientFriendsList:                                "ClientFriendsList",
	EMsgClientCMList:                                     "ClientCMList",
	EMsgClientAddFriend:                                  "ClientAddFriend",
	EMsgClientAddFriendResponse:                          "ClientAddFriendResponse",
	EMsgClientRequestFriendData:                          "ClientRequestFriendData",
	EMsgClientSessionToken:                               "ClientSessionToken",
	EMsgClientSetIgnoreFriend:                            "ClientSetIgnoreFriend",
	EMsgClientSetIgnoreFriendResponse:                    "ClientSetIgnoreFriendResponse",
	EMsgClientUpdateMachineAuth:                          "ClientUpdateMachineAuth",
	EMsgClientUpdateMachineAuthResponse:                  "ClientUpdateMachineAuthResponse",
	EMsgChannelEncryptRequest:                            "ChannelEncryptRequest",
	EMsgChannelEncryptResponse:                           "ChannelEncryptResponse",
	EMsgChannelEncryptResult:                             "ChannelEncryptResult",
	EMsgClientFriendMsgIncoming:                          "ClientFriendMsgIncoming",
	EMsgClientUserNotifications:                          "ClientUserNotifications",
	EMsgClientLogon:                                      "ClientLogon",
	EMsgClientItemAnnouncements:                          "ClientItemAnnouncements",
	EMsgClientFriendMsgEchoToSender:                      "ClientFriendMsgEchoToSender",
	EMsgClientRequestWebAPIAuthenticateUserNonce:         "ClientRequestWebAPIAuthenticateUserNonce",
	EMsgClientRequestWebAPIAuthenticateUserNonceResponse: "ClientRequestWebAPIAuthenticateUserNonceResponse",
	EMsgClientHello:                                      "ClientHello",
}

func (e EMsg) String() string {
	if name, ok := emsgNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EMsg(%d)", uint32(e))
}
