package message

import "encoding/json"

// ForwardV1 is the routing envelope under settings.V1: msg carries the
// packed bytes of the next hop's message, opaque to this hop.
type ForwardV1 struct {
	Type MessageTypeV1 `msgpack:"@type"`
	FWD  string        `msgpack:"@fwd"`
	Msg  []byte        `msgpack:"@msg"`
}

func (m ForwardV1) MessageKind() Kind { return KindForward }

// ForwardV2 is the routing envelope under settings.V2: msg carries the
// next hop's message as a parsed JSON value rather than opaque bytes.
type ForwardV2 struct {
	Type MessageTypeV2   `json:"@type"`
	FWD  string          `json:"@fwd"`
	Msg  json.RawMessage `json:"@msg"`
}

func (m ForwardV2) MessageKind() Kind { return KindForward }

// Connect is the opening handshake a new SDK instance sends to the
// agency, authenticated by fromDID/fromDIDVerkey.
type Connect struct {
	Type           MessageTypeUnion `json:"@type" msgpack:"@type"`
	FromDID        string           `json:"fromDID" msgpack:"fromDID"`
	FromDIDVerkey  string           `json:"fromDIDVerkey" msgpack:"fromDIDVerkey"`
}

func (m Connect) MessageKind() Kind { return KindConnect }

// Connected is the agency's reply to Connect, handing back its own
// identity for this agent's box.
type Connected struct {
	Type          MessageTypeUnion `json:"@type" msgpack:"@type"`
	WithPairwiseDID       string   `json:"withPairwiseDID" msgpack:"withPairwiseDID"`
	WithPairwiseDIDVerkey string   `json:"withPairwiseDIDVerkey" msgpack:"withPairwiseDIDVerkey"`
}

func (m Connected) MessageKind() Kind { return KindConnected }

// SignUp requests agency-side provisioning of a new agent.
type SignUp struct {
	Type MessageTypeUnion `json:"@type" msgpack:"@type"`
}

func (m SignUp) MessageKind() Kind { return KindSignUp }

// SignedUp confirms provisioning completed.
type SignedUp struct {
	Type MessageTypeUnion `json:"@type" msgpack:"@type"`
}

func (m SignedUp) MessageKind() Kind { return KindSignedUp }

// CreateAgent requests a dedicated agent (cloud agent) be created for
// this identity.
type CreateAgent struct {
	Type MessageTypeUnion `json:"@type" msgpack:"@type"`
}

func (m CreateAgent) MessageKind() Kind { return KindCreateAgent }

// AgentCreated returns the newly created agent's DID/verkey pair.
type AgentCreated struct {
	Type         MessageTypeUnion `json:"@type" msgpack:"@type"`
	WithPairwiseDID       string  `json:"withPairwiseDID" msgpack:"withPairwiseDID"`
	WithPairwiseDIDVerkey string  `json:"withPairwiseDIDVerkey" msgpack:"withPairwiseDIDVerkey"`
}

func (m AgentCreated) MessageKind() Kind { return KindAgentCreated }

// CreateKey requests a new pairwise signing key be created for a
// connection under construction.
type CreateKey struct {
	Type          MessageTypeUnion `json:"@type" msgpack:"@type"`
	ForDID        string           `json:"forDID" msgpack:"forDID"`
	ForDIDVerkey  string           `json:"forDIDVerkey" msgpack:"forDIDVerkey"`
}

func (m CreateKey) MessageKind() Kind { return KindCreateKey }

// KeyCreated returns the pairwise DID/verkey the agency created.
type KeyCreated struct {
	Type        MessageTypeUnion `json:"@type" msgpack:"@type"`
	WithPairwiseDID       string `json:"withPairwiseDID" msgpack:"withPairwiseDID"`
	WithPairwiseDIDVerkey string `json:"withPairwiseDIDVerkey" msgpack:"withPairwiseDIDVerkey"`
}

func (m KeyCreated) MessageKind() Kind { return KindKeyCreated }

// CreateMessage is V1-only: it asks the agency to store and forward an
// application message described by the MessageDetailMessage bundled
// alongside it.
type CreateMessage struct {
	Type         MessageTypeV1     `msgpack:"@type"`
	Uid          string            `msgpack:"uid,omitempty"`
	Mtype        RemoteMessageType `msgpack:"mtype"`
	SendMsg      bool              `msgpack:"sendMsg"`
	ReplyToMsgID string            `msgpack:"replyToMsgId,omitempty"`
}

func (m CreateMessage) MessageKind() Kind { return KindCreateMessage }

// MessageDetailMessage is V1-only: the sibling message bundled
// alongside CreateMessage in the same PrepareMessageForAgent list,
// carrying the actual application payload a MessageDetail describes.
type MessageDetailMessage struct {
	Type    MessageTypeV1     `msgpack:"@type"`
	MsgType RemoteMessageType `msgpack:"msg_type"`
	Detail  json.RawMessage   `msgpack:"detail"`
}

func (m MessageDetailMessage) MessageKind() Kind { return KindMessageDetail }

// MessageCreated is V1-only: the agency's acknowledgement of
// CreateMessage, returning the message's assigned uid.
type MessageCreated struct {
	Type MessageTypeV1 `msgpack:"@type"`
	Uid  string        `msgpack:"uid"`
}

func (m MessageCreated) MessageKind() Kind { return KindMessageCreated }

// MessageSent is V1-only: confirms a created message was delivered.
// Decodes from either "MSG_SENT" or "MSGS_SENT" on the wire.
type MessageSent struct {
	Type MessageTypeV1 `msgpack:"@type"`
	Uids []string      `msgpack:"uids"`
}

func (m MessageSent) MessageKind() Kind { return KindMessageSent }

// GetMessages requests stored messages, optionally filtered by status
// or uid.
type GetMessages struct {
	Type            MessageTypeUnion `json:"@type" msgpack:"@type"`
	ExcludePayload  string           `json:"excludePayload,omitempty" msgpack:"excludePayload,omitempty"`
	Uids            []string         `json:"uids,omitempty" msgpack:"uids,omitempty"`
	StatusCodes     []StatusCode     `json:"statusCodes,omitempty" msgpack:"statusCodes,omitempty"`
}

func (m GetMessages) MessageKind() Kind { return KindGetMessages }

// GetMessagesByConnections is V1-shared: the same query as GetMessages,
// scoped across a set of named pairwise connections.
type GetMessagesByConnections struct {
	Type           MessageTypeUnion `json:"@type" msgpack:"@type"`
	ExcludePayload string           `json:"excludePayload,omitempty" msgpack:"excludePayload,omitempty"`
	Uids           []string         `json:"uids,omitempty" msgpack:"uids,omitempty"`
	StatusCodes    []StatusCode     `json:"statusCodes,omitempty" msgpack:"statusCodes,omitempty"`
	PairwiseDIDs   []string         `json:"pairwiseDIDs,omitempty" msgpack:"pairwiseDIDs,omitempty"`
}

func (m GetMessagesByConnections) MessageKind() Kind { return KindGetMessagesByConnections }

// MessageDetailEnvelope is one entry in a Messages/MessagesByConnections
// response: the message's identity, status, and encoded payload.
type MessageDetailEnvelope struct {
	Uid          string     `json:"uid" msgpack:"uid"`
	StatusCode   StatusCode `json:"statusCode" msgpack:"statusCode"`
	SenderDID    string     `json:"senderDID,omitempty" msgpack:"senderDID,omitempty"`
	Type         string     `json:"type,omitempty" msgpack:"type,omitempty"`
	Payload      []byte     `json:"payload,omitempty" msgpack:"payload,omitempty"`
	RefMsgID     string     `json:"refMsgId,omitempty" msgpack:"refMsgId,omitempty"`
}

// Messages answers GetMessages.
type Messages struct {
	Type MessageTypeUnion        `json:"@type" msgpack:"@type"`
	Msgs []MessageDetailEnvelope `json:"msgs" msgpack:"msgs"`
}

func (m Messages) MessageKind() Kind { return KindMessages }

// ConnectionMessages groups a connection's messages by pairwise DID,
// the per-connection unit MessagesByConnections returns.
type ConnectionMessages struct {
	PairwiseDID string                  `json:"pairwiseDID" msgpack:"pairwiseDID"`
	Msgs        []MessageDetailEnvelope `json:"msgs" msgpack:"msgs"`
}

// MessagesByConnections answers GetMessagesByConnections (V1-shared).
type MessagesByConnections struct {
	Type        MessageTypeUnion     `json:"@type" msgpack:"@type"`
	MsgsByConns []ConnectionMessages `json:"msgsByConns" msgpack:"msgsByConns"`
}

func (m MessagesByConnections) MessageKind() Kind { return KindMessagesByConnections }

// UidByConnection is one entry of a batched status update, naming the
// connection and the message uids whose status is changing.
type UidByConnection struct {
	PairwiseDID string   `json:"pairwiseDID" msgpack:"pairwiseDID"`
	Uids        []string `json:"uids" msgpack:"uids"`
}

// UpdateMessageStatusByConnections bulk-updates message status across
// several connections in one request.
type UpdateMessageStatusByConnections struct {
	Type               MessageTypeUnion  `json:"@type" msgpack:"@type"`
	UidsByConns        []UidByConnection `json:"uidsByConns" msgpack:"uidsByConns"`
	StatusCode         StatusCode        `json:"statusCode" msgpack:"statusCode"`
}

func (m UpdateMessageStatusByConnections) MessageKind() Kind {
	return KindUpdateMessageStatusByConnections
}

// MessageStatusUpdatedByConnections confirms the bulk status update.
type MessageStatusUpdatedByConnections struct {
	Type        MessageTypeUnion  `json:"@type" msgpack:"@type"`
	UidsByConns []UidByConnection `json:"updatedUidsByConns" msgpack:"updatedUidsByConns"`
}

func (m MessageStatusUpdatedByConnections) MessageKind() Kind {
	return KindMessageStatusUpdatedByConnections
}

// UpdateConnectionStatus changes a single pairwise connection's status
// (e.g. marking it deleted).
type UpdateConnectionStatus struct {
	Type       MessageTypeUnion `json:"@type" msgpack:"@type"`
	StatusCode StatusCode       `json:"statusCode" msgpack:"statusCode"`
}

func (m UpdateConnectionStatus) MessageKind() Kind { return KindUpdateConnectionStatus }

// ConnectionStatusUpdated confirms the status change.
type ConnectionStatusUpdated struct {
	Type       MessageTypeUnion `json:"@type" msgpack:"@type"`
	StatusCode StatusCode       `json:"statusCode" msgpack:"statusCode"`
}

func (m ConnectionStatusUpdated) MessageKind() Kind { return KindConnectionStatusUpdated }

// ConfigOption is one key/value pair in UpdateConfigs.
type ConfigOption struct {
	Name  string `json:"name" msgpack:"name"`
	Value string `json:"value" msgpack:"value"`
}

// UpdateConfigs pushes a batch of agent-side configuration values
// (display name, logo URL, and so on) up to the agency.
type UpdateConfigs struct {
	Type          MessageTypeUnion `json:"@type" msgpack:"@type"`
	Configs       []ConfigOption   `json:"configs" msgpack:"configs"`
}

func (m UpdateConfigs) MessageKind() Kind { return KindUpdateConfigs }

// ConfigsUpdated confirms UpdateConfigs was applied.
type ConfigsUpdated struct {
	Type MessageTypeUnion `json:"@type" msgpack:"@type"`
}

func (m ConfigsUpdated) MessageKind() Kind { return KindConfigsUpdated }

// ComMethod describes one delivery channel (push notification token,
// webhook URL) registered via UpdateConMethod.
type ComMethod struct {
	ID    string `json:"id" msgpack:"id"`
	Type  int    `json:"type" msgpack:"type"`
	Value string `json:"value" msgpack:"value"`
}

// UpdateConMethod registers or updates a communication method the
// agency should use to notify this agent of new messages.
type UpdateConMethod struct {
	Type    MessageTypeUnion `json:"@type" msgpack:"@type"`
	ComMethod ComMethod      `json:"comMethod" msgpack:"comMethod"`
}

func (m UpdateConMethod) MessageKind() Kind { return KindUpdateConMethod }

// ConnectionRequest is V2-only: the out-of-band request to establish a
// new pairwise connection, threaded via Thread.
type ConnectionRequest struct {
	Type           MessageTypeV2   `json:"@type"`
	KeyDlgProof    json.RawMessage `json:"keyDlgProof"`
	Phone          string          `json:"phone,omitempty"`
	UsePublicDID   bool            `json:"use_public_did,omitempty"`
	Thread         Thread          `json:"~thread"`
}

func (m ConnectionRequest) MessageKind() Kind { return KindConnectionRequest }

// ConnectionRequestResponse confirms ConnectionRequest, returning the
// invitation details the requester relays out of band.
type ConnectionRequestResponse struct {
	Type              MessageTypeV2 `json:"@type"`
	InviteDetail      json.RawMessage `json:"inviteDetail"`
	URLToInviteDetail string        `json:"urlToInviteDetail,omitempty"`
	Thread            Thread        `json:"~thread"`
}

func (m ConnectionRequestResponse) MessageKind() Kind { return KindConnectionRequestResponse }

// ConnectionRequestAnswer is V2-only: the invited party's reply
// accepting or declining a ConnectionRequest.
type ConnectionRequestAnswer struct {
	Type        MessageTypeV2   `json:"@type"`
	SenderDetail json.RawMessage `json:"senderDetail"`
	SenderAgencyDetail json.RawMessage `json:"senderAgencyDetail"`
	ReplyToMsgID string         `json:"replyToMsgId,omitempty"`
	Thread       Thread         `json:"~thread"`
}

func (m ConnectionRequestAnswer) MessageKind() Kind { return KindConnectionRequestAnswer }

// ConnectionRequestAnswerResponse confirms ConnectionRequestAnswer.
type ConnectionRequestAnswerResponse struct {
	Type   MessageTypeV2 `json:"@type"`
	Thread Thread        `json:"~thread"`
}

func (m ConnectionRequestAnswerResponse) MessageKind() Kind {
	return KindConnectionRequestAnswerResponse
}

// SendRemoteMessage is V2-only: asks the agency to relay an
// application message (connReq, credOffer, proof, ...) to a pairwise
// connection without going through the CreateMessage/GetMessages
// store-and-fetch cycle.
type SendRemoteMessage struct {
	Type       MessageTypeV2     `json:"@type"`
	ID         string            `json:"@id"`
	Mtype      RemoteMessageType `json:"mtype"`
	SendMsg    bool              `json:"sendMsg"`
	ReplyToMsgID string          `json:"replyToMsgId,omitempty"`
	Message    json.RawMessage   `json:"message"`
}

func (m SendRemoteMessage) MessageKind() Kind { return KindSendRemoteMessage }

// SendRemoteMessageResponse confirms delivery of a SendRemoteMessage.
type SendRemoteMessageResponse struct {
	Type  MessageTypeV2   `json:"@type"`
	ID    string          `json:"@id"`
	Sent  bool            `json:"sent"`
	Message json.RawMessage `json:"message,omitempty"`
}

func (m SendRemoteMessageResponse) MessageKind() Kind { return KindSendRemoteMessageResponse }
