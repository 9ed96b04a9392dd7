package message

// Thread correlates a message with the exchange it belongs to, carried
// by the V2 connection-request/answer messages and their responses.
type Thread struct {
	ThID           string         `json:"thid,omitempty" msgpack:"thid,omitempty"`
	PThID          string         `json:"pthid,omitempty" msgpack:"pthid,omitempty"`
	SenderOrder    int            `json:"sender_order"`
	ReceivedOrders map[string]int `json:"received_orders,omitempty" msgpack:"received_orders,omitempty"`
}
