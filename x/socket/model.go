package socket

// SubscribeRequest is the packet a client sends to replace its
// subscription set. "*" subscribes to every request event.
type SubscribeRequest struct {
	Requests []string `json:"requests"`
}
