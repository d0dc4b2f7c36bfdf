package model

// SubscriptionKeys are the encryption keys issued by the subscriber's
// browser alongside the endpoint.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushSubscription is the browser-issued endpoint descriptor, in the wire
// shape produced by PushManager.subscribe.
type PushSubscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// PushPayload is the JSON body delivered to a push endpoint.
type PushPayload struct {
	Title string       `json:"title"`
	Body  string       `json:"body"`
	Icon  string       `json:"icon,omitempty"`
	Badge string       `json:"badge,omitempty"`
	Data  PushDeepLink `json:"data"`
}

// PushDeepLink points the admin back at the order list.
type PushDeepLink struct {
	OrderID string `json:"orderId,omitempty"`
	URL     string `json:"url"`
}
