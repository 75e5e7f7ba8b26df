package models

// DispatchNoticePayload is the queued message produced after a successful
// dispatch operation. The worker resolves the provider and delivers the
// notice; delivery failures are logged and swallowed.
type DispatchNoticePayload struct {
	ProviderID string `json:"providerId"`
	RequestID  string `json:"requestId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Kind       string `json:"kind"` // "assignment" or "proposal"
}
