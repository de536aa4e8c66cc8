package domain

import "time"

// ProviderDecline is an append-only fact: the provider has explicitly
// rejected (or cancelled after acceptance) the request and must never
// see it again, no matter how its status changes afterwards
type ProviderDecline struct {
	ProviderID    int64
	WashRequestID int64
	DeclinedAt    time.Time
}
