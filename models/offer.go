package models

import "time"

// Offer is a proposed, not-yet-accepted pairing of a provider to a request.
// Existence means "proposed"; acceptance is inferred downstream by correlating
// with the request's providerId after assignment. Unique on
// (requestId, providerId).
type Offer struct {
	ID         string    `bson:"id" json:"id"`
	RequestID  string    `bson:"requestId" json:"requestId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Unit       string    `bson:"unit" json:"unit"`
	Amount     float64   `bson:"amount" json:"amount"`
	PriceSet   bool      `bson:"priceSet" json:"priceSet"` // false: price to be negotiated, Amount is a sentinel
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
