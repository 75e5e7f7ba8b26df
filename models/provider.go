package models

import "time"

// ServicePrice is a provider's configured rate for one service type.
type ServicePrice struct {
	Unit   string  `bson:"unit" json:"unit"` // e.g. "hour", "visit", "day"
	Amount float64 `bson:"amount" json:"amount"`
}

// ProviderProfile holds the matching-relevant portion of a caregiver account.
type ProviderProfile struct {
	ServicesOffered []ServiceType               `bson:"servicesOffered" json:"servicesOffered"`
	Region          string                      `bson:"region" json:"region"`
	WorkRegions     []string                    `bson:"workRegions,omitempty" json:"workRegions,omitempty"`
	City            string                      `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode      string                      `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Pricing         map[ServiceType]ServicePrice `bson:"pricing,omitempty" json:"pricing,omitempty"`
}

// Provider is an independent caregiver registered on the platform.
type Provider struct {
	ID           string          `bson:"id" json:"id"`
	Name         string          `bson:"name" json:"name"`
	Email        string          `bson:"email" json:"email,omitempty"`
	PasswordHash string          `bson:"passwordHash,omitempty" json:"-"`
	FCMToken     string          `bson:"fcmToken,omitempty" json:"-"`
	Profile      ProviderProfile `bson:"profile" json:"profile"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
}

// Offers reports whether the provider has declared st in their catalogue.
func (p *Provider) Offers(st ServiceType) bool {
	for _, s := range p.Profile.ServicesOffered {
		if s == st {
			return true
		}
	}
	return false
}
