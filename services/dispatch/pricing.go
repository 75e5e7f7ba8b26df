package dispatch

import "carematch/models"

// NegotiableUnit is the unit stored on offers proposed without a configured
// price.
const NegotiableUnit = "negotiable"

// Quote is the resolved price for proposing a provider. An unset quote is an
// explicit outcome, not a zero price: a provider with no configured rate for
// the service is still proposable, and downstream consumers must not mistake
// "free" for "unset".
type Quote struct {
	Unit   string
	Amount float64
	Set    bool
}

// ResolveQuote looks up the provider's configured rate for the service type,
// falling back to an unset negotiable quote.
func ResolveQuote(p *models.Provider, serviceType models.ServiceType) Quote {
	if price, ok := p.Profile.Pricing[serviceType]; ok && price.Unit != "" {
		return Quote{Unit: price.Unit, Amount: price.Amount, Set: true}
	}
	return Quote{Unit: NegotiableUnit}
}
