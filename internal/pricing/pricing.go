// Package pricing computes order totals, discounts, and shipping costs.
//
// All money math runs through shopspring/decimal so that chained percentage
// discounts come out exact (100 discounted by 5% then 10% is 85.5, not a
// float64 neighbour of it). Callers see plain float64 at the boundaries.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/OnSightTeam/ordersvc/internal/models"
)

// Default tier discounts, in percent off the subtotal.
const (
	premiumPercentOff   = 10
	regularPercentOff   = 5
	wholesalePercentOff = 20
)

// Shipping rate bands. Parcels above the standard weight limit ship at the
// heavy-parcel rate; everything else ships at the standard rate.
const (
	standardWeightLimit = 50.0
	heavyParcelCost     = 25.99
	standardParcelCost  = 9.99
)

// Schedule maps order types to their tier discount.
// New order types are added here, not as new branches in the quote path.
type Schedule struct {
	tiers map[models.OrderType]int64
}

// NewSchedule returns a Schedule seeded with the default tiers.
func NewSchedule() *Schedule {
	return &Schedule{
		tiers: map[models.OrderType]int64{
			models.OrderTypePremium:   premiumPercentOff,
			models.OrderTypeRegular:   regularPercentOff,
			models.OrderTypeWholesale: wholesalePercentOff,
		},
	}
}

// PercentOff returns the tier discount for an order type.
// Unrecognized order types earn no discount.
func (s *Schedule) PercentOff(orderType models.OrderType) int64 {
	return s.tiers[orderType]
}

// Quote is the priced breakdown of an order.
// TierDiscount and CodeDiscount are the amounts taken off, in order.
type Quote struct {
	Subtotal     float64
	TierDiscount float64
	CodeDiscount float64
	Total        float64
}

// Quote prices an order: line-item subtotal, then the tier discount for the
// order type, then the discount-code percentage applied to what remains.
// codePercent is zero when no (or an unknown) code was supplied.
func (s *Schedule) Quote(items []models.OrderItem, orderType models.OrderType, codePercent int64) Quote {
	subtotal := subtotal(items)
	afterTier := applyPercentOff(subtotal, s.PercentOff(orderType))
	afterCode := applyPercentOff(afterTier, codePercent)

	return Quote{
		Subtotal:     subtotal.InexactFloat64(),
		TierDiscount: subtotal.Sub(afterTier).InexactFloat64(),
		CodeDiscount: afterTier.Sub(afterCode).InexactFloat64(),
		Total:        afterCode.InexactFloat64(),
	}
}

// Subtotal sums price × quantity over the line items.
func Subtotal(items []models.OrderItem) float64 {
	return subtotal(items).InexactFloat64()
}

// ShippingCost returns the flat shipping cost for a parcel weight.
func ShippingCost(weight float64) float64 {
	if weight > standardWeightLimit {
		return heavyParcelCost
	}
	return standardParcelCost
}

func subtotal(items []models.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

func applyPercentOff(amount decimal.Decimal, percent int64) decimal.Decimal {
	if percent <= 0 {
		return amount
	}
	return amount.Mul(decimal.NewFromInt(100 - percent)).Div(decimal.NewFromInt(100))
}
