package pricing

import (
	"testing"

	"github.com/OnSightTeam/ordersvc/internal/models"
)

func TestSchedule_Quote(t *testing.T) {
	schedule := NewSchedule()

	hundred := []models.OrderItem{
		{Name: "Margherita Pizza", Price: 25.0, Quantity: 2},
		{Name: "Caesar Salad", Price: 10.0, Quantity: 5},
	}

	tests := []struct {
		name        string
		items       []models.OrderItem
		orderType   models.OrderType
		codePercent int64
		wantTotal   float64
	}{
		{
			name:      "premium order without code",
			items:     hundred,
			orderType: models.OrderTypePremium,
			wantTotal: 90,
		},
		{
			name:        "regular order with 10 percent code",
			items:       hundred,
			orderType:   models.OrderTypeRegular,
			codePercent: 10,
			wantTotal:   85.5,
		},
		{
			name:        "wholesale order with 20 percent code",
			items:       hundred,
			orderType:   models.OrderTypeWholesale,
			codePercent: 20,
			wantTotal:   64,
		},
		{
			name:      "unknown order type gets no tier discount",
			items:     hundred,
			orderType: "mystery",
			wantTotal: 100,
		},
		{
			name:        "unknown type with code still applies the code",
			items:       hundred,
			orderType:   "mystery",
			codePercent: 10,
			wantTotal:   90,
		},
		{
			name:      "empty order prices to zero",
			items:     nil,
			orderType: models.OrderTypePremium,
			wantTotal: 0,
		},
		{
			name:      "fractional prices survive the discount chain",
			items:     []models.OrderItem{{Price: 12.99, Quantity: 3}},
			orderType: models.OrderTypeRegular,
			wantTotal: 37.0215,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := schedule.Quote(tt.items, tt.orderType, tt.codePercent)

			if quote.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v", quote.Total, tt.wantTotal)
			}

			wantOff := quote.Subtotal - tt.wantTotal
			gotOff := quote.TierDiscount + quote.CodeDiscount
			if diff := gotOff - wantOff; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("discounts sum to %v, want %v", gotOff, wantOff)
			}
		})
	}
}

func TestSchedule_Quote_Breakdown(t *testing.T) {
	schedule := NewSchedule()
	items := []models.OrderItem{{Price: 100, Quantity: 1}}

	quote := schedule.Quote(items, models.OrderTypeRegular, 10)

	if quote.Subtotal != 100 {
		t.Errorf("Subtotal = %v, want 100", quote.Subtotal)
	}
	if quote.TierDiscount != 5 {
		t.Errorf("TierDiscount = %v, want 5", quote.TierDiscount)
	}
	if quote.CodeDiscount != 9.5 {
		t.Errorf("CodeDiscount = %v, want 9.5", quote.CodeDiscount)
	}
	if quote.Total != 85.5 {
		t.Errorf("Total = %v, want 85.5", quote.Total)
	}
}

func TestSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: 12.99, Quantity: 2},
		{Price: 9.49, Quantity: 1},
	}

	if got := Subtotal(items); got != 35.47 {
		t.Errorf("Subtotal = %v, want 35.47", got)
	}

	if got := Subtotal(nil); got != 0 {
		t.Errorf("Subtotal(nil) = %v, want 0", got)
	}
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   float64
	}{
		{name: "above the standard limit", weight: 51, want: 25.99},
		{name: "exactly at the limit ships standard", weight: 50, want: 9.99},
		{name: "light parcel", weight: 0.5, want: 9.99},
		{name: "heavy parcel", weight: 120, want: 25.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShippingCost(tt.weight); got != tt.want {
				t.Errorf("ShippingCost(%v) = %v, want %v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestSchedule_PercentOff(t *testing.T) {
	schedule := NewSchedule()

	tests := []struct {
		orderType models.OrderType
		want      int64
	}{
		{models.OrderTypePremium, 10},
		{models.OrderTypeRegular, 5},
		{models.OrderTypeWholesale, 20},
		{"", 0},
		{"gold", 0},
	}

	for _, tt := range tests {
		if got := schedule.PercentOff(tt.orderType); got != tt.want {
			t.Errorf("PercentOff(%q) = %d, want %d", tt.orderType, got, tt.want)
		}
	}
}
