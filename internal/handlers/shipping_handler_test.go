package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OnSightTeam/ordersvc/pkg/logger"
)

func TestShippingHandler_Quote(t *testing.T) {
	handler := NewShippingHandler(logger.New("error"))

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCost   float64
	}{
		{
			name:           "heavy parcel",
			query:          "weight=51",
			expectedStatus: http.StatusOK,
			expectedCost:   25.99,
		},
		{
			name:           "boundary weight ships standard",
			query:          "weight=50",
			expectedStatus: http.StatusOK,
			expectedCost:   9.99,
		},
		{
			name:           "light parcel",
			query:          "weight=2.5",
			expectedStatus: http.StatusOK,
			expectedCost:   9.99,
		},
		{
			name:           "missing weight",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric weight",
			query:          "weight=heavy",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative weight",
			query:          "weight=-4",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "NaN weight",
			query:          "weight=NaN",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "infinite weight",
			query:          "weight=Inf",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/shipping/quote?"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.Quote(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response map[string]float64
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response["cost"] != tt.expectedCost {
				t.Errorf("cost = %v, want %v", response["cost"], tt.expectedCost)
			}
		})
	}
}
