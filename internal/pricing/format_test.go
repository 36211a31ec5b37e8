package pricing

import "testing"

func f(v float64) *float64 { return &v }

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		price    *float64
		currency string
		want     string
	}{
		{"cad whole", f(25.00), "CAD", "C$25"},
		{"usd whole", f(25.00), "USD", "$25"},
		{"nil price", nil, "CAD", "Contact for price"},
		{"usd cents", f(12.5), "USD", "$12.5"},
		{"gbp", f(9), "GBP", "£9"},
		{"unknown currency", f(30), "AED", "AED 30"},
		{"empty currency", f(30), "", "30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.price, tt.currency)
			if got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}
