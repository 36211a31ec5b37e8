package repository

import "testing"

func TestBuildSearchText(t *testing.T) {
	got := BuildSearchText("Kids Bike", "Barely used, GREAT condition")
	want := "kids bike barely used, great condition"
	if got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
}

func TestBooleanSearchExpr(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		want  string
	}{
		{"two terms", []string{"kids", "bike"}, "+kids +bike"},
		{"case folded", []string{"Kids"}, "+kids"},
		{"operators stripped", []string{"+kids", "-bike*"}, "+kids +bike"},
		{"empty", nil, ""},
		{"blank terms skipped", []string{" ", "bike"}, "+bike"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BooleanSearchExpr(tt.terms)
			if got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}
