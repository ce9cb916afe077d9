package format

import "testing"

func TestAmount(t *testing.T) {
	testCases := []struct {
		name     string
		value    float64
		currency string
		want     string
	}{
		{name: "no currency", value: 1234.5, currency: "", want: "1234.50"},
		{name: "usd", value: 1234.5, currency: "usd", want: "$1,234.50"},
		{name: "unknown", value: 2, currency: "XYZ1", want: "2.00 XYZ1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Amount(tc.value, tc.currency); got != tc.want {
				t.Errorf("Amount(%v, %q) = %q, want %q", tc.value, tc.currency, got, tc.want)
			}
		})
	}
}

func TestShare(t *testing.T) {
	if got := Share(0.375); got != "37.50%" {
		t.Errorf("Share(0.375) = %q", got)
	}
}
