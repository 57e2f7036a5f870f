package display

import "testing"

func TestWithComma(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{999999, "999,999"},
		{1000000, "1,000,000"},
		{-1, "-1"},
		{-100, "-100"},
		{-1000, "-1,000"},
		{-999999, "-999,999"},
		{-1999999, "-1,999,999"},
	}

	for _, tt := range tests {
		if got := WithComma(tt.n); got != tt.want {
			t.Errorf("WithComma(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{123, "123"},
		{1000, "1.0K"},
		{1234, "1.2K"},
		{1299, "1.2K"},
		{999999, "999.9K"},
		{1234999, "1.2M"},
		{-5000, "-5,000"},
	}

	for _, tt := range tests {
		if got := WithSuffix(tt.n); got != tt.want {
			t.Errorf("WithSuffix(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
