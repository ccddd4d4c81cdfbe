package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"100.50", "One Hundred Rupees and Fifty Paise Only"},
		{"0.75", "Seventy Five Paise Only"},
		{"1", "One Rupees Only"},
		{"19", "Nineteen Rupees Only"},
		{"21", "Twenty One Rupees Only"},
		{"1180", "One Thousand One Hundred Eighty Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"1234567.89", "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven Rupees and Eighty Nine Paise Only"},
		{"10000000", "One Crore Rupees Only"},
		{"25000000001", "Two Thousand Five Hundred Crore One Rupees Only"},
		{"-100.50", "Negative One Hundred Rupees and Fifty Paise Only"},
		{"99.999", "One Hundred Rupees Only"},
		{"-0.001", "Zero Rupees Only"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(d(tt.amount)))
		})
	}
}

func TestAmountInWords_Deterministic(t *testing.T) {
	amount := d("987654321.12")
	first := AmountInWords(amount)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, AmountInWords(amount))
	}
}

func TestAmountInWords_BeyondInt64(t *testing.T) {
	assert.Equal(t, "One Lakh Crore Crore Rupees and Fifty Paise Only", AmountInWords(d("10000000000000000000.50")))

	// One past the largest int64.
	words := AmountInWords(d("9223372036854775808"))
	assert.Equal(t, "Ninety Two Thousand Two Hundred Thirty Three Crore Seventy Two Lakh Three Thousand Six Hundred Eighty Five Crore "+
		"Forty Seven Lakh Seventy Five Thousand Eight Hundred Eight Rupees Only", words)
	assert.NotContains(t, words, "Negative")
}
