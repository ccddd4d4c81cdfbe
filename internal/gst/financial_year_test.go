package gst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-02-15", "24-25"},
		{"2025-04-01", "25-26"},
		{"2025-03-31", "24-25"},
		{"2024-12-31", "24-25"},
		{"2025-01-01", "24-25"},
		{"2099-06-01", "99-00"},
		{"2000-01-10", "99-00"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FinancialYear(date))
		})
	}
}
