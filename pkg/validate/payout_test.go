package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPayoutNumber(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected bool
	}{
		{name: "Typical wallet number", number: "081234567890", expected: true},
		{name: "Shortest accepted", number: "12345", expected: true},
		{name: "Longest accepted", number: "12345678901234567890", expected: true},
		{name: "Too short", number: "1234", expected: false},
		{name: "Too long", number: "123456789012345678901", expected: false},
		{name: "Contains letters", number: "0812abc7890", expected: false},
		{name: "Contains spaces", number: "0812 34567890", expected: false},
		{name: "Contains plus prefix", number: "+6281234567890", expected: false},
		{name: "Empty", number: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPayoutNumber(tt.number))
		})
	}
}
