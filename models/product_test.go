package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscountLabel(t *testing.T) {
	assert.Equal(t, "Shirt DISCOUNTED", ApplyDiscountLabel("Shirt"))
}

func TestApplyDiscountLabelStacks(t *testing.T) {
	// Repeated edits keep appending; the label is part of the stored name,
	// not a display-time decoration.
	once := ApplyDiscountLabel("Shirt")
	assert.Equal(t, "Shirt DISCOUNTED DISCOUNTED", ApplyDiscountLabel(once))
}

func TestUsernameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane.doe@example.com", "jane.doe"},
		{"a@b", "a"},
		{"noatsign", "noatsign"},
		{"@leading.example.com", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UsernameFromEmail(tt.email), tt.email)
	}
}
