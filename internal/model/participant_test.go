package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstToken(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		expected string
	}{
		{name: "first and last name", fullName: "Ada Obi", expected: "Ada"},
		{name: "single token", fullName: "Ada", expected: "Ada"},
		{name: "extra whitespace", fullName: "  Ada   Obi  ", expected: "Ada"},
		{name: "empty", fullName: "", expected: ""},
		{name: "only whitespace", fullName: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Participant{FullName: tt.fullName}
			assert.Equal(t, tt.expected, p.FirstName())
		})
	}
}
