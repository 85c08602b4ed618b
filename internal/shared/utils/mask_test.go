package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ana.k@hostel.edu", "a***@hostel.edu"},
		{"x@hostel.edu", "x***@hostel.edu"},
		{"  ravi@hostel.edu ", "r***@hostel.edu"},
		{"@hostel.edu", "***@hostel.edu"},
		{"émile@hostel.edu", "é***@hostel.edu"},
		{"not-an-email", "***"},
		{"trailing@", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.in))
		})
	}
}
