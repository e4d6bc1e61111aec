package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBareFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"logo.png", "logo.png"},
		{"uploads/logo.png", "logo.png"},
		{"/var/data/tenants/abc/uploads/logo.png", "logo.png"},
		{"uploads\\windows\\logo.png", "logo.png"},
		{"logo.png?v=2", "logo.png"},
		{"uploads/", ""},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, BareFileName(tc.in), "input %q", tc.in)
	}
}
