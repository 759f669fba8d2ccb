package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesFromMetadata(t *testing.T) {
	cases := []struct {
		name  string
		meta  map[string]string
		first string
		last  string
	}{
		{
			name:  "given and family name",
			meta:  map[string]string{"given_name": "Asha", "family_name": "Verma"},
			first: "Asha",
			last:  "Verma",
		},
		{
			name:  "given name without family name",
			meta:  map[string]string{"given_name": "Asha"},
			first: "Asha",
			last:  "",
		},
		{
			name:  "full_name split on first space",
			meta:  map[string]string{"full_name": "Asha Verma"},
			first: "Asha",
			last:  "Verma",
		},
		{
			name:  "full_name with middle name keeps remainder as last",
			meta:  map[string]string{"full_name": "Asha Kumari Verma"},
			first: "Asha",
			last:  "Kumari Verma",
		},
		{
			name:  "name field fallback",
			meta:  map[string]string{"name": "Ravi Singh"},
			first: "Ravi",
			last:  "Singh",
		},
		{
			name:  "display_name fallback",
			meta:  map[string]string{"display_name": "Ravi"},
			first: "Ravi",
			last:  "",
		},
		{
			name:  "given_name wins over full_name",
			meta:  map[string]string{"given_name": "Asha", "full_name": "Someone Else"},
			first: "Asha",
			last:  "",
		},
		{
			name:  "whitespace-only full_name is skipped",
			meta:  map[string]string{"full_name": "   ", "name": "Ravi Singh"},
			first: "Ravi",
			last:  "Singh",
		},
		{
			name: "empty metadata",
			meta: map[string]string{},
		},
		{
			name: "nil metadata",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := NamesFromMetadata(tc.meta)
			assert.Equal(t, tc.first, first)
			assert.Equal(t, tc.last, last)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&Profile{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Profile{Role: RoleUser}).IsAdmin())
}
