package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func TestParseRoles(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []domain.Role
	}{
		{"single", "Admin", []domain.Role{"Admin"}},
		{"multiple", "Admin,Manager", []domain.Role{"Admin", "Manager"}},
		{"whitespace trimmed", " Admin , Manager ", []domain.Role{"Admin", "Manager"}},
		{"empty segments dropped", "Admin,,  ,Manager", []domain.Role{"Admin", "Manager"}},
		{"only separators", ", ,", []domain.Role{}},
		{"empty string", "", []domain.Role{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.ParseRoles(tc.input))
		})
	}
}

func TestRoleIsIgnoresCase(t *testing.T) {
	assert.True(t, domain.Role("admin").Is(domain.RoleAdmin))
	assert.True(t, domain.Role("MANAGER").Is(domain.RoleManager))
	assert.False(t, domain.Role("Admin").Is(domain.RoleManager))
}
