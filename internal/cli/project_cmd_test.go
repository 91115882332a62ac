package cli

import (
	"testing"

	"github.com/netbadge-ctrl/okboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]domain.Role{
		"pm":       domain.RoleProductManager,
		"product":  domain.RoleProductManager,
		"backend":  domain.RoleBackend,
		"frontend": domain.RoleFrontend,
		"qa":       domain.RoleQA,
		"test":     domain.RoleQA,
	}
	for in, want := range cases {
		got, err := parseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := parseRole("designer")
	assert.Error(t, err)
}

func TestParseMemberSpec_MultipleRanges(t *testing.T) {
	m, err := parseMemberSpec("u1=2025-03-03..2025-03-14,2025-04-01..2025-04-11")
	require.NoError(t, err)

	assert.Equal(t, "u1", m.UserID)
	require.Len(t, m.TimeSlots, 2)
	assert.Equal(t, "2025-03-03", m.TimeSlots[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-04-11", m.TimeSlots[1].EndDate.Format("2006-01-02"))
}

func TestParseMemberSpec_BareUserHasNoSchedule(t *testing.T) {
	m, err := parseMemberSpec("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", m.UserID)
	assert.Empty(t, m.TimeSlots)
}

func TestParseMemberSpec_Invalid(t *testing.T) {
	_, err := parseMemberSpec("=2025-03-03..2025-03-14")
	assert.Error(t, err)

	_, err = parseMemberSpec("u1=2025-03-03")
	assert.Error(t, err, "a range needs both ends")

	_, err = parseMemberSpec("u1=03/03..03/14")
	assert.Error(t, err)
}

func TestParseDateFlag(t *testing.T) {
	d, err := parseDateFlag("2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30", d.Format("2006-01-02"))

	d, err = parseDateFlag("")
	require.NoError(t, err)
	assert.Nil(t, d, "empty clears the date")

	_, err = parseDateFlag("30.06.2025")
	assert.Error(t, err)
}
