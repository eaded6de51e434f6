package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "2024-03-0001", Format(2024, 3, 1))
	assert.Equal(t, "2024-12-0142", Format(2024, 12, 142))
}

func TestParse(t *testing.T) {
	year, month, seq, err := Parse("2024-03-0001")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 1, seq)
}

func TestParse_RoundTrip(t *testing.T) {
	id := Format(2025, 7, 33)
	year, month, seq, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 7, month)
	assert.Equal(t, 33, seq)
}

func TestParse_Invalid(t *testing.T) {
	for _, bad := range []string{"", "2024", "2024-03", "abcd-03-0001", "2024-xx-0001", "2024-03-xxxx"} {
		_, _, _, err := Parse(bad)
		assert.Error(t, err, "%q should not parse", bad)
	}
}
