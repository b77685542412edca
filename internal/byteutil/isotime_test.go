package byteutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISOTime(t *testing.T) {
	t.Parallel()

	got, err := ParseISOTime("2011-01-11T13:25:41")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2011, 1, 11, 13, 25, 41, 0, time.UTC), got)
}

func TestParseISOTimeIgnoresZoneSuffix(t *testing.T) {
	t.Parallel()

	got, err := ParseISOTime("2025-02-09T20:12:47+03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 9, 20, 12, 47, 0, time.UTC), got)
}

func TestParseISOTimeInvalid(t *testing.T) {
	t.Parallel()

	_, err := ParseISOTime("2025-02-09")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}
