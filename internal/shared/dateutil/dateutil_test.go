package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	ts, err := Parse("2024-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())

	_, err = Parse("15/03/2024")
	assert.Error(t, err)
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)

	blank := "  "
	got, err = ParseOptional(&blank)
	assert.NoError(t, err)
	assert.Nil(t, got)

	v := "2024-01-31"
	got, err = ParseOptional(&v)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", FormatDate(*got))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2023, time.December, time.UTC)
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 5, 6, 17, 45, 3, 9, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}
