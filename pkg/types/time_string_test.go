package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	invalid := []string{"", "9:30", "09:3", "24:00", "12:60", "12-30", "ab:cd", "09:30:00"}
	for _, raw := range invalid {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := NewTimeStringFromString(raw)
			assert.ErrorIs(t, err, ErrInvalidTimeString)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		next, err := TimeString("09:30").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:00"), next)
	})

	t.Run("hour rollover", func(t *testing.T) {
		next, err := TimeString("17:45").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("18:15"), next)
	})

	t.Run("past midnight", func(t *testing.T) {
		_, err := TimeString("23:45").AddMinutes(30)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:30"))
}

func TestTimeString_OnGrid(t *testing.T) {
	onGrid, err := TimeString("09:30").OnGrid(30)
	require.NoError(t, err)
	assert.True(t, onGrid)

	offGrid, err := TimeString("09:45").OnGrid(30)
	require.NoError(t, err)
	assert.False(t, offGrid)

	_, err = TimeString("09:30").OnGrid(0)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("truncates postgres seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30:00"))
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("accepts bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("14:00:00")))
		assert.Equal(t, TimeString("14:00"), ts)
	})
}
