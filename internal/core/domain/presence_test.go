package domain

import (
	"encoding/json"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Weekday(t *testing.T) {
	tests := []struct {
		date Date
		want int
	}{
		{NewDate(2013, time.September, 9), 0},
		{NewDate(2013, time.September, 10), 1},
		{NewDate(2013, time.September, 14), 5},
		{NewDate(2013, time.September, 15), 6},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Weekday())
		})
	}
}

func TestParseDateAndClock(t *testing.T) {
	t.Run("Valid values", func(t *testing.T) {
		d, err := ParseDate("2013-09-10")
		require.NoError(t, err)
		assert.Equal(t, NewDate(2013, time.September, 10), d)

		c, err := ParseClock("09:39:05")
		require.NoError(t, err)
		assert.Equal(t, NewClock(9, 39, 5), c)
		assert.Equal(t, "09:39:05", c.String())
	})

	t.Run("Invalid values", func(t *testing.T) {
		_, err := ParseDate("2013-13-40")
		assert.Error(t, err)

		_, err = ParseClock("25:00:00")
		assert.Error(t, err)

		_, err = ParseClock("9:39")
		assert.Error(t, err)
	})
}

func TestPresenceIndex_Add(t *testing.T) {
	idx := NewPresenceIndex()
	day := NewDate(2013, time.September, 10)

	replaced := idx.Add(PresenceRecord{UserID: 10, Date: day, Start: NewClock(9, 0, 0), End: NewClock(17, 0, 0)})
	assert.False(t, replaced)

	replaced = idx.Add(PresenceRecord{UserID: 10, Date: day, Start: NewClock(8, 0, 0), End: NewClock(16, 0, 0)})
	assert.True(t, replaced, "Second row for the same day should overwrite the first")

	days, ok := idx.User(10)
	require.True(t, ok)
	require.Len(t, days, 1)
	assert.Equal(t, NewClock(8, 0, 0), days[day].Start)

	_, ok = idx.User(13)
	assert.False(t, ok)
}

func TestPresenceIndex_JSONRoundTrip(t *testing.T) {
	idx := NewPresenceIndex()
	idx.Add(PresenceRecord{UserID: 10, Date: NewDate(2013, time.September, 10), Start: NewClock(9, 39, 5), End: NewClock(17, 59, 52)})
	idx.Add(PresenceRecord{UserID: 11, Date: NewDate(2013, time.September, 11), Start: NewClock(9, 0, 0), End: NewClock(16, 0, 0)})

	data, err := json.Marshal(idx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"2013-09-10":{"start":"09:39:05","end":"17:59:52"}`)

	var decoded PresenceIndex
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, idx, decoded)
}

func TestNewUser(t *testing.T) {
	u := NewUser(10)
	assert.Equal(t, User{UserID: 10, Name: "User 10"}, u)
}

func TestErrors(t *testing.T) {
	t.Run("RowParseError unwraps", func(t *testing.T) {
		cause := errors.New("bad int")
		err := &RowParseError{Line: 3, Row: []string{"x", "2013-09-10"}, Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "line 3")
		assert.Contains(t, err.Error(), "x,2013-09-10")
	})

	t.Run("FileAccessError unwraps", func(t *testing.T) {
		err := &FileAccessError{Path: "missing.csv", Err: fs.ErrNotExist}
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "missing.csv")
	})
}
