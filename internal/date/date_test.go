package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-17", d.String())
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 17, d.Day())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("17.05.2024")
	assert.Error(t, err)

	_, err = Parse("2024-5-7")
	assert.Error(t, err)
}

func TestFromTime_DropsClock(t *testing.T) {
	ts := time.Date(2024, 5, 17, 23, 59, 58, 0, time.UTC)
	assert.Equal(t, "2024-05-17", FromTime(ts).String())
}

func TestAt(t *testing.T) {
	d := New(2024, time.May, 17)

	got := d.At("09:30")
	assert.Equal(t, time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC), got)
}

func TestAt_BadClockYieldsMidnight(t *testing.T) {
	d := New(2024, time.May, 17)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), d.At("nonsense"))
}

func TestEqual(t *testing.T) {
	a := New(2024, time.May, 17)
	b := FromTime(time.Date(2024, 5, 17, 18, 0, 0, 0, time.UTC))
	c := New(2024, time.May, 18)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestJSONRoundtrip(t *testing.T) {
	d := New(2024, time.May, 17)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-17"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))
}
