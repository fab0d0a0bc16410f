package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "jyotish/pkg/domain-errors"
)

func validBirth() BirthDetails {
	return BirthDetails{
		Name:        "Asha",
		DateOfBirth: "1970-09-04",
		TimeOfBirth: "06:05",
		City:        "Chennai",
		State:       "Tamil Nadu",
		Country:     "India",
		Latitude:    13.0827,
		Longitude:   80.2707,
		Timezone:    "Asia/Kolkata",
	}
}

func TestBirthDetailsValidate(t *testing.T) {
	t.Run("accepts a complete record", func(t *testing.T) {
		require.NoError(t, validBirth().Validate())
	})

	cases := []struct {
		name   string
		mutate func(*BirthDetails)
	}{
		{"missing name", func(b *BirthDetails) { b.Name = "" }},
		{"bad date", func(b *BirthDetails) { b.DateOfBirth = "04-09-1970" }},
		{"bad time", func(b *BirthDetails) { b.TimeOfBirth = "6.05 AM" }},
		{"latitude out of range", func(b *BirthDetails) { b.Latitude = 91 }},
		{"longitude out of range", func(b *BirthDetails) { b.Longitude = -181 }},
		{"NaN latitude", func(b *BirthDetails) { b.Latitude = math.NaN() }},
		{"NaN longitude", func(b *BirthDetails) { b.Longitude = math.NaN() }},
		{"unknown timezone", func(b *BirthDetails) { b.Timezone = "Mars/Olympus" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := validBirth()
			c.mutate(&b)
			err := b.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
		})
	}
}

func TestBirthTime(t *testing.T) {
	b := validBirth()
	got, err := b.BirthTime()
	require.NoError(t, err)

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	want := time.Date(1970, 9, 4, 6, 5, 0, 0, kolkata)
	assert.True(t, got.Equal(want), "got %v", got)
}

func TestDashaPeriodContains(t *testing.T) {
	p := DashaPeriod{
		Lord:  "Venus",
		Start: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, p.Contains(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(p.Start))
	assert.False(t, p.Contains(p.End))
	assert.False(t, p.Contains(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)))
}
