package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirection_Opposite(t *testing.T) {
	testCases := []struct {
		in, out Direction
	}{
		{North, South},
		{NorthEast, SouthWest},
		{East, West},
		{SouthEast, NorthWest},
		{Up, Down},
		{Down, Up},
		{Invalid, Invalid},
	}
	for _, tc := range testCases {
		t.Run(tc.in.String(), func(t *testing.T) {
			assert.Equal(t, tc.out, tc.in.Opposite())
		})
	}
}

func TestDirection_NotchRoundTrip(t *testing.T) {
	for _, d := range append(Compass, Up, Down) {
		got, err := FromNotch(d.Notch())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := FromNotch(42)
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestParseDirection(t *testing.T) {
	testCases := map[string]Direction{
		"north":      North,
		"North_East": NorthEast,
		"northeast":  NorthEast,
		"south-west": SouthWest,
		"NW":         NorthWest,
		"up":         Up,
	}
	for in, want := range testCases {
		t.Run(in, func(t *testing.T) {
			got, err := ParseDirection(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestFromDelta(t *testing.T) {
	d, err := FromDelta(1, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, NorthEast, d)

	_, err = FromDelta(1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
