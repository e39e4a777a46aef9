package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		xp       int
		expected int
	}{
		{"zero xp", 0, 1},
		{"top of level one", 10, 1},
		{"first xp of level two", 11, 2},
		{"top of level two", 40, 2},
		{"first xp of level three", 41, 3},
		{"top of level three", 70, 3},
		{"deep into the bands", 101, 5},
		{"negative clamps to zero", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Level(tt.xp))
		})
	}
}

func TestXPForNextLevel(t *testing.T) {
	tests := []struct {
		name     string
		xp       int
		expected int
	}{
		{"fresh account needs full first band", 0, 11},
		{"one away from level two", 10, 1},
		{"start of level two needs full band", 11, 30},
		{"one away from level three", 40, 1},
		{"start of level three", 41, 30},
		{"negative clamps to zero", -3, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, XPForNextLevel(tt.xp))
		})
	}
}

func TestXPForNextLevelAlwaysPositive(t *testing.T) {
	for xp := 0; xp <= 500; xp++ {
		assert.Positive(t, XPForNextLevel(xp), "xp=%d", xp)
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for xp := 1; xp <= 500; xp++ {
		level := Level(xp)
		assert.GreaterOrEqual(t, level, prev, "xp=%d", xp)
		prev = level
	}
}
