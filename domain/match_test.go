package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinningTeams(t *testing.T) {
	t.Run("single leader", func(t *testing.T) {
		winners := WinningTeams(map[string]float64{"a": 2.5, "b": 1.0})
		assert.Equal(t, []string{"a"}, winners)
	})

	t.Run("tie yields every leader", func(t *testing.T) {
		winners := WinningTeams(map[string]float64{"b": 1.5, "a": 1.5, "c": 0.5})
		assert.Equal(t, []string{"a", "b"}, winners)
	})

	t.Run("no scores yields no winner", func(t *testing.T) {
		assert.Empty(t, WinningTeams(nil))
	})
}
