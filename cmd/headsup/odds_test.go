package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephklwork-hash/HeadsUp-sub001/internal/deck"
)

func TestParseHole(t *testing.T) {
	hole, err := parseHole("As Kd")
	require.NoError(t, err)
	assert.Equal(t, deck.MustParse("As"), hole[0])
	assert.Equal(t, deck.MustParse("Kd"), hole[1])

	_, err = parseHole("As")
	assert.Error(t, err)

	_, err = parseHole("As Kd Qh")
	assert.Error(t, err)

	_, err = parseHole("Xx Kd")
	assert.Error(t, err)
}

func TestRejectDuplicates(t *testing.T) {
	a, err := parseHole("As Kd")
	require.NoError(t, err)
	b, err := parseHole("Qh Qs")
	require.NoError(t, err)

	assert.NoError(t, rejectDuplicates(a, b, nil))

	board, err := deck.ParseAll("As", "7c", "2d")
	require.NoError(t, err)
	err = rejectDuplicates(a, b, board)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "As")
}
