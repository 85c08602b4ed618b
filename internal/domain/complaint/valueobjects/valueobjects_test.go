package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusSubmitted.CanTransitionTo(StatusApproved))
	assert.True(t, StatusApproved.CanTransitionTo(StatusFixed))

	assert.False(t, StatusSubmitted.CanTransitionTo(StatusFixed))
	assert.False(t, StatusApproved.CanTransitionTo(StatusSubmitted))
	assert.False(t, StatusFixed.CanTransitionTo(StatusApproved))
	assert.False(t, StatusFixed.CanTransitionTo(StatusSubmitted))
	assert.False(t, StatusSubmitted.CanTransitionTo(StatusSubmitted))

	assert.True(t, StatusFixed.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
}

func TestNewStatus(t *testing.T) {
	s, err := NewStatus("approved")
	require.NoError(t, err)
	assert.True(t, s.IsApproved())

	_, err = NewStatus("closed")
	assert.Error(t, err)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, c)

	for _, want := range Categories() {
		got, err := NewCategory(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = NewCategory("Gardening")
	assert.Error(t, err)
}

func TestNewVisibility(t *testing.T) {
	v, err := NewVisibility("")
	require.NoError(t, err)
	assert.True(t, v.IsPublic())

	v, err = NewVisibility("private")
	require.NoError(t, err)
	assert.True(t, v.IsPrivate())

	_, err = NewVisibility("hidden")
	assert.Error(t, err)
}

func TestVoteDirection(t *testing.T) {
	assert.Equal(t, 1, VoteUp.Weight())
	assert.Equal(t, -1, VoteDown.Weight())
	assert.Equal(t, 0, VoteNone.Weight())

	d, err := NewVoteDirection("")
	require.NoError(t, err)
	assert.Equal(t, VoteNone, d)

	_, err = NewCastDirection("none")
	assert.Error(t, err)
	d, err = NewCastDirection("down")
	require.NoError(t, err)
	assert.Equal(t, VoteDown, d)
}
