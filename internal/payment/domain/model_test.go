package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRankOrdering(t *testing.T) {
	assert.Equal(t, 0, StatusRank(""))
	assert.Equal(t, 0, StatusRank(StatusPending))
	assert.Equal(t, 1, StatusRank("USER_DROPPED"))
	assert.Equal(t, 1, StatusRank("NOT_ATTEMPTED"))
	assert.Equal(t, 2, StatusRank(StatusFailed))
	assert.Equal(t, 2, StatusRank(StatusCancelled))
	assert.Equal(t, 3, StatusRank(StatusSuccess))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal("USER_DROPPED"))
	assert.True(t, IsTerminal(StatusFailed))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusSuccess))
}

func TestStatusesOutranking(t *testing.T) {
	assert.Empty(t, StatusesOutranking(StatusSuccess))
	assert.ElementsMatch(t, []string{StatusSuccess}, StatusesOutranking(StatusFailed))
	assert.ElementsMatch(t,
		[]string{StatusFailed, StatusCancelled, StatusSuccess},
		StatusesOutranking(StatusPending),
	)
	assert.ElementsMatch(t,
		[]string{StatusFailed, StatusCancelled, StatusSuccess},
		StatusesOutranking("USER_DROPPED"),
	)
}
