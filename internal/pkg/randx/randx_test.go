package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIDsAreUUIDs(t *testing.T) {
	for _, id := range []string{MessageID(), CompetitionID(), ConnectionID()} {
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	}
	require.NotEqual(t, MessageID(), MessageID())
}

func TestNewSeeded_IsDeterministic(t *testing.T) {
	shuffle := func() []int {
		s := []int{1, 2, 3, 4, 5, 6, 7, 8}
		NewSeeded(42).Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		return s
	}

	require.Equal(t, shuffle(), shuffle())
}

func TestNewSource_PermutesWithoutLoss(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	NewSource().Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })

	require.ElementsMatch(t, []int{1, 2, 3, 4, 5}, s)
}
