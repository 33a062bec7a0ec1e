package interview

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id string) *discordgo.User {
	return &discordgo.User{ID: id, Username: "user-" + id}
}

func poolOf(size int) []*discordgo.User {
	pool := make([]*discordgo.User, size)
	for i := range pool {
		pool[i] = user(fmt.Sprintf("p%d", i))
	}
	return pool
}

func TestMakePairsCoversPool(t *testing.T) {
	wildcard := user("wildcard")

	for size := 0; size <= 8; size++ {
		t.Run(fmt.Sprintf("pool of %d", size), func(t *testing.T) {
			pool := poolOf(size)
			pairs := MakePairs(pool, wildcard)

			adjusted := size
			if size%2 == 1 {
				adjusted++
			}
			require.Len(t, pairs, adjusted/2)

			seen := make(map[string]int)
			for _, pair := range pairs {
				seen[pair[0].ID]++
				seen[pair[1].ID]++
			}

			for _, member := range pool {
				assert.Equal(t, 1, seen[member.ID], "member %v", member.ID)
			}
			if size%2 == 1 {
				assert.Equal(t, 1, seen[wildcard.ID], "wildcard")
			} else {
				assert.Zero(t, seen[wildcard.ID], "wildcard in even pool")
			}
		})
	}
}

func TestMakePairsThreeParticipants(t *testing.T) {
	pool := []*discordgo.User{user("a"), user("b"), user("c")}
	wildcard := user("w")

	// Shuffling is random, so check the structural guarantees repeatedly.
	for i := 0; i < 50; i++ {
		pairs := MakePairs(pool, wildcard)
		require.Len(t, pairs, 2)

		seen := make(map[string]int)
		for _, pair := range pairs {
			assert.NotEqual(t, pair[0].ID, pair[1].ID)
			seen[pair[0].ID]++
			seen[pair[1].ID]++
		}
		for _, id := range []string{"a", "b", "c", "w"} {
			assert.Equal(t, 1, seen[id])
		}
	}
}

func TestMakePairsEmptyPool(t *testing.T) {
	pairs := MakePairs(nil, user("w"))
	assert.Empty(t, pairs)
}

func TestMakePairsSingleParticipant(t *testing.T) {
	pairs := MakePairs([]*discordgo.User{user("a")}, user("w"))

	require.Len(t, pairs, 1)
	ids := []string{pairs[0][0].ID, pairs[0][1].ID}
	assert.ElementsMatch(t, []string{"a", "w"}, ids)
}

func TestMakePairsDoesNotMutateInput(t *testing.T) {
	pool := []*discordgo.User{user("a"), user("b"), user("c")}

	MakePairs(pool, user("w"))

	require.Len(t, pool, 3)
	assert.Equal(t, "a", pool[0].ID)
	assert.Equal(t, "b", pool[1].ID)
	assert.Equal(t, "c", pool[2].ID)
}
