package interview

import (
	"math/rand"

	"github.com/bwmarrin/discordgo"
)

// Pair is one matched couple for the week. Slot order carries no meaning;
// both sides get a notice about the other.
type Pair [2]*discordgo.User

// MakePairs shuffles the pool and splits it into consecutive pairs. An
// odd-sized pool gets the wildcard user appended so nobody is left out. The
// caller's slice is not modified.
func MakePairs(pool []*discordgo.User, wildcard *discordgo.User) []Pair {
	shuffled := make([]*discordgo.User, len(pool))
	copy(shuffled, pool)
	if len(shuffled)%2 == 1 {
		shuffled = append(shuffled, wildcard)
	}

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pairs := make([]Pair, 0, len(shuffled)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		pairs = append(pairs, Pair{shuffled[i], shuffled[i+1]})
	}

	return pairs
}
