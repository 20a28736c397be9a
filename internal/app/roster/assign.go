package roster

import (
	"slices"

	"github.com/samber/lo"
)

// Shuffler produces a uniform random permutation; *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// RandomAssign empties the available pool into the rooms.
//
// The pool is shuffled and cut into len(rooms) contiguous slices of n/len(rooms)
// participants each; the remainder goes to the last room. Each slice is appended
// to its room in seeded room order. No rooms or an empty pool is a no-op.
func RandomAssign(s State, rng Shuffler) State {
	next, _ := randomAssign(s, rng)
	return next
}

func randomAssign(s State, rng Shuffler) (State, bool) {
	if len(s.pool) == 0 || len(s.rooms) == 0 {
		return s, false
	}

	// The teacher never lives in the pool; filtered anyway so it can never be assigned.
	shuffled := slices.Clone(lo.Reject(s.pool, func(p Participant, _ int) bool {
		return p.FullName == s.teacher.FullName
	}))
	if len(shuffled) == 0 {
		return s, false
	}

	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	next := s.clone()
	perRoom := len(shuffled) / len(next.rooms)
	last := len(next.rooms) - 1

	for i := range next.rooms {
		start := i * perRoom
		end := start + perRoom
		if i == last {
			end = len(shuffled)
		}
		next.rooms[i].Participants = append(next.rooms[i].Participants, shuffled[start:end]...)
	}

	next.pool = []Participant{}
	return next, true
}
