package roster

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MoveReportsChange(t *testing.T) {
	store := NewStore(demoState(t), rand.New(rand.NewPCG(1, 1)))

	_, changed := store.Move("Hannah Harris", ToRoom(4))
	assert.True(t, changed)

	_, changed = store.Move("Hannah Harris", ToRoom(4))
	assert.False(t, changed)

	_, changed = store.Move("Nobody", ToRoom(4))
	assert.False(t, changed)

	delta, _ := store.State().Room(4)
	assert.Equal(t, []string{"Hannah Harris"}, names(delta.Participants))
}

func TestStore_RandomAssignThenNoOp(t *testing.T) {
	store := NewStore(demoState(t), rand.New(rand.NewPCG(1, 1)))

	state, changed := store.RandomAssign()
	require.True(t, changed)
	assert.Empty(t, state.Pool())

	_, changed = store.RandomAssign()
	assert.False(t, changed)
}

func TestStore_AdmitRejectsKnownNames(t *testing.T) {
	store := NewStore(demoState(t), rand.New(rand.NewPCG(1, 1)))

	_, changed := store.Admit("Mia Moore")
	assert.True(t, changed)

	_, changed = store.Admit("Mia Moore")
	assert.False(t, changed)
}

func TestStore_ConcurrentOperationsKeepInvariant(t *testing.T) {
	store := NewStore(demoState(t), rand.New(rand.NewPCG(2, 2)))

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				switch i % 4 {
				case 0:
					store.Admit(fmt.Sprintf("Student %d-%d", w, i))
				case 1:
					store.Move("Alice Anderson", ToRoom(RoomID(1+(w+i)%5)))
				case 2:
					store.Move(fmt.Sprintf("Student %d-%d", w, i-2), ToPool())
				default:
					store.RandomAssign()
				}
				_ = store.Snapshot()
			}
		}()
	}
	wg.Wait()

	requireInvariant(t, store.State())
	assert.Len(t, Directory(store.State()), 13+8*13)
}
