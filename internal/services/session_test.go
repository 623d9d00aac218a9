package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTrackerSelectGetClear(t *testing.T) {
	tracker := NewSessionTracker()

	_, ok := tracker.Get("923001234567")
	assert.False(t, ok)

	tracker.Select("923001234567", "AI Engineer")
	position, ok := tracker.Get("923001234567")
	require.True(t, ok)
	assert.Equal(t, "AI Engineer", position)

	// Re-selecting overwrites
	tracker.Select("923001234567", "Data Scientist")
	position, ok = tracker.Get("923001234567")
	require.True(t, ok)
	assert.Equal(t, "Data Scientist", position)

	tracker.Clear("923001234567")
	_, ok = tracker.Get("923001234567")
	assert.False(t, ok)

	// Clearing an absent candidate is a no-op
	tracker.Clear("923001234567")
	tracker.Clear("never-seen")
}

func TestSessionTrackerTake(t *testing.T) {
	tracker := NewSessionTracker()
	tracker.Select("923001234567", "Python Developer")

	position, ok := tracker.Take("923001234567")
	require.True(t, ok)
	assert.Equal(t, "Python Developer", position)

	// Entry is gone after the first Take
	_, ok = tracker.Take("923001234567")
	assert.False(t, ok)
	_, ok = tracker.Get("923001234567")
	assert.False(t, ok)
}

// Many handlers racing on Take for the same selection must yield exactly one
// winner.
func TestSessionTrackerTakeOnce(t *testing.T) {
	tracker := NewSessionTracker()
	tracker.Select("923001234567", "AI Engineer")

	const racers = 32
	var wg sync.WaitGroup
	wins := make(chan string, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if position, ok := tracker.Take("923001234567"); ok {
				wins <- position
			}
		}()
	}
	wg.Wait()
	close(wins)

	var won []string
	for p := range wins {
		won = append(won, p)
	}
	require.Len(t, won, 1)
	assert.Equal(t, "AI Engineer", won[0])
}

func TestSessionTrackerIndependentCandidates(t *testing.T) {
	tracker := NewSessionTracker()
	tracker.Select("a", "AI Engineer")
	tracker.Select("b", "Data Scientist")

	tracker.Clear("a")

	position, ok := tracker.Get("b")
	require.True(t, ok)
	assert.Equal(t, "Data Scientist", position)
}
