package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReserveAndContains(t *testing.T) {
	r := NewTripRegistry()

	assert.True(t, r.Reserve("Eiffel Tower"))
	assert.False(t, r.Reserve("Eiffel Tower"))
	assert.True(t, r.Contains("Eiffel Tower"))
	assert.False(t, r.Contains("Louvre"))
}

func TestRegistryNormalization(t *testing.T) {
	r := NewTripRegistry()

	require.True(t, r.Reserve("The Museum of Modern Art"))

	assert.False(t, r.Reserve("museum modern art"))
	assert.False(t, r.Reserve("  MUSEUM OF MODERN ART  "))
	assert.False(t, r.Reserve("Museum of Modern Art!"))
	assert.True(t, r.Contains("the museum of modern art"))
}

func TestRegistryRelease(t *testing.T) {
	r := NewTripRegistry()

	require.True(t, r.Reserve("Eiffel Tower"))
	r.Release("eiffel tower")

	assert.False(t, r.Contains("Eiffel Tower"))
	assert.True(t, r.Reserve("Eiffel Tower"))
}

func TestRegistryNamesKeepsClaimOrder(t *testing.T) {
	r := NewTripRegistry()

	require.True(t, r.Reserve("Eiffel Tower"))
	require.True(t, r.Reserve("Louvre"))
	require.True(t, r.Reserve("Notre Dame"))
	r.Release("Louvre")

	assert.Equal(t, []string{"Eiffel Tower", "Notre Dame"}, r.Names())
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	r := NewTripRegistry()

	assert.False(t, r.Reserve(""))
	assert.False(t, r.Reserve("   "))
}

func TestRegistryConcurrentReserve(t *testing.T) {
	r := NewTripRegistry()

	const workers = 100
	var wg sync.WaitGroup
	wins := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Reserve("Statue of Liberty") {
				wins <- true
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
}
