package edep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigatorWrapsAround(t *testing.T) {
	nav := NewNavigator(MemorySource{{EventID: 10}, {EventID: 11}, {EventID: 12}})
	assert.Equal(t, -1, nav.Current())

	for _, want := range []int{10, 11, 12, 10} {
		event, err := nav.Next()
		require.NoError(t, err)
		assert.Equal(t, want, event.EventID)
	}
	assert.Equal(t, 0, nav.Current())

	event, err := nav.Prev()
	require.NoError(t, err)
	assert.Equal(t, 12, event.EventID)
	assert.Equal(t, 2, nav.Current())

	event, err = nav.Jump(1)
	require.NoError(t, err)
	assert.Equal(t, 11, event.EventID)

	_, err = nav.Jump(3)
	assert.Error(t, err)
	assert.Equal(t, 1, nav.Current())
}

func TestNavigatorEmptySource(t *testing.T) {
	nav := NewNavigator(MemorySource{})
	_, err := nav.Next()
	assert.Error(t, err)
	_, err = nav.Prev()
	assert.Error(t, err)
	assert.NoError(t, MemorySource{}.Close())
}
