package call

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOneSlotPerAttendant(t *testing.T) {
	reg := NewRegistry(factoryFor(&fakeRinger{}))
	defer reg.Close()

	require.NoError(t, reg.Dial("ana"))
	assert.ErrorIs(t, reg.Dial("ana"), ErrCallInProgress)

	// Other attendants keep their own slot
	require.NoError(t, reg.Dial("bia"))
}

func TestRegistrySlotFreedByHangup(t *testing.T) {
	reg := NewRegistry(factoryFor(&fakeRinger{}))
	defer reg.Close()

	require.NoError(t, reg.Dial("ana"))
	require.NoError(t, reg.Answer("ana"))
	reg.Hangup("ana")

	require.NoError(t, reg.Dial("ana"))
}

func TestRegistryReusesSessionPerKey(t *testing.T) {
	ringer := &fakeRinger{}
	reg := NewRegistry(factoryFor(ringer))
	defer reg.Close()

	require.NoError(t, reg.Dial("ana"))
	reg.Hangup("ana")
	require.NoError(t, reg.Dial("ana"))

	assert.Equal(t, 2, ringer.started)
	assert.Equal(t, 1, ringer.stopped)
}
