package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRoundTrip(t *testing.T) {
	registry := NewRegistry(30 * time.Minute)

	key := registry.Start(42)
	assert.NotEmpty(t, key)

	userId, ok := registry.Get(key)
	assert.True(t, ok)
	assert.Equal(t, 42, userId)

	// Keys are unique per session
	other := registry.Start(42)
	assert.NotEqual(t, key, other)
	assert.Equal(t, 2, registry.Len())
}

func TestRegistryInvalidate(t *testing.T) {
	registry := NewRegistry(30 * time.Minute)

	key := registry.Start(7)
	registry.Invalidate(key)

	_, ok := registry.Get(key)
	assert.False(t, ok)
}

func TestRegistryExpiry(t *testing.T) {
	registry := NewRegistry(10 * time.Millisecond)

	key := registry.Start(7)
	time.Sleep(20 * time.Millisecond)

	_, ok := registry.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryTouchExtendsDeadline(t *testing.T) {
	registry := NewRegistry(50 * time.Millisecond)

	key := registry.Start(7)
	for i := 0; i < 3; i++ {
		time.Sleep(30 * time.Millisecond)
		_, ok := registry.Get(key)
		assert.True(t, ok, "session should survive while in use")
	}
}

func TestRegistryRemoveExpired(t *testing.T) {
	registry := NewRegistry(10 * time.Millisecond)

	registry.Start(1)
	registry.Start(2)
	live := registry.Start(3)

	time.Sleep(20 * time.Millisecond)
	_ = live // all three are past the deadline now

	registry.RemoveExpired()
	assert.Equal(t, 0, registry.Len())
}
