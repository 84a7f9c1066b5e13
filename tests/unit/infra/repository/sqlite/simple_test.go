package infra_repository_sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinicwa/internal/domain/moderator"
)

func TestModeratorBasicOperations(t *testing.T) {
	t.Run("moderator creation and basic operations", func(t *testing.T) {
		m := moderator.NewModerator("test-moderator")

		assert.NotNil(t, m, "moderator should be created")
		assert.NotEmpty(t, m.Name(), "moderator should have a name")
		assert.False(t, m.ID().IsEmpty(), "moderator should have a valid ID")
		assert.True(t, m.IsActive(), "new moderator should be active")
		assert.False(t, m.HasProxy(), "new moderator should have no proxy")
	})
}

func TestModeratorActivationTransitions(t *testing.T) {
	t.Run("activate/deactivate transitions work correctly", func(t *testing.T) {
		m := moderator.NewModerator("test-moderator")
		assert.True(t, m.IsActive())

		m.Deactivate()
		assert.False(t, m.IsActive(), "deactivated moderator should not be active")

		m.Activate()
		assert.True(t, m.IsActive(), "reactivated moderator should be active")
	})

	t.Run("proxy configuration round-trips through the entity", func(t *testing.T) {
		m := moderator.NewModerator("test-moderator")

		err := m.SetProxyURL("http://proxy.internal:8080")
		assert.NoError(t, err)
		assert.True(t, m.HasProxy())
		assert.Equal(t, "http", m.GetProxyType())
		assert.Equal(t, "proxy.internal", m.GetProxyHost())

		m.ClearProxyURL()
		assert.False(t, m.HasProxy())
	})
}
