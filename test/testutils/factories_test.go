package testutils

import (
	"testing"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_Recipe_ShouldProduceValidEntity(t *testing.T) {
	factory := NewFactory(42)

	entity := factory.Recipe()

	assert.NotEmpty(t, entity.Name())
	assert.NotEmpty(t, entity.Category())
	require.NotEmpty(t, entity.Ingredients())
	for _, ing := range entity.Ingredients() {
		assert.NotEmpty(t, ing.Name)
	}
}

func TestFactory_User_ShouldAuthenticateWithKnownPassword(t *testing.T) {
	factory := NewFactory(42)

	entity := factory.User("correct-horse-battery")

	assert.NoError(t, entity.Authenticate("correct-horse-battery"))
	assert.Error(t, entity.Authenticate("wrong"))
}

func TestFactory_WeekOfEntries_ShouldCoverEveryDay(t *testing.T) {
	factory := NewFactory(42)
	userID := uuid.New()
	week := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	entries := factory.WeekOfEntries(userID, week, []uuid.UUID{uuid.New(), uuid.New()})

	require.Len(t, entries, len(mealplan.Days))
	seen := make(map[mealplan.DayOfWeek]bool)
	for _, entry := range entries {
		require.NoError(t, entry.Validate())
		seen[entry.Day] = true
	}
	assert.Len(t, seen, len(mealplan.Days))
}
