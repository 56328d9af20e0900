package badges

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstreak/pkg/models"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()

	assert.Equal(t, 31, c.Len())

	// Every entry is complete
	for _, d := range c.All() {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.UnlockMessage)
		assert.True(t, models.ValidBadgeCategory(d.Category), "badge %s", d.ID)
		assert.Greater(t, d.Requirement, 0, "badge %s", d.ID)
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	defs := []models.BadgeDefinition{
		{ID: "dup", Name: "A", Category: models.CategoryStreak, Requirement: 3, Rarity: models.RarityCommon},
		{ID: "dup", Name: "B", Category: models.CategoryPages, Requirement: 100, Rarity: models.RarityCommon},
	}

	_, err := New(defs)
	assert.ErrorContains(t, err, "duplicate badge id")
}

func TestNewRejectsBadEntries(t *testing.T) {
	cases := []models.BadgeDefinition{
		{ID: "", Category: models.CategoryStreak, Requirement: 3, Rarity: models.RarityCommon},
		{ID: "x", Category: "bogus", Requirement: 3, Rarity: models.RarityCommon},
		{ID: "x", Category: models.CategoryStreak, Requirement: 3, Rarity: "mythic"},
		{ID: "x", Category: models.CategoryStreak, Requirement: 0, Rarity: models.RarityCommon},
	}

	for _, d := range cases {
		_, err := New([]models.BadgeDefinition{d})
		assert.Error(t, err)
	}
}

func TestByID(t *testing.T) {
	c := Default()

	d, ok := c.ByID("streak_7")
	require.True(t, ok)
	assert.Equal(t, models.CategoryStreak, d.Category)
	assert.Equal(t, 7, d.Requirement)

	_, ok = c.ByID("no_such_badge")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	c := Default()

	streaks := c.ByCategory(models.CategoryStreak)
	require.Len(t, streaks, 5)
	// Declaration order preserved: ascending requirements
	assert.Equal(t, "streak_3", streaks[0].ID)
	assert.Equal(t, "streak_365", streaks[4].ID)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())
}

func TestLoadOverrideFile(t *testing.T) {
	yaml := `
version: 1
badges:
  - id: streak_2
    name: Quick Start
    description: Read 2 days in a row
    icon: "🔥"
    category: streak
    requirement: 2
    rarity: common
    unlock_message: Two days down!
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	d, ok := c.ByID("streak_2")
	require.True(t, ok)
	assert.Equal(t, 2, d.Requirement)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("badges: []"), 0644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
