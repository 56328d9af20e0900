// Package badges holds the static achievement catalog. The catalog is
// versioned with the binary: defaults live here, and an optional YAML file
// can replace them at process start (see Load). It is never persisted
// per-user; only unlock rows are.
package badges

import (
	"fmt"

	"bookstreak/pkg/models"
)

// defaultCatalog is the built-in badge catalog. IDs are stable and must
// never be reused for a different rule once shipped.
var defaultCatalog = []models.BadgeDefinition{
	// Streak badges - consecutive reading days
	{
		ID:            "streak_3",
		Name:          "First Step",
		Description:   "Read 3 days in a row",
		Icon:          "🔥",
		Category:      models.CategoryStreak,
		Requirement:   3,
		Rarity:        models.RarityCommon,
		UnlockMessage: "Great! You completed a 3-day reading streak!",
	},
	{
		ID:            "streak_7",
		Name:          "Weekly Hero",
		Description:   "Read 7 days in a row",
		Icon:          "⚡",
		Category:      models.CategoryStreak,
		Requirement:   7,
		Rarity:        models.RarityCommon,
		UnlockMessage: "Amazing! A full week of uninterrupted reading!",
	},
	{
		ID:            "streak_30",
		Name:          "Monthly Legend",
		Description:   "Read 30 days in a row",
		Icon:          "🌟",
		Category:      models.CategoryStreak,
		Requirement:   30,
		Rarity:        models.RarityRare,
		UnlockMessage: "Incredible! A 30-day reading streak!",
	},
	{
		ID:            "streak_100",
		Name:          "Centurion",
		Description:   "Read 100 days in a row",
		Icon:          "💎",
		Category:      models.CategoryStreak,
		Requirement:   100,
		Rarity:        models.RarityEpic,
		UnlockMessage: "You're a legend! 100 days of uninterrupted reading!",
	},
	{
		ID:            "streak_365",
		Name:          "Master of the Year",
		Description:   "Read 365 days in a row",
		Icon:          "👑",
		Category:      models.CategoryStreak,
		Requirement:   365,
		Rarity:        models.RarityLegendary,
		UnlockMessage: "LEGENDARY! You read every single day for a whole year!",
	},

	// Pages badges - cumulative pages read
	{
		ID:            "pages_100",
		Name:          "Fresh Start",
		Description:   "Read 100 pages in total",
		Icon:          "📖",
		Category:      models.CategoryPages,
		Requirement:   100,
		Rarity:        models.RarityCommon,
		UnlockMessage: "You finished your first 100 pages!",
	},
	{
		ID:            "pages_500",
		Name:          "Reading Enthusiast",
		Description:   "Read 500 pages in total",
		Icon:          "📚",
		Category:      models.CategoryPages,
		Requirement:   500,
		Rarity:        models.RarityCommon,
		UnlockMessage: "500 pages! Keep it going!",
	},
	{
		ID:            "pages_1000",
		Name:          "Thousand Page Club",
		Description:   "Read 1000 pages in total",
		Icon:          "🎯",
		Category:      models.CategoryPages,
		Requirement:   1000,
		Rarity:        models.RarityRare,
		UnlockMessage: "Great! 1000 pages completed!",
	},
	{
		ID:            "pages_5000",
		Name:          "Mega Reader",
		Description:   "Read 5000 pages in total",
		Icon:          "🚀",
		Category:      models.CategoryPages,
		Requirement:   5000,
		Rarity:        models.RarityEpic,
		UnlockMessage: "Incredible! You read 5000 pages!",
	},
	{
		ID:            "pages_10000",
		Name:          "Page Lord",
		Description:   "Read 10000 pages in total",
		Icon:          "🏆",
		Category:      models.CategoryPages,
		Requirement:   10000,
		Rarity:        models.RarityLegendary,
		UnlockMessage: "LEGENDARY! The 10,000 page milestone!",
	},
	{
		ID:            "page_master",
		Name:          "Page Master",
		Description:   "Read 50,000 pages in total",
		Icon:          "🎖️",
		Category:      models.CategoryPages,
		Requirement:   50000,
		Rarity:        models.RarityLegendary,
		UnlockMessage: "UNBELIEVABLE! 50,000 pages! You are a master of reading!",
	},

	// Books badges - completed books
	{
		ID:            "books_1",
		Name:          "First Book",
		Description:   "Finish your first book",
		Icon:          "📕",
		Category:      models.CategoryBooks,
		Requirement:   1,
		Rarity:        models.RarityCommon,
		UnlockMessage: "Congratulations! You finished your first book!",
	},
	{
		ID:            "books_5",
		Name:          "Bookworm",
		Description:   "Complete 5 books",
		Icon:          "🐛",
		Category:      models.CategoryBooks,
		Requirement:   5,
		Rarity:        models.RarityCommon,
		UnlockMessage: "5 books completed! You're doing great!",
	},
	{
		ID:            "books_10",
		Name:          "Ten Book Master",
		Description:   "Complete 10 books",
		Icon:          "📗",
		Category:      models.CategoryBooks,
		Requirement:   10,
		Rarity:        models.RarityRare,
		UnlockMessage: "10 books! You're a reading machine!",
	},
	{
		ID:            "books_25",
		Name:          "Library Owner",
		Description:   "Complete 25 books",
		Icon:          "🏛️",
		Category:      models.CategoryBooks,
		Requirement:   25,
		Rarity:        models.RarityEpic,
		UnlockMessage: "25 books completed! Incredible!",
	},
	{
		ID:            "books_50",
		Name:          "Book Collector",
		Description:   "Complete 50 books",
		Icon:          "🎓",
		Category:      models.CategoryBooks,
		Requirement:   50,
		Rarity:        models.RarityLegendary,
		UnlockMessage: "LEGENDARY! The 50 book milestone!",
	},
	{
		ID:            "genre_explorer",
		Name:          "Genre Explorer",
		Description:   "Complete 5 different books",
		Icon:          "🗺️",
		Category:      models.CategoryBooks,
		Requirement:   5,
		Rarity:        models.RarityCommon,
		UnlockMessage: "You're exploring different books! Wonderful!",
	},
	{
		ID:            "bookworm_legend",
		Name:          "Bookworm Legend",
		Description:   "Complete 100 books",
		Icon:          "📚",
		Category:      models.CategoryBooks,
		Requirement:   100,
		Rarity:        models.RarityLegendary,
		UnlockMessage: "LEGENDARY! 100 books! You are a true book lover!",
	},

	// Speed badges - pages read within a single day
	{
		ID:            "speed_50_day",
		Name:          "Fast Reader",
		Description:   "Read 50 pages in one day",
		Icon:          "⚡",
		Category:      models.CategorySpeed,
		Requirement:   50,
		Rarity:        models.RarityCommon,
		UnlockMessage: "You're fast! 50 pages in a day!",
	},
	{
		ID:            "speed_100_day",
		Name:          "Speed Demon",
		Description:   "Read 100 pages in one day",
		Icon:          "💨",
		Category:      models.CategorySpeed,
		Requirement:   100,
		Rarity:        models.RarityRare,
		UnlockMessage: "Wow! 100 pages in a single day!",
	},
	{
		ID:            "speed_200_day",
		Name:          "Flash Reader",
		Description:   "Read 200 pages in one day",
		Icon:          "⚡",
		Category:      models.CategorySpeed,
		Requirement:   200,
		Rarity:        models.RarityEpic,
		UnlockMessage: "Incredible speed! 200 pages in a day!",
	},
	{
		ID:            "speed_reader",
		Name:          "Speed Reader",
		Description:   "Read 300 pages in one day",
		Icon:          "⚡",
		Category:      models.CategorySpeed,
		Requirement:   300,
		Rarity:        models.RarityEpic,
		UnlockMessage: "WOW! 300 pages in one day! Incredible speed!",
	},
	{
		ID:            "marathon_reader",
		Name:          "Marathon Reader",
		Description:   "Read 500 pages in one day",
		Icon:          "🏃",
		Category:      models.CategorySpeed,
		Requirement:   500,
		Rarity:        models.RarityLegendary,
		UnlockMessage: "LEGENDARY! 500 pages in one day! You are a reading machine!",
	},

	// Consistency badges
	{
		ID:            "weekly_goal_4",
		Name:          "Weekly Discipline",
		Description:   "Read 5 days a week for 4 weeks",
		Icon:          "📅",
		Category:      models.CategoryConsistency,
		Requirement:   4,
		Rarity:        models.RarityRare,
		UnlockMessage: "Disciplined! 4 weeks of regular reading!",
	},
	{
		ID:            "consistent_reader",
		Name:          "Consistent Reader",
		Description:   "Read at least 10 pages every day for 30 days",
		Icon:          "📆",
		Category:      models.CategoryConsistency,
		Requirement:   30,
		Rarity:        models.RarityEpic,
		UnlockMessage: "30 days of steady reading! What a habit!",
	},

	// Special badges
	{
		ID:            "early_bird",
		Name:          "Early Bird",
		Description:   "Log 10 readings between 6 and 8 in the morning",
		Icon:          "🌅",
		Category:      models.CategorySpecial,
		Requirement:   10,
		Rarity:        models.RarityRare,
		UnlockMessage: "Morning reading is wonderful! You're an early bird!",
	},
	{
		ID:            "night_owl",
		Name:          "Night Owl",
		Description:   "Log 10 readings between 22 and 24 at night",
		Icon:          "🦉",
		Category:      models.CategorySpecial,
		Requirement:   10,
		Rarity:        models.RarityRare,
		UnlockMessage: "Night reading is your thing! You're a night owl!",
	},
	{
		ID:            "weekend_warrior",
		Name:          "Weekend Warrior",
		Description:   "Read on 10 weekend days",
		Icon:          "🎮",
		Category:      models.CategorySpecial,
		Requirement:   10,
		Rarity:        models.RarityRare,
		UnlockMessage: "You read even on weekends! Fantastic!",
	},
	{
		ID:            "first_friend",
		Name:          "First Friend",
		Description:   "Add your first friend",
		Icon:          "🤝",
		Category:      models.CategorySpecial,
		Requirement:   1,
		Rarity:        models.RarityCommon,
		UnlockMessage: "You added your first friend! You're not alone on this journey!",
	},
	{
		ID:            "social_butterfly",
		Name:          "Social Butterfly",
		Description:   "Make 10 friends",
		Icon:          "🦋",
		Category:      models.CategorySpecial,
		Requirement:   10,
		Rarity:        models.RarityRare,
		UnlockMessage: "10 friends! You built a real reading community!",
	},
	{
		ID:            "year_veteran",
		Name:          "Year Veteran",
		Description:   "Use the app for one year",
		Icon:          "🎂",
		Category:      models.CategorySpecial,
		Requirement:   365,
		Rarity:        models.RarityEpic,
		UnlockMessage: "One year together! Thank you! 🎉",
	},
}

// Catalog is an immutable, validated badge list
type Catalog struct {
	defs []models.BadgeDefinition
	byID map[string]models.BadgeDefinition
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultCatalog)
	if err != nil {
		// The built-in catalog is validated by tests; reaching this is a bug.
		panic(err)
	}
	return c
}

// New builds a catalog from definitions, rejecting duplicate or malformed entries.
func New(defs []models.BadgeDefinition) (*Catalog, error) {
	byID := make(map[string]models.BadgeDefinition, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("badge with empty id")
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate badge id: %s", d.ID)
		}
		if !models.ValidBadgeCategory(d.Category) {
			return nil, fmt.Errorf("badge %s: unknown category %q", d.ID, d.Category)
		}
		if _, ok := models.RarityRank[d.Rarity]; !ok {
			return nil, fmt.Errorf("badge %s: unknown rarity %q", d.ID, d.Rarity)
		}
		if d.Requirement <= 0 {
			return nil, fmt.Errorf("badge %s: requirement must be positive", d.ID)
		}
		byID[d.ID] = d
	}
	out := make([]models.BadgeDefinition, len(defs))
	copy(out, defs)
	return &Catalog{defs: out, byID: byID}, nil
}

// All returns the catalog entries in declaration order.
func (c *Catalog) All() []models.BadgeDefinition {
	out := make([]models.BadgeDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ByID looks up one definition.
func (c *Catalog) ByID(id string) (models.BadgeDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// ByCategory returns all definitions in a category, declaration order preserved.
func (c *Catalog) ByCategory(cat models.BadgeCategory) []models.BadgeDefinition {
	var out []models.BadgeDefinition
	for _, d := range c.defs {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}
