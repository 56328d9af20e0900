package badges

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bookstreak/pkg/models"
)

// catalogFile is the YAML shape of an external catalog override
type catalogFile struct {
	Version int         `yaml:"version"`
	Badges  []yamlBadge `yaml:"badges"`
}

type yamlBadge struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Icon          string `yaml:"icon"`
	Category      string `yaml:"category"`
	Requirement   int    `yaml:"requirement"`
	Rarity        string `yaml:"rarity"`
	UnlockMessage string `yaml:"unlock_message"`
}

// Load returns the catalog from path, or the built-in default when path is
// empty. A present-but-invalid file is an error, not a silent fallback:
// badge semantics are versioned and must not change by accident.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read badge catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse badge catalog: %w", err)
	}
	if len(file.Badges) == 0 {
		return nil, fmt.Errorf("badge catalog %s contains no badges", path)
	}

	defs := make([]models.BadgeDefinition, 0, len(file.Badges))
	for _, b := range file.Badges {
		defs = append(defs, models.BadgeDefinition{
			ID:            b.ID,
			Name:          b.Name,
			Description:   b.Description,
			Icon:          b.Icon,
			Category:      models.BadgeCategory(b.Category),
			Requirement:   b.Requirement,
			Rarity:        b.Rarity,
			UnlockMessage: b.UnlockMessage,
		})
	}

	cat, err := New(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid badge catalog %s: %w", path, err)
	}
	return cat, nil
}
