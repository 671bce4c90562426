package picker

import (
	"context"

	"github.com/samhoang/skillctl/internal/source"
)

// SkillItems converts discovered skills to picker items, all preselected
func SkillItems(skills []source.Skill) []Item {
	items := make([]Item, 0, len(skills))
	for _, s := range skills {
		item := Item{ID: s.Name, Label: s.Name, Selected: true}
		if s.Manifest != nil {
			item.Description = s.Manifest.Description
		}
		items = append(items, item)
	}
	return items
}

// SelectSkills lets the user choose among discovered skills
func SelectSkills(ctx context.Context, skills []source.Skill) ([]string, error) {
	return Run(ctx, "Select skills to install", SkillItems(skills))
}
