// Recipe entity and its editable sections.
package types

import (
	"strings"
	"unicode"
)

// Section names one editable field of a Recipe.
type Section string

// Recipe sections. These are the only values accepted by SetSection and by
// the backend's recipe-update path.
const (
	SectionTitle       Section = "title"
	SectionIngredients Section = "ingredients"
	SectionMethod      Section = "method"
	SectionNotes       Section = "notes"
	SectionCategory    Section = "category"
	SectionTags        Section = "tags"
	SectionRelated     Section = "related"
)

// Sections lists every valid section in display order.
var Sections = []Section{
	SectionTitle,
	SectionIngredients,
	SectionMethod,
	SectionNotes,
	SectionCategory,
	SectionTags,
	SectionRelated,
}

// DefaultRecipeTitle is the title given to a freshly created recipe.
const DefaultRecipeTitle = "New Recipe"

// ParseSection converts a section name to a Section.
// Returns ErrInvalidSection for names outside the enumerated set.
func ParseSection(name string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	for _, valid := range Sections {
		if s == valid {
			return s, nil
		}
	}
	return "", ErrInvalidSection
}

// Recipe is one entry of the recipe collection. ID is assigned by the
// backend on creation and is unique within the cache.
type Recipe struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Ingredients string `json:"ingredients"` // One ingredient per line.
	Method      string `json:"method"`
	Notes       string `json:"notes"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
	Related     string `json:"related"` // Recipe ids separated by comma, whitespace or newline.
}

// NewRecipe returns an empty recipe with the given id and the default title.
func NewRecipe(id string) Recipe {
	return Recipe{ID: id, Title: DefaultRecipeTitle}
}

// Section returns the value of the given section.
// Returns ErrInvalidSection for an unknown section.
func (r *Recipe) Section(s Section) (string, error) {
	switch s {
	case SectionTitle:
		return r.Title, nil
	case SectionIngredients:
		return r.Ingredients, nil
	case SectionMethod:
		return r.Method, nil
	case SectionNotes:
		return r.Notes, nil
	case SectionCategory:
		return r.Category, nil
	case SectionTags:
		return r.Tags, nil
	case SectionRelated:
		return r.Related, nil
	default:
		return "", ErrInvalidSection
	}
}

// SetSection sets the value of the given section.
// Returns ErrInvalidSection for an unknown section.
func (r *Recipe) SetSection(s Section, value string) error {
	switch s {
	case SectionTitle:
		r.Title = value
	case SectionIngredients:
		r.Ingredients = value
	case SectionMethod:
		r.Method = value
	case SectionNotes:
		r.Notes = value
	case SectionCategory:
		r.Category = value
	case SectionTags:
		r.Tags = value
	case SectionRelated:
		r.Related = value
	default:
		return ErrInvalidSection
	}
	return nil
}

// RelatedIDs splits the free-text Related field into recipe ids. Ids are
// separated by commas, whitespace or newlines; empty fragments and repeated
// ids are dropped. The ids are not validated against any cache.
func (r *Recipe) RelatedIDs() []string {
	fields := strings.FieldsFunc(r.Related, func(c rune) bool {
		return c == ',' || unicode.IsSpace(c)
	})
	seen := make(map[string]bool, len(fields))
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		ids = append(ids, f)
	}
	return ids
}

// IngredientLines splits the ingredient text into lines.
func (r *Recipe) IngredientLines() []string {
	if r.Ingredients == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(r.Ingredients, "\r\n", "\n"), "\n")
}
