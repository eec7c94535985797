// Package shopping consolidates the ingredients of open recipes into
// shopping-list text and manages the live shopping item collection.
package shopping

import (
	"strings"

	"github.com/mesh-intelligence/recipebox/internal/pipeline"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// BlockSeparator closes every recipe block in generated text and separates
// newly generated blocks from text that was already there.
const BlockSeparator = "---"

// Source is one open recipe as seen by the generator.
type Source struct {
	Title       string
	Ingredients string
}

// SourceFromRecipe adapts a recipe to a Source.
func SourceFromRecipe(r types.Recipe) Source {
	return Source{Title: r.Title, Ingredients: r.Ingredients}
}

// Block is the consolidated output for one recipe: its title and the
// ingredient lines that survived the pipeline, in original order.
type Block struct {
	Title string
	Lines []string
}

// Consolidate runs every ingredient line of every source through p.
// Blocks are returned in the order the sources were supplied.
func Consolidate(sources []Source, p *pipeline.Pipeline) []Block {
	blocks := make([]Block, 0, len(sources))
	for _, src := range sources {
		b := Block{Title: src.Title}
		r := types.Recipe{Ingredients: src.Ingredients}
		for _, line := range r.IngredientLines() {
			if out, ok := p.Process(line); ok {
				b.Lines = append(b.Lines, out)
			}
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// Format renders blocks as text: a title line, one line per ingredient and
// a separator line per block.
func Format(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.Title)
		sb.WriteByte('\n')
		for _, line := range b.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteString(BlockSeparator)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Generate consolidates sources into shopping-list text. When existing is
// not blank the new blocks are appended after it, so repeated calls
// accumulate: generating twice for the same recipes yields the blocks
// twice. Callers wanting a fresh list pass an empty existing.
func Generate(sources []Source, skipWords []string, table types.TransformTable, existing string) string {
	text := Format(Consolidate(sources, pipeline.New(skipWords, table)))
	return Append(existing, text)
}

// Append joins generated text onto existing text with a blank-line
// delimited separator. Blank existing text is dropped.
func Append(existing, generated string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return generated
	}
	return existing + "\n\n" + BlockSeparator + "\n\n" + generated
}

// Lines flattens the ingredient lines of blocks, in order.
func Lines(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		out = append(out, b.Lines...)
	}
	return out
}
