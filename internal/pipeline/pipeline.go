// Package pipeline turns one free-text ingredient line into at most one
// shopping line: normalize, filter, transform, truncate.
package pipeline

import (
	"regexp"
	"strings"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// letterRun matches three consecutive letters. Lines without one ("2",
// "1/2", "--") carry no ingredient name.
var letterRun = regexp.MustCompile(`\pL{3}`)

// Pipeline holds the compiled skip words and the transform table for
// repeated ProcessLine calls. A Pipeline is immutable and safe for
// concurrent use.
type Pipeline struct {
	skip      []*regexp.Regexp
	transform types.TransformTable
}

// Word boundaries for skip words. Letters and digits of any script count
// as word characters, so "épices" and "(optional)" match whole.
const (
	wordStart = `(?:^|[^\pL\pN_])`
	wordEnd   = `(?:$|[^\pL\pN_])`
)

// New compiles skipWords into whole-word, case-insensitive matchers and
// lower-cases the transform keys to match the normalized line. Blank skip
// words are ignored.
func New(skipWords []string, table types.TransformTable) *Pipeline {
	p := &Pipeline{transform: make(types.TransformTable, 0, len(table))}
	for _, w := range skipWords {
		w = types.Normalize(w)
		if w == "" {
			continue
		}
		p.skip = append(p.skip, regexp.MustCompile(`(?i)`+wordStart+regexp.QuoteMeta(w)+wordEnd))
	}
	for _, t := range table {
		p.transform = append(p.transform, types.Transform{Key: types.Lower(t.Key), Replacement: t.Replacement})
	}
	return p
}

// Process runs one line through the pipeline. The boolean is false when the
// line is filtered out.
func (p *Pipeline) Process(line string) (string, bool) {
	line = types.Normalize(line)

	if !letterRun.MatchString(line) {
		return "", false
	}
	for _, re := range p.skip {
		if re.MatchString(line) {
			return "", false
		}
	}

	for _, t := range p.transform {
		if t.Key == "" {
			continue
		}
		line = strings.Replace(line, t.Key, t.Replacement, 1)
	}

	if i := strings.IndexByte(line, ','); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" {
		return "", false
	}
	return line, true
}

// ProcessLine runs a single line through a pipeline built from skipWords
// and table. Callers processing many lines should build a Pipeline once.
func ProcessLine(line string, skipWords []string, table types.TransformTable) (string, bool) {
	return New(skipWords, table).Process(line)
}
