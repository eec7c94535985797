// Package importer extracts a recipe from a web page: its title, its
// ingredient lines and its method.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoIngredients is returned when a page has no recognizable ingredient
// list.
var ErrNoIngredients = errors.New("no ingredients found")

// maxPage caps how much of a page is read.
const maxPage = 4 << 20

var spaceRe = regexp.MustCompile(`\s+`)

// Imported is a recipe read from a page.
type Imported struct {
	Title       string
	Ingredients []string
	Method      string
}

// IngredientText returns the ingredients as one line per ingredient.
func (im Imported) IngredientText() string {
	return strings.Join(im.Ingredients, "\n")
}

// Load reads a recipe from src, which is an http(s) URL or a local file.
func Load(ctx context.Context, src string, timeout time.Duration) (*Imported, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return Fetch(ctx, &http.Client{Timeout: timeout}, src)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()
	return Parse(f)
}

// Fetch downloads rawURL and parses it.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (*Imported, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s: bad status %d: %s", rawURL, resp.StatusCode, string(b))
	}
	return Parse(io.LimitReader(resp.Body, maxPage))
}

// Parse extracts a recipe from an HTML document. schema.org JSON-LD is
// preferred, then microdata, then any list inside an element whose class
// mentions ingredients.
func Parse(r io.Reader) (*Imported, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	im := fromJSONLD(doc)
	if im == nil || len(im.Ingredients) == 0 {
		im = fromMarkup(doc)
	}
	if len(im.Ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	if im.Title == "" {
		im.Title = first(doc.Find("h1"))
	}
	if im.Title == "" {
		im.Title = first(doc.Find("title"))
	}
	return im, nil
}

func fromMarkup(doc *goquery.Document) *Imported {
	im := &Imported{Title: first(doc.Find(`[itemprop="name"]`))}

	sel := doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`)
	if sel.Length() == 0 {
		sel = doc.Find(`[class*="ingredient"] li`)
	}
	sel.Each(func(_ int, s *goquery.Selection) {
		if line := condense(s.Text()); line != "" {
			im.Ingredients = append(im.Ingredients, line)
		}
	})

	var steps []string
	doc.Find(`[itemprop="recipeInstructions"]`).Each(func(_ int, s *goquery.Selection) {
		if line := condense(s.Text()); line != "" {
			steps = append(steps, line)
		}
	})
	im.Method = strings.Join(steps, "\n")
	return im
}

// ldRecipe is the subset of a schema.org Recipe that is imported.
type ldRecipe struct {
	Type         json.RawMessage `json:"@type"`
	Name         string          `json:"name"`
	Ingredients  []string        `json:"recipeIngredient"`
	Instructions json.RawMessage `json:"recipeInstructions"`
	Graph        []ldRecipe      `json:"@graph"`
}

func fromJSONLD(doc *goquery.Document) *Imported {
	var found *Imported
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := []byte(s.Text())

		var nodes []ldRecipe
		if err := json.Unmarshal(raw, &nodes); err != nil {
			var one ldRecipe
			if err := json.Unmarshal(raw, &one); err != nil {
				return true
			}
			nodes = []ldRecipe{one}
		}
		for _, n := range flatten(nodes) {
			if !isRecipe(n.Type) {
				continue
			}
			im := &Imported{Title: condense(n.Name), Method: instructions(n.Instructions)}
			for _, line := range n.Ingredients {
				if line = condense(line); line != "" {
					im.Ingredients = append(im.Ingredients, line)
				}
			}
			found = im
			return false
		}
		return true
	})
	return found
}

func flatten(nodes []ldRecipe) []ldRecipe {
	var out []ldRecipe
	for _, n := range nodes {
		out = append(out, n)
		out = append(out, flatten(n.Graph)...)
	}
	return out
}

// isRecipe reports whether an @type value, a string or a list of strings,
// names Recipe.
func isRecipe(raw json.RawMessage) bool {
	var one string
	if json.Unmarshal(raw, &one) == nil {
		return one == "Recipe"
	}
	var many []string
	if json.Unmarshal(raw, &many) == nil {
		for _, t := range many {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

// instructions flattens recipeInstructions, which may be text, a list of
// text or a list of HowToStep objects.
func instructions(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return strings.TrimSpace(text)
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return ""
	}
	var steps []string
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			if s = condense(s); s != "" {
				steps = append(steps, s)
			}
			continue
		}
		var step struct {
			Text string `json:"text"`
		}
		if json.Unmarshal(item, &step) == nil {
			if s = condense(step.Text); s != "" {
				steps = append(steps, s)
			}
		}
	}
	return strings.Join(steps, "\n")
}

func condense(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func first(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return condense(sel.First().Text())
}
