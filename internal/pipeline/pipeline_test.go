package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func TestProcessLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		skip   []string
		table  types.TransformTable
		want   string
		wantOK bool
	}{
		{
			name: "digits only has no letter run",
			line: "2",
		},
		{
			name: "two letters is not enough",
			line: "2 tb",
		},
		{
			name: "whole word skip",
			line: "add salt to taste",
			skip: []string{"salt"},
		},
		{
			name: "skip word is case insensitive",
			line: "Salt and Pepper",
			skip: []string{"SALT"},
		},
		{
			name:   "skip word inside a longer word does not match",
			line:   "saltine crackers",
			skip:   []string{"salt"},
			want:   "saltine crackers",
			wantOK: true,
		},
		{
			name:   "transform then truncate",
			line:   "2 cups flour, sifted",
			table:  types.TransformTable{{Key: "flour", Replacement: "all-purpose flour"}},
			want:   "2 cups all-purpose flour",
			wantOK: true,
		},
		{
			name:   "normalizes case and whitespace",
			line:   "   1 Cup SUGAR  ",
			want:   "1 cup sugar",
			wantOK: true,
		},
		{
			name:   "truncate drops preparation notes",
			line:   "2 eggs, beaten",
			want:   "2 eggs",
			wantOK: true,
		},
		{
			name:   "only the first occurrence is replaced",
			line:   "tbsp oil and tbsp butter",
			table:  types.TransformTable{{Key: "tbsp", Replacement: "tablespoon"}},
			want:   "tablespoon oil and tbsp butter",
			wantOK: true,
		},
		{
			name: "transforms apply in declaration order",
			line: "1 tsp salt flakes",
			table: types.TransformTable{
				{Key: "tsp", Replacement: "teaspoon"},
				{Key: "teaspoon", Replacement: "spoon"},
			},
			want:   "1 spoon salt flakes",
			wantOK: true,
		},
		{
			name:   "skip is checked before transforms",
			line:   "pinch of pepper",
			skip:   []string{"salt"},
			table:  types.TransformTable{{Key: "pepper", Replacement: "salt"}},
			want:   "pinch of salt",
			wantOK: true,
		},
		{
			name: "empty before the comma is dropped",
			line: ", then garnish",
		},
		{
			name:   "skip words with regexp metacharacters are literal",
			line:   "c++ noodles",
			skip:   []string{"n.odles"},
			want:   "c++ noodles",
			wantOK: true,
		},
		{
			name:   "blank skip words are ignored",
			line:   "rice",
			skip:   []string{"", "  "},
			want:   "rice",
			wantOK: true,
		},
		{
			name: "skip word starting with a non-ascii letter",
			line: "Épices mix",
			skip: []string{"épices"},
		},
		{
			name:   "non-ascii skip word inside a longer word does not match",
			line:   "épicerie fine",
			skip:   []string{"épice"},
			want:   "épicerie fine",
			wantOK: true,
		},
		{
			name: "skip word with punctuation at its edges",
			line: "salt (optional)",
			skip: []string{"(optional)"},
		},
		{
			name: "skip word between hyphens",
			line: "sea-salt flakes",
			skip: []string{"salt"},
		},
		{
			name:   "transform keys match regardless of configured case",
			line:   "2 cups flour",
			table:  types.TransformTable{{Key: "Flour", Replacement: "bread flour"}},
			want:   "2 cups bread flour",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ProcessLine(tt.line, tt.skip, tt.table)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPipelineReuse(t *testing.T) {
	p := New([]string{"salt", "water"}, nil)

	var got []string
	for _, line := range []string{"1 cup sugar", "salt", "2 eggs, beaten", "warm water", "watercress"} {
		if out, ok := p.Process(line); ok {
			got = append(got, out)
		}
	}
	assert.Equal(t, []string{"1 cup sugar", "2 eggs", "watercress"}, got)
}
