package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want []string
	}{
		{
			name: "plural",
			slug: "dyes",
			want: []string{"dyes", "dye"},
		},
		{
			name: "intermediates collapses with trailing s",
			slug: "pigment-intermediates",
			want: []string{"pigment intermediates", "pigment intermediate"},
		},
		{
			name: "and becomes ampersand",
			slug: "pharma-and-api-intermediates",
			want: []string{
				"pharma and api intermediates",
				"pharma and api intermediate",
				"pharma & api intermediates",
				"pharma & api intermediate",
			},
		},
		{
			name: "ampersand becomes and",
			slug: "dyes-&-pigments",
			want: []string{
				"dyes & pigments",
				"dyes & pigment",
				"dyes and pigments",
				"dyes and pigment",
			},
		},
		{
			name: "bare ampersand",
			slug: "dyes&pigments",
			want: []string{"dyes&pigments", "dyes&pigment", "dyes and pigments", "dyes and pigment"},
		},
		{
			name: "whitespace and case normalised",
			slug: "  Dye--Intermediates ",
			want: []string{"dye intermediates", "dye intermediate"},
		},
		{
			name: "intermediates only as a whole word",
			slug: "intermediatesx",
			want: []string{"intermediatesx"},
		},
		{
			name: "no trailing s",
			slug: "pharma",
			want: []string{"pharma"},
		},
		{name: "empty", slug: "", want: nil},
		{name: "only separators", slug: "- -", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.slug))
		})
	}
}
