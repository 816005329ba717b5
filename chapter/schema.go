package chapter

import (
	"sort"

	"github.com/invopop/jsonschema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Schema describes the JSON chapter document.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	return r.Reflect(&Document{})
}

// Find returns the indices of marks whose title fuzzily matches query, best match first.
func Find(marks []*Mark, query string) []int {
	titles := lo.Map(marks, func(m *Mark, _ int) string {
		return m.Title
	})

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) int {
		return r.OriginalIndex
	})
}
