package completion

import (
	"github.com/robottwo/webjump/internal/webjump"
	"github.com/sahilm/fuzzy"
)

// FindResult is a webjump matched by Find.
type FindResult struct {
	Definition     *webjump.Definition
	Score          int
	MatchedIndexes []int
}

// definitionSource adapts definitions for fuzzy matching on the key and
// description.
type definitionSource []*webjump.Definition

func (d definitionSource) String(i int) string {
	return searchText(d[i])
}

func (d definitionSource) Len() int {
	return len(d)
}

func searchText(def *webjump.Definition) string {
	if def.Description == "" {
		return def.Key
	}
	return def.Key + " " + def.Description
}

// Find fuzzy-searches the registry's webjumps, best match first. An empty
// query returns every webjump in key order. limit <= 0 means no limit.
func Find(registry *webjump.Registry, query string, limit int) []FindResult {
	defs := registry.Definitions()

	var results []FindResult
	if query == "" {
		results = make([]FindResult, 0, len(defs))
		for _, def := range defs {
			results = append(results, FindResult{Definition: def})
		}
	} else {
		matches := fuzzy.FindFrom(query, definitionSource(defs))
		results = make([]FindResult, 0, len(matches))
		for _, match := range matches {
			results = append(results, FindResult{
				Definition:     defs[match.Index],
				Score:          match.Score,
				MatchedIndexes: match.MatchedIndexes,
			})
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
