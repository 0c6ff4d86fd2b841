package history

import (
	"github.com/sahilm/fuzzy"
)

// Search returns the checks whose label or file names fuzzy-match query,
// best match first. An empty query returns every check, newest first.
func (r *Repository) Search(query string, limit int) ([]Check, error) {
	all, err := r.List(0)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return truncate(all, limit), nil
	}
	texts := make([]string, len(all))
	for i, c := range all {
		texts[i] = c.searchText()
	}
	matches := fuzzy.Find(query, texts)
	out := make([]Check, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return truncate(out, limit), nil
}

func truncate(cs []Check, limit int) []Check {
	if limit > 0 && len(cs) > limit {
		return cs[:limit]
	}
	return cs
}
