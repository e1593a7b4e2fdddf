package checklist

// RankFilterConfig holds the per-rank name lists that prune the
// traversal. Upper ranks (domain, kingdom, phylum) use allow-lists,
// lower ranks (class through genus) use deny-lists. The config is
// loaded once per run and treated as read-only afterwards.
type RankFilterConfig struct {
	Allow map[Rank][]string
	Deny  map[Rank][]string
}

// RankFilter decides whether a node takes part in the traversal.
// It is a pure function of its configuration and inputs.
type RankFilter struct {
	allow map[Rank]map[string]struct{}
	deny  map[Rank]map[string]struct{}
}

// NewRankFilter builds a RankFilter from a RankFilterConfig.
func NewRankFilter(cfg RankFilterConfig) *RankFilter {
	res := &RankFilter{
		allow: make(map[Rank]map[string]struct{}),
		deny:  make(map[Rank]map[string]struct{}),
	}
	for rank, names := range cfg.Allow {
		res.allow[rank] = toSet(names)
	}
	for rank, names := range cfg.Deny {
		res.deny[rank] = toSet(names)
	}
	return res
}

// IsIncluded reports whether a node with the given rank and name is
// part of the traversal.
//
// A rank with an allow-list includes only listed names. A rank with a
// deny-list includes everything except listed names. A rank with no
// configured list includes everything.
func (f *RankFilter) IsIncluded(rank Rank, name string) bool {
	if allowed, ok := f.allow[rank]; ok {
		_, in := allowed[name]
		return in
	}
	if denied, ok := f.deny[rank]; ok {
		_, in := denied[name]
		return !in
	}
	return true
}

func toSet(names []string) map[string]struct{} {
	res := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		res[n] = struct{}{}
	}
	return res
}
