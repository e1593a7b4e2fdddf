package checklist

// Lineage maps ranks to taxon names, covering the path from the root
// of the checklist down to (but excluding) the current node.
//
// Lineages are copy-on-branch: Extend returns a fresh, independent map,
// so sibling branches of the traversal never share mutable state.
type Lineage map[Rank]string

// Extend returns a copy of the lineage with one more entry. The
// receiver is left untouched.
func (l Lineage) Extend(rank Rank, name string) Lineage {
	res := make(Lineage, len(l)+1)
	for k, v := range l {
		res[k] = v
	}
	res[rank] = name
	return res
}

// Name returns the taxon name recorded for a rank, or an empty string.
func (l Lineage) Name(rank Rank) string {
	return l[rank]
}
