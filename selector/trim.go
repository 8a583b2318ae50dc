package selector

// NaiveTrim removes duplicate alternatives. It walks back to front so
// later alternatives shadow earlier ones, the order in which later
// extensions overwrite earlier results; a selector is skipped when a
// kept alternative is set-equal to it, and its sources are merged into
// that kept alternative. The surviving alternatives keep their original
// relative order.
func NaiveTrim(members []*Complex) []*Complex {
	var kept []*Complex
	for i := len(members) - 1; i >= 0; i-- {
		candidate := members[i]
		duplicate := false
		for _, k := range kept {
			if !k.EqualSet(candidate) {
				continue
			}
			mergeSources(k, candidate)
			duplicate = true
			break
		}
		if !duplicate {
			kept = append(kept, candidate)
		}
	}
	// kept is reversed; restore source order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

// mergeSources folds the dropped selector's provenance into the kept
// one so cycle detection still sees every contributing extender.
func mergeSources(kept, dropped *Complex) {
	k, d := kept, dropped
	for k != nil && d != nil {
		if k.Head != nil && d.Head != nil && d.Head.Sources != nil {
			if k.Head.Sources == nil {
				k.Head.Sources = NewSourceSet()
			}
			k.Head.Sources.Union(d.Head.Sources)
		}
		k, d = k.Tail, d.Tail
	}
}
