package selector

// IsSuperselector reports A ⊒ B over selector lists: every element
// matched by any alternative of b is matched by some alternative of a.
func IsSuperselector(a, b *List) bool {
	for _, cb := range b.Members {
		covered := false
		for _, ca := range a.Members {
			if IsSuperselectorComplex(ca, cb) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// IsSuperselectorComplex reports A ⊒ B over chains with the classic
// sliding match: A's last compound must cover B's last, then A's
// prefix must cover some prefix of B respecting combinators.
func IsSuperselectorComplex(a, b *Complex) bool {
	return superLinks(a.links(), b.links())
}

func superLinks(a, b []link) bool {
	if len(a) > len(b) {
		return false
	}
	la, lb := a[len(a)-1], b[len(b)-1]
	if !IsSuperselectorCompound(la.head, lb.head) {
		return false
	}
	if len(a) == 1 {
		return true
	}
	if la.comb != Descendant {
		// A specific combinator must match exactly and consume one
		// link on each side.
		if lb.comb != la.comb {
			return false
		}
		return superLinks(a[:len(a)-1], b[:len(b)-1])
	}
	// Descendant slides: the remaining prefix of A may cover any
	// proper prefix of B.
	for i := len(b) - 1; i >= 1; i-- {
		if superLinks(a[:len(a)-1], b[:i]) {
			return true
		}
	}
	return false
}

// IsSuperselectorCompound reports A ⊒ B over compounds: every simple
// in A must match some simple in B, modulo universal and namespace
// rules, with ":not" handled through its inner list.
func IsSuperselectorCompound(a, b *Compound) bool {
	if a == nil || b == nil {
		return a == nil
	}
	for _, sa := range a.Simples {
		if !simpleCovered(sa, b) {
			return false
		}
	}
	return true
}

// simpleCovered reports whether one simple of the candidate
// superselector is satisfied by the subject compound.
func simpleCovered(sa Simple, b *Compound) bool {
	switch v := sa.(type) {
	case *Type:
		for _, sb := range b.Simples {
			t, ok := sb.(*Type)
			if !ok {
				continue
			}
			if !v.NS().contains(t.NS()) {
				continue
			}
			if v.IsUniversal() || v.Name == t.Name {
				return true
			}
		}
		// The universal selector also covers compounds that name no
		// element at all.
		return v.IsUniversal() && !v.NS().IsEmpty()
	case *Wrapped:
		if v.Name == ":not" {
			// ":not(X)" covers ":not(Y)" when Y covers X: anything an
			// element must avoid to satisfy Y it also avoids for X.
			for _, sb := range b.Simples {
				w, ok := sb.(*Wrapped)
				if ok && w.Name == ":not" && IsSuperselector(w.Inner, v.Inner) {
					return true
				}
			}
			return false
		}
		for _, sb := range b.Simples {
			w, ok := sb.(*Wrapped)
			if ok && w.Name == v.Name && v.Equal(w) {
				return true
			}
		}
		return false
	default:
		return b.Contains(sa)
	}
}
