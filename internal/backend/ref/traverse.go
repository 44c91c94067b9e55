package ref

import "github.com/black-sat/black/internal/term"

// nodeData mirrors original_source's K_data_t: size is the subtree's node
// count (computed once, memoized by pointer since terms are hash-consed),
// n is how many times the subtree recurs as a direct child across the
// whole formula.
type nodeData struct {
	size int
	n    int
}

// traverse walks f once, memoizing each subterm's nodeData by its
// canonical pointer. Recovered from original_source's solver/core.cpp
// traverse_impl, stripped of the placeholder-counter bookkeeping (this
// repo's fresh-symbol counter lives in pipeline.surrogateConsumer, not
// here).
func traverse(f *term.Term) map[*term.Term]nodeData {
	ks := make(map[*term.Term]nodeData)
	var walk func(*term.Term) int
	walk = func(t *term.Term) int {
		switch t.Kind() {
		case term.KindBoolean, term.KindInteger, term.KindReal, term.KindObject, term.KindVariable:
			return 1
		case term.KindNegation, term.KindMinus, term.KindTomorrow, term.KindWTomorrow,
			term.KindEventually, term.KindAlways, term.KindYesterday, term.KindWYesterday,
			term.KindOnce, term.KindHistorically:
			data := ks[t]
			if data.size == 0 {
				data.size = 1 + walk(t.Operand())
			}
			data.n++
			ks[t] = data
			return data.size
		case term.KindImplication, term.KindUntil, term.KindRelease, term.KindSince,
			term.KindTriggered, term.KindDifference, term.KindDivision,
			term.KindLessThan, term.KindLessThanEq, term.KindGreaterThan, term.KindGreaterThanEq:
			data := ks[t]
			if data.size == 0 {
				data.size = 1 + walk(t.Left()) + walk(t.Right())
			}
			data.n++
			ks[t] = data
			return data.size
		case term.KindConjunction, term.KindDisjunction, term.KindEqual, term.KindDistinct,
			term.KindSum, term.KindProduct:
			data := ks[t]
			if data.size == 0 {
				size := 1
				for _, a := range t.Args() {
					size += walk(a)
				}
				data.size = size
			}
			data.n++
			ks[t] = data
			return data.size
		case term.KindIte:
			data := ks[t]
			if data.size == 0 {
				data.size = 1 + walk(t.Guard()) + walk(t.Then()) + walk(t.Else())
			}
			data.n++
			ks[t] = data
			return data.size
		case term.KindAtom:
			data := ks[t]
			if data.size == 0 {
				size := 1 + walk(t.Head())
				for _, a := range t.Args() {
					size += walk(a)
				}
				data.size = size
			}
			data.n++
			ks[t] = data
			return data.size
		case term.KindForall, term.KindExists, term.KindLambda:
			data := ks[t]
			if data.size == 0 {
				data.size = 1 + walk(t.Body())
			}
			data.n++
			ks[t] = data
			return data.size
		default:
			return 1
		}
	}
	walk(f)
	return ks
}

// groupByWeight buckets every memoized subterm of f by K = size*n (the
// same weighting original_source's group_by_K uses to prioritize which
// shared subterms are worth special-casing first), heaviest group first.
// The reference backend uses this purely to order its boolean-atom
// enumeration so that atoms feeding the most heavily-shared subterms are
// assigned first, which tends to prune the brute-force search sooner —
// it does not change correctness, only search order.
func groupByWeight(f *term.Term) [][]*term.Term {
	ks := traverse(f)
	maxWeight := 0
	for _, data := range ks {
		if w := data.size * data.n; w > maxWeight {
			maxWeight = w
		}
	}
	groups := make([][]*term.Term, maxWeight+1)
	for t, data := range ks {
		w := data.size * data.n
		groups[w] = append(groups[w], t)
	}
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return groups
}

// atomPriority orders atoms (boolean objects) by the heaviest subterm they
// appear directly under, heaviest first, falling back to declaration order
// for atoms tied at zero weight.
func atomPriority(formulas []*term.Term, atoms []*term.Entity) []*term.Entity {
	weight := make(map[string]int, len(atoms))
	for _, f := range formulas {
		groups := groupByWeight(f)
		for i, group := range groups {
			w := len(groups) - 1 - i // groups is heaviest-first
			for _, t := range group {
				children := append([]*term.Term{t.Operand(), t.Right(), t.Else(), t.Body()}, t.Args()...)
				for _, c := range children {
					if c != nil && c.Kind() == term.KindObject {
						key := c.Entity().Name.Key()
						if w > weight[key] {
							weight[key] = w
						}
					}
				}
			}
		}
	}
	ordered := append([]*term.Entity(nil), atoms...)
	for i := 1; i < len(ordered); i++ {
		j := i
		for j > 0 && weight[ordered[j].Name.Key()] > weight[ordered[j-1].Name.Key()] {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
			j--
		}
	}
	return ordered
}
