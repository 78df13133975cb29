package nlp

import "math"

// Jaccard returns |A∩B| / |A∪B| over the token sets of a and b, or 0 when
// both are empty.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	union := len(setA)
	inter := 0
	for tok := range setB {
		if _, ok := setA[tok]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// WeightedCosine returns the cosine similarity of the weight vectors of a
// and b. Every occurrence of a token adds its importance to that token's
// component. Returns 0 when either vector has zero magnitude.
func (t *Tokenizer) WeightedCosine(a, b []string) float64 {
	va := t.vector(a)
	vb := t.vector(b)

	var dot, magA, magB float64
	for tok, wa := range va {
		magA += wa * wa
		if wb, ok := vb[tok]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range vb {
		magB += wb * wb
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

func (t *Tokenizer) vector(tokens []string) map[string]float64 {
	v := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		v[tok] += t.Weight(tok)
	}
	return v
}

// EditDistance is the Levenshtein distance between a and b, counted in
// runes. It is meant for spelling correction and is not used by the
// classifier's scoring.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func toSet(tokens []string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		s[tok] = struct{}{}
	}
	return s
}
