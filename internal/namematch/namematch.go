// Package namematch resolves player identities across feeds that format
// names inconsistently: full names, bare initials, "Last, First" order,
// inverted token order, trailing suffixes. Matching is purely structural;
// there is no persistent identity and no scoring pass.
package namematch

import (
	"strings"
	"unicode"
)

// Match reports whether candidate and reference plausibly name the same
// player. The rules run precision-first: normalized equality, then
// surname-gated given-name comparison, then order-tolerant fallbacks.
// Two names with differing surnames never match.
func Match(candidate, reference string) bool {
	// "Last, First" rewrite has to happen before normalization strips the comma.
	if strings.Contains(candidate, ",") || strings.Contains(reference, ",") {
		return matchNormalized(normalize(rewriteComma(candidate)), normalize(rewriteComma(reference)))
	}
	return matchNormalized(normalize(candidate), normalize(reference))
}

// BestMatch returns the first reference satisfying Match, scanning in input
// order. Deterministic: no ranking beyond first hit.
func BestMatch(candidate string, references []string) (string, bool) {
	for _, ref := range references {
		if Match(candidate, ref) {
			return ref, true
		}
	}
	return "", false
}

func matchNormalized(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	pa := strings.Fields(a)
	pb := strings.Fields(b)
	if matchParts(pa, pb) {
		return true
	}
	// Some sources invert token order outright; retry with one side swapped.
	if len(pa) == 2 && len(pb) == 2 {
		return matchParts([]string{pa[1], pa[0]}, pb)
	}
	return false
}

func matchParts(pa, pb []string) bool {
	// A lone token can only be a surname: "Judge" matches "Aaron Judge".
	if len(pa) == 1 || len(pb) == 1 {
		if len(pa) == 1 && len(pb) > 1 {
			return pa[0] == pb[len(pb)-1]
		}
		if len(pb) == 1 && len(pa) > 1 {
			return pb[0] == pa[len(pa)-1]
		}
		return false
	}

	surA := pa[len(pa)-1]
	surB := pb[len(pb)-1]
	givenA := strings.Join(pa[:len(pa)-1], " ")
	givenB := strings.Join(pb[:len(pb)-1], " ")

	if surA != surB {
		// An abbreviated surname ("Trea T." vs "Trea Turner") passes only
		// when the given names are exactly identical.
		return givenA == givenB && surnameInitial(surA, surB)
	}
	if givenA == givenB {
		return true
	}
	// Initial rules apply to single given tokens only.
	if len(pa) != 2 || len(pb) != 2 {
		return false
	}
	return givenMatch(givenA, givenB)
}

// givenMatch compares two single given-name tokens with matching surnames.
func givenMatch(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) != 1 {
		return false
	}
	// "jt" is a compound initial; it must not collide with a bare "j" or "t".
	if len(b) == 2 {
		return false
	}
	return a[0] == b[0]
}

func surnameInitial(a, b string) bool {
	if len(a) == 1 && len(b) > 1 {
		return a[0] == b[0]
	}
	if len(b) == 1 && len(a) > 1 {
		return b[0] == a[0]
	}
	return false
}

// rewriteComma turns "Last, First" into "First Last". Applied at most once;
// additional commas are left for normalization to strip.
func rewriteComma(s string) string {
	i := strings.Index(s, ",")
	if i < 0 {
		return s
	}
	last := strings.TrimSpace(s[:i])
	first := strings.TrimSpace(s[i+1:])
	if last == "" || first == "" {
		return s
	}
	return first + " " + last
}

// normalize lowercases, strips everything but letters and spaces, and
// collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
