package synccorpus

import (
	"slices"
)

// MatchKind classifies the result of synchronizing one token.
type MatchKind int

const (
	// Unresolved: no match and no replacement candidate qualified.
	Unresolved MatchKind = iota
	// ExactMatch: a candidate equals the reference.
	ExactMatch
	// CaseInsensitiveMatch: a candidate equals the reference once lemmas
	// are lowercased.
	CaseInsensitiveMatch
	// Replaced: the best single-morpheme candidate replaces the reference.
	Replaced
	// NoCandidates: the untagged unit has no analyses at all.
	NoCandidates
)

var matchKindNames = [...]string{
	Unresolved:           "unresolved",
	ExactMatch:           "exact",
	CaseInsensitiveMatch: "case-insensitive",
	Replaced:             "replaced",
	NoCandidates:         "no-candidates",
}

func (k MatchKind) String() string {
	if k < 0 || int(k) >= len(matchKindNames) {
		return "unknown"
	}
	return matchKindNames[k]
}

// Outcome is the decision taken for one token.
type Outcome struct {
	Kind MatchKind
	// Analysis is the matching or replacement candidate.
	Analysis Analysis
	// Index is the position of Analysis among the candidates, or -1.
	Index int
	// Shared is the number of tags the replacement shares with the
	// reference. Only set for Replaced.
	Shared int
}

// Matcher locates the reference analysis among the untagged candidates.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	folder *Folder
}

// NewMatcher returns a Matcher that lowercases lemmas with f.
// A nil Folder falls back to strings.ToLower.
func NewMatcher(f *Folder) *Matcher {
	return &Matcher{folder: f}
}

// Synchronize applies, in order: exact match, case-insensitive match,
// best tag overlap for single-morpheme references. Candidates are scanned
// in order and the first hit (or first best score) wins.
func (m *Matcher) Synchronize(ref Analysis, candidates []Analysis) Outcome {
	if len(candidates) == 0 {
		return Outcome{Kind: NoCandidates, Index: -1}
	}
	if i := slices.IndexFunc(candidates, ref.Equal); i >= 0 {
		return Outcome{Kind: ExactMatch, Analysis: candidates[i], Index: i}
	}
	if i := slices.IndexFunc(candidates, func(c Analysis) bool {
		return m.equalFold(ref, c)
	}); i >= 0 {
		return Outcome{Kind: CaseInsensitiveMatch, Analysis: candidates[i], Index: i}
	}
	if i, shared := bestReplacement(ref, candidates); i >= 0 {
		return Outcome{Kind: Replaced, Analysis: candidates[i], Index: i, Shared: shared}
	}
	return Outcome{Kind: Unresolved, Index: -1}
}

// equalFold compares morpheme by morpheme: tags exactly, lemmas and queues
// after lowercasing.
func (m *Matcher) equalFold(ref, cand Analysis) bool {
	if len(ref.Morphemes) != len(cand.Morphemes) {
		return false
	}
	for i, rm := range ref.Morphemes {
		cm := cand.Morphemes[i]
		if m.folder.Fold(rm.Lemma) != m.folder.Fold(cm.Lemma) {
			return false
		}
		if m.folder.Fold(rm.Queue) != m.folder.Fold(cm.Queue) {
			return false
		}
		if !tagsEqual(rm.Tags, cm.Tags) {
			return false
		}
	}
	return true
}

// bestReplacement returns the index of the single-morpheme candidate that
// shares the primary tag with a single-morpheme reference and has the
// largest tag intersection with it, along with that intersection size.
// It returns -1 when ref has several morphemes or nothing qualifies.
func bestReplacement(ref Analysis, candidates []Analysis) (int, int) {
	if len(ref.Morphemes) != 1 {
		return -1, 0
	}
	tagged := ref.Morphemes[0]
	primary, ok := tagged.PrimaryTag()
	if !ok {
		return -1, 0
	}
	refTags := sortedTags(tagged.Tags)

	best, bestShared := -1, 0
	for i, c := range candidates {
		if len(c.Morphemes) != 1 {
			continue
		}
		untagged := c.Morphemes[0]
		if p, ok := untagged.PrimaryTag(); !ok || p != primary {
			continue
		}
		shared := intersectionSize(refTags, sortedTags(untagged.Tags))
		if shared > bestShared {
			best, bestShared = i, shared
		}
	}
	if bestShared < 1 {
		return -1, 0
	}
	return best, bestShared
}

func sortedTags(tags []Tag) []Tag {
	s := slices.Clone(tags)
	slices.Sort(s)
	return s
}

// intersectionSize counts the common elements of two sorted tag lists,
// keeping duplicates as many times as both sides have them.
func intersectionSize(a, b []Tag) int {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case b[j] < a[i]:
			j++
		default:
			n++
			i++
			j++
		}
	}
	return n
}
