// Package matching decides whether a candidate's declared skills match a
// posting's free-text requirements.
//
// A skill matches when its lower-cased name occurs anywhere in the
// lower-cased requirements text. There is no tokenization or ranking: a
// false positive only costs one notification.
//
// Skill names that are empty or whitespace-only never match, even though a
// plain substring test would find " " in any multi-word requirements text.
package matching

import (
	"sort"
	"strings"
)

// SkillPair is one (candidate, skill name) row from the skill store.
type SkillPair struct {
	CandidateID string
	SkillName   string
}

// Normalize lower-cases text for comparison.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// GroupByCandidate collects normalized, de-duplicated skill names per
// candidate. Blank names are dropped since they would match every posting.
func GroupByCandidate(pairs []SkillPair) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, p := range pairs {
		if p.CandidateID == "" {
			continue
		}
		if strings.TrimSpace(p.SkillName) == "" {
			continue
		}
		name := Normalize(p.SkillName)
		s, ok := seen[p.CandidateID]
		if !ok {
			s = make(map[string]struct{})
			seen[p.CandidateID] = s
		}
		if _, dup := s[name]; dup {
			continue
		}
		s[name] = struct{}{}
		out[p.CandidateID] = append(out[p.CandidateID], name)
	}
	return out
}

// MatchesNormalized reports whether any of the already normalized skills is
// contained in the already normalized requirements. It stops at the first hit.
func MatchesNormalized(requirements string, skills []string) bool {
	if requirements == "" {
		return false
	}
	for _, s := range skills {
		if s == "" {
			continue
		}
		if strings.Contains(requirements, s) {
			return true
		}
	}
	return false
}

// Matches normalizes both sides and applies MatchesNormalized. Blank and
// whitespace-only skill names are skipped.
func Matches(requirements string, skills []string) bool {
	req := Normalize(requirements)
	norm := make([]string, 0, len(skills))
	for _, s := range skills {
		if strings.TrimSpace(s) == "" {
			continue
		}
		norm = append(norm, Normalize(s))
	}
	return MatchesNormalized(req, norm)
}

// MatchCandidates returns the ids of every candidate with at least one
// matching skill, each id once, sorted.
func MatchCandidates(requirements string, pairs []SkillPair) []string {
	if strings.TrimSpace(requirements) == "" || len(pairs) == 0 {
		return nil
	}
	req := Normalize(requirements)

	grouped := GroupByCandidate(pairs)
	out := make([]string, 0)
	for candidateID, skills := range grouped {
		if MatchesNormalized(req, skills) {
			out = append(out, candidateID)
		}
	}
	sort.Strings(out)
	return out
}
