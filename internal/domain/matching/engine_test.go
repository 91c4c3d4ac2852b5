package matching

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestMatches(t *testing.T) {
	cases := []struct {
		name string
		req  string
		sk   []string
		want bool
	}{
		{name: "case insensitive", req: "Cần biết SEO và Content Writing", sk: []string{"seo"}, want: true},
		{name: "multi word skill", req: "Cần biết SEO và Content Writing", sk: []string{"Java", "content writing"}, want: true},
		{name: "substring not token", req: "Experience with JavaScript", sk: []string{"Java"}, want: true},
		{name: "no hit", req: "Cần biết SEO", sk: []string{"Java", "Go"}, want: false},
		{name: "empty requirements", req: "", sk: []string{"SEO"}, want: false},
		{name: "no skills", req: "SEO", sk: nil, want: false},
		{name: "blank skill ignored", req: "SEO", sk: []string{"  "}, want: false},
		{name: "space skill on multi word text", req: "Cần biết SEO và Content Writing", sk: []string{" "}, want: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Matches(c.req, c.sk); got != c.want {
				t.Fatalf("Matches(%q, %v) = %v, want %v", c.req, c.sk, got, c.want)
			}
		})
	}
}

func TestMatchCandidates_Scenario(t *testing.T) {
	pairs := []SkillPair{
		{CandidateID: "C1", SkillName: "SEO"},
		{CandidateID: "C2", SkillName: "Java"},
	}
	got := MatchCandidates("Cần biết SEO và Content Writing", pairs)
	if !reflect.DeepEqual(got, []string{"C1"}) {
		t.Fatalf("expected [C1], got %v", got)
	}
}

func TestMatchCandidates_EmptyRequirements(t *testing.T) {
	pairs := []SkillPair{{CandidateID: "C1", SkillName: "SEO"}}
	for _, req := range []string{"", "   "} {
		if got := MatchCandidates(req, pairs); len(got) != 0 {
			t.Fatalf("MatchCandidates(%q) expected no match, got %v", req, got)
		}
	}
}

func TestMatchCandidates_DuplicateSkillsOnce(t *testing.T) {
	pairs := []SkillPair{
		{CandidateID: "C1", SkillName: "SEO"},
		{CandidateID: "C1", SkillName: "seo"},
		{CandidateID: "C1", SkillName: "Content"},
	}
	got := MatchCandidates("SEO content", pairs)
	if !reflect.DeepEqual(got, []string{"C1"}) {
		t.Fatalf("expected exactly one C1, got %v", got)
	}
}

func TestGroupByCandidate(t *testing.T) {
	g := GroupByCandidate([]SkillPair{
		{CandidateID: "C1", SkillName: "SEO"},
		{CandidateID: "C1", SkillName: "Seo"},
		{CandidateID: "C1", SkillName: ""},
		{CandidateID: "", SkillName: "Go"},
		{CandidateID: "C2", SkillName: "Go"},
	})
	if len(g) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(g))
	}
	if !reflect.DeepEqual(g["C1"], []string{"seo"}) {
		t.Fatalf("unexpected C1 skills: %v", g["C1"])
	}
	if !reflect.DeepEqual(g["C2"], []string{"go"}) {
		t.Fatalf("unexpected C2 skills: %v", g["C2"])
	}
}

// Random inputs checked against the definition: a candidate is in the set iff
// one of its lower-cased skills is a substring of the lower-cased text, and
// the set does not depend on row order.
func TestMatchCandidates_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocab := []string{"Go", "SEO", "java", "JavaScript", "SQL", "content", "Writing", "docker", "K8s", "rust"}
	candidates := []string{"C1", "C2", "C3", "C4", "C5"}

	for iter := 0; iter < 200; iter++ {
		words := make([]string, 0, 4)
		for i := 0; i < rng.Intn(5); i++ {
			words = append(words, vocab[rng.Intn(len(vocab))])
		}
		req := strings.Join(words, " ")
		if rng.Intn(2) == 0 {
			req = strings.ToUpper(req)
		}

		pairs := make([]SkillPair, 0)
		for _, c := range candidates {
			for i := 0; i < rng.Intn(4); i++ {
				pairs = append(pairs, SkillPair{CandidateID: c, SkillName: vocab[rng.Intn(len(vocab))]})
			}
		}

		want := make([]string, 0)
		for _, c := range candidates {
			for _, p := range pairs {
				if p.CandidateID == c && req != "" && strings.Contains(strings.ToLower(req), strings.ToLower(p.SkillName)) {
					want = append(want, c)
					break
				}
			}
		}

		got := MatchCandidates(req, pairs)
		if len(want) == 0 {
			if len(got) != 0 {
				t.Fatalf("iter %d: req=%q expected no match, got %v", iter, req, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("iter %d: req=%q got %v want %v", iter, req, got, want)
		}

		rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
		if shuffled := MatchCandidates(req, pairs); !reflect.DeepEqual(shuffled, got) {
			t.Fatalf("iter %d: order dependent result %v vs %v", iter, shuffled, got)
		}
	}
}
