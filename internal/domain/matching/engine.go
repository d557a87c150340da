package matching

import (
	"sort"

	"github.com/google/uuid"
)

// Profile is the slice of a user the engine needs. Skill strings are
// compared exactly (case-sensitive); normalization happens at the edit
// boundary, not here.
type Profile struct {
	UserID      uuid.UUID
	Username    string
	FullName    string
	TeachSkills []string
	LearnSkills []string
}

const (
	// Any mutual match clears the base score; each matched skill on either
	// side adds the per-skill weight on top.
	baseScore     = 100
	perSkillScore = 10
)

const (
	TierGood      = "good"
	TierStrong    = "strong"
	TierExcellent = "excellent"
)

type Match struct {
	Candidate            Profile
	YouCanTeachThem      []string
	TheyCanTeachYou      []string
	MatchScore           int
	TotalSkillsExchanged int
	MinSkillsExchanged   int
	Tier                 string
}

// Evaluate computes the mutual-benefit match between u and c. A match exists
// only when both directions are non-empty: u teaches something c wants AND c
// teaches something u wants. One-directional overlap returns ok=false.
func Evaluate(u, c Profile) (Match, bool) {
	if len(u.TeachSkills) == 0 || len(u.LearnSkills) == 0 {
		return Match{}, false
	}
	if len(c.TeachSkills) == 0 || len(c.LearnSkills) == 0 {
		return Match{}, false
	}

	youTeach := intersect(u.TeachSkills, c.LearnSkills)
	theyTeach := intersect(c.TeachSkills, u.LearnSkills)
	if len(youTeach) == 0 || len(theyTeach) == 0 {
		return Match{}, false
	}

	total := len(youTeach) + len(theyTeach)
	minExchanged := len(youTeach)
	if len(theyTeach) < minExchanged {
		minExchanged = len(theyTeach)
	}

	return Match{
		Candidate:            c,
		YouCanTeachThem:      youTeach,
		TheyCanTeachYou:      theyTeach,
		MatchScore:           baseScore + perSkillScore*total,
		TotalSkillsExchanged: total,
		MinSkillsExchanged:   minExchanged,
		Tier:                 tier(minExchanged),
	}, true
}

// Rank evaluates u against every candidate and returns the matches sorted by
// score descending, username ascending on ties. Pure and deterministic.
func Rank(u Profile, pool []Profile) []Match {
	out := make([]Match, 0, len(pool))
	for _, c := range pool {
		if c.UserID == u.UserID {
			continue
		}
		if m, ok := Evaluate(u, c); ok {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].Candidate.Username < out[j].Candidate.Username
	})

	return out
}

// Page slices a ranked list by offset/limit. Out-of-range offsets yield an
// empty, non-nil slice; limit <= 0 means no limit.
func Page(matches []Match, limit, offset int) []Match {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matches) {
		return []Match{}
	}
	rest := matches[offset:]
	if limit > 0 && limit < len(rest) {
		rest = rest[:limit]
	}
	out := make([]Match, len(rest))
	copy(out, rest)
	return out
}

func tier(minExchanged int) string {
	switch {
	case minExchanged >= 3:
		return TierExcellent
	case minExchanged >= 2:
		return TierStrong
	default:
		return TierGood
	}
}

// intersect keeps a's order, drops duplicates, matches exactly.
func intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}

	out := make([]string, 0, len(a))
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
