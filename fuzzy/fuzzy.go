// fuzzy/fuzzy.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package fuzzy scores user queries against procedure and chart names.
// Queries are short, all-caps aviation strings ("RNAV 4R", "CNDEL FIVE")
// where token overlap matters far more than character-level similarity.
package fuzzy

import (
	"regexp"
	"sort"
	"strings"
)

// MinScore is the floor below which a candidate isn't considered a
// match at all.
const MinScore = 0.2

// AmbiguityThreshold is the score gap the best match must have over the
// runner-up to be selected with confidence.
const AmbiguityThreshold = 0.15

var tokenRe = regexp.MustCompile(`[A-Z0-9]+`)
var runwayRe = regexp.MustCompile(`(^|\s)(\d[LRC]?)(\s|$)`)

// NormalizeRunways pads single-digit runway numbers with a leading
// zero so "4R" and "04R" compare equal.
func NormalizeRunways(s string) string {
	// The trailing context of one match can be the leading context of
	// the next ("RWY 4 5"), so substitute twice.
	for i := 0; i < 2; i++ {
		s = runwayRe.ReplaceAllString(s, "${1}0${2}${3}")
	}
	return s
}

// Levenshtein returns the edit distance between two strings.
func Levenshtein(s1, s2 string) int {
	if len(s1) < len(s2) {
		s1, s2 = s2, s1
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	cur := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 0; i < len(s1); i++ {
		cur[0] = i + 1
		for j := 0; j < len(s2); j++ {
			cost := 0
			if s1[i] != s2[j] {
				cost = 1
			}
			cur[j+1] = minOf(prev[j+1]+1, cur[j]+1, prev[j]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(s2)]
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func tokens(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tokenRe.FindAllString(s, -1) {
		set[t] = true
	}
	return set
}

// Similarity scores query against target, returning a value in [0, 1].
// The score combines Jaccard token overlap with bonuses for substring
// containment, a first-token prefix match, and near-miss tokens within
// edit distance 2 (typo tolerance, applied only when no token matched
// exactly).
func Similarity(query, target string) float32 {
	query = NormalizeRunways(strings.ToUpper(query))
	target = NormalizeRunways(strings.ToUpper(target))

	if query == target {
		return 1
	}

	qt, tt := tokens(query), tokens(target)
	if len(qt) == 0 || len(tt) == 0 {
		return 0
	}

	intersection := 0
	for t := range qt {
		if tt[t] {
			intersection++
		}
	}
	union := len(qt) + len(tt) - intersection
	score := float32(intersection) / float32(union)

	if strings.Contains(target, query) {
		score += 0.3
	} else {
		for t := range qt {
			if strings.Contains(target, t) {
				score += 0.15
				break
			}
		}
	}

	// Prefix bonus on the lexicographically first query token.
	first := ""
	for t := range qt {
		if first == "" || t < first {
			first = t
		}
	}
	for t := range tt {
		if strings.HasPrefix(t, first) {
			score += 0.1
			break
		}
	}

	if intersection == 0 {
		var editBonus float32
		for q := range qt {
			if len(q) < 4 {
				continue
			}
			for t := range tt {
				if len(t) < 4 {
					continue
				}
				if dist := Levenshtein(q, t); dist <= 2 {
					maxLen := max(len(q), len(t))
					if b := 0.4 * (1 - float32(dist)/float32(maxLen)); b > editBonus {
						editBonus = b
					}
				}
			}
		}
		score += editBonus
	}

	return min(score, 1)
}

// Match is one scored candidate.
type Match struct {
	Name  string
	Score float32
}

// Best picks the best candidate for a query. The returned ok is false
// when nothing scored above MinScore or when the result is ambiguous;
// matches always carries everything above MinScore, best first.
//
// Selection: an exact match wins outright. Then, for multi-token
// queries, if exactly one candidate contains every query token it wins
// regardless of score. Otherwise the best match must beat the runner-up
// by AmbiguityThreshold.
func Best(query string, candidates []string) (string, []Match, bool) {
	if len(candidates) == 0 {
		return "", nil, false
	}

	var matches []Match
	for _, c := range candidates {
		if s := Similarity(query, c); s >= MinScore {
			matches = append(matches, Match{Name: c, Score: s})
		}
	}
	if len(matches) == 0 {
		return "", nil, false
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	if matches[0].Score == 1 {
		return matches[0].Name, matches, true
	}

	qt := tokens(NormalizeRunways(strings.ToUpper(query)))
	if len(qt) > 1 {
		var full []Match
		for _, m := range matches {
			ct := tokens(NormalizeRunways(strings.ToUpper(m.Name)))
			all := true
			for t := range qt {
				if !ct[t] {
					all = false
					break
				}
			}
			if all {
				full = append(full, m)
			}
		}
		if len(full) == 1 {
			return full[0].Name, matches, true
		}
	}

	if len(matches) > 1 && matches[0].Score-matches[1].Score < AmbiguityThreshold {
		var close []Match
		for _, m := range matches {
			if matches[0].Score-m.Score < AmbiguityThreshold {
				close = append(close, m)
			}
		}
		return "", close, false
	}
	return matches[0].Name, matches, true
}
