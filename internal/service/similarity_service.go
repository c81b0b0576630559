package service

import (
	"sort"
	"strings"
	"unicode"

	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/model"
)

const (
	MaxMatches = 5

	scoreExact              = 1.0
	scoreExistingContains   = 0.8
	scoreCandidateContains  = 0.6
	titleOverlapBase        = 0.3
	titleOverlapBonus       = 0.4
	actionStepsOverlapBase  = 0.2
	actionStepsOverlapBonus = 0.3
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {}, "for": {},
	"from": {}, "how": {}, "in": {}, "into": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"the": {}, "to": {}, "with": {}, "your": {}, "you": {}, "more": {}, "when": {}, "while": {},
}

// SimilarityService scores candidate pointers against existing ones with
// lexical rules only: exact title, substring containment, then token overlap
// against the title and the action steps.
type SimilarityService struct {
	UpdateThreshold float64
}

func NewSimilarityService(updateThreshold float64) *SimilarityService {
	return &SimilarityService{UpdateThreshold: updateThreshold}
}

// Match returns up to MaxMatches pointers with a positive score, best first.
func (s *SimilarityService) Match(candidateTitle, candidateBody string, existing []model.Pointer) []dto.PointerMatch {
	title := normalize(candidateTitle)
	if title == "" {
		return nil
	}
	titleTokens := tokenize(title)
	queryTokens := tokenize(title + " " + normalize(candidateBody))

	matches := make([]dto.PointerMatch, 0, len(existing))
	for _, p := range existing {
		score := scorePointer(title, titleTokens, queryTokens, p)
		if score > 0 {
			matches = append(matches, dto.PointerMatch{Pointer: p, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Pointer.CreatedAt.After(matches[j].Pointer.CreatedAt)
	})
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}

// BestUpdate returns the top match when it clears the update threshold.
func (s *SimilarityService) BestUpdate(matches []dto.PointerMatch) (dto.PointerMatch, bool) {
	if len(matches) == 0 || matches[0].Score < s.UpdateThreshold {
		return dto.PointerMatch{}, false
	}
	return matches[0], true
}

func scorePointer(title string, titleTokens, queryTokens []string, p model.Pointer) float64 {
	existing := normalize(p.Title)
	if existing == "" {
		return 0
	}
	switch {
	case existing == title:
		return scoreExact
	case strings.Contains(existing, title):
		return scoreExistingContains
	case strings.Contains(title, existing):
		return scoreCandidateContains
	}

	if r := overlap(titleTokens, tokenize(existing)); r > 0 {
		return titleOverlapBase + titleOverlapBonus*r
	}
	if p.ActionSteps != nil {
		if r := overlap(queryTokens, tokenize(normalize(*p.ActionSteps))); r > 0 {
			return actionStepsOverlapBase + actionStepsOverlapBonus*r
		}
	}
	return 0
}

// overlap is the share of query tokens present in doc.
func overlap(query, doc []string) float64 {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}
	docSet := make(map[string]struct{}, len(doc))
	for _, t := range doc {
		docSet[t] = struct{}{}
	}
	hits := 0
	for _, t := range query {
		if _, ok := docSet[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenize splits on anything that is not a letter or digit and drops stop
// words and duplicates.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
