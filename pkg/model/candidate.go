package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Candidate is one tentative schedule: one section for each required (course, section type) slot
type Candidate struct {
	sections []Section
}

// NewCandidate builds a candidate, failing if the amount of sections differs from the amount of slots
func NewCandidate(slots int, sections ...Section) (Candidate, error) {
	if len(sections) != slots {
		return Candidate{}, fmt.Errorf("%w: expected %d sections, got %d", ErrCandidateArity, slots, len(sections))
	}
	return Candidate{sections: append([]Section(nil), sections...)}, nil
}

func (candidate Candidate) Len() int {
	return len(candidate.sections)
}

func (candidate Candidate) At(i int) Section {
	return candidate.sections[i]
}

func (candidate Candidate) Sections() []Section {
	return append([]Section(nil), candidate.sections...)
}

// Pairs calls fn once for every unordered pair of sections, stopping as soon as fn returns false
func (candidate Candidate) Pairs(fn func(s1, s2 Section) bool) bool {
	for i := range len(candidate.sections) - 1 {
		for j := i + 1; j < len(candidate.sections); j++ {
			if !fn(candidate.sections[i], candidate.sections[j]) {
				return false
			}
		}
	}
	return true
}

func (candidate Candidate) String() string {
	return "(" + strings.Join(lo.Map(candidate.sections, func(section Section, _ int) string { return section.String() }), ", ") + ")"
}
