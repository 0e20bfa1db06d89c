package picker

import (
	"context"
	"errors"
	"fmt"

	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/samber/lo"
)

// SectionSource provides the section group of a course for a given term
type SectionSource interface {
	SectionGroup(ctx context.Context, term model.Term, code string) (model.SectionGroup, error)
}

// Picker finds every combination of sections that satisfies the built-in conflict predicates and the registered criteria.
// A Picker is meant for a single session and is not safe for concurrent use.
type Picker struct {
	noOverlap    NoOverlap
	campusTravel CampusTravel
	criteria     Criteria
}

// NewPicker creates a picker whose campus-travel predicate resolves buildings with the given resolver.
// A nil resolver treats every location as unknown.
func NewPicker(resolver BuildingResolver) *Picker {
	return &Picker{
		campusTravel: NewCampusTravel(resolver),
	}
}

// AddCriterion registers an extra feasibility check, which applies to subsequent searches only
func (picker *Picker) AddCriterion(criterion Criterion) {
	picker.criteria.Add(criterion)
}

func (picker *Picker) Criteria() []Criterion {
	return picker.criteria.All()
}

// Evaluate checks a candidate against the built-in predicates followed by the registered criteria
func (picker *Picker) Evaluate(candidate model.Candidate) bool {
	return picker.noOverlap.Feasible(candidate) &&
		picker.campusTravel.Feasible(candidate) &&
		picker.criteria.Evaluate(candidate)
}

// Pick fetches the section group of every course code for the term and searches their feasible schedules
func (picker *Picker) Pick(ctx context.Context, source SectionSource, term model.Term, codes []string) ([]model.Candidate, error) {
	groups := make([]model.SectionGroup, 0, len(codes))
	for _, code := range codes {
		group, err := source.SectionGroup(ctx, term, code)
		if errors.Is(err, model.ErrEmptySectionGroup) {
			// A course without sections can't be attended, so no schedule is feasible
			return []model.Candidate{}, nil
		} else if err != nil {
			return nil, fmt.Errorf("cannot get sections for %q in %v: %w", code, term.ShortName, err)
		}
		groups = append(groups, group)
	}
	return picker.PickSections(groups), nil
}

// SectionChoices transforms the section groups into lists of sections. To complete a schedule, one section from each list must be chosen.
// A group without sections contributes an empty list, which leaves no schedule to choose.
func SectionChoices(groups []model.SectionGroup) [][]model.Section {
	return lo.FlatMap(groups, func(group model.SectionGroup, _ int) [][]model.Section {
		if len(group.SectionTypes()) == 0 {
			return [][]model.Section{{}}
		}
		return group.Choices()
	})
}

// PickSections returns every feasible schedule for the section groups, in Cartesian product order of their section choices
func (picker *Picker) PickSections(groups []model.SectionGroup) []model.Candidate {
	if len(groups) == 0 {
		return []model.Candidate{}
	}

	//** Resolve buildings once per section
	choices := lo.Map(SectionChoices(groups), func(sections []model.Section, _ int) []placement {
		return lo.Map(sections, func(section model.Section, _ int) placement {
			return place(picker.campusTravel.Resolver, section)
		})
	})
	domains := lo.Map(choices, func(placements []placement, _ int) uint64 { return uint64(len(placements)) })

	//** Snapshot criteria, so registrations made afterwards don't affect this search
	criteria := picker.criteria.All()

	toCandidate := func(product []uint64) model.Candidate {
		sections := make([]model.Section, len(product))
		for slot, choice := range product {
			sections[slot] = choices[slot][choice].section
		}
		candidate, _ := model.NewCandidate(len(choices), sections...) // Arity always matches the amount of choices
		return candidate
	}

	// Every pair of slots is checked once, when the later slot of the pair gets assigned
	pairwise := func(predicate func(p1, p2 placement) bool) func(product []uint64) bool {
		return func(product []uint64) bool {
			current := lastAssigned(product)
			if current <= 0 {
				return true
			}
			latest := choices[current][product[current]]
			for slot := range current {
				if !predicate(choices[slot][product[slot]], latest) {
					return false
				}
			}
			return true
		}
	}

	last := len(choices) - 1
	constraints := []func(product []uint64) bool{
		pairwise(timesDontOverlap),
		pairwise(picker.campusTravel.closeEnough),
		func(product []uint64) bool {
			return product[last] == unset ||

				// Actual predicate
				evaluateAll(criteria, toCandidate(product))
		},
	}

	//** Enumerate
	products := newProductGenerator(domains).ConstrainedProducts(constraints)

	return lo.Map(products, func(product []uint64, _ int) model.Candidate {
		return toCandidate(product)
	})
}
