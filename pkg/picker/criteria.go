package picker

import (
	"fmt"

	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/samber/lo"
)

// Criterion is a feasibility check over a whole candidate, which is feasible if Feasible returns true.
// Implementations must be pure: no side effects and the same answer for the same candidate.
// A criterion that cannot decide must return false.
type Criterion interface {
	Feasible(candidate model.Candidate) bool
}

// CriterionFunc adapts a plain function into a Criterion
type CriterionFunc func(candidate model.Candidate) bool

func (fn CriterionFunc) Feasible(candidate model.Candidate) bool {
	return fn(candidate)
}

// BlockedTime rejects candidates with any section that conflicts with the blocked meeting time (e.g. lunch)
type BlockedTime struct {
	Name        string
	MeetingTime model.MeetingTime
}

func (blocked BlockedTime) Feasible(candidate model.Candidate) bool {
	return !lo.SomeBy(candidate.Sections(), func(section model.Section) bool {
		return section.MeetingTime.ConflictsWith(blocked.MeetingTime)
	})
}

func (blocked BlockedTime) String() string {
	return fmt.Sprintf("<BlockedTime Name=%v %v>", blocked.Name, blocked.MeetingTime)
}

// Criteria is an ordered collection of criteria, all of which must hold.
// It is not safe for concurrent use: criteria must not be added while a search is running.
type Criteria struct {
	criteria []Criterion
}

func (criteria *Criteria) Add(criterion Criterion) {
	criteria.criteria = append(criteria.criteria, criterion)
}

func (criteria *Criteria) Len() int {
	return len(criteria.criteria)
}

// All returns a snapshot of the registered criteria in registration order
func (criteria *Criteria) All() []Criterion {
	return append([]Criterion(nil), criteria.criteria...)
}

// Evaluate checks every criterion in registration order, short-circuiting on the first failure
func (criteria *Criteria) Evaluate(candidate model.Candidate) bool {
	return evaluateAll(criteria.criteria, candidate)
}

func evaluateAll(criteria []Criterion, candidate model.Candidate) bool {
	for _, criterion := range criteria {
		if !criterion.Feasible(candidate) {
			return false
		}
	}
	return true
}
