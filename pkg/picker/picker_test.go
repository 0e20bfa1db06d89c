package picker

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSection(t testing.TB, code, sectionType, sectionNumber, location, days, times string) model.Section {
	t.Helper()
	meetingTime, err := model.ParseMeetingTime(days, times)
	require.NoError(t, err)

	var subject, number string
	_, err = fmt.Sscanf(code, "%s %s", &subject, &number)
	require.NoError(t, err)

	section, err := model.NewSection(subject, number, sectionType, sectionNumber, code+" name", location, meetingTime)
	require.NoError(t, err)
	return section
}

func newGroup(t testing.TB, sections ...model.Section) model.SectionGroup {
	t.Helper()
	group, err := model.NewSectionGroup(sections)
	require.NoError(t, err)
	return group
}

func labels(candidates []model.Candidate) [][]string {
	return lo.Map(candidates, func(candidate model.Candidate, _ int) []string {
		return lo.Map(candidate.Sections(), func(section model.Section, _ int) string {
			return section.Code() + " " + section.Label()
		})
	})
}

// campusMap resolves buildings from a location -> campus table
type campusMap map[string]string

func (campuses campusMap) ResolveBuilding(section model.Section) (model.Building, bool) {
	campus, ok := campuses[section.Location]
	if !ok {
		return model.Building{}, false
	}
	return model.Building{Abbreviation: section.Location, Name: section.Location, Campus: campus}, true
}

type staticSource map[string]model.SectionGroup

func (source staticSource) SectionGroup(_ context.Context, _ model.Term, code string) (model.SectionGroup, error) {
	group, ok := source[code]
	if !ok {
		return model.SectionGroup{}, model.ErrEmptySectionGroup
	}
	return group, nil
}

func TestPickSections(t *testing.T) {
	t.Run("Two courses with overlapping choices", func(t *testing.T) {
		//** Arrange
		courseA := newGroup(t,
			newSection(t, "EECS 281", "LEC", "001", "ARR", "MoWeFr", "9:00AM - 10:00AM"),
			newSection(t, "EECS 281", "LEC", "002", "ARR", "MoWeFr", "10:00AM - 11:00AM"),
		)
		courseB := newGroup(t,
			newSection(t, "EECS 376", "LEC", "001", "ARR", "MoWeFr", "9:30AM - 10:30AM"),
			newSection(t, "EECS 376", "LEC", "002", "ARR", "TuTh", "2:00PM - 3:00PM"),
		)
		picker := NewPicker(nil)

		//** Act
		candidates := picker.PickSections([]model.SectionGroup{courseA, courseB})

		//** Assert
		// EECS 376 LEC 001 overlaps both EECS 281 sections, while LEC 002 shares no day with either
		assert.Equal(t, [][]string{
			{"EECS 281 LEC 001", "EECS 376 LEC 002"},
			{"EECS 281 LEC 002", "EECS 376 LEC 002"},
		}, labels(candidates))
	})

	t.Run("Lexicographic product order", func(t *testing.T) {
		//** Arrange
		courseA := newGroup(t,
			newSection(t, "MATH 1", "LEC", "001", "ARR", "Mo", "8:00AM - 9:00AM"),
			newSection(t, "MATH 1", "LEC", "002", "ARR", "Tu", "8:00AM - 9:00AM"),
		)
		courseB := newGroup(t,
			newSection(t, "PHYS 2", "LAB", "001", "ARR", "We", "8:00AM - 9:00AM"),
			newSection(t, "PHYS 2", "LAB", "002", "ARR", "Th", "8:00AM - 9:00AM"),
		)

		//** Act
		candidates := NewPicker(nil).PickSections([]model.SectionGroup{courseA, courseB})

		//** Assert
		assert.Equal(t, [][]string{
			{"MATH 1 LEC 001", "PHYS 2 LAB 001"},
			{"MATH 1 LEC 001", "PHYS 2 LAB 002"},
			{"MATH 1 LEC 002", "PHYS 2 LAB 001"},
			{"MATH 1 LEC 002", "PHYS 2 LAB 002"},
		}, labels(candidates))
	})

	t.Run("Section types of a course are independent choices", func(t *testing.T) {
		course := newGroup(t,
			newSection(t, "EECS 280", "LEC", "001", "ARR", "MoWe", "10:30AM - 12:00PM"),
			newSection(t, "EECS 280", "DIS", "011", "ARR", "Fr", "10:30AM - 11:30AM"),
			newSection(t, "EECS 280", "LEC", "002", "ARR", "TuTh", "10:30AM - 12:00PM"),
			newSection(t, "EECS 280", "DIS", "012", "ARR", "Th", "11:00AM - 12:00PM"),
		)

		candidates := NewPicker(nil).PickSections([]model.SectionGroup{course})

		assert.Equal(t, [][]string{
			{"EECS 280 LEC 001", "EECS 280 DIS 011"},
			{"EECS 280 LEC 001", "EECS 280 DIS 012"},
			{"EECS 280 LEC 002", "EECS 280 DIS 011"},
		}, labels(candidates))
	})

	t.Run("Course without sections", func(t *testing.T) {
		course := newGroup(t, newSection(t, "EECS 281", "LEC", "001", "ARR", "Mo", "9:00AM - 10:00AM"))

		assert.Empty(t, NewPicker(nil).PickSections([]model.SectionGroup{course, {}}))
		assert.Empty(t, NewPicker(nil).PickSections(nil))
	})

	t.Run("No feasible combination", func(t *testing.T) {
		courseA := newGroup(t, newSection(t, "EECS 281", "LEC", "001", "ARR", "Mo", "9:00AM - 10:00AM"))
		courseB := newGroup(t, newSection(t, "EECS 376", "LEC", "001", "ARR", "Mo", "9:30AM - 10:30AM"))

		candidates := NewPicker(nil).PickSections([]model.SectionGroup{courseA, courseB})

		assert.NotNil(t, candidates)
		assert.Empty(t, candidates)
	})
}

func TestZeroValuePicker(t *testing.T) {
	//** Arrange
	var picker Picker
	courseA := newGroup(t,
		newSection(t, "EECS 281", "LEC", "001", "1670 BBB", "Mo", "9:00AM - 10:00AM"),
		newSection(t, "EECS 281", "LEC", "002", "1670 BBB", "Mo", "9:30AM - 10:30AM"),
	)
	courseB := newGroup(t, newSection(t, "EECS 376", "LEC", "001", "B115 MLB", "Mo", "10:00AM - 11:00AM"))

	//** Act
	candidates := picker.PickSections([]model.SectionGroup{courseA, courseB})

	//** Assert
	// Without a resolver every location is unknown, so only the time overlap counts
	assert.Equal(t, [][]string{{"EECS 281 LEC 001", "EECS 376 LEC 001"}}, labels(candidates))
	assert.True(t, CampusTravel{}.Feasible(candidates[0]))
}

func TestCampusTravel(t *testing.T) {
	campuses := campusMap{"BBB": "North", "EECS": "North", "MLB": "Central"}
	picker := NewPicker(campuses)

	scenarios := []struct {
		name              string
		locationA, timesA string
		locationB, timesB string
		daysB             string
		feasible          bool
	}{
		{"Same campus back to back", "BBB", "9:00AM - 10:00AM", "EECS", "10:00AM - 11:00AM", "Mo", true},
		{"Different campus back to back", "BBB", "9:00AM - 10:00AM", "MLB", "10:00AM - 11:00AM", "Mo", false},
		{"Different campus, short gap", "MLB", "9:00AM - 10:00AM", "BBB", "10:29AM - 11:00AM", "Mo", false},
		{"Different campus, enough gap", "MLB", "9:00AM - 10:00AM", "BBB", "10:30AM - 11:00AM", "Mo", true},
		{"Different campus, reversed order", "MLB", "10:30AM - 11:00AM", "BBB", "9:00AM - 10:15AM", "Mo", false},
		{"Different campus, different day", "BBB", "9:00AM - 10:00AM", "MLB", "10:00AM - 11:00AM", "Tu", true},
		{"Unknown location", "BBB", "9:00AM - 10:00AM", "ARR", "10:00AM - 11:00AM", "Mo", true},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			a := newSection(t, "EECS 281", "LEC", "001", scenario.locationA, "Mo", scenario.timesA)
			b := newSection(t, "EECS 376", "LEC", "001", scenario.locationB, scenario.daysB, scenario.timesB)
			candidate, err := model.NewCandidate(2, a, b)
			require.NoError(t, err)

			assert.Equal(t, scenario.feasible, picker.Evaluate(candidate))
			assert.Equal(t, scenario.feasible, len(picker.PickSections([]model.SectionGroup{newGroup(t, a), newGroup(t, b)})) == 1)
		})
	}
}

func TestCriteria(t *testing.T) {
	morning := newGroup(t,
		newSection(t, "LATIN 102", "REC", "001", "ARR", "MoWe", "11:00AM - 12:00PM"),
		newSection(t, "LATIN 102", "REC", "002", "ARR", "MoWe", "1:00PM - 2:00PM"),
		newSection(t, "LATIN 102", "REC", "003", "ARR", "Fr", "8:00AM - 9:00AM"),
	)

	t.Run("Blocked time", func(t *testing.T) {
		lunch, err := model.ParseMeetingTime("MoTuWeThFr", "11:00AM - 12:00PM")
		require.NoError(t, err)
		picker := NewPicker(nil)
		picker.AddCriterion(BlockedTime{Name: "lunch", MeetingTime: lunch})

		candidates := picker.PickSections([]model.SectionGroup{morning})

		assert.Equal(t, [][]string{{"LATIN 102 REC 002"}, {"LATIN 102 REC 003"}}, labels(candidates))
	})

	t.Run("Criteria are conjunctive and ordered", func(t *testing.T) {
		calls := []string{}
		picker := NewPicker(nil)
		picker.AddCriterion(CriterionFunc(func(candidate model.Candidate) bool {
			calls = append(calls, "first")
			return candidate.At(0).SectionNumber != "001"
		}))
		picker.AddCriterion(CriterionFunc(func(candidate model.Candidate) bool {
			calls = append(calls, "second")
			return candidate.At(0).SectionNumber != "003"
		}))

		candidates := picker.PickSections([]model.SectionGroup{morning})

		assert.Equal(t, [][]string{{"LATIN 102 REC 002"}}, labels(candidates))
		assert.Equal(t, []string{"first", "first", "second", "first", "second"}, calls)
		assert.Len(t, picker.Criteria(), 2)
	})

	t.Run("Registration after a search does not alter its results", func(t *testing.T) {
		picker := NewPicker(nil)
		before := picker.PickSections([]model.SectionGroup{morning})

		picker.AddCriterion(CriterionFunc(func(model.Candidate) bool { return false }))
		after := picker.PickSections([]model.SectionGroup{morning})

		assert.Len(t, before, 3)
		assert.Empty(t, after)
	})
}

func TestPick(t *testing.T) {
	source := staticSource{
		"EECS 281": newGroup(t, newSection(t, "EECS 281", "LEC", "001", "ARR", "Mo", "9:00AM - 10:00AM")),
		"EECS 376": newGroup(t, newSection(t, "EECS 376", "LEC", "001", "ARR", "Tu", "9:00AM - 10:00AM")),
	}
	term := model.Term{Code: "2010", ShortName: "FA 2014"}

	candidates, err := NewPicker(nil).Pick(context.Background(), source, term, []string{"EECS 281", "EECS 376"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"EECS 281 LEC 001", "EECS 376 LEC 001"}}, labels(candidates))

	candidates, err = NewPicker(nil).Pick(context.Background(), source, term, []string{"EECS 281", "STATS 412"})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

// randomGroups builds courses with random section types and meeting times on a small set of buildings
func randomGroups(t testing.TB, random *rand.Rand, courses int) []model.SectionGroup {
	days := []string{"MoWe", "TuTh", "MoWeFr", "Fr", "Th"}
	locations := []string{"BBB", "EECS", "MLB", "ARR"}
	sectionTypes := []string{"LEC", "DIS", "LAB"}

	return lo.Times(courses, func(course int) model.SectionGroup {
		code := fmt.Sprintf("SUBJ %d", 100+course)
		sections := lo.Times(random.Intn(6)+1, func(i int) model.Section {
			begin := 8*60 + random.Intn(20)*30
			end := begin + 30*(random.Intn(4)+1)
			times := clock(begin) + " - " + clock(end)
			return newSection(t, code, sectionTypes[random.Intn(len(sectionTypes))], fmt.Sprintf("%03d", i+1), locations[random.Intn(len(locations))], days[random.Intn(len(days))], times)
		})
		return newGroup(t, sections...)
	})
}

func TestPickSectionsPostconditions(t *testing.T) {
	campuses := campusMap{"BBB": "North", "EECS": "North", "MLB": "Central"}
	random := rand.New(rand.NewSource(42))

	for range 20 {
		//** Arrange
		groups := randomGroups(t, random, random.Intn(3)+2)
		picker := NewPicker(campuses)
		picker.AddCriterion(CriterionFunc(func(candidate model.Candidate) bool {
			return candidate.At(0).MeetingTime.Begin() >= model.NewTimeOfDay(9, 0)
		}))

		//** Act
		candidates := picker.PickSections(groups)

		//** Assert
		// Every returned candidate holds every predicate
		for _, candidate := range candidates {
			assert.True(t, NoOverlap{}.Feasible(candidate))
			assert.True(t, NewCampusTravel(campuses).Feasible(candidate))
			assert.True(t, picker.Evaluate(candidate))
		}

		// Results equal exhaustive generate-and-test in product order
		choices := SectionChoices(groups)
		exhaustive := lo.Filter(cartesian(choices), func(candidate model.Candidate, _ int) bool {
			return picker.Evaluate(candidate)
		})
		assert.Equal(t, labels(exhaustive), labels(candidates))
	}
}

// clock formats minutes since midnight in the catalog's 12-hour format, like "1:30PM"
func clock(minutes int) string {
	hour := minutes / 60
	return fmt.Sprintf("%d:%02d%v", (hour+11)%12+1, minutes%60, lo.Ternary(hour >= 12, "PM", "AM"))
}

func cartesian(choices [][]model.Section) []model.Candidate {
	products := [][]model.Section{{}}
	for _, choice := range choices {
		next := make([][]model.Section, 0)
		for _, product := range products {
			for _, section := range choice {
				next = append(next, append(append([]model.Section(nil), product...), section))
			}
		}
		products = next
	}
	return lo.Map(products, func(sections []model.Section, _ int) model.Candidate {
		candidate, _ := model.NewCandidate(len(choices), sections...)
		return candidate
	})
}

func BenchmarkPickSections(b *testing.B) {
	groups := randomGroups(b, rand.New(rand.NewSource(7)), 5)
	picker := NewPicker(campusMap{"BBB": "North", "EECS": "North", "MLB": "Central"})

	b.ResetTimer()
	for range b.N {
		picker.PickSections(groups)
	}
}
