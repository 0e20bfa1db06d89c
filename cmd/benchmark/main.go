package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/limaJavier/coursepicker/pkg/picker"
	"github.com/samber/lo"
)

var campuses = []string{"Central", "North"}

type TestMetadata struct {
	Name            string
	Seed            uint64
	Courses         int
	SectionTypes    int
	SectionsPerType int
	BlockedLunch    bool
	Combinations    int
}

type BenchmarkResult struct {
	Test       TestMetadata
	Duration   time.Duration
	Candidates int
}

// buildingsByLocation resolves the synthetic locations "<room> <campus>"
type buildingsByLocation struct{}

func (buildingsByLocation) ResolveBuilding(section model.Section) (model.Building, bool) {
	campus, ok := lo.Find(campuses, func(campus string) bool { return strings.HasSuffix(section.Location, " "+campus) })
	if !ok {
		return model.Building{}, false
	}
	return model.Building{Abbreviation: campus, Name: campus, Campus: campus}, true
}

func main() {
	outFilePtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	repetitionsPtr := flag.Int("repetitions", 5, "Amount of times each test is run; the fastest run is reported")
	flag.Parse()

	if *repetitionsPtr < 1 {
		log.Fatalf("repetitions must be positive: %v", *repetitionsPtr)
	}

	tests := getTests()
	results := make([]BenchmarkResult, 0, len(tests))
	for _, test := range tests {
		fmt.Printf("Benchmarking test \"%v\" (%v combinations)\n", test.Name, test.Combinations)
		results = append(results, measure(test, *repetitionsPtr))
	}

	file, err := os.Create(*outFilePtr)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}

func getTests() []TestMetadata {
	tests := make([]TestMetadata, 0)
	for _, courses := range []int{2, 4, 6} {
		for _, sectionsPerType := range []int{3, 6} {
			for _, blockedLunch := range []bool{false, true} {
				test := TestMetadata{
					Seed:            uint64(len(tests) + 1),
					Courses:         courses,
					SectionTypes:    2,
					SectionsPerType: sectionsPerType,
					BlockedLunch:    blockedLunch,
				}
				test.Name = fmt.Sprintf("courses=%d sections=%d lunch=%v", courses, sectionsPerType, blockedLunch)
				test.Combinations = pow(sectionsPerType, courses*test.SectionTypes)
				tests = append(tests, test)
			}
		}
	}
	return tests
}

func pow(base, exponent int) int {
	result := 1
	for range exponent {
		result *= base
	}
	return result
}

// generateGroups builds random section groups; the same test always yields the same groups
func generateGroups(test TestMetadata) []model.SectionGroup {
	random := rand.New(rand.NewPCG(test.Seed, test.Seed))
	sectionTypes := []string{"LEC", "DIS", "LAB", "REC"}[:test.SectionTypes]
	dayPatterns := []string{"MoWe", "TuTh", "MoWeFr", "Fr", "Th"}

	groups := make([]model.SectionGroup, 0, test.Courses)
	for course := range test.Courses {
		sections := make([]model.Section, 0, test.SectionTypes*test.SectionsPerType)
		for _, sectionType := range sectionTypes {
			for i := range test.SectionsPerType {
				begin := model.NewTimeOfDay(8, 0) + model.TimeOfDay(30*random.IntN(20))
				end := begin + model.TimeOfDay(30*(2+random.IntN(3)))
				days := dayPatterns[random.IntN(len(dayPatterns))]
				meetingTime := lo.Must(model.ParseMeetingTime(days, fmt.Sprintf("%d:%02d%v - %d:%02d%v",
					hour12(begin), begin.Minute(), meridiem(begin), hour12(end), end.Minute(), meridiem(end))))
				location := fmt.Sprintf("%d %v", 1000+random.IntN(1000), campuses[random.IntN(len(campuses))])

				sections = append(sections, lo.Must(model.NewSection(
					"SYNTH", fmt.Sprint(100+course), sectionType, fmt.Sprintf("%03d", i+1),
					fmt.Sprintf("Synthetic %d", course), location, meetingTime,
				)))
			}
		}
		groups = append(groups, lo.Must(model.NewSectionGroup(sections)))
	}
	return groups
}

func hour12(t model.TimeOfDay) int {
	return (t.Hour()+11)%12 + 1
}

func meridiem(t model.TimeOfDay) string {
	return lo.Ternary(t.Hour() < 12, "AM", "PM")
}

func measure(test TestMetadata, repetitions int) BenchmarkResult {
	groups := generateGroups(test)
	result := BenchmarkResult{Test: test, Duration: time.Duration(1<<63 - 1)}

	for range repetitions {
		classPicker := picker.NewPicker(buildingsByLocation{})
		if test.BlockedLunch {
			classPicker.AddCriterion(picker.BlockedTime{
				Name:        "lunch",
				MeetingTime: lo.Must(model.ParseMeetingTime("MoTuWeThFr", "11:00AM - 12:00PM")),
			})
		}

		start := time.Now()
		candidates := classPicker.PickSections(groups)
		result.Duration = min(result.Duration, time.Since(start))
		result.Candidates = len(candidates)
	}
	return result
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Test", "Seed", "Courses", "SectionTypes", "SectionsPerType", "BlockedLunch", "Combinations", "Candidates", "Duration(ms)"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.SectionTypes),
			fmt.Sprintf("%d", result.Test.SectionsPerType),
			fmt.Sprintf("%v", result.Test.BlockedLunch),
			fmt.Sprintf("%d", result.Test.Combinations),
			fmt.Sprintf("%d", result.Candidates),
			fmt.Sprintf("%.3f", float64(result.Duration.Microseconds())/1000),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
