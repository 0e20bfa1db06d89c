package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Catalog resolves terms and sections through the class scheduling API
type Catalog struct {
	requester Requester
	log       zerolog.Logger
}

func NewCatalog(requester Requester, log zerolog.Logger) *Catalog {
	return &Catalog{requester: requester, log: log}
}

func (catalog *Catalog) Terms(ctx context.Context) ([]model.Term, error) {
	response, err := catalog.requester.Request(ctx, "/Terms")
	if err != nil {
		return nil, err
	}

	records, err := decodeList[termRecord](response, "getSOCTermsResponse", "Term")
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(record termRecord, _ int) model.Term {
		return model.Term{Code: record.TermCode, ShortName: record.TermShortDescr, LongName: record.TermDescr}
	}), nil
}

// TermFromSeason finds the term of a season, like "FA 2014" or "SS 2014"
func (catalog *Catalog) TermFromSeason(ctx context.Context, season string) (model.Term, error) {
	return catalog.findTerm(ctx, func(term model.Term) bool { return term.ShortName == season }, season)
}

// TermFromCode finds the term with the given code, like "2010"
func (catalog *Catalog) TermFromCode(ctx context.Context, code string) (model.Term, error) {
	return catalog.findTerm(ctx, func(term model.Term) bool { return term.Code == code }, code)
}

func (catalog *Catalog) findTerm(ctx context.Context, predicate func(term model.Term) bool, description string) (model.Term, error) {
	terms, err := catalog.Terms(ctx)
	if err != nil {
		return model.Term{}, err
	}
	term, ok := lo.Find(terms, predicate)
	if !ok {
		return model.Term{}, fmt.Errorf("%w: %q", ErrTermNotFound, description)
	}
	return term, nil
}

// ClassNumbers searches the class numbers matching the criteria (e.g. "EECS 280") in the term.
// Each class number identifies a single section.
func (catalog *Catalog) ClassNumbers(ctx context.Context, term model.Term, criteria string) ([]uint64, error) {
	response, err := catalog.requester.Request(ctx, fmt.Sprintf("/Terms/%v/Classes/Search/%v", url.PathEscape(term.Code), url.PathEscape(criteria)))
	if err != nil {
		return nil, err
	}

	// A search without results carries no "SearchResult" at all
	if _, err := dig(response, "searchSOCClassesResponse", "SearchResult"); err != nil {
		if _, err := dig(response, "searchSOCClassesResponse"); err != nil {
			return nil, err
		}
		return []uint64{}, nil
	}

	records, err := decodeList[searchRecord](response, "searchSOCClassesResponse", "SearchResult")
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(record searchRecord, _ int) uint64 { return record.ClassNumber }), nil
}

// Section fetches the section identified by a class number in the term
func (catalog *Catalog) Section(ctx context.Context, term model.Term, classNumber uint64) (model.Section, error) {
	response, err := catalog.requester.Request(ctx, fmt.Sprintf("/Terms/%v/Classes/%d", url.PathEscape(term.Code), classNumber))
	if err != nil {
		return model.Section{}, err
	}

	records, err := decodeList[classRecord](response, "getSOCSectionListByNbrResponse", "ClassOffered")
	if err != nil {
		return model.Section{}, err
	} else if len(records) == 0 {
		return model.Section{}, fmt.Errorf("%w: class %d has no offering", ErrMalformedResponse, classNumber)
	}
	record := records[0]

	// Sections with non-homogeneous meeting times are not supported, so only the first meeting counts
	meetings := listOf(record.Meeting)
	if len(meetings) == 0 {
		return model.Section{}, fmt.Errorf("%w: class %d has no meeting", model.ErrIncompleteSection, classNumber)
	}
	var meeting meetingRecord
	if err := decode(meetings[0], &meeting); err != nil {
		return model.Section{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	meetingTime, err := model.ParseMeetingTime(meeting.Days, meeting.Times)
	if err != nil {
		return model.Section{}, fmt.Errorf("class %d: %w", classNumber, err)
	}

	section, err := model.NewSection(record.SubjectCode, record.CatalogNumber, record.SectionType, record.SectionNumber, record.CourseDescr, meeting.Location, meetingTime)
	if err != nil {
		return model.Section{}, fmt.Errorf("class %d: %w", classNumber, err)
	}
	section.ClassNumber = classNumber
	section.TermCode = lo.Ternary(record.TermCode != "", record.TermCode, term.Code)
	return section, nil
}

// SectionGroup gets every section of a course (e.g. "EECS 280") in the term. Search results for other courses are discarded.
func (catalog *Catalog) SectionGroup(ctx context.Context, term model.Term, code string) (model.SectionGroup, error) {
	classNumbers, err := catalog.ClassNumbers(ctx, term, code)
	if err != nil {
		return model.SectionGroup{}, err
	}

	sections := make([]model.Section, 0, len(classNumbers))
	for _, classNumber := range classNumbers {
		section, err := catalog.Section(ctx, term, classNumber)
		if err != nil {
			return model.SectionGroup{}, err
		}
		if section.Code() == code {
			sections = append(sections, section)
		}
	}
	catalog.log.Debug().Str("course", code).Str("term", term.ShortName).Int("sections", len(sections)).Msg("section group fetched")

	group, err := model.NewSectionGroup(sections)
	if err != nil {
		return model.SectionGroup{}, fmt.Errorf("%v: %w", code, err)
	}
	return group, nil
}
