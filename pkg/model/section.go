package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Section is a single offering of a course: one of its lecture, discussion or lab sections
type Section struct {
	ClassNumber   uint64
	TermCode      string
	Subject       string // Subject code, like "EECS"
	Number        string // Catalog number, like "280"
	Type          string // Section type, like "LEC" or "DIS"
	SectionNumber string // Like "022" in EECS 280-022
	Name          string // Display name, like "Prog&Data Struct"
	Location      string // Raw location, like "1670 BBB" or "ARR"
	MeetingTime   MeetingTime
}

func NewSection(subject, number, sectionType, sectionNumber, name, location string, meetingTime MeetingTime) (Section, error) {
	if subject == "" || number == "" || sectionType == "" {
		return Section{}, fmt.Errorf("%w: subject=%q number=%q type=%q", ErrIncompleteSection, subject, number, sectionType)
	}
	return Section{
		Subject:       subject,
		Number:        number,
		Type:          sectionType,
		SectionNumber: sectionNumber,
		Name:          name,
		Location:      location,
		MeetingTime:   meetingTime,
	}, nil
}

// Code returns the course code, like "EECS 280"
func (section Section) Code() string {
	return fmt.Sprintf("%v %v", section.Subject, section.Number)
}

// Label returns the section label, like "DIS 002"
func (section Section) Label() string {
	return fmt.Sprintf("%v %v", section.Type, section.SectionNumber)
}

func (section Section) String() string {
	return fmt.Sprintf("<Section Name='%v' Code='%v' Section='%v' Days=%v Times=%v-%v>",
		section.Name,
		section.Code(),
		section.Label(),
		section.MeetingTime.DayTokens(),
		section.MeetingTime.Begin().Clock(),
		section.MeetingTime.End().Clock(),
	)
}

// SectionGroup holds every section of one course in one term
type SectionGroup struct {
	sections     []Section
	name         string
	sectionTypes []string // In order of first appearance
}

func NewSectionGroup(sections []Section) (SectionGroup, error) {
	if len(sections) == 0 {
		return SectionGroup{}, ErrEmptySectionGroup
	}

	name := sections[0].Name
	if mismatch, ok := lo.Find(sections, func(section Section) bool { return section.Name != name }); ok {
		return SectionGroup{}, fmt.Errorf("%w: %q and %q", ErrMixedSectionGroup, name, mismatch.Name)
	}

	sectionTypes := lo.Uniq(lo.Map(sections, func(section Section, _ int) string { return section.Type }))

	return SectionGroup{
		sections:     append([]Section(nil), sections...),
		name:         name,
		sectionTypes: sectionTypes,
	}, nil
}

func (group SectionGroup) Name() string {
	return group.name
}

// Code returns the course code shared by the group's first section
func (group SectionGroup) Code() string {
	if len(group.sections) == 0 {
		return ""
	}
	return group.sections[0].Code()
}

func (group SectionGroup) Sections() []Section {
	return append([]Section(nil), group.sections...)
}

func (group SectionGroup) SectionTypes() []string {
	return append([]string(nil), group.sectionTypes...)
}

// SectionsOfType returns the sub-list of sections with the given type, preserving catalog order
func (group SectionGroup) SectionsOfType(sectionType string) ([]Section, error) {
	if !lo.Contains(group.sectionTypes, sectionType) {
		return nil, fmt.Errorf("%w: %q in %q", ErrUnknownSectionType, sectionType, group.name)
	}
	return lo.Filter(group.sections, func(section Section, _ int) bool {
		return section.Type == sectionType
	}), nil
}

// Choices partitions the group by section type. One section from each returned list must be picked to attend the course.
func (group SectionGroup) Choices() [][]Section {
	partitions := lo.GroupBy(group.sections, func(section Section) string { return section.Type })
	return lo.Map(group.sectionTypes, func(sectionType string, _ int) []Section {
		return partitions[sectionType]
	})
}

func (group SectionGroup) String() string {
	return fmt.Sprintf("<SectionGroup Name=%v Sections=%v>", group.name, group.sectionTypes)
}
