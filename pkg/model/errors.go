package model

import "errors"

var (
	ErrInvalidDay         = errors.New("invalid meeting day")
	ErrInvalidTimeRange   = errors.New("invalid meeting time range")
	ErrEmptySectionGroup  = errors.New("section group has no sections")
	ErrMixedSectionGroup  = errors.New("not all sections have the same name")
	ErrIncompleteSection  = errors.New("section is missing required catalog data")
	ErrCandidateArity     = errors.New("candidate does not fill every required slot")
	ErrUnknownSectionType = errors.New("section type not present in group")
)
