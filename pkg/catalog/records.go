package catalog

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type termRecord struct {
	TermCode       string
	TermDescr      string
	TermShortDescr string
}

type searchRecord struct {
	ClassNumber uint64
}

type meetingRecord struct {
	Days     string
	Times    string
	Location string
}

type classRecord struct {
	ClassNumber   uint64
	TermCode      string
	SubjectCode   string
	CatalogNumber string
	SectionNumber string
	SectionType   string
	CourseDescr   string
	Meeting       any // Either a single meeting or a list of meetings
}

type buildingRecord struct {
	Abbreviation string
	Name         string
	Campus       string
}

// decode maps a generic JSON value into a record. Numbers and strings are converted into each other as needed (e.g. "CatalogNumber": 280).
func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// dig walks nested JSON objects following the keys
func dig(value any, keys ...string) (any, error) {
	for i, key := range keys {
		object, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %v is not an object", ErrMalformedResponse, keys[:i])
		}
		value, ok = object[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %v", ErrMalformedResponse, keys[:i+1])
		}
	}
	return value, nil
}

// listOf normalizes a value that is a list when there are multiple results, but a single object when there is only one
func listOf(value any) []any {
	switch typed := value.(type) {
	case nil:
		return []any{}
	case []any:
		return typed
	default:
		return []any{typed}
	}
}

// decodeList digs the keys and decodes every element found there
func decodeList[T any](response map[string]any, keys ...string) ([]T, error) {
	value, err := dig(response, keys...)
	if err != nil {
		return nil, err
	}

	elements := listOf(value)
	records := make([]T, 0, len(elements))
	for _, element := range elements {
		var record T
		if err := decode(element, &record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		records = append(records, record)
	}
	return records, nil
}
