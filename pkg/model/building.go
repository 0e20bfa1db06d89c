package model

import "fmt"

// Building is a physical location on a named campus
type Building struct {
	Abbreviation string
	Name         string
	Campus       string
}

func (building Building) String() string {
	return fmt.Sprintf("<Building Abbrev='%v' Name='%v' Campus='%v'>", building.Abbreviation, building.Name, building.Campus)
}

// Term is an academic term, like Fall 2014
type Term struct {
	Code      string // Like "2010"
	ShortName string // Like "FA 2014"
	LongName  string // Like "Fall 2014"
}

func (term Term) String() string {
	return fmt.Sprintf("<Term Code=%v Name=%v>", term.Code, term.ShortName)
}
