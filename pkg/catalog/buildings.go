package catalog

import (
	"context"
	"strings"

	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ExtraAbbreviations maps class locations into building abbreviations, since they often don't sync up
var ExtraAbbreviations = map[string]string{
	"GFL":     "GFLAB",
	"BEYSTER": "BYSTR",
	"STAMPS":  "STAMP",
}

// Directory resolves section locations into buildings
type Directory struct {
	campuses  int
	buildings []model.Building
	log       zerolog.Logger
}

// NewDirectory builds a directory from a campus count and the buildings in lookup order
func NewDirectory(campuses int, buildings []model.Building, log zerolog.Logger) *Directory {
	return &Directory{campuses: campuses, buildings: buildings, log: log}
}

// LoadDirectory fetches the campuses and every building once through the building API
func LoadDirectory(ctx context.Context, requester Requester, log zerolog.Logger) (*Directory, error) {
	campusesResponse, err := requester.Request(ctx, "/Campuses")
	if err != nil {
		return nil, err
	}
	campuses, err := dig(campusesResponse, "Campuses", "Campus")
	if err != nil {
		return nil, err
	}

	buildingsResponse, err := requester.Request(ctx, "/Buildings")
	if err != nil {
		return nil, err
	}
	records, err := decodeList[buildingRecord](buildingsResponse, "Buildings", "Building")
	if err != nil {
		return nil, err
	}

	buildings := lo.Map(records, func(record buildingRecord, _ int) model.Building {
		return model.Building{Abbreviation: record.Abbreviation, Name: record.Name, Campus: record.Campus}
	})
	return NewDirectory(len(listOf(campuses)), buildings, log), nil
}

func (directory *Directory) Buildings() []model.Building {
	return append([]model.Building(nil), directory.buildings...)
}

// Resolve returns the building of a raw location (e.g. "1670 BBB"), or false if the location is to be arranged or unknown.
// When an abbreviation matches more than one building the first one wins.
func (directory *Directory) Resolve(location string) (model.Building, bool) {
	tokens := strings.Fields(location)
	if len(tokens) == 0 {
		return model.Building{}, false
	}
	abbreviation := tokens[len(tokens)-1]

	// "ARR" means location to be arranged
	if abbreviation == "ARR" {
		return model.Building{}, false
	}

	// Locations come as "UMMA AUD" instead of "AUD UMMA"
	if strings.Contains(location, "UMMA") {
		abbreviation = "UMMA"
	}

	if abbreviation == "BUS" {
		return model.Building{}, false
	}

	if directory.campuses == 0 {
		return model.Building{}, false
	}

	alias, hasAlias := ExtraAbbreviations[abbreviation]
	building, ok := lo.Find(directory.buildings, func(building model.Building) bool {
		return building.Abbreviation == abbreviation || (hasAlias && building.Abbreviation == alias)
	})
	if !ok {
		directory.log.Debug().Str("location", location).Msg("building not found")
	}
	return building, ok
}

// ResolveBuilding returns the building where the section takes place
func (directory *Directory) ResolveBuilding(section model.Section) (model.Building, bool) {
	return directory.Resolve(section.Location)
}
