package picker

import (
	"time"

	"github.com/limaJavier/coursepicker/pkg/model"
)

// TimeBetweenCampuses is the minimum gap between two sections held on different campuses on a common day
const TimeBetweenCampuses = 30 * time.Minute

// BuildingResolver maps a section into the building where it takes place.
// It returns false (unknown) rather than failing when the location is to be arranged or not mapped.
type BuildingResolver interface {
	ResolveBuilding(section model.Section) (model.Building, bool)
}

// unknownBuildings resolves every section into an unknown building
type unknownBuildings struct{}

func (unknownBuildings) ResolveBuilding(model.Section) (model.Building, bool) {
	return model.Building{}, false
}

// placement is a section alongside its resolved building
type placement struct {
	section  model.Section
	building model.Building
	known    bool
}

// place resolves the building of a section. A nil resolver treats every location as unknown.
func place(resolver BuildingResolver, section model.Section) placement {
	if resolver == nil {
		resolver = unknownBuildings{}
	}
	building, known := resolver.ResolveBuilding(section)
	return placement{section: section, building: building, known: known}
}

// NoOverlap checks that no two sections of a candidate conflict in time
type NoOverlap struct{}

func (NoOverlap) Feasible(candidate model.Candidate) bool {
	return candidate.Pairs(func(s1, s2 model.Section) bool {
		return timesDontOverlap(placement{section: s1}, placement{section: s2})
	})
}

func timesDontOverlap(p1, p2 placement) bool {
	return !p1.section.MeetingTime.ConflictsWith(p2.section.MeetingTime)
}

// CampusTravel checks that sections on different campuses leave enough time to travel between them
type CampusTravel struct {
	Resolver BuildingResolver
	Buffer   time.Duration
}

func NewCampusTravel(resolver BuildingResolver) CampusTravel {
	if resolver == nil {
		resolver = unknownBuildings{}
	}
	return CampusTravel{Resolver: resolver, Buffer: TimeBetweenCampuses}
}

func (travel CampusTravel) Feasible(candidate model.Candidate) bool {
	placements := make([]placement, candidate.Len())
	for i, section := range candidate.Sections() {
		placements[i] = place(travel.Resolver, section)
	}

	for i := range len(placements) - 1 {
		for j := i + 1; j < len(placements); j++ {
			if !travel.closeEnough(placements[i], placements[j]) {
				return false
			}
		}
	}
	return true
}

func (travel CampusTravel) closeEnough(p1, p2 placement) bool {
	// Without both locations assigned we can't tell, so we assume they don't conflict
	if !p1.known || !p2.known {
		return true
	}

	if p1.building.Campus == p2.building.Campus {
		return true
	}

	if !p1.section.MeetingTime.SharesDay(p2.section.MeetingTime) {
		return true
	}

	earlier, later := p1.section.MeetingTime, p2.section.MeetingTime
	if later.Begin() < earlier.Begin() {
		earlier, later = later, earlier
	}
	return model.TimeDifference(earlier.End(), later.Begin()) >= travel.Buffer
}
