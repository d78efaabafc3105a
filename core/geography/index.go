// Package geography resolves zones and cities to the county identifiers
// the rate tables join against.
package geography

import (
	"sort"

	"titlequote/core/types"
)

type cityKey struct {
	zone string
	city string
}

// Index is an immutable lookup over the zone → city hierarchy. Build it
// once at feed construction and share it read-only.
type Index struct {
	zones    map[string]types.Zone
	cities   map[cityKey]types.City
	defaults map[string]types.City
}

// NewIndex builds an index from the feed's zone hierarchy.
func NewIndex(zones []types.Zone) *Index {
	idx := &Index{
		zones:    make(map[string]types.Zone, len(zones)),
		cities:   make(map[cityKey]types.City),
		defaults: make(map[string]types.City),
	}

	for _, z := range zones {
		idx.zones[z.Name] = z
		for _, c := range z.Cities {
			if c.Name == types.AllCitiesName {
				idx.defaults[z.Name] = c
				continue
			}
			idx.cities[cityKey{zone: z.Name, city: c.Name}] = c
		}
	}

	return idx
}

// Resolve returns the county identifier for a specific city within a
// zone. The synthetic "All Cities" row is never returned here; use
// ZoneDefault for the zone-wide fallback.
func (i *Index) Resolve(zone, city string) (string, bool) {
	c, ok := i.cities[cityKey{zone: zone, city: city}]
	if !ok {
		return "", false
	}
	return c.CountyID, true
}

// ZoneDefault returns the county identifier of the zone's "All Cities"
// aggregate.
func (i *Index) ZoneDefault(zone string) (string, bool) {
	c, ok := i.defaults[zone]
	if !ok {
		return "", false
	}
	return c.CountyID, true
}

// HasZone reports whether the zone exists in the hierarchy.
func (i *Index) HasZone(zone string) bool {
	_, ok := i.zones[zone]
	return ok
}

// Zones returns all zone names in sorted order.
func (i *Index) Zones() []string {
	names := make([]string, 0, len(i.zones))
	for name := range i.zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cities returns the city names of a zone in sorted order, excluding
// the synthetic "All Cities" row.
func (i *Index) Cities(zone string) []string {
	z, ok := i.zones[zone]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(z.Cities))
	for _, c := range z.Cities {
		if c.Name == types.AllCitiesName {
			continue
		}
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
