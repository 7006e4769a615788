package metrostore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/umahmood/haversine"

	"github.com/urbanrail/metrofare/transit"
)

// Loader errors.
var (
	// ErrBadRecord indicates a malformed CSV record.
	ErrBadRecord = errors.New("metrostore: malformed network record")

	// ErrConflictingStation indicates the same station name defined
	// with different coordinates in two records.
	ErrConflictingStation = errors.New("metrostore: conflicting station definitions")

	// ErrOrderNotIncreasing indicates order values that are not
	// strictly increasing along a line, which would leave adjacency
	// undefined.
	ErrOrderNotIncreasing = errors.New("metrostore: order values not strictly increasing within line")
)

// Network is the result of a bulk load: validated records ready to be
// registered into a store or fed straight to the graph builder.
type Network struct {
	Lines       []transit.Line
	Stations    []transit.Station
	Memberships []transit.Membership
}

const networkRecordFields = 7

// LoadNetworkCSV parses a network description from r.
//
// Each record is line,color,station,lat,lon,order,interchange; records
// of one line appear in ascending order. Station names are unique
// identifiers: a station may appear once per line it belongs to, but
// always with the same coordinates. DistanceFromHub is derived from
// the hub coordinates with the haversine great-circle formula.
//
// This is the one-time administrative bulk load; it enforces the
// invariants the routing core depends on and fails on the first
// violation.
func LoadNetworkCSV(r io.Reader, hub haversine.Coord) (*Network, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = networkRecordFields
	reader.TrimLeadingSpace = true

	var (
		net       Network
		lineSeen  = make(map[string]string)  // line -> color
		lastOrder = make(map[string]int)     // line -> previous order
		stations  = make(map[string]haversine.Coord)
	)

	for recNo := 1; ; recNo++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrBadRecord, recNo, err)
		}

		line, color, station := record[0], record[1], record[2]
		if line == "" || station == "" {
			return nil, fmt.Errorf("%w: record %d: empty line or station name", ErrBadRecord, recNo)
		}

		lat, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: latitude %q", ErrBadRecord, recNo, record[3])
		}
		lon, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: longitude %q", ErrBadRecord, recNo, record[4])
		}
		order, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: order %q", ErrBadRecord, recNo, record[5])
		}
		interchange, err := strconv.ParseBool(strings.ToLower(record[6]))
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: interchange %q", ErrBadRecord, recNo, record[6])
		}

		if _, seen := lineSeen[line]; !seen {
			lineSeen[line] = color
			net.Lines = append(net.Lines, transit.Line{Name: line, Color: color, Active: true})
		}

		coord := haversine.Coord{Lat: lat, Lon: lon}
		if prev, seen := stations[station]; seen {
			if prev != coord {
				return nil, fmt.Errorf("%w: %q at record %d", ErrConflictingStation, station, recNo)
			}
		} else {
			stations[station] = coord
			_, km := haversine.Distance(hub, coord)
			net.Stations = append(net.Stations, transit.Station{Name: station, DistanceFromHub: km})
		}

		if prev, seen := lastOrder[line]; seen && order <= prev {
			return nil, fmt.Errorf("%w: line %q order %d after %d (record %d)",
				ErrOrderNotIncreasing, line, order, prev, recNo)
		}
		lastOrder[line] = order

		net.Memberships = append(net.Memberships, transit.Membership{
			Station:     station,
			Line:        line,
			Order:       order,
			Interchange: interchange,
		})
	}

	return &net, nil
}

// Register installs a loaded network into the store.
func (s *MemoryStore) Register(net *Network) error {
	for _, l := range net.Lines {
		if err := s.AddLine(l); err != nil {
			return err
		}
	}
	for _, st := range net.Stations {
		if err := s.AddStation(st); err != nil {
			return err
		}
	}
	for _, m := range net.Memberships {
		if err := s.AddMembership(m); err != nil {
			return err
		}
	}

	return nil
}
