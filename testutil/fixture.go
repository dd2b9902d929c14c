package testutil

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/nanoenum/nanoenum"
	"github.com/arthur-debert/nanoenum/types"
)

//go:embed testdata/fleet.json
var fleetJSON []byte

// FleetData provides typed access to the fixture enumerations
type FleetData struct {
	Galaxy *nanoenum.Enumeration // BINARY from exponent 2: Enterprise 4, Yamato 8, Odyssey 16
	Rank   *nanoenum.Enumeration // SERIES from 1: Ensign .. Admiral
	Alert  *nanoenum.Enumeration // AUTO with gaps: Green 0, Yellow 10, Red 20

	// Records as loaded from the fixture file
	Records []types.Record

	// All enumerations by type name
	ByName map[string]*nanoenum.Enumeration
}

// FleetRecords decodes the fixture records
func FleetRecords(t *testing.T) []types.Record {
	t.Helper()

	var records []types.Record
	if err := json.Unmarshal(fleetJSON, &records); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return records
}

// LoadFleet restores the fixture enumerations into a new engine that uses
// a seeded id generator
func LoadFleet(t *testing.T) (*nanoenum.Engine, *FleetData) {
	t.Helper()

	engine := nanoenum.NewEngine(nanoenum.WithIDGenerator(NewSeededGenerator(1)))
	fleet := &FleetData{
		Records: FleetRecords(t),
		ByName:  make(map[string]*nanoenum.Enumeration),
	}

	for _, r := range fleet.Records {
		enum, err := engine.Deserialize(r)
		if err != nil {
			t.Fatalf("failed to restore %s: %v", r.TypeName, err)
		}
		fleet.ByName[r.TypeName] = enum

		switch r.TypeName {
		case "Galaxy":
			fleet.Galaxy = enum
		case "Rank":
			fleet.Rank = enum
		case "Alert":
			fleet.Alert = enum
		}
	}

	return engine, fleet
}
