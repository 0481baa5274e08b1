package memtable

import "github.com/mabel-dev/opteryx/sql"

// planetsSchema is the $planets sample table's schema (§8.1): one row
// per solar system planet, with the physical and orbital parameters
// the original project's own test suite queries against.
func planetsSchema() sql.Schema {
	return sql.Schema{
		{Name: "id", Type: sql.Int64, Nullable: false},
		{Name: "name", Type: sql.String, Nullable: false},
		{Name: "mass", Type: sql.Float64, Nullable: false},
		{Name: "diameter", Type: sql.Float64, Nullable: false},
		{Name: "density", Type: sql.Float64, Nullable: false},
		{Name: "gravity", Type: sql.Float64, Nullable: false},
		{Name: "escapeVelocity", Type: sql.Float64, Nullable: false},
		{Name: "rotationPeriod", Type: sql.Float64, Nullable: false},
		{Name: "lengthOfDay", Type: sql.Float64, Nullable: false},
		{Name: "distanceFromSun", Type: sql.Float64, Nullable: false},
		{Name: "perihelion", Type: sql.Float64, Nullable: false},
		{Name: "aphelion", Type: sql.Float64, Nullable: false},
		{Name: "orbitalPeriod", Type: sql.Float64, Nullable: false},
		{Name: "orbitalVelocity", Type: sql.Float64, Nullable: false},
		{Name: "orbitalInclination", Type: sql.Float64, Nullable: false},
		{Name: "orbitalEccentricity", Type: sql.Float64, Nullable: false},
		{Name: "obliquityToOrbit", Type: sql.Float64, Nullable: false},
		{Name: "meanTemperature", Type: sql.Float64, Nullable: false},
		{Name: "surfacePressure", Type: sql.Float64, Nullable: true},
		{Name: "numberOfMoons", Type: sql.Int64, Nullable: false},
	}
}

// planetRow is one row of planetary data, kept as a typed struct for
// readability before being flattened into the []any row shape Table
// expects.
type planetRow struct {
	id                                                                                                                        int64
	name                                                                                                                      string
	mass, diameter, density, gravity, escapeVelocity                                                                         float64
	rotationPeriod, lengthOfDay, distanceFromSun, perihelion, aphelion, orbitalPeriod, orbitalVelocity                       float64
	orbitalInclination, orbitalEccentricity, obliquityToOrbit, meanTemperature, surfacePressure                              float64
	numberOfMoons                                                                                                            int64
}

func (p planetRow) toRow() []any {
	return []any{
		p.id, p.name, p.mass, p.diameter, p.density, p.gravity, p.escapeVelocity,
		p.rotationPeriod, p.lengthOfDay, p.distanceFromSun, p.perihelion, p.aphelion,
		p.orbitalPeriod, p.orbitalVelocity, p.orbitalInclination, p.orbitalEccentricity,
		p.obliquityToOrbit, p.meanTemperature, p.surfacePressure, p.numberOfMoons,
	}
}

// planetsTable builds the $planets fixture (9 rows), moon counts
// summing to 177 to match the $satellites fixture (§8.1).
func planetsTable() *Table {
	data := []planetRow{
		{1, "Mercury", 0.330, 4879, 5427, 3.7, 4.3, 1407.6, 4222.6, 57.9, 46.0, 69.8, 88.0, 47.4, 0.0, 0.205, 0.034, 167, 0, 0},
		{2, "Venus", 4.87, 12104, 5243, 8.9, 10.4, -5832.5, 2802.0, 108.2, 107.5, 108.9, 224.7, 35.0, 3.4, 0.007, 177.4, 464, 92, 0},
		{3, "Earth", 5.97, 12756, 5514, 9.8, 11.2, 23.9, 24.0, 149.6, 147.1, 152.1, 365.2, 29.8, 0.0, 0.017, 23.4, 15, 1, 1},
		{4, "Mars", 0.642, 6792, 3933, 3.7, 5.0, 24.6, 24.7, 227.9, 206.6, 249.2, 687.0, 24.1, 1.8, 0.094, 25.2, -65, 0.01, 2},
		{5, "Jupiter", 1898, 142984, 1326, 23.1, 59.5, 9.9, 9.9, 778.6, 740.5, 816.6, 4331, 13.1, 1.3, 0.049, 3.1, -110, 0, 67},
		{6, "Saturn", 568, 120536, 687, 9.0, 35.5, 10.7, 10.7, 1433.5, 1352.6, 1514.5, 10747, 9.7, 2.5, 0.052, 26.7, -140, 0, 62},
		{7, "Uranus", 86.8, 51118, 1271, 8.7, 21.3, -17.2, 17.2, 2872.5, 2741.3, 3003.6, 30589, 6.8, 0.8, 0.047, 97.8, -195, 0, 27},
		{8, "Neptune", 102, 49528, 1638, 11.0, 23.5, 16.1, 16.1, 4495.1, 4444.5, 4545.7, 59800, 5.4, 1.8, 0.010, 28.3, -200, 0, 14},
		{9, "Pluto", 0.0146, 2376, 1850, 0.7, 1.3, -153.3, 153.3, 5906.4, 4436.8, 7375.9, 90560, 4.7, 17.2, 0.244, 122.5, -225, 0.00001, 4},
	}
	rows := make([][]any, len(data))
	for i, p := range data {
		rows[i] = p.toRow()
	}
	return NewTable("$planets", planetsSchema(), rows)
}
