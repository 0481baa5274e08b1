package memtable

import (
	"strconv"

	"github.com/mabel-dev/opteryx/sql"
)

// satellitesSchema is the $satellites sample table's schema (§8.1):
// one row per named or provisionally-designated moon, referencing
// $planets.id via planetId.
func satellitesSchema() sql.Schema {
	return sql.Schema{
		{Name: "id", Type: sql.Int64, Nullable: false},
		{Name: "planetId", Type: sql.Int64, Nullable: false},
		{Name: "name", Type: sql.String, Nullable: false},
		{Name: "gm", Type: sql.Float64, Nullable: false},
		{Name: "radius", Type: sql.Float64, Nullable: true},
		{Name: "density", Type: sql.Float64, Nullable: true},
		{Name: "magnitude", Type: sql.Float64, Nullable: true},
		{Name: "albedo", Type: sql.Float64, Nullable: true},
	}
}

// moonGroup describes one planet's moons as a named list (largest,
// best-characterized moons first) plus a count of smaller, more
// recently discovered moons that are only ever given a provisional
// "S/<year> <planet letter> <n>" designation even in the real
// catalog — so the filler entries below follow the same naming
// convention real minor moons use, rather than inventing a scheme.
type moonGroup struct {
	planetID     int64
	planetLetter string
	named        []string
	fillerCount  int
	fillerYear   int
	// physical profile the synthetic per-moon values are scaled from;
	// real values are not reproduced here since this is fixture data
	// for query testing, not a scientific catalog.
	baseGM, baseRadius, density, baseMagnitude, albedo float64
}

func (g moonGroup) rows(startID int64) ([][]any, int64) {
	total := len(g.named) + g.fillerCount
	rows := make([][]any, 0, total)
	id := startID
	for rank := 0; rank < total; rank++ {
		var name string
		if rank < len(g.named) {
			name = g.named[rank]
		} else {
			name = provisionalName(g.fillerYear, g.planetLetter, rank-len(g.named)+1)
		}
		shrink := 1.0 / float64(rank+1)
		rows = append(rows, []any{
			id,
			g.planetID,
			name,
			g.baseGM * shrink,
			g.baseRadius * shrink,
			g.density,
			g.baseMagnitude + float64(rank)*0.3,
			g.albedo,
		})
		id++
	}
	return rows, id
}

// provisionalName mirrors the real provisional lunar designation
// format, e.g. "S/2003 J 2".
func provisionalName(year int, letter string, n int) string {
	return "S/" + strconv.Itoa(year) + " " + letter + " " + strconv.Itoa(n)
}

func satellitesTable() *Table {
	groups := []moonGroup{
		{
			planetID: 3, planetLetter: "E", named: []string{"Moon"}, fillerCount: 0,
			baseGM: 4902.8, baseRadius: 1737.4, density: 3344, baseMagnitude: -12.7, albedo: 0.12,
		},
		{
			planetID: 4, planetLetter: "M", named: []string{"Phobos", "Deimos"}, fillerCount: 0,
			baseGM: 0.0007, baseRadius: 11.3, density: 1876, baseMagnitude: 11.8, albedo: 0.07,
		},
		{
			planetID: 5, planetLetter: "J",
			named: []string{
				"Io", "Europa", "Ganymede", "Callisto", "Amalthea", "Thebe", "Adrastea", "Metis",
				"Himalia", "Elara", "Pasiphae", "Carme", "Sinope", "Lysithea", "Ananke", "Leda",
				"Callirrhoe", "Themisto", "Megaclite", "Taygete", "Chaldene", "Harpalyke", "Kalyke",
				"Iocaste", "Erinome", "Isonoe", "Praxidike", "Autonoe", "Thyone", "Hermippe", "Aitne",
				"Eurydome", "Euanthe", "Euporie", "Orthosie", "Sponde", "Kale", "Pasithee", "Hegemone",
				"Mneme", "Aoede", "Thelxinoe", "Arche", "Kallichore", "Helike", "Carpo", "Eukelade",
				"Cyllene", "Kore", "Herse", "Dia",
			},
			fillerCount: 16, fillerYear: 2003,
			baseGM: 5959.9, baseRadius: 2634.1, density: 3528, baseMagnitude: 5.0, albedo: 0.63,
		},
		{
			planetID: 6, planetLetter: "S",
			named: []string{
				"Titan", "Rhea", "Iapetus", "Dione", "Tethys", "Enceladus", "Mimas", "Hyperion",
				"Phoebe", "Janus", "Epimetheus", "Helene", "Telesto", "Calypso", "Atlas", "Prometheus",
				"Pandora", "Pan", "Ymir", "Paaliaq", "Tarvos", "Ijiraq", "Suttungr", "Kiviuq",
				"Mundilfari", "Albiorix", "Skathi", "Erriapus", "Siarnaq", "Thrymr", "Narvi", "Methone",
				"Pallene", "Polydeuces", "Daphnis", "Aegir", "Bebhionn", "Bergelmir", "Bestla",
				"Farbauti", "Fenrir", "Fornjot", "Hati", "Hyrrokkin", "Kari", "Loge", "Skoll", "Surtur",
				"Anthe", "Jarnsaxa", "Greip", "Tarqeq",
			},
			fillerCount: 10, fillerYear: 2004,
			baseGM: 8978.1, baseRadius: 2574.7, density: 1880, baseMagnitude: 8.4, albedo: 0.22,
		},
		{
			planetID: 7, planetLetter: "U",
			named: []string{
				"Cordelia", "Ophelia", "Bianca", "Cressida", "Desdemona", "Juliet", "Portia",
				"Rosalind", "Cupid", "Belinda", "Perdita", "Puck", "Mab", "Miranda", "Ariel",
				"Umbriel", "Titania", "Oberon", "Francisco", "Caliban", "Stephano", "Trinculo",
				"Sycorax", "Margaret", "Prospero", "Setebos", "Ferdinand",
			},
			fillerCount: 0,
			baseGM: 4.4, baseRadius: 788.9, density: 1711, baseMagnitude: 13.5, albedo: 0.35,
		},
		{
			planetID: 8, planetLetter: "N",
			named: []string{
				"Naiad", "Thalassa", "Despina", "Galatea", "Larissa", "Hippocamp", "Proteus",
				"Triton", "Nereid", "Halimede", "Sao", "Laomedeia", "Neso", "Psamathe",
			},
			fillerCount: 0,
			baseGM: 1427.6, baseRadius: 1353.4, density: 2061, baseMagnitude: 13.5, albedo: 0.76,
		},
		{
			planetID: 9, planetLetter: "P", named: []string{"Charon", "Nix", "Hydra", "Kerberos"}, fillerCount: 0,
			baseGM: 102.3, baseRadius: 606.0, density: 1702, baseMagnitude: 16.8, albedo: 0.35,
		},
	}

	var rows [][]any
	nextID := int64(1)
	for _, g := range groups {
		grows, after := g.rows(nextID)
		rows = append(rows, grows...)
		nextID = after
	}
	return NewTable("$satellites", satellitesSchema(), rows)
}
