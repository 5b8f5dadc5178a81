package stats

import (
	"fmt"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

// BeltInfo describes how a rank is displayed.
type BeltInfo struct {
	Belt      models.Belt `json:"belt"`
	Label     string      `json:"label"`
	Color     string      `json:"color"`
	MaxDegree int         `json:"max_degree"`
	Kids      bool        `json:"kids"`
	Order     int         `json:"order"`
}

// BeltRow is one line of the belt distribution table.
type BeltRow struct {
	BeltInfo
	Count      int         `json:"count"`
	Percentage int         `json:"percentage"`
	Degrees    map[int]int `json:"degrees"`
}

var belts = []BeltInfo{
	{Belt: models.BeltWhite, Label: "Branca", Color: "#FFFFFF", MaxDegree: 4},
	{Belt: models.BeltGrey, Label: "Cinza", Color: "#9CA3AF", MaxDegree: 4, Kids: true},
	{Belt: models.BeltYellow, Label: "Amarela", Color: "#FACC15", MaxDegree: 4, Kids: true},
	{Belt: models.BeltOrange, Label: "Laranja", Color: "#F97316", MaxDegree: 4, Kids: true},
	{Belt: models.BeltGreen, Label: "Verde", Color: "#16A34A", MaxDegree: 4, Kids: true},
	{Belt: models.BeltBlue, Label: "Azul", Color: "#2563EB", MaxDegree: 4},
	{Belt: models.BeltPurple, Label: "Roxa", Color: "#7C3AED", MaxDegree: 4},
	{Belt: models.BeltBrown, Label: "Marrom", Color: "#78350F", MaxDegree: 4},
	{Belt: models.BeltBlack, Label: "Preta", Color: "#000000", MaxDegree: 6},
	{Belt: models.BeltCoral, Label: "Coral", Color: "#DC2626", MaxDegree: 7},
	{Belt: models.BeltRedAndWhite, Label: "Vermelha e Branca", Color: "#EF4444", MaxDegree: 8},
	{Belt: models.BeltRed, Label: "Vermelha", Color: "#B91C1C", MaxDegree: 10},
}

var beltIndex = func() map[models.Belt]int {
	index := make(map[models.Belt]int, len(belts))
	for i := range belts {
		belts[i].Order = i
		index[belts[i].Belt] = i
	}
	return index
}()

// Belts returns every rank in progression order.
func Belts() []BeltInfo {
	return append([]BeltInfo(nil), belts...)
}

// KidsBelts returns the ranks used only by children, in order.
func KidsBelts() []BeltInfo {
	out := make([]BeltInfo, 0, 4)
	for _, b := range belts {
		if b.Kids {
			out = append(out, b)
		}
	}
	return out
}

// AdultBelts returns the ranks used by adults, in order.
func AdultBelts() []BeltInfo {
	out := make([]BeltInfo, 0, len(belts))
	for _, b := range belts {
		if !b.Kids {
			out = append(out, b)
		}
	}
	return out
}

// Belt looks up the display info of a rank.
func Belt(b models.Belt) (BeltInfo, bool) {
	i, ok := beltIndex[b]
	if !ok {
		return BeltInfo{}, false
	}
	return belts[i], true
}

// BeltLabel returns the Portuguese label of a rank, or the raw value when unknown.
func BeltLabel(b models.Belt) string {
	if info, ok := Belt(b); ok {
		return info.Label
	}
	return string(b)
}

// BeltColor returns the display colour of a rank, grey when unknown.
func BeltColor(b models.Belt) string {
	if info, ok := Belt(b); ok {
		return info.Color
	}
	return "#6B7280"
}

// MaxDegree returns the highest degree a rank allows.
func MaxDegree(b models.Belt) int {
	if info, ok := Belt(b); ok {
		return info.MaxDegree
	}
	return 0
}

// DegreeLabel renders a degree the way the academy writes it.
func DegreeLabel(b models.Belt, degree int) string {
	switch {
	case degree <= 0:
		return "Sem grau"
	case b == models.BeltBlack || b == models.BeltCoral || b == models.BeltRedAndWhite || b == models.BeltRed:
		return fmt.Sprintf("%dº grau", degree)
	case degree == 1:
		return "1 grau"
	default:
		return fmt.Sprintf("%d graus", degree)
	}
}

// RankLabel combines belt and degree, e.g. "Azul - 2 graus".
func RankLabel(b models.Belt, degree int) string {
	return BeltLabel(b) + " - " + DegreeLabel(b, degree)
}

// BeltTable expands an overview distribution into one row per known rank, in order.
// Ranks absent from the distribution appear with zero count.
func BeltTable(distribution []models.BeltCount) []BeltRow {
	rows := make([]BeltRow, len(belts))
	for i, info := range belts {
		rows[i] = BeltRow{BeltInfo: info, Degrees: map[int]int{}}
	}
	total := 0
	for _, entry := range distribution {
		i, ok := beltIndex[entry.Belt]
		if !ok {
			continue
		}
		rows[i].Count += entry.Count
		rows[i].Degrees[entry.Degree] += entry.Count
		total += entry.Count
	}
	for i := range rows {
		rows[i].Percentage = FillPercentage(rows[i].Count, total)
	}
	return rows
}

// DistributionFromStudents builds an overview distribution from a student list.
func DistributionFromStudents(students []models.Student) []models.BeltCount {
	type key struct {
		belt   models.Belt
		degree int
	}
	counts := map[key]int{}
	order := make([]key, 0)
	for _, s := range students {
		k := key{belt: s.Belt, degree: s.BeltDegree}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]models.BeltCount, 0, len(order))
	for _, k := range order {
		out = append(out, models.BeltCount{Belt: k.belt, Degree: k.degree, Count: counts[k]})
	}
	return out
}
