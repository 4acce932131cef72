package molecule

import "strings"

type elementInfo struct {
	number int
	// covalent radius in angstroms
	radius float64
}

var elements = map[string]elementInfo{
	"H":  {1, 0.31},
	"B":  {5, 0.84},
	"C":  {6, 0.76},
	"N":  {7, 0.71},
	"O":  {8, 0.66},
	"F":  {9, 0.57},
	"NA": {11, 1.66},
	"MG": {12, 1.41},
	"SI": {14, 1.11},
	"P":  {15, 1.07},
	"S":  {16, 1.05},
	"CL": {17, 1.02},
	"K":  {19, 2.03},
	"CA": {20, 1.76},
	"MN": {25, 1.39},
	"FE": {26, 1.32},
	"CO": {27, 1.26},
	"CU": {29, 1.32},
	"ZN": {30, 1.22},
	"SE": {34, 1.20},
	"BR": {35, 1.20},
	"I":  {53, 1.39},
}

const defaultCovalentRadius = 0.77

// NormalizeElement upper-cases and trims an element symbol.
func NormalizeElement(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// AtomicNumber returns the atomic number for an element symbol, or 0 when
// the element is unknown.
func AtomicNumber(symbol string) int {
	return elements[NormalizeElement(symbol)].number
}

// CovalentRadius returns the covalent radius for an element symbol.
// Unknown elements get a carbon-like radius.
func CovalentRadius(symbol string) float64 {
	if e, ok := elements[NormalizeElement(symbol)]; ok {
		return e.radius
	}
	return defaultCovalentRadius
}
