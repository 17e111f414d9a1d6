// Package surface provides the built-in structure provider: FCC metal
// slab construction for the 100/111/110 faces plus graphene and MoS2
// sheets, along with the XYZ artifact codec.
//
// The geometry here is deliberately simple bulk-terminated construction;
// anything more elaborate (reconstructions, adsorbates) belongs to an
// external structure-generation service.
package surface

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/atomiclab/atomic/internal/errors"
)

// latticeConstants holds approximate FCC lattice constants in Angstroms
// for the supported metals.
var latticeConstants = map[string]float64{
	"Cu": 3.61,
	"Pt": 3.92,
	"Au": 4.08,
	"Ag": 4.09,
	"Ni": 3.52,
	"Pd": 3.89,
}

// supportedFaces lists the FCC faces the builder can construct.
var supportedFaces = map[string]bool{
	"100": true,
	"111": true,
	"110": true,
}

// IsSupported reports whether the (element, face) pair names a surface
// this provider can build. 2D materials use the "graphene"/"2d" faces.
func IsSupported(element, face string) bool {
	if IsTwoDimensional(element, face) {
		return true
	}
	_, metal := latticeConstants[element]
	return metal && supportedFaces[face]
}

// IsTwoDimensional reports whether the pair names a layered 2D material.
func IsTwoDimensional(element, face string) bool {
	if face == "graphene" {
		return element == "C" || element == "graphene"
	}
	if face == "2d" {
		return element == "C" || element == "MoS2"
	}
	return false
}

// KnownSurfaces returns the supported (element, face) pairs, sorted, as
// "Element(face)" strings. Used by validation error messages and the
// refs command.
func KnownSurfaces() []string {
	out := make([]string, 0, len(latticeConstants)*len(supportedFaces)+2)
	for el := range latticeConstants {
		for face := range supportedFaces {
			out = append(out, el+"("+face+")")
		}
	}
	out = append(out, "C(graphene)", "MoS2(2d)")
	sort.Strings(out)
	return out
}

// LatticeConstant returns the FCC lattice constant for the element in
// Angstroms. Returns ErrUnsupportedSurface for unknown metals.
func LatticeConstant(element string) (float64, error) {
	a, ok := latticeConstants[element]
	if !ok {
		return 0, errors.Wrapf(errors.ErrUnsupportedSurface,
			"no lattice constant for element %q", element)
	}
	return a, nil
}

// BulkInterlayerSpacing returns the bulk-terminated interlayer spacing
// in Angstroms for the element/face pair. This drives the metric
// extractor's layer quantization width.
//
//	(100): a/2
//	(111): a/sqrt(3)
//	(110): a/(2*sqrt(2))
func BulkInterlayerSpacing(element, face string) (float64, error) {
	if IsTwoDimensional(element, face) {
		if element == "MoS2" {
			// S-Mo and Mo-S sublayer spacing inside the trilayer.
			return mos2SandwichHalf, nil
		}
		// Graphite interlayer spacing; a single sheet has one band.
		return 3.35, nil
	}

	a, err := LatticeConstant(element)
	if err != nil {
		return 0, err
	}
	switch face {
	case "100":
		return a / 2, nil
	case "111":
		return a / math.Sqrt(3), nil
	case "110":
		return a / (2 * math.Sqrt2), nil
	default:
		return 0, errors.Wrapf(errors.ErrUnsupportedSurface, "face %q", face)
	}
}

// chemicalFormula renders an aggregated formula like "Cu36" or "Mo9S18"
// from per-symbol counts, symbols in alphabetical order.
func chemicalFormula(counts map[string]int) string {
	symbols := make([]string, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var b strings.Builder
	for _, sym := range symbols {
		b.WriteString(sym)
		if counts[sym] > 1 {
			b.WriteString(strconv.Itoa(counts[sym]))
		}
	}
	return b.String()
}
