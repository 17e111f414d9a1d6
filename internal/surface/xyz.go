package surface

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

// EncodeXYZ writes a structure in extended XYZ format: an atom count, a
// comment line carrying the cell lattice and property schema, then one
// line per atom with symbol, position, and layer tag.
func EncodeXYZ(w io.Writer, s *domain.Structure) error {
	if s == nil || len(s.Atoms) == 0 {
		return errors.Wrap(errors.ErrEmptyStructure, "encode xyz")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(s.Atoms))

	c := s.Cell
	fmt.Fprintf(bw,
		"Lattice=\"%g %g %g %g %g %g %g %g %g\" Properties=species:S:1:pos:R:3:tags:I:1 Formula=%s\n",
		c[0][0], c[0][1], c[0][2],
		c[1][0], c[1][1], c[1][2],
		c[2][0], c[2][1], c[2][2],
		s.Formula)

	for _, atom := range s.Atoms {
		fmt.Fprintf(bw, "%-2s %16.8f %16.8f %16.8f %4d\n",
			atom.Symbol, atom.Position.X, atom.Position.Y, atom.Position.Z, atom.Tag)
	}

	return bw.Flush()
}

// DecodeXYZ reads a structure previously written by EncodeXYZ. Plain XYZ
// files without the Lattice comment or tag column are also accepted; the
// cell comes back zeroed and tags default to 0.
func DecodeXYZ(r io.Reader) (*domain.Structure, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, errors.Wrap(errors.ErrEmptyStructure, "decode xyz: missing atom count")
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || count <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidSpec, "decode xyz: bad atom count %q", scanner.Text())
	}

	if !scanner.Scan() {
		return nil, errors.Wrap(errors.ErrInvalidSpec, "decode xyz: missing comment line")
	}
	comment := scanner.Text()

	s := &domain.Structure{
		Atoms: make([]domain.Atom, 0, count),
	}
	if cell, ok := parseLattice(comment); ok {
		s.Cell = cell
	}
	counts := map[string]int{}

	for i := 0; i < count; i++ {
		if !scanner.Scan() {
			return nil, errors.Wrapf(errors.ErrInvalidSpec,
				"decode xyz: expected %d atoms, got %d", count, i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, errors.Wrapf(errors.ErrInvalidSpec,
				"decode xyz: atom line %d has %d fields", i+1, len(fields))
		}

		var pos [3]float64
		for k := 0; k < 3; k++ {
			pos[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidSpec,
					"decode xyz: atom line %d: %v", i+1, err)
			}
		}

		tag := 0
		if len(fields) >= 5 {
			tag, _ = strconv.Atoi(fields[4])
		}

		s.Atoms = append(s.Atoms, domain.Atom{
			Symbol:   fields[0],
			Position: domain.Position{X: pos[0], Y: pos[1], Z: pos[2]},
			Tag:      tag,
		})
		counts[fields[0]]++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "decode xyz")
	}

	s.Formula = chemicalFormula(counts)
	return s, nil
}

// parseLattice extracts the 3x3 cell from an extended XYZ comment line.
func parseLattice(comment string) ([3][3]float64, bool) {
	var cell [3][3]float64

	idx := strings.Index(comment, `Lattice="`)
	if idx < 0 {
		return cell, false
	}
	rest := comment[idx+len(`Lattice="`):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return cell, false
	}

	fields := strings.Fields(rest[:end])
	if len(fields) != 9 {
		return cell, false
	}
	for k, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return cell, false
		}
		cell[k/3][k%3] = v
	}
	return cell, true
}

// WriteXYZFile writes a structure to path in extended XYZ format.
func WriteXYZFile(path string, s *domain.Structure) error {
	f, err := os.Create(path) //nolint:gosec // artifact path is orchestrator-controlled
	if err != nil {
		return errors.Wrapf(err, "write xyz %s", path)
	}
	defer func() { _ = f.Close() }()

	if err := EncodeXYZ(f, s); err != nil {
		return err
	}
	return errors.Wrapf(f.Close(), "write xyz %s", path)
}

// ReadXYZFile reads a structure from an extended XYZ file.
func ReadXYZFile(path string) (*domain.Structure, error) {
	f, err := os.Open(path) //nolint:gosec // artifact path is orchestrator-controlled
	if err != nil {
		return nil, errors.Wrapf(err, "read xyz %s", path)
	}
	defer func() { _ = f.Close() }()

	return DecodeXYZ(f)
}
