package surface

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomiclab/atomic/internal/domain"
	atomicerrors "github.com/atomiclab/atomic/internal/errors"
)

func TestXYZ_RoundTrip(t *testing.T) {
	original, err := NewBuilder().Build(context.Background(), "Cu", "100")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeXYZ(&buf, original))

	decoded, err := DecodeXYZ(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.Formula, decoded.Formula)
	require.Equal(t, original.NumAtoms(), decoded.NumAtoms())

	for i := range original.Atoms {
		assert.Equal(t, original.Atoms[i].Symbol, decoded.Atoms[i].Symbol)
		assert.Equal(t, original.Atoms[i].Tag, decoded.Atoms[i].Tag)
		assert.InDelta(t, original.Atoms[i].Position.X, decoded.Atoms[i].Position.X, 1e-7)
		assert.InDelta(t, original.Atoms[i].Position.Y, decoded.Atoms[i].Position.Y, 1e-7)
		assert.InDelta(t, original.Atoms[i].Position.Z, decoded.Atoms[i].Position.Z, 1e-7)
	}
	for i := range original.Cell {
		for j := range original.Cell[i] {
			assert.InDelta(t, original.Cell[i][j], decoded.Cell[i][j], 1e-7)
		}
	}
}

func TestEncodeXYZ_Format(t *testing.T) {
	s := &domain.Structure{
		Formula: "Cu2",
		Cell:    [3][3]float64{{2.5, 0, 0}, {0, 2.5, 0}, {0, 0, 20}},
		Atoms: []domain.Atom{
			{Symbol: "Cu", Position: domain.Position{X: 0, Y: 0, Z: 10}, Tag: 2},
			{Symbol: "Cu", Position: domain.Position{X: 1.25, Y: 1.25, Z: 11.805}, Tag: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeXYZ(&buf, s))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2", lines[0])
	assert.Contains(t, lines[1], `Lattice="2.5 0 0 0 2.5 0 0 0 20"`)
	assert.Contains(t, lines[1], "Properties=species:S:1:pos:R:3:tags:I:1")
	assert.Contains(t, lines[1], "Formula=Cu2")
	assert.True(t, strings.HasPrefix(lines[2], "Cu"))
}

func TestEncodeXYZ_EmptyStructure(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeXYZ(&buf, &domain.Structure{})
	assert.ErrorIs(t, err, atomicerrors.ErrEmptyStructure)
	assert.ErrorIs(t, EncodeXYZ(&buf, nil), atomicerrors.ErrEmptyStructure)
}

func TestDecodeXYZ_PlainXYZ(t *testing.T) {
	// Plain XYZ without lattice or tag column still decodes.
	in := "2\nwater-free copper dimer\nCu 0.0 0.0 0.0\nCu 0.0 0.0 2.5\n"

	s, err := DecodeXYZ(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "Cu2", s.Formula)
	assert.Equal(t, [3][3]float64{}, s.Cell)
	assert.Equal(t, 0, s.Atoms[0].Tag)
	assert.InDelta(t, 2.5, s.Atoms[1].Position.Z, 1e-9)
}

func TestDecodeXYZ_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"bad atom count", "two\ncomment\n"},
		{"zero atom count", "0\ncomment\n"},
		{"missing comment", "2\n"},
		{"truncated atoms", "2\ncomment\nCu 0 0 0\n"},
		{"short atom line", "1\ncomment\nCu 0 0\n"},
		{"non-numeric position", "1\ncomment\nCu 0 x 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeXYZ(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestXYZ_FileRoundTrip(t *testing.T) {
	s, err := NewBuilder(WithSize(2, 2, 2)).Build(context.Background(), "Ag", "111")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Ag_111_unrelaxed.xyz")
	require.NoError(t, WriteXYZFile(path, s))

	got, err := ReadXYZFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.NumAtoms(), got.NumAtoms())
	assert.Equal(t, s.Formula, got.Formula)

	_, err = ReadXYZFile(filepath.Join(t.TempDir(), "missing.xyz"))
	assert.Error(t, err)
}
