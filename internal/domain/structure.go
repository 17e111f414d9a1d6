package domain

// Position is a Cartesian coordinate in Angstroms.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Atom is a single site in a structure: chemical species, position, and a
// tag identifying layer membership (1 = surface layer, increasing into the
// bulk; 0 = untagged).
type Atom struct {
	Symbol   string   `json:"symbol"`
	Position Position `json:"position"`
	Tag      int      `json:"tag,omitempty"`
}

// Structure is an immutable atomic geometry snapshot. A relaxed task owns
// exactly two instances: the unrelaxed and the relaxed geometry, with
// identical atom count and ordering.
type Structure struct {
	// Formula is the chemical formula, e.g. "Cu36".
	Formula string `json:"formula"`

	// Cell holds the three lattice vectors as rows, in Angstroms.
	Cell [3][3]float64 `json:"cell"`

	// Atoms is the ordered site list. Ordering is significant: metric
	// extraction matches atoms across the unrelaxed/relaxed pair by index.
	Atoms []Atom `json:"atoms"`
}

// NumAtoms returns the number of atoms in the structure.
func (s *Structure) NumAtoms() int {
	return len(s.Atoms)
}

// Copy returns a deep copy of the structure. Collaborators that mutate
// positions (the relaxation engine) operate on a copy so the unrelaxed
// snapshot stays immutable.
func (s *Structure) Copy() *Structure {
	out := &Structure{
		Formula: s.Formula,
		Cell:    s.Cell,
		Atoms:   make([]Atom, len(s.Atoms)),
	}
	copy(out.Atoms, s.Atoms)
	return out
}

// Trajectory is the ordered sequence of (step, total energy) samples
// produced during optimization. Only the first and last samples survive
// into the report.
type Trajectory struct {
	// Samples is ordered by step index.
	Samples []TrajectorySample `json:"samples"`

	// Converged reports whether the optimizer met its force tolerance
	// within the step budget.
	Converged bool `json:"converged"`
}

// TrajectorySample is one (step, energy) observation.
type TrajectorySample struct {
	Step   int     `json:"step"`
	Energy float64 `json:"energy"` // eV
}

// InitialEnergy returns the first sampled energy, or 0 when empty.
func (t *Trajectory) InitialEnergy() float64 {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[0].Energy
}

// FinalEnergy returns the last sampled energy, or 0 when empty.
func (t *Trajectory) FinalEnergy() float64 {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].Energy
}

// EnergyChange returns final minus initial energy in eV.
func (t *Trajectory) EnergyChange() float64 {
	return t.FinalEnergy() - t.InitialEnergy()
}
