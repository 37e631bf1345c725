package emitter

import "github.com/dd0wney/cellgraph/pkg/assembler"

// Recorder is an Emitter that accumulates every request, for tests and
// dry runs.
type Recorder struct {
	EnzymeSets []EnzymeSetSpec
	Spaces     []SpaceSpec
	Coupleds   []*assembler.CoupledModel
	Finished   bool
}

// EnzymeSet records the request.
func (r *Recorder) EnzymeSet(spec EnzymeSetSpec) error {
	r.EnzymeSets = append(r.EnzymeSets, spec)
	return nil
}

// Space records the request.
func (r *Recorder) Space(spec SpaceSpec) error {
	r.Spaces = append(r.Spaces, spec)
	return nil
}

// Coupled records the request.
func (r *Recorder) Coupled(m *assembler.CoupledModel) error {
	r.Coupleds = append(r.Coupleds, m)
	return nil
}

// Finish marks the recording complete.
func (r *Recorder) Finish() error {
	r.Finished = true
	return nil
}
