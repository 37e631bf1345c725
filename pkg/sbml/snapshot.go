package sbml

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/snappy"

	"github.com/dd0wney/cellgraph/pkg/ordered"
)

// snapshotVersion guards against loading snapshots written by an
// incompatible layout of the derived state.
const snapshotVersion = 1

// snapshot is the serialized form of a Parser. Pair slices keep the
// document order that plain JSON objects would lose.
type snapshot struct {
	Version int     `json:"version"`
	ModelID string  `json:"modelID"`
	Options Options `json:"options"`

	Compartments []ordered.Pair[string, float64]                         `json:"compartments"`
	Species      []ordered.Pair[string, []ordered.Pair[string, float64]] `json:"species"`
	Reactions    []ordered.Pair[string, *Reaction]                       `json:"reactions"`
	Enzymes      []ordered.Pair[string, *Enzyme]                         `json:"enzymes"`
}

// SaveSnapshot persists the parser's derived state as snappy-compressed
// JSON, so later runs can skip re-parsing the source model.
func (p *Parser) SaveSnapshot(path string) error {
	snap := snapshot{
		Version:      snapshotVersion,
		ModelID:      p.modelID,
		Options:      p.opts,
		Compartments: p.compartments.Pairs(),
		Reactions:    p.reactions.Pairs(),
		Enzymes:      p.enzymes.Pairs(),
	}
	for cid, species := range p.species.All() {
		snap.Species = append(snap.Species, ordered.Pair[string, []ordered.Pair[string, float64]]{
			Key:   cid,
			Value: species.Pairs(),
		})
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("sbml: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, snappy.Encode(nil, raw), 0644); err != nil {
		return fmt.Errorf("sbml: write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot rebuilds a Parser from a snapshot written by
// SaveSnapshot.
func LoadSnapshot(path string) (*Parser, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sbml: read snapshot %s: %w", path, err)
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("sbml: decompress snapshot %s: %w", path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("sbml: unmarshal snapshot %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("sbml: snapshot %s: unsupported version %d", path, snap.Version)
	}

	p := &Parser{
		modelID:      snap.ModelID,
		opts:         snap.Options,
		compartments: ordered.FromPairs(snap.Compartments),
		species:      ordered.New[string, *ordered.Map[string, float64]](),
		speciesHome:  make(map[string]string),
		reactions:    ordered.FromPairs(snap.Reactions),
		enzymes:      ordered.FromPairs(snap.Enzymes),
	}
	for _, entry := range snap.Species {
		species := ordered.FromPairs(entry.Value)
		p.species.Set(entry.Key, species)
		for _, sid := range species.Keys() {
			p.speciesHome[sid] = entry.Key
		}
	}
	return p, nil
}
