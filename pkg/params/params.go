// Package params accumulates the numeric and structural parameters of
// a generated model and persists them as a single XML document: one
// router record per enzyme-set group and per full reaction set, one
// space record per compartment, and one record per reaction and enzyme
// definition. The writer is append-only; records appear in the order
// they were added.
package params

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cellgraph/pkg/model"
	"github.com/dd0wney/cellgraph/pkg/ordered"
	"github.com/dd0wney/cellgraph/pkg/routing"
	"github.com/dd0wney/cellgraph/pkg/sbml"
)

// Document is the marshalled parameters file.
type Document struct {
	XMLName   xml.Name   `xml:"parameters"`
	RunID     string     `xml:"runID,attr"`
	Routers   []Router   `xml:"routers>router"`
	Spaces    []Space    `xml:"spaces>space"`
	Reactions []Reaction `xml:"reactions>reaction"`
	Enzymes   []Enzyme   `xml:"enzymes>enzyme"`
}

// Router maps enzyme ids to ports, for one group or one whole
// reaction set.
type Router struct {
	ID      string        `xml:"id,attr"`
	Entries []RouterEntry `xml:"entry"`
}

// RouterEntry is a single enzyme-to-port assignment.
type RouterEntry struct {
	Enzyme string `xml:"enzymeID,attr"`
	Port   int    `xml:"port,attr"`
}

// Space holds one compartment's physical parameters, its routing
// table, and the reaction and enzyme definitions active inside it.
type Space struct {
	ID           string       `xml:"id,attr"`
	IntervalTime string       `xml:"intervalTime"`
	Volume       float64      `xml:"volume"`
	Metabolites  []Metabolite `xml:"metabolites>metabolite"`
	Routes       []Route      `xml:"routingTable>route"`
	Reactions    []Reaction   `xml:"reactionParameters>reaction"`
	Enzymes      []Enzyme     `xml:"enzymes>enzyme"`
}

// Metabolite is an initial species amount in a space.
type Metabolite struct {
	ID     string  `xml:"id,attr"`
	Amount float64 `xml:"amount,attr"`
}

// Route is one routing-table row of a space.
type Route struct {
	Compartment string `xml:"compartment,attr"`
	ReactionSet string `xml:"reactionSet,attr"`
	Port        int    `xml:"port,attr"`
}

// Reaction is one reaction definition record.
type Reaction struct {
	ID         string       `xml:"id,attr"`
	Reversible bool         `xml:"reversible,attr"`
	KonSTP     float64      `xml:"konSTP"`
	KonPTS     float64      `xml:"konPTS"`
	KoffSTP    float64      `xml:"koffSTP"`
	KoffPTS    float64      `xml:"koffPTS"`
	Rate       string       `xml:"rate"`
	RejectRate string       `xml:"rejectRate"`
	Reactants  []SpeciesRef `xml:"reactants>species"`
	Products   []SpeciesRef `xml:"products>species"`
}

// SpeciesRef is a stoichiometric species reference of a reaction
// record.
type SpeciesRef struct {
	ID            string  `xml:"id,attr"`
	Stoichiometry float64 `xml:"stoichiometry,attr"`
}

// Enzyme is one enzyme definition record.
type Enzyme struct {
	ID        string   `xml:"id,attr"`
	Amount    int      `xml:"amount,attr"`
	Reactions []string `xml:"handles>reaction"`
}

// Writer accumulates parameter records for one generation run.
type Writer struct {
	doc Document
}

// NewWriter creates an empty parameters document stamped with the run
// id.
func NewWriter(runID string) *Writer {
	return &Writer{doc: Document{RunID: runID}}
}

// AddRouter records an enzyme-to-port routing table under the given
// id, preserving the table's order.
func (w *Writer) AddRouter(id string, table *ordered.Map[string, int]) {
	router := Router{ID: id}
	for enzyme, port := range table.All() {
		router.Entries = append(router.Entries, RouterEntry{Enzyme: enzyme, Port: port})
	}
	w.doc.Routers = append(w.doc.Routers, router)
}

// AddSpace records a compartment's space parameters, its routing
// table, and the definitions of the reactions and enzymes it hosts.
func (w *Writer) AddSpace(sp model.SpaceParameters, table *routing.Table) {
	space := Space{
		ID:           sp.Compartment,
		IntervalTime: sp.IntervalTime,
		Volume:       sp.Volume,
	}
	for id, amount := range sp.Metabolites.All() {
		space.Metabolites = append(space.Metabolites, Metabolite{ID: id, Amount: amount})
	}
	for e := range table.Entries() {
		space.Routes = append(space.Routes, Route{
			Compartment: e.Address.Compartment,
			ReactionSet: e.Address.ReactionSet,
			Port:        e.Port,
		})
	}
	if sp.Reactions != nil {
		for _, r := range sp.Reactions.All() {
			space.Reactions = append(space.Reactions, reactionRecord(r))
		}
	}
	if sp.Enzymes != nil {
		for _, e := range sp.Enzymes.All() {
			space.Enzymes = append(space.Enzymes, enzymeRecord(e))
		}
	}
	w.doc.Spaces = append(w.doc.Spaces, space)
}

// AddReaction records one reaction definition.
func (w *Writer) AddReaction(r *sbml.Reaction) {
	w.doc.Reactions = append(w.doc.Reactions, reactionRecord(r))
}

// AddEnzyme records one enzyme definition.
func (w *Writer) AddEnzyme(e *sbml.Enzyme) {
	w.doc.Enzymes = append(w.doc.Enzymes, enzymeRecord(e))
}

func reactionRecord(r *sbml.Reaction) Reaction {
	record := Reaction{
		ID:         r.ID,
		Reversible: r.Reversible,
		KonSTP:     r.KonSTP,
		KonPTS:     r.KonPTS,
		KoffSTP:    r.KoffSTP,
		KoffPTS:    r.KoffPTS,
		Rate:       r.Rate,
		RejectRate: r.RejectRate,
	}
	for _, s := range r.Reactants {
		record.Reactants = append(record.Reactants, SpeciesRef{ID: s.Species, Stoichiometry: s.Stoichiometry})
	}
	for _, s := range r.Products {
		record.Products = append(record.Products, SpeciesRef{ID: s.Species, Stoichiometry: s.Stoichiometry})
	}
	return record
}

func enzymeRecord(e *sbml.Enzyme) Enzyme {
	return Enzyme{
		ID:        e.ID,
		Amount:    e.Amount,
		Reactions: e.Reactions,
	}
}

// Document returns the accumulated document.
func (w *Writer) Document() *Document {
	return &w.doc
}

// WriteTo marshals the document as indented XML.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	raw, err := xml.MarshalIndent(&w.doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("params: marshal: %w", err)
	}
	n, err := out.Write(append([]byte(xml.Header), raw...))
	if err != nil {
		return int64(n), fmt.Errorf("params: write: %w", err)
	}
	return int64(n), nil
}

// Save writes the document to a file.
func (w *Writer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("params: create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := w.WriteTo(f); err != nil {
		return err
	}
	return nil
}
