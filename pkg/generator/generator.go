// Package generator orchestrates a full run: it derives the
// compartment topology from the parsed model, assembles every coupled
// model descriptor, plans enzyme-set grouping, accumulates the
// parameter records, and finally streams everything through an
// emitter. Build is pure; nothing is written until Emit.
package generator

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/dd0wney/cellgraph/pkg/assembler"
	"github.com/dd0wney/cellgraph/pkg/emitter"
	"github.com/dd0wney/cellgraph/pkg/groups"
	"github.com/dd0wney/cellgraph/pkg/logging"
	"github.com/dd0wney/cellgraph/pkg/model"
	"github.com/dd0wney/cellgraph/pkg/params"
	"github.com/dd0wney/cellgraph/pkg/routing"
	"github.com/dd0wney/cellgraph/pkg/sbml"
)

// Result is one complete assembled model graph. Coupled lists the
// compartment descriptors in topology order with the organism root
// last.
type Result struct {
	ModelID string
	RunID   string

	Coupled []*assembler.CoupledModel
	Spaces  []emitter.SpaceSpec
	Sets    []emitter.EnzymeSetSpec

	Params *params.Writer
}

// Generator holds the compartment aggregates of one parsed model.
type Generator struct {
	cfg    Config
	parser *sbml.Parser
	log    logging.Logger
	runID  string

	cytoplasm     *model.Compartment
	extracellular *model.Compartment
	periplasm     *model.Compartment
	organelles    []*model.Compartment
}

// New derives the organism topology from the parsed model: the
// periplasm carries the outer, inner and trans membranes, every
// organelle carries a single membrane, the cytoplasm routes to the
// inner periplasm membranes and each organelle membrane, and the
// extracellular space routes to the outer periplasm membranes.
func New(cfg Config, p *sbml.Parser, log logging.Logger) (*Generator, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	g := &Generator{
		cfg:    cfg,
		parser: p,
		log:    log,
		runID:  uuid.New().String(),
	}

	opts := p.Options()
	organelleIDs := p.Organelles()

	var err error
	g.periplasm, err = model.New(p, opts.PeriplasmID,
		[]string{sbml.SetOuter, sbml.SetInner, sbml.SetTrans}, nil)
	if err != nil {
		return nil, err
	}

	for _, oid := range organelleIDs {
		org, err := model.New(p, oid, []string{sbml.SetMembrane}, nil)
		if err != nil {
			return nil, err
		}
		g.organelles = append(g.organelles, org)
	}

	cytoExternal := []routing.External{
		{Compartment: opts.PeriplasmID, ReactionSets: []string{sbml.SetInner, sbml.SetTrans}},
	}
	for _, oid := range organelleIDs {
		cytoExternal = append(cytoExternal, routing.External{
			Compartment: oid, ReactionSets: []string{sbml.SetMembrane},
		})
	}
	g.cytoplasm, err = model.New(p, opts.CytoplasmID, nil, cytoExternal)
	if err != nil {
		return nil, err
	}

	g.extracellular, err = model.New(p, opts.ExtracellularID, nil, []routing.External{
		{Compartment: opts.PeriplasmID, ReactionSets: []string{sbml.SetOuter, sbml.SetTrans}},
	})
	if err != nil {
		return nil, err
	}

	log.Info("topology derived",
		logging.RunID(g.runID),
		logging.ModelID(p.ModelID()),
		logging.Int("organelles", len(g.organelles)))
	return g, nil
}

// RunID returns the run identifier stamped on this generator's output.
func (g *Generator) RunID() string {
	return g.runID
}

// compartments returns every compartment in topology order: cytoplasm,
// extracellular, periplasm, then the organelles in parse order.
func (g *Generator) compartments() []*model.Compartment {
	all := []*model.Compartment{g.cytoplasm, g.extracellular, g.periplasm}
	return append(all, g.organelles...)
}

// Build assembles the complete model graph. It touches no files; the
// result is handed to Emit and the parameter writer afterwards.
func (g *Generator) Build() (*Result, error) {
	timer := logging.StartTimer(g.log, "model graph built", logging.RunID(g.runID))

	res := &Result{
		ModelID: g.parser.ModelID(),
		RunID:   g.runID,
		Params:  params.NewWriter(g.runID),
	}

	for _, c := range g.compartments() {
		coupled, err := g.assemble(c)
		if err != nil {
			timer.EndError(err)
			return nil, err
		}
		res.Coupled = append(res.Coupled, coupled)
		res.Spaces = append(res.Spaces, spaceSpec(c))

		for _, set := range c.Sets {
			spec, err := g.setSpec(c, set, res.Params)
			if err != nil {
				timer.EndError(err)
				return nil, err
			}
			res.Sets = append(res.Sets, spec)
		}

		res.Params.AddSpace(c.Space, c.Table)
	}

	rootName := g.parser.ModelID()
	if rootName == "" {
		rootName = "cell"
	}
	root, err := assembler.Top(rootName, g.cytoplasm, g.extracellular, g.periplasm, g.organelles)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	res.Coupled = append(res.Coupled, root)

	for _, r := range g.parser.AllReactions().Pairs() {
		res.Params.AddReaction(r.Value)
	}
	for _, e := range g.parser.AllEnzymes().Pairs() {
		res.Params.AddEnzyme(e.Value)
	}

	timer.End()
	g.log.Info("graph summary",
		logging.RunID(g.runID),
		logging.Int("coupled_models", len(res.Coupled)),
		logging.Int("spaces", len(res.Spaces)),
		logging.Int("enzyme_sets", len(res.Sets)))
	return res, nil
}

// assemble picks the descriptor shape from the compartment's
// membranes: membrane-less compartments couple a single bulk set,
// membrane-bearing ones expose their membranes as inputs.
func (g *Generator) assemble(c *model.Compartment) (*assembler.CoupledModel, error) {
	if len(c.Membranes) == 0 {
		return assembler.Bulk(c)
	}
	return assembler.Organelle(c)
}

// setSpec plans the grouping of one enzyme set and records its routers
// in the parameter writer: one router per group mapping enzymes to
// intra-group ports, plus one per set mapping enzymes to group ports.
func (g *Generator) setSpec(c *model.Compartment, set *model.EnzymeSet, w *params.Writer) (emitter.EnzymeSetSpec, error) {
	plan, err := groups.BuildPlan(set.Enzymes, g.cfg.GroupsSize)
	if err != nil {
		return emitter.EnzymeSetSpec{}, err
	}

	spec := emitter.EnzymeSetSpec{
		Compartment: set.Address.Compartment,
		ReactionSet: set.Address.ReactionSet,
		ModelName:   set.Address.String(),
		OutputPorts: set.OutputPorts,
	}
	for _, grp := range plan.Groups {
		id := groupID(set.Address, grp.Port)
		spec.Groups = append(spec.Groups, emitter.GroupSpec{
			ID:      id,
			Enzymes: grp.Members.Keys(),
		})
		w.AddRouter(id, grp.Members)
	}
	w.AddRouter(set.Address.String(), plan.SetPorts)

	g.log.Debug("enzyme set planned",
		logging.Compartment(set.Address.Compartment),
		logging.ReactionSet(set.Address.ReactionSet),
		logging.Groups(len(plan.Groups)),
		logging.Enzymes(set.Enzymes.Len()))
	return spec, nil
}

// Emit streams the built graph through the emitter: enzyme sets first,
// then spaces, then the coupled descriptors root-last.
func (g *Generator) Emit(res *Result, em emitter.Emitter) error {
	for _, spec := range res.Sets {
		if err := em.EnzymeSet(spec); err != nil {
			return err
		}
	}
	for _, spec := range res.Spaces {
		if err := em.Space(spec); err != nil {
			return err
		}
	}
	for _, coupled := range res.Coupled {
		if err := em.Coupled(coupled); err != nil {
			return err
		}
	}
	return em.Finish()
}

func spaceSpec(c *model.Compartment) emitter.SpaceSpec {
	// Every reaction set returns through the space's single
	// product/information input pair.
	return emitter.SpaceSpec{
		ModelName:    assembler.SpaceName(c.ID),
		Compartments: []string{c.ID},
		OutputPorts:  c.Table.PortCount(),
		InputPorts:   1,
		Product:      assembler.KindProduct,
		Reactant:     assembler.KindReactant,
		Information:  assembler.KindInformation,
	}
}

func groupID(addr routing.Address, port int) string {
	return addr.String() + "_" + strconv.Itoa(port)
}
