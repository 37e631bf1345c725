package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dd0wney/cellgraph/pkg/emitter"
	"github.com/dd0wney/cellgraph/pkg/generator"
	"github.com/dd0wney/cellgraph/pkg/logging"
	"github.com/dd0wney/cellgraph/pkg/sbml"
	"github.com/dd0wney/cellgraph/pkg/validation"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (flags override it)")
	sbmlFile := flag.String("f", "", "SBML model file")
	extracellular := flag.String("e", "", "extracellular compartment id")
	periplasm := flag.String("p", "", "periplasm compartment id")
	cytoplasm := flag.String("c", "", "cytoplasm compartment id")
	groupsSize := flag.Int("s", 0, "maximum enzymes per group model")
	snapshotIn := flag.String("i", "", "load the parsed model from a snapshot instead of parsing")
	snapshotOut := flag.String("o", "", "save the parsed model as a snapshot")
	outputDir := flag.String("dir", "", "output directory for generated artifacts")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")

	flag.Usage = printUsage
	flag.Parse()

	cfg := generator.DefaultConfig()
	if *configPath != "" {
		loaded, err := generator.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	// Flags override the config file; unset flags keep its values.
	cfg.SBMLFile = validation.DefaultOr(*sbmlFile, cfg.SBMLFile)
	cfg.ExtracellularID = validation.DefaultOr(*extracellular, cfg.ExtracellularID)
	cfg.PeriplasmID = validation.DefaultOr(*periplasm, cfg.PeriplasmID)
	cfg.CytoplasmID = validation.DefaultOr(*cytoplasm, cfg.CytoplasmID)
	cfg.GroupsSize = validation.DefaultOrInt(*groupsSize, cfg.GroupsSize)
	cfg.SnapshotIn = validation.DefaultOr(*snapshotIn, cfg.SnapshotIn)
	cfg.SnapshotOut = validation.DefaultOr(*snapshotOut, cfg.SnapshotOut)
	cfg.OutputDir = validation.DefaultOr(*outputDir, cfg.OutputDir)

	logger := logging.NewDefaultLogger()
	if *logLevel != "" {
		logger = logging.NewJSONLogger(os.Stdout, logging.ParseLevel(*logLevel))
	}

	if err := validation.ValidateConfig(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("generation failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(cfg generator.Config, logger logging.Logger) error {
	parser, err := loadModel(cfg, logger)
	if err != nil {
		return err
	}

	gen, err := generator.New(cfg, parser, logger)
	if err != nil {
		return err
	}

	result, err := gen.Build()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	modelPath := filepath.Join(cfg.OutputDir, "model.hpp")
	em, err := emitter.NewCadmiumFile(modelPath)
	if err != nil {
		return err
	}
	if err := gen.Emit(result, em); err != nil {
		return err
	}

	paramsPath := filepath.Join(cfg.OutputDir, "parameters.xml")
	if err := result.Params.Save(paramsPath); err != nil {
		return err
	}

	logger.Info("artifacts written",
		logging.RunID(result.RunID),
		logging.ModelID(result.ModelID),
		logging.Path(modelPath),
		logging.String("params", paramsPath))
	return nil
}

// loadModel parses the SBML file, or restores a snapshot when one was
// given. Either way the parsed model can be persisted for later runs.
func loadModel(cfg generator.Config, logger logging.Logger) (*sbml.Parser, error) {
	var parser *sbml.Parser
	var err error

	if cfg.SnapshotIn != "" {
		timer := logging.StartTimer(logger, "snapshot loaded", logging.Path(cfg.SnapshotIn))
		parser, err = sbml.LoadSnapshot(cfg.SnapshotIn)
		if err != nil {
			timer.EndError(err)
			return nil, err
		}
		timer.End()
	} else {
		timer := logging.StartTimer(logger, "model parsed", logging.Path(cfg.SBMLFile))
		parser, err = sbml.ParseFile(cfg.SBMLFile, cfg.Options())
		if err != nil {
			timer.EndError(err)
			return nil, err
		}
		timer.End()
	}

	if cfg.SnapshotOut != "" {
		if err := parser.SaveSnapshot(cfg.SnapshotOut); err != nil {
			return nil, err
		}
		logger.Info("snapshot saved", logging.Path(cfg.SnapshotOut))
	}
	return parser, nil
}

func printUsage() {
	usage := `cellgraph - compile an SBML cell model into a simulation model graph

Usage:
  cellgraph -f <model.xml> [options]
  cellgraph -i <model.snap> [options]

Options:
  -f FILE        SBML model file
  -e ID          extracellular compartment id (default "e")
  -p ID          periplasm compartment id (default "p")
  -c ID          cytoplasm compartment id (default "c")
  -s N           maximum enzymes per group model (default 150)
  -i FILE        load the parsed model from a snapshot
  -o FILE        save the parsed model as a snapshot
  -dir DIR       output directory (default ".")
  -config FILE   YAML config file, overridden by flags
  -log-level LVL log level: debug, info, warn, error

Examples:
  # Generate from an SBML file with the conventional compartment ids
  cellgraph -f ecoli.xml -dir out

  # Parse once, snapshot, then regenerate quickly
  cellgraph -f ecoli.xml -o ecoli.snap
  cellgraph -i ecoli.snap -s 100 -dir out
`
	fmt.Fprint(os.Stderr, usage)
}
