package generator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cellgraph/pkg/groups"
	"github.com/dd0wney/cellgraph/pkg/sbml"
	"github.com/dd0wney/cellgraph/pkg/validation"
)

// Config drives one generation run. Either SBMLFile or SnapshotIn must
// be set; SnapshotIn wins when both are.
type Config struct {
	SBMLFile   string `yaml:"sbmlFile"`
	SnapshotIn string `yaml:"snapshotIn"`

	// SnapshotOut, when set, persists the parsed model for later runs.
	SnapshotOut string `yaml:"snapshotOut"`

	ExtracellularID string `yaml:"extracellularID" validate:"required"`
	PeriplasmID     string `yaml:"periplasmID" validate:"required"`
	CytoplasmID     string `yaml:"cytoplasmID" validate:"required"`

	// GroupsSize bounds how many enzymes one group model may hold.
	GroupsSize int `yaml:"groupsSize"`

	OutputDir string `yaml:"outputDir" validate:"required"`

	// IntervalTimes overrides the space timing interval for individual
	// compartments.
	IntervalTimes map[string]string `yaml:"intervalTimes"`

	Defaults sbml.Defaults `yaml:"defaults"`
}

// DefaultConfig returns a config with the conventional compartment
// roles and stock parameter defaults filled in.
func DefaultConfig() Config {
	return Config{
		ExtracellularID: "e",
		PeriplasmID:     "p",
		CytoplasmID:     "c",
		GroupsSize:      groups.DefaultSize,
		OutputDir:       ".",
		Defaults:        sbml.DefaultDefaults(),
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config for a runnable combination of values:
// the validate tags cover the unconditional shape, the collector the
// conditional and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	return validation.NewConfigValidator("Config").
		When(c.SnapshotIn == "", func(cv *validation.ConfigValidator) {
			cv.Required("SBMLFile", c.SBMLFile)
		}).
		Positive("GroupsSize", c.GroupsSize).
		NonNegativeFloat("Defaults.MetaboliteAmount", c.Defaults.MetaboliteAmount).
		Custom("Roles", func() error {
			return validation.ValidateRoles(c.ExtracellularID, c.PeriplasmID, c.CytoplasmID)
		}).
		Validate()
}

// Options translates the config into parser options.
func (c *Config) Options() sbml.Options {
	return sbml.Options{
		ExtracellularID: c.ExtracellularID,
		PeriplasmID:     c.PeriplasmID,
		CytoplasmID:     c.CytoplasmID,
		IntervalTimes:   c.IntervalTimes,
		Defaults:        c.Defaults,
	}
}
