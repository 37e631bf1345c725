package emitter

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/dd0wney/cellgraph/pkg/assembler"
)

// Cadmium renders the model graph as a single Cadmium-flavored C++
// translation unit.
type Cadmium struct {
	out    io.Writer
	closer io.Closer
	tmpl   *template.Template
}

// NewCadmium creates an emitter writing to out.
func NewCadmium(out io.Writer) (*Cadmium, error) {
	tmpl, err := template.New("cadmium").Funcs(template.FuncMap{
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
	}).Parse(cadmiumTemplates)
	if err != nil {
		return nil, fmt.Errorf("emitter: parse templates: %w", err)
	}
	c := &Cadmium{out: out, tmpl: tmpl}
	if err := c.tmpl.ExecuteTemplate(out, "prologue", nil); err != nil {
		return nil, fmt.Errorf("emitter: prologue: %w", err)
	}
	return c, nil
}

// NewCadmiumFile creates an emitter writing to a new file at path.
func NewCadmiumFile(path string) (*Cadmium, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("emitter: create %s: %w", path, err)
	}
	c, err := NewCadmium(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	c.closer = f
	return c, nil
}

// EnzymeSet renders one reaction-set model: a router plus one atomic
// model per group.
func (c *Cadmium) EnzymeSet(spec EnzymeSetSpec) error {
	if err := c.tmpl.ExecuteTemplate(c.out, "enzymeSet", spec); err != nil {
		return fmt.Errorf("emitter: enzyme set %s: %w", spec.ModelName, err)
	}
	return nil
}

// Space renders one compartment space atomic model: its ports struct
// and its model definition alias.
func (c *Cadmium) Space(spec SpaceSpec) error {
	if err := c.tmpl.ExecuteTemplate(c.out, "space", spec); err != nil {
		return fmt.Errorf("emitter: space %s: %w", spec.ModelName, err)
	}
	return nil
}

// Coupled renders one coupled model definition.
func (c *Cadmium) Coupled(m *assembler.CoupledModel) error {
	if err := c.tmpl.ExecuteTemplate(c.out, "coupled", m); err != nil {
		return fmt.Errorf("emitter: coupled %s: %w", m.Name, err)
	}
	return nil
}

// Finish writes the epilogue and closes the output when it is a file.
func (c *Cadmium) Finish() error {
	if err := c.tmpl.ExecuteTemplate(c.out, "epilogue", nil); err != nil {
		return fmt.Errorf("emitter: epilogue: %w", err)
	}
	if c.closer != nil {
		if err := c.closer.Close(); err != nil {
			return fmt.Errorf("emitter: close: %w", err)
		}
		c.closer = nil
	}
	return nil
}

const cadmiumTemplates = `{{define "prologue" -}}
// Generated model. Do not edit.

#include <cadmium/modeling/coupled_model.hpp>
#include <cadmium/modeling/ports.hpp>
#include <cell/atomics/space.hpp>
#include <cell/atomics/enzyme.hpp>
#include <cell/atomics/router.hpp>
#include <cell/coupling.hpp>

{{end}}

{{- define "enzymeSet" -}}
/***************************** reaction set {{.ModelName}} ****************************/

{{range .Groups -}}
template<typename TIME>
using {{.ID}}_definition = cell::models::enzyme_group<{{.ID}}_parameters, TIME>;
{{end -}}
template<typename TIME>
using {{.ModelName}}_router = cell::models::router<{{.ModelName}}_routing, TIME>;

// {{.ModelName}}: {{len .Groups}} group(s), {{.OutputPorts}} output port(s)

{{end}}

{{- define "space" -}}
/***************************** ports for model {{.ModelName}} *************************/

namespace cell {
namespace structs {
namespace {{.ModelName}} {

template<class OUTPUT_TYPE, class INPUT_TYPE>
struct ports {
{{range $i := seq .OutputPorts}}    struct out_{{$i}} : public cadmium::out_port<OUTPUT_TYPE> {};
{{end -}}
{{range $i := seq .InputPorts}}    struct in_{{$i}}_product : public cadmium::in_port<INPUT_TYPE> {};
    struct in_{{$i}}_information : public cadmium::in_port<INPUT_TYPE> {};
{{end}}
    using output_type = cell::types::{{.Reactant}};
    using input_type = cell::types::{{.Product}};
};

}
}
}

template<typename TIME>
using {{.ModelName}}_definition = cell::models::space<cell::structs::{{.ModelName}}::ports<cell::types::{{.Reactant}}, cell::types::{{.Product}}>, TIME>;

constexpr const char* {{.ModelName}}_compartments[] = { {{range $i, $c := .Compartments}}{{if $i}}, {{end}}"{{$c}}"{{end}} };

{{end}}

{{- define "coupled" -}}
/***************************** coupled model {{.Name}} ********************************/

cadmium::dynamic::modeling::coupled<TIME> {{.Name}}{
    "{{.Name}}",
    { {{range $i, $s := .SubModels}}{{if $i}}, {{end}}"{{$s}}"{{end}} },
    {
{{- range .Ports}}
        cell::coupling::port{"{{.Name}}", "{{.Kind}}", "{{.Direction}}"},
{{- end}}
    },
    {
{{- range .EIC}}
        cell::coupling::eic{"{{.OuterPort}}", "{{.To.Name}}", "{{.ToPort}}"},
{{- end}}
    },
    {
{{- range .EOC}}
        cell::coupling::eoc{"{{.From.Name}}", "{{.FromPort}}", "{{.OuterPort}}"},
{{- end}}
    },
    {
{{- range .IC}}
        cell::coupling::ic{"{{.From.Name}}", "{{.FromPort}}", "{{.To.Name}}", "{{.ToPort}}"},
{{- end}}
    }
};

{{end}}

{{- define "epilogue" -}}
/***************************** end of generated model *********************************/
{{end}}`
