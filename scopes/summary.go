package scopes

import (
	"go.yaml.in/yaml/v3"

	"github.com/reusee/djs/jslex"
)

type DeferInfo struct {
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
	Kind   string `yaml:"kind"`
}

type ScopeInfo struct {
	Name           string      `yaml:"name"`
	Kind           string      `yaml:"kind"`
	Line           int         `yaml:"line"`
	Column         int         `yaml:"column"`
	Depth          int         `yaml:"depth,omitempty"`
	Async          bool        `yaml:"async,omitempty"`
	AwaitsInDefers bool        `yaml:"awaits_in_defers,omitempty"`
	Defers         []DeferInfo `yaml:"defers,omitempty"`
}

// Summary resolves positions of every scope against src.
func (r *Report) Summary(src *jslex.Source) []ScopeInfo {
	ret := make([]ScopeInfo, 0, len(r.Scopes))
	for _, scope := range r.Scopes {
		pos := src.Position(scope.Function.Start)
		info := ScopeInfo{
			Name:           scope.Name(),
			Kind:           scope.Function.Kind.String(),
			Line:           pos.Line,
			Column:         pos.Column,
			Depth:          scope.Depth(),
			Async:          scope.Async(),
			AwaitsInDefers: scope.AwaitsInDefers,
		}
		for _, d := range scope.Defers {
			pos := src.Position(d.Start)
			info.Defers = append(info.Defers, DeferInfo{
				Line:   pos.Line,
				Column: pos.Column,
				Kind:   d.Kind.String(),
			})
		}
		ret = append(ret, info)
	}
	return ret
}

func (r *Report) YAML(src *jslex.Source) ([]byte, error) {
	return yaml.Marshal(map[string]any{
		"file":   src.Name,
		"scopes": r.Summary(src),
	})
}
