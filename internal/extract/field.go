package extract

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"RogueMon/internal/model"
	"RogueMon/internal/state"
)

// column is one compiled output column: either a state-tree path or a
// compiled expression over the state snapshot.
type column struct {
	name string
	path string
	prog *vm.Program
}

// compileFields validates the configured field list and compiles
// expression columns once, up front.
func compileFields(fields []model.Field) ([]column, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no extraction fields configured")
	}
	cols := make([]column, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("extraction field with empty name")
		}
		if f.Expr != "" {
			prog, err := expr.Compile(f.Expr)
			if err != nil {
				return nil, fmt.Errorf("compile field %s: %w", f.Name, err)
			}
			cols = append(cols, column{name: f.Name, prog: prog})
			continue
		}
		if f.Path == "" {
			return nil, fmt.Errorf("field %s has neither path nor expr", f.Name)
		}
		cols = append(cols, column{name: f.Name, path: f.Path})
	}
	return cols, nil
}

// value extracts the column from the tree. Both path misses and
// expression failures fall back to the sentinel.
func (c column) value(tree *state.Node, sentinel string) any {
	if c.prog != nil {
		env, _ := tree.Value().(map[string]any)
		out, err := expr.Run(c.prog, env)
		if err != nil || out == nil {
			return sentinel
		}
		return out
	}
	v := state.Get(tree, c.path, any(sentinel))
	if v == nil {
		// The path resolved onto an absent placeholder.
		return sentinel
	}
	return v
}
