package check

import "github.com/x07lang/x07ast/internal/types"

// Env is a stack of lexical scopes, name -> TypeInfo, following the
// teacher's typechecker_core.go TypeEnv chain-of-maps shape.
type Env struct {
	scopes []map[string]types.TypeInfo
}

func NewEnv() *Env {
	return &Env{scopes: []map[string]types.TypeInfo{{}}}
}

func (e *Env) Push() { e.scopes = append(e.scopes, map[string]types.TypeInfo{}) }

func (e *Env) Pop() { e.scopes = e.scopes[:len(e.scopes)-1] }

func (e *Env) Define(name string, ti types.TypeInfo) {
	e.scopes[len(e.scopes)-1][name] = ti
}

func (e *Env) Lookup(name string) (types.TypeInfo, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if ti, ok := e.scopes[i][name]; ok {
			return ti, true
		}
	}
	return types.TypeInfo{}, false
}
