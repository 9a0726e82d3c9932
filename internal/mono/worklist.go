package mono

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/program"
)

// DefaultSpecializationCap and DefaultTypeDepthCap are the default
// monomorphisation budgets.
const (
	DefaultSpecializationCap = 4096
	DefaultTypeDepthCap      = 64
)

// Instance is a pending or completed specialisation.
type Instance struct {
	Key            InstanceKey
	Generic        string // qualified generic name
	DefModule      string
	Kind           ast.DeclKind
	TypeArgs       []string
	SpecializedName string
	Body           ast.Expr // nil until cloned+substituted
	Sites          []ast.Ptr
	scheduled      bool
	done           bool
}

// Worklist drives the bounded, deterministic, cycle-safe
// specialisation loop. A bounded LRU cache (github.com/hashicorp/
// golang-lru/v2) fronts the pending/done table so repeated canonical
// keys from hot call sites short-circuit without a full map scan.
type Worklist struct {
	cap      int
	depthCap int
	byKey    map[string]*Instance
	order    []*Instance // all instances ever scheduled, in scheduling order
	pending  []*Instance
	cache    *lru.Cache[string, *Instance]
}

func NewWorklist(specializationCap, typeDepthCap int) *Worklist {
	if specializationCap <= 0 {
		specializationCap = DefaultSpecializationCap
	}
	if typeDepthCap <= 0 {
		typeDepthCap = DefaultTypeDepthCap
	}
	cache, _ := lru.New[string, *Instance](specializationCap)
	return &Worklist{
		cap:      specializationCap,
		depthCap: typeDepthCap,
		byKey:    make(map[string]*Instance),
		cache:    cache,
	}
}

// GetOrSchedule returns the existing instance for key if one was
// already requested (a recursive call with the same canonical
// type-args reuses the pending/recorded instance, which is what
// terminates otherwise-unbounded recursive specialisation), or
// schedules a new one, subject to the specialisation cap.
func (w *Worklist) GetOrSchedule(key InstanceKey, generic, defModule string, kind ast.DeclKind, typeArgs []string, site ast.Ptr) (*Instance, *diag.Error) {
	ks := key.String()
	if inst, ok := w.cache.Get(ks); ok {
		inst.Sites = append(inst.Sites, site)
		return inst, nil
	}
	if inst, ok := w.byKey[ks]; ok {
		inst.Sites = append(inst.Sites, site)
		return inst, nil
	}
	if len(w.order) >= w.cap {
		return nil, diag.New(diag.Budget, diag.CodeBudgetSpecializationCap, "mono",
			"monomorphisation specialisation cap exceeded").
			WithLimit("specialization_count", w.cap, len(w.order)+1)
	}
	inst := &Instance{
		Key:             key,
		Generic:         generic,
		DefModule:       defModule,
		Kind:            kind,
		TypeArgs:        typeArgs,
		SpecializedName: Mangle(BareName(generic), key.CanonicalArgs),
		Sites:           []ast.Ptr{site},
	}
	w.byKey[ks] = inst
	w.order = append(w.order, inst)
	w.pending = append(w.pending, inst)
	w.cache.Add(ks, inst)
	return inst, nil
}

// Next pops the next pending instance to clone+rewrite, or returns
// nil when the worklist is drained.
func (w *Worklist) Next() *Instance {
	if len(w.pending) == 0 {
		return nil
	}
	inst := w.pending[0]
	w.pending = w.pending[1:]
	return inst
}

// All returns every instance ever scheduled, in scheduling order.
func (w *Worklist) All() []*Instance { return w.order }

// DepthCap exposes the configured type-expression depth cap.
func (w *Worklist) DepthCap() int { return w.depthCap }

// ToMonoMap renders the worklist's instances as the deterministic
// MonoMap document, sorted by canonical key.
func (w *Worklist) ToMonoMap() program.MonoMap {
	insts := make([]program.MonoInstance, 0, len(w.order))
	for _, inst := range w.order {
		sites := make([]string, len(inst.Sites))
		for i, s := range inst.Sites {
			sites[i] = string(s)
		}
		insts = append(insts, program.MonoInstance{
			Generic:         program.QualifiedName(inst.Generic),
			TypeArgs:        inst.TypeArgs,
			SpecializedName: program.Qualify(inst.DefModule, inst.SpecializedName),
			Kind:            string(inst.Kind),
			DefModule:       inst.DefModule,
			Sites:           sites,
		})
	}
	sortInstances(insts)
	return program.MonoMap{SchemaVersion: program.MonoMapSchemaVersion, Instances: insts}
}

func sortInstances(insts []program.MonoInstance) {
	// Sorted by canonical key (generic, canonical type-args) for
	// deterministic emission order.
	for i := 1; i < len(insts); i++ {
		for j := i; j > 0; j-- {
			if instanceLess(insts[j], insts[j-1]) {
				insts[j], insts[j-1] = insts[j-1], insts[j]
			} else {
				break
			}
		}
	}
}

func instanceLess(a, b program.MonoInstance) bool {
	if a.Generic != b.Generic {
		return a.Generic < b.Generic
	}
	ac, _ := CanonicalTypeArgs(a.TypeArgs)
	bc, _ := CanonicalTypeArgs(b.TypeArgs)
	return ac < bc
}
