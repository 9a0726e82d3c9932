package check

import (
	"github.com/x07lang/x07ast/internal/types"
	"github.com/x07lang/x07ast/internal/worlds"
)

// Context threads the implicit state a single declaration's check
// carries through its recursion: the world-capability gate, the known
// function signatures, and the lexical counters that scope
// unsafe/async/task-scope operations.
type Context struct {
	World          worlds.World
	Sigs           map[string]FnSig
	Externs        map[string]bool
	Profiles       ProfileResolver
	UnsafeDepth    int
	TaskScopeDepth int
	AllowAsyncOps  bool // true inside a solve or defasync body
	ReturnType     types.TypeInfo
}

func (c *Context) child() *Context {
	cp := *c
	return &cp
}

func (c *Context) enterUnsafe() *Context   { n := c.child(); n.UnsafeDepth++; return n }
func (c *Context) enterTaskScope() *Context { n := c.child(); n.TaskScopeDepth++; return n }
