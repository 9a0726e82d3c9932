package check

import (
	"strings"

	"github.com/x07lang/x07ast/internal/ast"
	"github.com/x07lang/x07ast/internal/diag"
)

// checkGate applies the world-capability gating rules to a single
// head, in call position, before any per-form type checking runs.
func checkGate(ctx *Context, head string, ptr ast.Ptr) *diag.Error {
	switch {
	case hasAnyPrefix(head, "os.", "process.", "net."):
		if !ctx.World.IsStandaloneOnly {
			return diag.New(diag.Unsupported, diag.CodeCapabilityGateRejected, "check",
				head+" requires a standalone world").WithPtr(diag.Ptr(ptr))
		}
	case isUnsafePrimitive(head):
		if !ctx.World.AllowUnsafe || ctx.UnsafeDepth == 0 {
			return diag.New(diag.Unsupported, diag.CodeUnsafeOutsideBlock, "check",
				head+" requires allow_unsafe and an enclosing unsafe block").WithPtr(diag.Ptr(ptr))
		}
	case ctx.Externs[head]:
		if !ctx.World.AllowFFI || !ctx.World.AllowUnsafe || ctx.UnsafeDepth == 0 {
			return diag.New(diag.Unsupported, diag.CodeUnsafeOutsideBlock, "check",
				"extern call "+head+" requires allow_ffi, allow_unsafe, and an enclosing unsafe block").WithPtr(diag.Ptr(ptr))
		}
	case strings.HasPrefix(head, "fs."):
		if !ctx.World.EnableFS {
			return diag.New(diag.Unsupported, diag.CodeCapabilityGateRejected, "check",
				head+" requires enable_fs").WithPtr(diag.Ptr(ptr))
		}
	case strings.HasPrefix(head, "kv."):
		if !ctx.World.EnableKV {
			return diag.New(diag.Unsupported, diag.CodeCapabilityGateRejected, "check",
				head+" requires enable_kv").WithPtr(diag.Ptr(ptr))
		}
	case strings.HasPrefix(head, "rr."):
		if !ctx.World.EnableRR {
			return diag.New(diag.Unsupported, diag.CodeCapabilityGateRejected, "check",
				head+" requires enable_rr").WithPtr(diag.Ptr(ptr))
		}
	}

	if isAsyncHead(head) && !ctx.AllowAsyncOps {
		return diag.New(diag.Unsupported, diag.CodeAsyncOutsideContext, "check",
			head+" is only legal inside a solve or defasync body").WithPtr(diag.Ptr(ptr))
	}
	if strings.HasPrefix(head, "task.scope.") && ctx.TaskScopeDepth == 0 {
		return diag.New(diag.Unsupported, diag.CodeScopeOutsideTaskScope, "check",
			head+" requires lexical nesting inside a task.scope_v1 form").WithPtr(diag.Ptr(ptr))
	}
	return nil
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isUnsafePrimitive(head string) bool {
	if strings.HasPrefix(head, "ptr.") {
		return true
	}
	switch head {
	case "memcpy", "memset":
		return true
	}
	return false
}

// isAsyncHead reports whether head is one of the async-only forms:
// await/sleep/yield/join on an OS process/task, channel recv/send, or
// a task-scope *_await_* form.
func isAsyncHead(head string) bool {
	if strings.Contains(head, "_await_") {
		return true
	}
	for _, suffix := range []string{".await", ".sleep", ".yield", ".join"} {
		if strings.HasSuffix(head, suffix) {
			return true
		}
	}
	if strings.HasPrefix(head, "chan.") && (strings.HasSuffix(head, ".recv") || strings.HasSuffix(head, ".send")) {
		return true
	}
	return false
}
