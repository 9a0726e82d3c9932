package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/x07lang/x07ast/internal/borrow"
	"github.com/x07lang/x07ast/internal/check"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/link"
	"github.com/x07lang/x07ast/internal/mono"
	"github.com/x07lang/x07ast/internal/parser"
	"github.com/x07lang/x07ast/internal/program"
	"github.com/x07lang/x07ast/internal/worlds"
	"go.uber.org/zap"
)

// pipelineResult carries every intermediate artifact a subcommand
// might want to report on, one field per stage.
type pipelineResult struct {
	Generic *program.GenericProgram
	Mono    *program.Program
	MonoMap *program.MonoMap
	Anchors map[program.QualifiedName]borrow.Anchor
}

// loadModuleSet reads every *.json file in dir into a
// link.ModuleSet keyed by each document's own module_id (not its file
// name), so import resolution doesn't depend on on-disk layout.
func loadModuleSet(dir string) (link.ModuleSet, error) {
	set := link.ModuleSet{}
	if dir == "" {
		return set, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading module dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		mod, derr := parser.ParseModule(raw)
		if derr != nil {
			return nil, derr
		}
		set[mod.ModuleID] = mod
	}
	return set, nil
}

// runPipeline parses the entry file and its module directory, links,
// monomorphises, type/effect-checks, and borrow-analyses the result,
// stopping at the first diagnostic — the same fail-fast discipline
// check.Check itself applies across declarations.
func runPipeline(entryPath, moduleDir string, world worlds.World, profiles check.ProfileResolver, opts mono.Options) (*pipelineResult, *diag.Error) {
	stage := diag.Stage("pipeline")

	raw, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, diag.New(diag.Internal, diag.CodeInternalInvariant, "cli", err.Error())
	}
	entry, derr := parser.ParseEntry(raw)
	if derr != nil {
		return nil, derr
	}
	stage.Info("parsed entry", zap.String("module_id", entry.ModuleID))

	modules, err := loadModuleSet(moduleDir)
	if err != nil {
		return nil, diag.New(diag.Internal, diag.CodeInternalInvariant, "cli", err.Error())
	}

	generic, derr := link.Link(entry, modules)
	if derr != nil {
		return nil, derr
	}
	stage.Info("linked program")

	monoProg, monoMap, derr := mono.Run(generic, opts)
	if derr != nil {
		return nil, derr
	}
	stage.Info("monomorphised program")

	sigs := buildSigs(monoProg)
	externs := buildExterns(monoProg)
	if derr := check.Check(monoProg, world, sigs, externs, profiles); derr != nil {
		return nil, derr
	}
	stage.Info("type/effect checked")

	anchors, derr := borrow.Analyse(monoProg)
	if derr != nil {
		return nil, derr
	}
	stage.Info("borrow analysed")

	return &pipelineResult{Generic: generic, Mono: monoProg, MonoMap: monoMap, Anchors: anchors}, nil
}
