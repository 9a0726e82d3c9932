// Command x07ast is a thin development harness wiring the parser,
// linker, monomorphiser, type/effect checker, borrow analyser, and
// property-test engine end to end for manual smoke use. It is
// deliberately not a package manager, sandbox, or build product: just
// enough subcommand surface to exercise the library against real
// documents on disk.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/x07lang/x07ast/internal/check"
	"github.com/x07lang/x07ast/internal/diag"
	"github.com/x07lang/x07ast/internal/manifest"
	"github.com/x07lang/x07ast/internal/mono"
	"github.com/x07lang/x07ast/internal/pbt"
	"github.com/x07lang/x07ast/internal/worlds"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "x07ast",
		Short: "development harness for the x07AST toolchain library",
	}
	root.AddCommand(checkCmd(), compileCmd(), pbtCmd())
	return root
}

func commonFlags(cmd *cobra.Command) {
	cmd.Flags().String("modules", "", "directory of module (.json) documents importable by the entry")
	cmd.Flags().String("world", "", "path to a world-capability JSON document (defaults to the pure world)")
	cmd.Flags().String("arch-manifest", "", "path to an architecture-manifest YAML document for budget.scope_from_arch_v1")
	cmd.Flags().Int("specialization-cap", 4096, "monomorphiser specialisation budget")
	cmd.Flags().Int("type-depth-cap", 64, "monomorphiser type-nesting depth budget")
}

func resolveFromFlags(cmd *cobra.Command) (check.ProfileResolver, mono.Options, error) {
	var profiles check.ProfileResolver
	archPath, _ := cmd.Flags().GetString("arch-manifest")
	if archPath != "" {
		m, err := manifest.Load(archPath)
		if err != nil {
			return nil, mono.Options{}, err
		}
		profiles = m.Resolver()
	}
	specCap, _ := cmd.Flags().GetInt("specialization-cap")
	depthCap, _ := cmd.Flags().GetInt("type-depth-cap")
	return profiles, mono.Options{SpecializationCap: specCap, TypeDepthCap: depthCap}, nil
}

func worldFromFlags(cmd *cobra.Command) (worlds.World, error) {
	worldPath, _ := cmd.Flags().GetString("world")
	var raw []byte
	if worldPath != "" {
		var err error
		raw, err = os.ReadFile(worldPath)
		if err != nil {
			return worlds.World{}, err
		}
	}
	return loadWorld(raw)
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <entry.json>",
		Short: "parse, link, monomorphise, type/effect-check, and borrow-analyse an entry document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
	commonFlags(cmd)
	return cmd
}

func compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <entry.json>",
		Short: "run the full pipeline and print the monomorphisation map as canonical JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0])
		},
	}
	commonFlags(cmd)
	return cmd
}

func pbtCmd() *cobra.Command {
	parent := &cobra.Command{
		Use:   "pbt",
		Short: "property-based test engine commands",
	}
	run := &cobra.Command{
		Use:   "run <suite.json>",
		Short: "run a property suite described by a suite-config JSON document against an external runner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPbtRun(cmd, args[0])
		},
	}
	parent.AddCommand(run)
	return parent
}

func runDiagFailure(derr *diag.Error) error {
	fmt.Fprintln(os.Stderr, derr.Pretty())
	return fmt.Errorf("%s", derr.Code)
}

func runPbtRun(cmd *cobra.Command, suitePath string) error {
	raw, err := os.ReadFile(suitePath)
	if err != nil {
		return err
	}
	doc, err := decodeSuiteConfig(raw)
	if err != nil {
		return err
	}
	cfg, err := doc.toSuiteConfig()
	if err != nil {
		return err
	}

	runner := execRunner{Command: doc.RunnerCommand}
	engine := pbt.NewEngine(runner)

	record, err := engine.RunSuite(context.Background(), cfg)
	if err != nil {
		return err
	}
	if record == nil {
		fmt.Println(color.GreenString("ok: %s (%d cases)", cfg.TestID, cfg.Cases))
		return nil
	}
	out, err := record.JSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, color.RedString("FAILED: %s (%s)", cfg.TestID, record.Failure.Kind))
	fmt.Println(string(out))
	return fmt.Errorf("property %s failed", cfg.TestID)
}
