package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/x07lang/x07ast/internal/canon"
)

func runCheck(cmd *cobra.Command, entryPath string) error {
	moduleDir, _ := cmd.Flags().GetString("modules")
	world, err := worldFromFlags(cmd)
	if err != nil {
		return err
	}
	profiles, opts, err := resolveFromFlags(cmd)
	if err != nil {
		return err
	}

	result, derr := runPipeline(entryPath, moduleDir, world, profiles, opts)
	if derr != nil {
		return runDiagFailure(derr)
	}
	fmt.Println(color.GreenString("ok: %s (%d declarations, %d specialisations)",
		entryPath, len(result.Mono.Decls), len(result.MonoMap.Instances)))
	return nil
}

func runCompile(cmd *cobra.Command, entryPath string) error {
	moduleDir, _ := cmd.Flags().GetString("modules")
	world, err := worldFromFlags(cmd)
	if err != nil {
		return err
	}
	profiles, opts, err := resolveFromFlags(cmd)
	if err != nil {
		return err
	}

	result, derr := runPipeline(entryPath, moduleDir, world, profiles, opts)
	if derr != nil {
		return runDiagFailure(derr)
	}

	out, err := canon.MarshalPretty(result.MonoMap)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
