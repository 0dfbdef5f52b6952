// Package main provides the CLI entry point for namedxlsx-go.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/spf13/cobra"

	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx"
	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx/engine"
	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx/output"
	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx/refresh"
)

var (
	engineName   string
	verbose      bool
	outputPath   string
	filterPrefix string
	refreshRoot  string
	inplace      bool
	parallel     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "namedxlsx",
		Short: "Move configuration data in and out of named spreadsheet locations",
		Long: `namedxlsx maps defined names and table-column references to cell
addresses, loads TOML configuration into a workbook template, and exports
the (formula-evaluated) values back out as TOML.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "excelize",
		fmt.Sprintf("Workbook engine to use (available: %v)", engine.Names()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	loadCmd := &cobra.Command{
		Use:   "load [config.toml] [template.xlsx] [output.xlsx]",
		Short: "Copy a template and apply configuration values by name",
		Args:  cobra.ExactArgs(3),
		RunE:  runLoad,
	}

	saveCmd := &cobra.Command{
		Use:   "save [input.xlsx]",
		Short: "Export current values of defined names as TOML",
		Args:  cobra.ExactArgs(1),
		RunE:  runSave,
	}
	saveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	saveCmd.Flags().StringVar(&filterPrefix, "filter", "", "Only export names starting with this prefix")

	specsCmd := &cobra.Command{
		Use:   "specifications [input.xlsx]",
		Short: "List every matched name with its sheet, coordinates and value",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpecs,
	}
	specsCmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output file path (default: text table on stdout)")
	specsCmd.Flags().StringVar(&filterPrefix, "filter", "", "Only list names starting with this prefix")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Re-save every workbook under a directory to refresh cached values",
		Args:  cobra.NoArgs,
		RunE:  runRefresh,
	}
	refreshCmd.Flags().StringVar(&refreshRoot, "root", ".", "Directory containing the xlsx files")
	refreshCmd.Flags().BoolVar(&inplace, "inplace", false, "Refresh the original files instead of temp-dir copies")
	refreshCmd.Flags().BoolVar(&parallel, "parallel", false, "Refresh files concurrently")

	rootCmd.AddCommand(loadCmd, saveCmd, specsCmd, refreshCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	configPath, templatePath, outPath := args[0], args[1], args[2]

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	cfg, err := output.DecodeTOML(data)
	if err != nil {
		return fmt.Errorf("cannot parse configuration %s: %w", configPath, err)
	}

	if err := copyFile(templatePath, outPath); err != nil {
		return fmt.Errorf("cannot copy template: %w", err)
	}
	book, err := namedxlsx.OpenBook(engineName, outPath, engine.Options{})
	if err != nil {
		return err
	}
	defer book.Close()

	if err := book.LoadConfig(cfg); err != nil {
		return err
	}
	if err := book.Save(); err != nil {
		return err
	}
	slog.Info("configuration loaded", "output", outPath)
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	book, err := namedxlsx.OpenBook(engineName, args[0], engine.Options{})
	if err != nil {
		return err
	}
	defer book.Close()

	cfg, err := book.Export(filterPrefix)
	if err != nil {
		return err
	}
	text, err := output.EncodeTOML(cfg)
	if err != nil {
		return err
	}
	if outputPath == "" {
		fmt.Print(string(text))
		return nil
	}
	return os.WriteFile(outputPath, text, 0644)
}

func runSpecs(cmd *cobra.Command, args []string) error {
	book, err := namedxlsx.OpenBook(engineName, args[0], engine.Options{})
	if err != nil {
		return err
	}
	defer book.Close()

	specs, err := book.Specifications(filterPrefix)
	if err != nil {
		return err
	}
	if outputPath == "" {
		return output.WriteSpecsTable(os.Stdout, specs)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return output.WriteSpecsCSV(f, specs)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	paths, err := filepath.Glob(filepath.Join(refreshRoot, "*.xlsx"))
	if err != nil {
		return err
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return fmt.Errorf("no xlsx files under %s", refreshRoot)
	}

	opts := refresh.Options{Engine: engineName}
	if parallel {
		opts.Workers = runtime.NumCPU()
	}
	slog.Info("refreshing", "files", len(paths), "workers", opts.Workers, "inplace", inplace)
	if inplace {
		return refresh.Paths(context.Background(), paths, opts)
	}
	return refresh.PathsInTempDir(context.Background(), paths, opts)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
