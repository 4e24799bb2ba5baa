package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/fitcsv/internal/analysis"
	"github.com/san-kum/fitcsv/internal/bininfo"
	"github.com/san-kum/fitcsv/internal/coherent"
	"github.com/san-kum/fitcsv/internal/config"
	"github.com/san-kum/fitcsv/internal/extract"
	"github.com/san-kum/fitcsv/internal/fitresult"
	"github.com/san-kum/fitcsv/internal/progress"
	"github.com/san-kum/fitcsv/internal/table"
)

var (
	inputs     []string
	output     string
	sorted     bool
	preview    bool
	acceptance bool
	live       bool
	verbose    bool
	configFile string
	massColumn string
	wrapOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitcsv",
		Short: "flatten amplitude-analysis fit results into csv tables",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "aggregate fit-result files into one csv",
		RunE:  runExtract,
	}
	extractCmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "input fit-result files (globs allowed)")
	extractCmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "output csv file")
	extractCmd.Flags().BoolVarP(&acceptance, "acceptance-corrected", "a", false, "use acceptance-corrected (generated) intensities")
	extractCmd.Flags().BoolVarP(&sorted, "sorted", "s", true, "sort inputs by the last number in their path")
	extractCmd.Flags().BoolVar(&preview, "preview", false, "list the files that would be processed and exit")
	extractCmd.Flags().BoolVar(&live, "live", false, "show live progress")
	extractCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	bininfoCmd := &cobra.Command{
		Use:   "bininfo",
		Short: "summarize binned data files into one csv",
		RunE:  runBinInfo,
	}
	bininfoCmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "input data csv files (globs allowed)")
	bininfoCmd.Flags().StringVarP(&output, "output", "o", config.DefaultBinsOut, "output csv file")
	bininfoCmd.Flags().StringVar(&massColumn, "mass-column", bininfo.DefaultMassColumn, "invariant-mass column name")
	bininfoCmd.Flags().BoolVarP(&sorted, "sorted", "s", true, "sort inputs by the last number in their path")
	bininfoCmd.Flags().BoolVar(&preview, "preview", false, "list the files that would be processed and exit")

	columnsCmd := &cobra.Command{
		Use:   "columns [table.csv]",
		Short: "classify the columns of a produced table",
		Args:  cobra.ExactArgs(1),
		RunE:  runColumns,
	}
	columnsCmd.Flags().StringVar(&wrapOut, "wrap", "", "also write a copy with phase columns wrapped to degrees")

	rootCmd.AddCommand(extractCmd, bininfoCmd, columnsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if !cmd.Flags().Changed("output") {
		output = cfg.Output
	}
	if !cmd.Flags().Changed("acceptance-corrected") {
		acceptance = cfg.AcceptanceCorrected
	}
	if !cmd.Flags().Changed("sorted") {
		sorted = cfg.Sorted
	}
	if !cmd.Flags().Changed("live") {
		live = cfg.Live
	}

	files, err := resolveInputs(inputs, sorted)
	if err != nil {
		return err
	}
	if preview {
		fmt.Println("files that will be processed:")
		for _, f := range files {
			fmt.Printf("\t%s\n", f)
		}
		return nil
	}

	output = ensureCSV(output)
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	batch := &table.Batch{
		Open: func(path string) (extract.FitResult, error) {
			return fitresult.Load(path)
		},
		Options: extract.Options{
			AcceptanceCorrected: acceptance,
			Markers:             cfg.BackgroundMarkers,
		},
	}

	var sum table.Summary
	if live {
		sum, err = runLiveBatch(batch, files, out)
	} else {
		batch.Logger, err = newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = batch.Logger.Sync() }()
		sum, err = batch.Run(files, out)
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d rows to %s\n", sum.Rows, output)
	skipped := sum.SkippedOpen + sum.SkippedInvalid + sum.SkippedDrift
	if skipped > 0 || sum.Failed > 0 {
		fmt.Printf("skipped %d files (%d unreadable, %d invalid fits, %d schema drift), %d failed\n",
			skipped, sum.SkippedOpen, sum.SkippedInvalid, sum.SkippedDrift, sum.Failed)
	}
	for _, e := range sum.Errors {
		fmt.Printf("\t%v\n", e)
	}
	return nil
}

// runLiveBatch runs the batch behind a progress view. The view owns
// the terminal, so batch logging is silenced.
func runLiveBatch(batch *table.Batch, files []string, out *os.File) (table.Summary, error) {
	p := tea.NewProgram(progress.New(len(files)))
	batch.OnFile = func(e table.Event) {
		p.Send(progress.FileMsg(e))
	}

	go func() {
		sum, err := batch.Run(files, out)
		p.Send(progress.DoneMsg{Summary: sum, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return table.Summary{}, err
	}
	return final.(progress.Model).Summary()
}

func runBinInfo(cmd *cobra.Command, args []string) error {
	files, err := resolveInputs(inputs, sorted)
	if err != nil {
		return err
	}
	if preview {
		fmt.Println("files that will be processed:")
		for _, f := range files {
			fmt.Printf("\t%s\n", f)
		}
		return nil
	}

	output = ensureCSV(output)
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	rows, err := bininfo.Run(files, massColumn, out)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", rows, output)
	return nil
}

func runColumns(cmd *cobra.Command, args []string) error {
	frame, err := analysis.LoadCSV(args[0])
	if err != nil {
		return err
	}

	c := analysis.Classify(frame.Header)
	fmt.Printf("%s: %d columns, %d rows\n", args[0], len(frame.Header), len(frame.Rows))
	fmt.Printf("standard results: %d\n", len(c.Standard))
	fmt.Printf("parameters (%d): %s\n", len(c.Parameters), strings.Join(c.Parameters, " "))
	fmt.Printf("production coefficients (%d): %s\n", len(c.Production), strings.Join(c.Production, " "))
	fmt.Println("coherent sums:")
	for _, lv := range coherent.Levels {
		keys := c.CoherentSums[lv]
		if len(keys) == 0 {
			continue
		}
		fmt.Printf("\t%s (%d): %s\n", lv, len(keys), strings.Join(keys, " "))
	}
	fmt.Printf("phase differences (%d): %s\n", len(c.PhaseDiffs), strings.Join(c.PhaseDiffs, " "))

	if wrapOut != "" {
		n := analysis.WrapPhases(frame)
		path := ensureCSV(wrapOut)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := frame.WriteCSV(f); err != nil {
			return err
		}
		fmt.Printf("wrapped %d phase columns into %s\n", n, path)
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// resolveInputs expands globs, verifies every named file exists, and
// optionally sorts by the last number in each path so csv row order
// matches bin order.
func resolveInputs(patterns []string, numericSort bool) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	var files []string
	for _, pattern := range patterns {
		if strings.ContainsAny(pattern, "*?[") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %s", pattern)
			}
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err != nil {
			return nil, fmt.Errorf("file %s does not exist", pattern)
		}
		files = append(files, pattern)
	}

	if numericSort {
		sortByLastNumber(files)
	}
	return files, nil
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// sortByLastNumber orders paths by the last number appearing anywhere
// in them; paths without a number sort last.
func sortByLastNumber(files []string) {
	key := func(path string) float64 {
		nums := numberRe.FindAllString(path, -1)
		if len(nums) == 0 {
			return math.Inf(1)
		}
		v, err := strconv.ParseFloat(nums[len(nums)-1], 64)
		if err != nil {
			return math.Inf(1)
		}
		return v
	}
	sort.SliceStable(files, func(i, j int) bool {
		return key(files[i]) < key(files[j])
	})
}

// ensureCSV appends the .csv suffix when missing.
func ensureCSV(path string) string {
	if !strings.HasSuffix(path, ".csv") {
		return path + ".csv"
	}
	return path
}
