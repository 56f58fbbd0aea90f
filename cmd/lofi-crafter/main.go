package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ErikaNSantos/lofi-crafter/internal/engine"
	"github.com/ErikaNSantos/lofi-crafter/internal/midifile"
	"github.com/ErikaNSantos/lofi-crafter/internal/output"
	"github.com/ErikaNSantos/lofi-crafter/internal/progress"
	"github.com/ErikaNSantos/lofi-crafter/internal/server"
	"github.com/ErikaNSantos/lofi-crafter/internal/style"
	"github.com/ErikaNSantos/lofi-crafter/internal/theory"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lofi-crafter",
	Short: "Generate lo-fi backing tracks as MIDI files",
	Long: `lofi-crafter procedurally generates multi-track lo-fi note and drum
sequences from a style, key, tempo and length, and writes them as
standard MIDI files.

Pipeline: style preset → progression → chords → melody → drums → humanize`,
	Version: version,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single track",
	Long: `Generate one lo-fi track for a style. Unset parameters (key, bpm,
measures) are drawn from the style preset.

Examples:
  lofi-crafter generate --style chillhop
  lofi-crafter generate -s jazzhop -k Eb --bpm 88 -m 16
  lofi-crafter generate -s sleep --drums --seed 42
  lofi-crafter generate -s sad --count 5 -o ./tracks`,
	RunE: runGenerate,
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available styles and progressions",
	RunE:  runStyles,
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generate one track for every style",
	Long: `Generate a track for each registered style in one pass.

Example:
  lofi-crafter all --measures 8 -o ./tracks`,
	RunE: runAll,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List rendered MIDI files in the output directory",
	RunE:  runList,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP generation API",
	Long: `Start an HTTP server exposing style listing, track generation and
MIDI download endpoints.

Example:
  lofi-crafter serve --port 8080`,
	RunE: runServe,
}

var (
	// generate flags
	styleID     string
	keyName     string
	bpm         int
	measures    int
	progression string
	noDrums     bool
	withDrums   bool
	seed        int64
	outputDir   string
	count       int

	// serve flags
	port int
)

func init() {
	generateCmd.Flags().StringVarP(&styleID, "style", "s", "", "style id (see 'styles')")
	generateCmd.Flags().StringVarP(&keyName, "key", "k", "", "key, e.g. C, F#, Am, Bbm (default: preset preference)")
	generateCmd.Flags().IntVar(&bpm, "bpm", 0, "tempo in BPM (default: drawn from preset range)")
	generateCmd.Flags().IntVarP(&measures, "measures", "m", 0, "track length in measures (default: preset)")
	generateCmd.Flags().StringVar(&progression, "progression", "", "progression id (default: drawn from preset)")
	generateCmd.Flags().BoolVar(&noDrums, "no-drums", false, "omit percussion")
	generateCmd.Flags().BoolVar(&withDrums, "drums", false, "force percussion even for drumless presets")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "seed for reproducible output (default: fresh)")
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	generateCmd.Flags().IntVarP(&count, "count", "n", 1, "number of variations to generate")
	_ = generateCmd.MarkFlagRequired("style")

	allCmd.Flags().IntVarP(&measures, "measures", "m", 8, "track length in measures")
	allCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")

	listCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")

	serveCmd.Flags().IntVar(&port, "port", 0, "port to listen on")

	viper.SetEnvPrefix("LOFI")
	viper.AutomaticEnv()
	viper.SetDefault("output_dir", "./output")
	viper.SetDefault("port", 8080)
	_ = viper.BindPFlag("output_dir", generateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(generateCmd, stylesCmd, allCmd, listCmd, serveCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req := engine.Request{
		Style:       styleID,
		Key:         keyName,
		BPM:         bpm,
		Measures:    measures,
		Progression: progression,
	}
	if noDrums {
		v := false
		req.Drums = &v
	} else if withDrums {
		v := true
		req.Drums = &v
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = &seed
	}

	dir, err := ensureOutputDir()
	if err != nil {
		return err
	}

	reporter := progress.NewReporter(os.Stdout, count)
	for i := 0; i < count; i++ {
		if req.Seed != nil && i > 0 {
			s := *req.Seed + 1
			req.Seed = &s
		}
		path, result, err := generateOne(req, dir, variationSuffix(i, count))
		if err != nil {
			return err
		}
		reporter.Rendered(path, fmt.Sprintf("key %s %s, %d bpm, %d measures, seed %d",
			result.Key, result.Mode, result.BPM, result.Measures, result.Seed))
	}
	reporter.Done()
	return nil
}

func runStyles(cmd *cobra.Command, args []string) error {
	fmt.Println("Available styles:")
	for _, p := range style.List() {
		drums := "drums"
		if !p.HasDrums {
			drums = "no drums"
		}
		fmt.Printf("  %-10s %s — %s (%d-%d bpm, %s)\n",
			p.ID, p.Name, p.Description, p.BPMLow, p.BPMHigh, drums)
	}
	fmt.Println("\nProgressions:")
	fmt.Printf("  %s\n", strings.Join(theory.ListProgressions(), ", "))
	return nil
}

func runAll(cmd *cobra.Command, args []string) error {
	dir, err := ensureOutputDir()
	if err != nil {
		return err
	}

	presets := style.List()
	reporter := progress.NewReporter(os.Stdout, len(presets))
	for _, p := range presets {
		path, result, err := generateOne(engine.Request{Style: p.ID, Measures: measures}, dir, "")
		if err != nil {
			reporter.Failed(p.ID, err)
			continue
		}
		reporter.Rendered(path, fmt.Sprintf("key %s %s, %d bpm, seed %d",
			result.Key, result.Mode, result.BPM, result.Seed))
	}
	reporter.Done()
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	dir, err := ensureOutputDir()
	if err != nil {
		return err
	}
	renders, err := dir.Renders()
	if err != nil {
		return err
	}
	if len(renders) == 0 {
		fmt.Printf("No renders in %s\n", dir.Path)
		return nil
	}
	for _, path := range renders {
		fmt.Println(path)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	return server.New(server.Config{Port: viper.GetInt("port")}).Run()
}

// generateOne runs the pipeline once and writes the MIDI file
func generateOne(req engine.Request, dir *output.Dir, suffix string) (string, *engine.Result, error) {
	result, err := engine.Generate(req)
	if err != nil {
		return "", nil, err
	}

	path := dir.TrackPath(result.Style, result.Key, result.BPM, suffix)
	if err := midifile.WriteFile(result.Track, path); err != nil {
		return "", nil, err
	}
	return path, result, nil
}

func ensureOutputDir() (*output.Dir, error) {
	dir := viper.GetString("output_dir")
	if outputDir != "" {
		dir = outputDir
	}
	return output.Ensure(dir)
}

func variationSuffix(i, total int) string {
	if total <= 1 {
		return ""
	}
	return fmt.Sprintf("_v%d", i+1)
}
