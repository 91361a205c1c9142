// slidefig — figure placement planner for presentation slides
//
// Plans where a raster figure lands on a slide: resolves a box
// specification (preset name, coordinates, or placeholder
// auto-detection) against a captured deck state, and prints the
// resulting placement plan. Runs entirely dry against a deck snapshot
// file; applying plans to a live presentation is the job of an
// automation front-end.
//
// Build:
//   go build -o slidefig ./cmd/slidefig
//
// Usage:
//   slidefig plan    -deck deck.json -slide 1 -figure fig.png -box TopRightXL
//   slidefig replace -deck deck.json -slide 1 -figure fig.png -left 2
//   slidefig batch   -deck deck.json -manifest figures.csv -preview out.pdf
//   slidefig positions -deck deck.json -slide 1
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/slidefig/slidefig/internal/deck"
	"github.com/slidefig/slidefig/internal/engine"
	"github.com/slidefig/slidefig/internal/export"
	"github.com/slidefig/slidefig/internal/figure"
	"github.com/slidefig/slidefig/internal/importer"
	"github.com/slidefig/slidefig/internal/model"
	"github.com/slidefig/slidefig/internal/preset"
	"github.com/slidefig/slidefig/internal/project"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("slidefig: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "plan":
		runPlan(os.Args[2:])
	case "replace":
		runReplace(os.Args[2:])
	case "batch":
		runBatch(os.Args[2:])
	case "positions":
		runPositions(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: slidefig <plan|replace|batch|positions> [flags]

plan      plan the placement of one figure
replace   plan the replacement of an existing picture
batch     plan every placement in a CSV/xlsx manifest
positions print shape positions of a slide`)
}

// loadConfig reads the app config from the user config directory.
// A missing file yields the stock defaults.
func loadConfig() model.AppConfig {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("warning: cannot read app config (%v); using stock defaults", err)
		return model.DefaultAppConfig()
	}
	return cfg
}

// newPlanner builds a planner with the built-in presets plus any custom
// presets saved in the user config directory.
func newPlanner() *engine.Planner {
	reg := preset.NewRegistry()
	entries, err := project.LoadPresets(project.DefaultPresetsPath())
	if err != nil {
		log.Fatalf("loading custom presets: %v", err)
	}
	if err := project.ApplyPresets(reg, entries); err != nil {
		log.Fatalf("applying custom presets: %v", err)
	}
	return engine.New(reg)
}

// loadDeck reads a deck snapshot file: a JSON array of slide snapshots.
func loadDeck(path string) *deck.MemDeck {
	if path == "" {
		log.Fatal("-deck is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading deck file: %v", err)
	}
	var snaps []model.SlideSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		log.Fatalf("parsing deck file: %v", err)
	}
	return deck.FromSnapshots(snaps)
}

// sourceAspect reads the figure's aspect ratio when aspect fitting is
// requested and a figure file is given.
func sourceAspect(figPath string, keepAspect bool) float64 {
	if !keepAspect || figPath == "" {
		return 0
	}
	_, aspect, err := figure.FileRenderer{Path: figPath}.Render(figure.RenderOptions{})
	if err != nil {
		log.Printf("warning: cannot read %s (%v); planning without aspect fitting", figPath, err)
		return 0
	}
	return aspect
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal(err)
	}
}

func runPlan(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	deckPath := fs.String("deck", "", "deck snapshot file (JSON)")
	slideID := fs.String("slide", "", "slide identifier")
	figPath := fs.String("figure", "", "image file to place")
	box := fs.String("box", cfg.DefaultBox, "box spec: preset name or \"x y w h\" (empty = auto)")
	keepAspect := fs.Bool("keep-aspect", cfg.DefaultKeepAspect, "preserve the figure's aspect ratio")
	deletePlaceholders := fs.Bool("delete-placeholders", cfg.DefaultDeletePlaceholders, "delete empty placeholders after insertion")
	replaceOverlap := fs.Bool("replace-overlap", false, "replace the picture overlapping the target box, if any")
	preview := fs.String("preview", "", "write a preview PDF to this path")
	fs.Parse(args)

	spec, err := importer.ParseBoxCell(*box)
	if err != nil {
		log.Fatal(err)
	}

	d := loadDeck(*deckPath)
	snap, err := d.Snapshot(*slideID)
	if err != nil {
		log.Fatal(err)
	}

	planner := newPlanner()
	plan, err := planner.PlanPlacement(snap, engine.PlacementRequest{
		Spec:               spec,
		KeepAspect:         *keepAspect,
		SourceAspect:       sourceAspect(*figPath, *keepAspect),
		DeletePlaceholders: *deletePlaceholders,
		ReplaceOverlap:     *replaceOverlap,
	})
	if err != nil {
		log.Fatal(err)
	}

	printJSON(plan)
	writePreview(*preview, []export.Preview{{Snapshot: snap, Plan: plan, Figure: *figPath}})
}

func runReplace(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("replace", flag.ExitOnError)
	deckPath := fs.String("deck", "", "deck snapshot file (JSON)")
	slideID := fs.String("slide", "", "slide identifier")
	figPath := fs.String("figure", "", "image file to place")
	picNo := fs.Int("pic", 0, "select picture by creation order (1-based, negatives from end)")
	leftNo := fs.Int("left", 0, "select picture by position from the left")
	topNo := fs.Int("top", 0, "select picture by position from the top")
	zOrderNo := fs.Int("zorder", 0, "select picture by z-order, front first")
	keepZOrder := fs.Bool("keep-zorder", true, "restore the replaced picture's z-order")
	keepAspect := fs.Bool("keep-aspect", cfg.DefaultKeepAspect, "preserve the figure's aspect ratio")
	deletePlaceholders := fs.Bool("delete-placeholders", cfg.DefaultDeletePlaceholders, "delete empty placeholders after insertion")
	preview := fs.String("preview", "", "write a preview PDF to this path")
	fs.Parse(args)

	crit, err := model.NewCriterion(optInt(*picNo), optInt(*leftNo), optInt(*topNo), optInt(*zOrderNo))
	if err != nil {
		log.Fatal(err)
	}

	d := loadDeck(*deckPath)
	snap, err := d.Snapshot(*slideID)
	if err != nil {
		log.Fatal(err)
	}

	planner := newPlanner()
	plan, err := planner.PlanReplacement(snap, engine.ReplaceRequest{
		Criterion:          crit,
		KeepZOrder:         *keepZOrder,
		KeepAspect:         *keepAspect,
		SourceAspect:       sourceAspect(*figPath, *keepAspect),
		DeletePlaceholders: *deletePlaceholders,
	})
	if err != nil {
		log.Fatal(err)
	}

	printJSON(plan)
	writePreview(*preview, []export.Preview{{Snapshot: snap, Plan: plan.Placement, Figure: *figPath}})
}

func runBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	deckPath := fs.String("deck", "", "deck snapshot file (JSON)")
	manifest := fs.String("manifest", "", "placement manifest (.csv or .xlsx)")
	preview := fs.String("preview", "", "write a preview PDF to this path")
	fs.Parse(args)

	if *manifest == "" {
		log.Fatal("-manifest is required")
	}

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(*manifest)) {
	case ".xlsx", ".xls":
		result = importer.ImportExcel(*manifest)
	default:
		result = importer.ImportCSV(*manifest)
	}
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
	for _, e := range result.Errors {
		log.Printf("error: %s", e)
	}
	if len(result.Requests) == 0 {
		log.Fatal("manifest contains no usable rows")
	}

	d := loadDeck(*deckPath)
	planner := newPlanner()

	var previews []export.Preview
	for _, req := range result.Requests {
		snap, err := d.Snapshot(req.SlideID)
		if err != nil {
			log.Fatalf("figure %s: %v", req.Figure, err)
		}
		plan, err := planner.PlanPlacement(snap, engine.PlacementRequest{
			Spec:               req.Spec,
			KeepAspect:         req.KeepAspect,
			SourceAspect:       sourceAspect(req.Figure, req.KeepAspect),
			DeletePlaceholders: req.DeletePlaceholders,
		})
		if err != nil {
			log.Fatalf("figure %s: %v", req.Figure, err)
		}
		previews = append(previews, export.Preview{Snapshot: snap, Plan: plan, Figure: req.Figure})

		// Apply against the in-memory deck so later rows on the same
		// slide plan against the updated state.
		if _, err := deck.Apply(d, req.SlideID, plan, req.Figure); err != nil {
			log.Fatalf("figure %s: %v", req.Figure, err)
		}
	}

	printJSON(previews)
	writePreview(*preview, previews)

	cfg := loadConfig()
	project.RememberManifest(&cfg, *manifest)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
		log.Printf("warning: cannot save app config: %v", err)
	}
}

func runPositions(args []string) {
	fs := flag.NewFlagSet("positions", flag.ExitOnError)
	deckPath := fs.String("deck", "", "deck snapshot file (JSON)")
	slideID := fs.String("slide", "", "slide identifier")
	picturesOnly := fs.Bool("pictures", false, "report pictures only")
	fs.Parse(args)

	d := loadDeck(*deckPath)
	snap, err := d.Snapshot(*slideID)
	if err != nil {
		log.Fatal(err)
	}
	if *picturesOnly {
		printJSON(snap.PicturePositions())
		return
	}
	printJSON(snap.ShapePositions())
}

func writePreview(path string, previews []export.Preview) {
	if path == "" {
		return
	}
	if err := export.ExportPreview(path, previews); err != nil {
		log.Fatalf("writing preview: %v", err)
	}
	log.Printf("preview written to %s", path)
}

// optInt maps the flag default 0 to "not supplied": selection indices
// are 1-based with negatives counting from the end, so 0 is never a
// valid index.
func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
