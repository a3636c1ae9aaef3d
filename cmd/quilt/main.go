// Command quilt synthesizes wide textures from small patterns.
//
// Usage:
//
//	quilt -i pattern.png [-o ./output] [--width-factor 4] [--mode 2] ...
//
// The input may be a single image or a directory; results keep the input's
// relative path under the output directory.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/quilt/flow"
	"github.com/katalvlaran/quilt/imageio"
	"github.com/katalvlaran/quilt/quilt"
)

type config struct {
	Input        string
	Output       string
	Width        int
	Height       int
	WidthFactor  float64
	HeightFactor float64
	Direction    int
	PatchFactor  int
	Mode         int
	Temperature  float64
	Seed         int64
	Solver       string
	Norm         float64
	NoGradient   bool
	NoOldSeams   bool
	Uniform      bool
	MaxIter      int
	Quality      int
	Verbose      bool
}

func main() {
	cfg := parseFlags()
	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("quilt failed", slog.Any("err", err))
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags defines and parses command-line flags.
func parseFlags() *config {
	cfg := &config{}

	pflag.StringVarP(&cfg.Input, "input", "i", "", "Pattern image or directory of images (required).")
	pflag.StringVarP(&cfg.Output, "output", "o", "./output", "Directory for generated images.")
	pflag.IntVar(&cfg.Width, "width", 0, "Output width in pixels; overrides --width-factor.")
	pflag.IntVar(&cfg.Height, "height", 0, "Output height in pixels; overrides --height-factor.")
	pflag.Float64Var(&cfg.WidthFactor, "width-factor", 4, "Output width as a multiple of the input width.")
	pflag.Float64Var(&cfg.HeightFactor, "height-factor", 1, "Output height as a multiple of the input height.")
	pflag.IntVarP(&cfg.Direction, "direction", "d", 0, "0 horizontal, 1 bidirectional.")
	pflag.IntVarP(&cfg.PatchFactor, "patch-factor", "p", quilt.DefaultPatchFactor, "Sub-block divisor.")
	pflag.IntVarP(&cfg.Mode, "mode", "m", 2, "1 random sub-blocks, 2 row-by-row sub-blocks, 3 row-by-row full patches.")
	pflag.Float64VarP(&cfg.Temperature, "temperature", "k", 0, "Placement temperature; 0 uses the mode default.")
	pflag.Int64VarP(&cfg.Seed, "seed", "s", 1, "Random seed.")
	pflag.StringVar(&cfg.Solver, "solver", "dinic", "Min-cut solver (dinic, edmonds-karp).")
	pflag.Float64Var(&cfg.Norm, "norm", 2, "Color distance norm order.")
	pflag.BoolVar(&cfg.NoGradient, "no-gradient", false, "Disable gradient-normalized seam weights.")
	pflag.BoolVar(&cfg.NoOldSeams, "no-old-seams", false, "Ignore previously cut seams.")
	pflag.BoolVar(&cfg.Uniform, "uniform", false, "Uniform placement for mode 1.")
	pflag.IntVar(&cfg.MaxIter, "max-iterations", 0, "Placement cap per image; 0 is unlimited.")
	pflag.IntVarP(&cfg.Quality, "quality", "q", imageio.DefaultJPEGQuality, "JPEG quality.")
	pflag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Debug logging.")

	pflag.Parse()
	return cfg
}

// validateConfig checks flag values before any image is read.
func validateConfig(cfg *config) error {
	if cfg.Input == "" {
		return fmt.Errorf("--input/-i flag is required")
	}
	if _, err := os.Stat(cfg.Input); os.IsNotExist(err) {
		return fmt.Errorf("input does not exist: %s", cfg.Input)
	}
	if cfg.Width < 0 || cfg.Height < 0 || cfg.WidthFactor < 0 || cfg.HeightFactor < 0 {
		return fmt.Errorf("output size must not be negative")
	}
	if cfg.Direction != 0 && cfg.Direction != 1 {
		return fmt.Errorf("--direction must be 0 or 1")
	}
	if cfg.PatchFactor < 1 {
		return fmt.Errorf("--patch-factor must be a positive integer")
	}
	if cfg.Mode < 1 || cfg.Mode > 3 {
		return fmt.Errorf("--mode must be 1, 2 or 3")
	}
	if cfg.Temperature < 0 {
		return fmt.Errorf("--temperature must not be negative")
	}
	if cfg.Norm <= 0 {
		return fmt.Errorf("--norm must be positive")
	}
	if cfg.MaxIter < 0 {
		return fmt.Errorf("--max-iterations must not be negative")
	}
	switch strings.ToLower(cfg.Solver) {
	case "dinic", "edmonds-karp":
	default:
		return fmt.Errorf("unsupported solver: %s", cfg.Solver)
	}
	return nil
}

// inputs lists the images to process with their paths relative to root.
func inputs(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{""}, nil
	}
	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if _, ferr := imageio.FormatFromPath(path); ferr != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	return out, err
}

func run(ctx context.Context, cfg *config, logger *slog.Logger) error {
	rels, err := inputs(cfg.Input)
	if err != nil {
		return err
	}
	if len(rels) == 0 {
		return fmt.Errorf("no images found in %s", cfg.Input)
	}
	for i, rel := range rels {
		src, dst := cfg.Input, filepath.Join(cfg.Output, filepath.Base(cfg.Input))
		if rel != "" {
			src, dst = filepath.Join(cfg.Input, rel), filepath.Join(cfg.Output, rel)
		}
		label := fmt.Sprintf("[%d/%d] %s", i+1, len(rels), filepath.Base(src))
		if err := generate(ctx, cfg, logger, src, dst, label); err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
	}
	return nil
}

// generate synthesizes one image while a spinner reports progress.
func generate(ctx context.Context, cfg *config, logger *slog.Logger, src, dst, label string) error {
	pattern, err := imageio.Load(src)
	if err != nil {
		return err
	}
	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = int(float64(pattern.Width) * cfg.WidthFactor)
	}
	if height == 0 {
		height = int(float64(pattern.Height) * cfg.HeightFactor)
	}

	var filled, total atomic.Int64
	total.Store(int64(width * height))
	opts := []quilt.Option{
		quilt.WithSize(height, width),
		quilt.WithDirection(quilt.Direction(cfg.Direction)),
		quilt.WithPatchFactor(cfg.PatchFactor),
		quilt.WithStrategy(quilt.Strategy(cfg.Mode)),
		quilt.WithSeed(cfg.Seed),
		quilt.WithNorm(cfg.Norm),
		quilt.WithGradientEnergy(!cfg.NoGradient),
		quilt.WithOldSeams(!cfg.NoOldSeams),
		quilt.WithMaxIterations(cfg.MaxIter),
		quilt.WithLogger(logger),
		quilt.WithProgress(func(p quilt.Progress) { filled.Store(int64(p.Filled)) }),
	}
	if cfg.Temperature > 0 {
		opts = append(opts, quilt.WithTemperature(cfg.Temperature))
	}
	if cfg.Uniform {
		opts = append(opts, quilt.WithUniformPlacement())
	}
	if strings.ToLower(cfg.Solver) == "edmonds-karp" {
		fo := flow.DefaultOptions()
		fo.Logger = logger
		opts = append(opts, quilt.WithSolver(flow.EdmondsKarpSolver{Options: fo}))
	}
	s, err := quilt.New(opts...)
	if err != nil {
		return err
	}

	var spinnerWg sync.WaitGroup
	spinnerWg.Add(1)
	done := make(chan struct{})
	startTime := time.Now()
	go func() {
		defer spinnerWg.Done()
		sp := spinner.New()
		sp.Spinner = spinner.Dot
		sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				fmt.Printf("\r%s %s %d/%d pixels\n", "✓", label, filled.Load(), total.Load())
				return
			case <-ticker.C:
				sp, _ = sp.Update(spinner.TickMsg{})
				f, t := filled.Load(), max(total.Load(), 1)
				fmt.Printf("\r%s %s %d/%d pixels (%.1f%%)", sp.View(), label, f, t, 100*float64(f)/float64(t))
			}
		}
	}()

	res, err := s.Run(ctx, pattern)
	close(done)
	spinnerWg.Wait()
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err = imageio.Save(dst, res.Canvas.Patch(), cfg.Quality); err != nil {
		return err
	}

	duration := time.Since(startTime)
	durationStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	fmt.Printf("  %s in %s, %s placements → %s\n",
		fmt.Sprintf("%dx%d", width, height),
		durationStyle.Render(fmt.Sprintf("%.2fs", duration.Seconds())),
		countStyle.Render(fmt.Sprintf("%d", res.Iterations)),
		dst)
	return nil
}
