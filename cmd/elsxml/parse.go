package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/elsxml"
	"github.com/tsawler/elsxml/elsevier"
	"github.com/tsawler/elsxml/htmldoc"
	"github.com/tsawler/elsxml/internal/config"
	"github.com/tsawler/elsxml/model"
	"github.com/tsawler/elsxml/rag"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Convert articles to json, text, markdown, html or retrieval chunks",
	Long: `Parse each article and write it in the chosen format.

With one input, --output names the output file. With several, it names a
directory that receives one file per input, named after the input. Inputs
sharing a base name get numbered outputs such as article-2.json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseFormat         string
	parseConfig         string
	parseOutput         string
	parseURLPrefix      string
	parseImageURLPrefix string
	parseJobs           int
)

var extensions = map[string]string{
	config.FormatJSON:     ".json",
	config.FormatText:     ".txt",
	config.FormatMarkdown: ".md",
	config.FormatHTML:     ".html",
	config.FormatChunks:   ".jsonl",
}

func init() {
	f := parseCmd.Flags()
	f.StringVarP(&parseFormat, "format", "f", config.FormatJSON, "Output format: json, text, markdown, html or chunks")
	f.StringVarP(&parseConfig, "config", "c", "", "YAML configuration file")
	f.StringVarP(&parseOutput, "output", "o", "", "Output file, or directory when several files are given")
	f.StringVar(&parseURLPrefix, "url-prefix", "", "Prefix of the article PDF and HTML URLs")
	f.StringVar(&parseImageURLPrefix, "image-url-prefix", "", "Prefix of figure image URLs")
	f.IntVarP(&parseJobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of files converted in parallel")
	rootCmd.AddCommand(parseCmd)
}

// parsed is the outcome of converting one input file.
type parsed struct {
	out      []byte
	elements int
	err      error
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := cfg.ReaderOptions(log.Logger)

	// Inputs are converted concurrently and written in argument order.
	results := make([]parsed, len(args))
	var g errgroup.Group
	g.SetLimit(max(parseJobs, 1))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			results[i] = convert(path, cfg, opts)
			return nil
		})
	}
	_ = g.Wait()

	targets := outputs(args, cfg.Format)
	failed := 0
	for i, path := range args {
		logger := log.With().Str("file", path).Logger()
		res := results[i]
		if res.err == nil {
			res.err = write(cmd.OutOrStdout(), targets[i], res.out)
		}
		if res.err != nil {
			logger.Error().Err(res.err).Msg("parse failed")
			failed++
			continue
		}
		logger.Debug().Int("elements", res.elements).Msg("parsed")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func convert(path string, cfg config.Config, opts []elsevier.Option) parsed {
	doc, err := elsxml.Open(path).WithOptions(opts...).Document()
	if err != nil {
		return parsed{err: err}
	}
	out, err := render(doc, cfg)
	if err != nil {
		return parsed{err: fmt.Errorf("render: %w", err)}
	}
	return parsed{out: out, elements: doc.Len()}
}

// loadConfig reads the configuration file, if any, and applies the flags
// the user set on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if parseConfig != "" {
		var err error
		if cfg, err = config.Load(parseConfig); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = parseFormat
	}
	if flags.Changed("url-prefix") {
		cfg.URLPrefix = parseURLPrefix
	}
	if flags.Changed("image-url-prefix") {
		cfg.ImageURLPrefix = parseImageURLPrefix
	}
	return cfg, cfg.Validate()
}

func render(doc *model.Document, cfg config.Config) ([]byte, error) {
	switch cfg.Format {
	case config.FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case config.FormatText:
		return []byte(doc.ExtractText() + "\n"), nil
	case config.FormatMarkdown:
		return []byte(doc.ToMarkdown()), nil
	case config.FormatHTML:
		s, err := htmldoc.String(doc)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case config.FormatChunks:
		result, err := rag.NewChunkerWithConfig(cfg.ChunkerConfig()).Chunk(doc)
		if err != nil {
			return nil, err
		}
		s, err := rag.NewExporter().ExportToString(result.Chunks)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrFormat, cfg.Format)
	}
}

// outputs returns the file each input is written to, or "" for stdout.
// With several inputs the names are derived from the input base names; a
// name already taken by an earlier input gets a numeric suffix.
func outputs(args []string, format string) []string {
	targets := make([]string, len(args))
	if parseOutput == "" {
		return targets
	}
	if len(args) == 1 {
		targets[0] = parseOutput
		return targets
	}

	taken := make(map[string]bool, len(args))
	for i, input := range args {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		first := base + extensions[format]
		name := first
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d%s", base, n, extensions[format])
		}
		if name != first {
			log.Warn().Str("file", input).Str("output", name).Msg("output name already used")
		}
		taken[name] = true
		targets[i] = filepath.Join(parseOutput, name)
	}
	return targets
}

func write(stdout io.Writer, target string, out []byte) error {
	if target == "" {
		_, err := stdout.Write(out)
		return err
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(target, out, 0o644)
}
