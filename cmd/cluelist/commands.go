package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bastiangx/cluelist/internal/cli"
	"github.com/bastiangx/cluelist/internal/logger"
	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/bastiangx/cluelist/pkg/config"
	"github.com/bastiangx/cluelist/pkg/dictionary"
	"github.com/bastiangx/cluelist/pkg/server"
	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// app carries what every subcommand needs after the root pre-run.
type app struct {
	configFile string
	debugMode  bool

	cfg   *config.Config
	paths *utils.PathResolver
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   AppName,
		Short: "Crossword clue word lists: convert, serve and browse",
		Long: `cluelist converts a crossword clue CSV into a deduplicated word list
and hosts that list for interactive filtering by clue count and word length.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ~/.config/cluelist/config.toml)")
	root.PersistentFlags().BoolVarP(&a.debugMode, "debug", "d", false, "Toggle debug mode")

	root.AddCommand(
		newConvertCmd(a),
		newServeCmd(a),
		newBrowseCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup sets the log level and loads config. serve keeps quiet by default
// since its stdout is the protocol channel.
func (a *app) setup(cmd *cobra.Command) error {
	switch {
	case a.debugMode:
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	case cmd.Name() == "serve":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
		log.SetReportTimestamp(false)
	}

	if cmd.Name() == "version" {
		return nil
	}

	cfg, path, err := config.LoadConfigWithPriority(a.configFile)
	if err != nil {
		return err
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(path))
	a.cfg = cfg

	paths, err := utils.NewPathResolver()
	if err != nil {
		return fmt.Errorf("init path resolver: %w", err)
	}
	a.paths = paths
	return nil
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		input     string
		output    string
		collation string
		noHeader  bool
	)

	cmd := &cobra.Command{
		Use:   "convert [minClueCount]",
		Short: "Convert the clue CSV into a word list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.Convert
			if len(args) == 1 {
				opts.MinClueCount = utils.EnsureMinClue(args[0])
			}
			flags := cmd.Flags()
			if flags.Changed("input") {
				opts.Input = input
			}
			if flags.Changed("output") {
				opts.Output = output
			}
			if flags.Changed("collation") {
				opts.Collation = collation
			}
			if flags.Changed("no-header") {
				opts.SkipHeader = !noHeader
			}
			_, err := runConvert(cmd.Context(), opts, a.paths)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "clue CSV to read")
	cmd.Flags().StringVarP(&output, "output", "o", "", "word list to write")
	cmd.Flags().StringVar(&collation, "collation", "", "word order: codepoint or locale")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first CSV row as data")
	return cmd
}

// runConvert reads the CSV, aggregates it and writes the filtered word list.
func runConvert(ctx context.Context, opts config.ConvertConfig, paths *utils.PathResolver) (wordlist.WordList, error) {
	inputPath, err := paths.ResolveInput(opts.Input)
	if err != nil {
		return nil, err
	}
	outputPath := paths.ResolveOutput(opts.Output)
	minClueCount := utils.EnsureMinClue(opts.MinClueCount)

	var percent float64
	aggOpts := []wordlist.Option{wordlist.WithCollation(wordlist.ParseCollation(opts.Collation))}
	if opts.ProgressEvery > 0 {
		aggOpts = append(aggOpts, wordlist.WithProgress(opts.ProgressEvery, func(s wordlist.Stats) {
			log.Infof("Processed %s rows (%.1f%%), %s words",
				utils.FormatWithCommas(s.Rows), percent, utils.FormatWithCommas(s.Words))
		}))
	}
	agg := wordlist.NewAggregator(aggOpts...)

	start := time.Now()
	log.Infof("Reading %s", inputPath)
	_, err = dictionary.LoadRaw(inputPath, opts.SkipHeader, func(entry wordlist.RawEntry, s dictionary.LoaderStats) error {
		percent = s.Percent()
		agg.Add(entry)
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}

	list := agg.List().MinClues(minClueCount)
	stats := agg.Stats()
	log.Debugf("Rows: %d, rejected answers: %d, empty clues: %d, duplicate clues: %d",
		stats.Rows, stats.RejectedAnswers, stats.EmptyClues, stats.DuplicateClues)

	if err := wordlist.WriteFile(outputPath, list); err != nil {
		return nil, err
	}
	log.Infof("Wrote %s entries to %s with min %d clue(s) in %v",
		utils.FormatWithCommas(len(list)), outputPath, minClueCount, time.Since(start).Round(time.Millisecond))
	return list, nil
}

func newServeCmd(a *app) *cobra.Command {
	var (
		codecName   string
		metricsAddr string
		source      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host a word list over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.Server
			if cmd.Flags().Changed("codec") {
				opts.Codec = codecName
			}
			if cmd.Flags().Changed("metrics-addr") {
				opts.MetricsAddr = metricsAddr
			}
			if source != "" {
				resolved, err := a.paths.ResolveInput(source)
				if err != nil {
					return err
				}
				source = resolved
			}
			return runServe(cmd.Context(), opts, source)
		},
	}

	cmd.Flags().StringVar(&codecName, "codec", "", "wire codec: msgpack or json")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	cmd.Flags().StringVar(&source, "source", "", "word list to load before reading requests")
	return cmd
}

// runServe runs one host session on stdin/stdout, plus the metrics endpoint
// when configured.
func runServe(ctx context.Context, opts config.ServerConfig, source string) error {
	codec, err := server.CodecByName(opts.Codec)
	if err != nil {
		return err
	}

	host := server.NewHost(server.WithOutboxSize(opts.OutboxSize))
	if source != "" {
		if err := host.Post(server.Request{Type: server.TypeInit, Source: source}); err != nil {
			return err
		}
	}
	showStartupInfo(host.ID(), codec.Name())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if opts.MetricsAddr != "" {
		g.Go(func() error {
			return server.ServeMetrics(gctx, opts.MetricsAddr)
		})
	}
	g.Go(func() error {
		// the session ending stops the metrics endpoint too
		defer cancel()
		return server.NewServer(host, codec, os.Stdin, os.Stdout).Start(gctx)
	})
	return g.Wait()
}

func newBrowseCmd(a *app) *cobra.Command {
	var lengths []int
	var minClues int

	cmd := &cobra.Command{
		Use:   "browse [wordlist.json|clues.csv]",
		Short: "Filter a word list interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Convert.Output
			if len(args) == 1 {
				path = args[0]
			}
			resolved, err := a.paths.ResolveInput(path)
			if err != nil {
				return err
			}

			start := time.Now()
			list, err := dictionary.LoadWordList(resolved,
				wordlist.WithCollation(wordlist.ParseCollation(a.cfg.Convert.Collation)))
			if err != nil {
				return err
			}
			log.Debugf("Loaded %d words from %s in %v", len(list), resolved, time.Since(start))

			opts := cli.Options{
				DefaultMin:     a.cfg.CLI.DefaultMin,
				DefaultLengths: a.cfg.CLI.DefaultLengths,
				MaxWordsShown:  a.cfg.CLI.MaxWordsShown,
			}
			if cmd.Flags().Changed("min") {
				opts.DefaultMin = utils.EnsureMinClue(minClues)
			}
			if cmd.Flags().Changed("len") {
				opts.DefaultLengths = lengths
			}

			log.SetReportTimestamp(false)
			handler := cli.NewInputHandler(server.NewHost(), os.Stdin, os.Stdout, opts)
			return handler.Start(cmd.Context(), list)
		},
	}

	cmd.Flags().IntVar(&minClues, "min", 1, "initial minimum clue count")
	cmd.Flags().IntSliceVar(&lengths, "len", nil, "initial word lengths")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			showVersion()
		},
	}
}

// showVersion prints the styled version banner to stderr.
func showVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ cluelist ] Crossword clue word lists")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available commands")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo logs basic info about the serve session to stderr.
func showStartupInfo(sessionID, codec string) {
	currentLevel := log.GetLevel()
	if currentLevel > log.InfoLevel {
		return
	}
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("Session: %s", sessionID)
	log.Infof("Codec: %s", codec)
	log.Info("status: ready")
}
