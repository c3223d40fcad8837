package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/inoxlang/seqwatch/internal/config"
	"github.com/inoxlang/seqwatch/internal/scenario"
	"github.com/inoxlang/seqwatch/internal/utils"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

const (
	JSON_INDENT = "  "
)

type replayParams struct {
	scenarioPath string
	config       config.Config
	watch        bool
	runOptions   scenario.RunOptions
}

func ReplayScenario(mainSubCommand string, mainSubCommandArgs []string, outW, errW io.Writer) (exitCode int) {
	//read and check arguments

	flags := flag.NewFlagSet(mainSubCommand, flag.ContinueOnError)
	flags.SetOutput(errW)

	var jsonOutput bool
	var watch bool
	var resetBetweenSteps bool
	var comparator string
	var output string
	var logLevel string
	var configPath string

	flags.BoolVar(&jsonOutput, "json", false, "print the report as JSON, shorthand for -output=json")
	flags.BoolVar(&watch, "watch", false, "replay the scenario each time the file changes")
	flags.BoolVar(&resetBetweenSteps, "reset-between", false, "reset the index map after each operation")
	flags.StringVar(&comparator, "comparator", "", "comparator used by sort operations (native, natural)")
	flags.StringVar(&output, "output", "", "output format (text, json)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&configPath, "config", "", "path of the configuration file, defaults to seqwatch/config.yaml in the XDG config dirs")

	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %s %s [flags] <scenario file>\n", COMMAND_NAME, mainSubCommand)
		flags.PrintDefaults()
	}

	err := flags.Parse(mainSubCommandArgs)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return ERROR_STATUS_CODE
	}

	if flags.NArg() != 1 {
		fmt.Fprintln(errW, "a single scenario file should be provided")
		flags.Usage()
		return ERROR_STATUS_CODE
	}

	//load the configuration, flags take precedence.

	var cfg config.Config
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	if jsonOutput {
		cfg.Output = config.JSON_OUTPUT
	} else if output != "" {
		cfg.Output = output
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if comparator != "" {
		cfg.Comparator = comparator
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	logger := setupLogger(errW, cfg.Level(), cfg.Output == config.JSON_OUTPUT, cfg.ShouldColorize())

	params := replayParams{
		scenarioPath: flags.Arg(0),
		config:       cfg,
		watch:        watch,
		runOptions: scenario.RunOptions{
			ResetBetweenSteps: resetBetweenSteps,
			Logger:            &logger,
		},
	}

	//a comparator set in the file is only overriden by an explicit choice.
	if comparator != "" {
		params.runOptions.Comparator = comparator
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if params.watch {
		err = watchScenario(ctx, params, outW, logger)
	} else {
		err = replayOnce(ctx, params, outW)
	}

	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return 0
}

func replayOnce(ctx context.Context, params replayParams, outW io.Writer) error {
	scen, err := scenario.Load(params.scenarioPath)
	if err != nil {
		return err
	}

	runOptions := params.runOptions
	if runOptions.Comparator == "" && scen.Comparator == "" {
		runOptions.Comparator = params.config.Comparator
	}

	report, err := scenario.Run(ctx, scen, runOptions)
	if err != nil {
		return err
	}

	if params.config.Output == config.JSON_OUTPUT {
		encoder := json.NewEncoder(outW)
		encoder.SetIndent("", JSON_INDENT)
		return encoder.Encode(report)
	}

	printReport(outW, report, params.config.ShouldColorize())
	return nil
}

func printReport(w io.Writer, report *scenario.Report, colorize bool) {
	profile := termenv.Ascii
	if colorize {
		profile = termenv.ANSI
	}
	out := termenv.NewOutput(w, termenv.WithProfile(profile))

	label := func(s string) string {
		return out.String(fmt.Sprintf("%-14s", s)).Faint().String()
	}
	newSlot := out.Color("3")
	removed := out.Color("1")

	fmt.Fprintf(w, "%s%v\n", label("initial"), report.Initial)

	for _, step := range report.Steps {
		utils.PrintSmallLineSeparator(w)
		fmt.Fprintf(w, "%s\n", out.String(fmt.Sprintf("#%d %s", step.Index, step.Operation)).Bold())

		if step.Result != nil {
			fmt.Fprintf(w, "%s%s\n", label("result"), out.String(fmt.Sprint(step.Result)).Foreground(removed))
		}
		fmt.Fprintf(w, "%s%v\n", label("elements"), step.Elements)

		//columns are aligned so that the index map can be compared with the elements.
		width := utils.MaxWidth(step.IndexMap)
		columns := make([]string, len(step.IndexMap))
		for i, encoded := range step.IndexMap {
			column := fmt.Sprintf("%*d", width, encoded)
			if encoded < 0 {
				column = out.String(column).Foreground(newSlot).String()
			}
			columns[i] = column
		}
		fmt.Fprintf(w, "%s[%s]\n", label("index map"), strings.Join(columns, " "))

		for i, notification := range step.Notifications {
			name := ""
			if i == 0 {
				name = "notifications"
			}
			fmt.Fprintf(w, "%s%s\n", label(name), notification)
		}
	}
}

func logReplayError(logger zerolog.Logger, path string, err error) {
	logger.Error().Err(err).Str("scenario", path).Msg("failed to replay scenario")
}
