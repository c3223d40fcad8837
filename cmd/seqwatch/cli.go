package main

import (
	"fmt"
	"slices"

	"github.com/inoxlang/seqwatch/internal/config"
	"github.com/inoxlang/seqwatch/internal/scenario"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

const (
	REPLAY_SUBCMD                = "replay"
	INIT_CONFIG_SUBCMD           = "init-config"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"
)

var (
	SUBCOMMANDS = []string{
		REPLAY_SUBCMD, INIT_CONFIG_SUBCMD, INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD, HELP_SUBCMD,
	}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{REPLAY_SUBCMD, "apply the operations of a scenario file to an observed sequence and print the index map after each operation"},
		{INIT_CONFIG_SUBCMD, "write the default configuration file if it does not exist and print its path"},
		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by addding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	SEQWATCH_CMD_HELP = "commands:\n"

	predictScenarioFile = predict.Files("*.yaml")

	completer = CreateCompleter(func(c *Completer) *complete.Command {
		return &complete.Command{
			Sub: map[string]*complete.Command{
				REPLAY_SUBCMD: {
					Flags: map[string]complete.Predictor{
						"json":          predict.Nothing,
						"watch":         predict.Nothing,
						"reset-between": predict.Nothing,
						"comparator":    predict.Set(scenario.COMPARATOR_NAMES),
						"output":        predict.Set(config.OUTPUT_FORMATS),
						"log-level":     predict.Set{"debug", "info", "warn", "error"},
						"config":        predictScenarioFile,
					},
					Args: complete.PredictFunc(c.predictScenarioFileAfterSwitch),
				},
				INIT_CONFIG_SUBCMD:           {},
				INSTALL_COMPLETIONS_SUBCMD:   {},
				UNINSTALL_COMPLETIONS_SUBCMD: {},
				HELP_SUBCMD: {
					Args: predict.Set(slices.Clone(SUBCOMMANDS)),
				},
			},
		}
	})
)

func init() {
	maxNameLength := 0
	for _, description := range SUBCOMMAND_DESCRIPTIONS {
		maxNameLength = max(maxNameLength, len(description[0]))
	}

	for _, description := range SUBCOMMAND_DESCRIPTIONS {
		SEQWATCH_CMD_HELP += fmt.Sprintf("  %-*s  %s\n", maxNameLength, description[0], description[1])
	}
}
