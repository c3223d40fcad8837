package main

import (
	// ====================== SEQWATCH IMPORTS ============================
	"github.com/inoxlang/seqwatch/internal/config"
	"github.com/inoxlang/seqwatch/internal/core"
	"github.com/inoxlang/seqwatch/internal/utils"

	// ====================== STDLIB ============================
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode"

	// ====================== THIRD PARTY ============================
	"github.com/posener/complete/v2/install"
	"github.com/rs/zerolog"
)

const (
	ERROR_STATUS_CODE = 1

	COMMAND_NAME = "seqwatch"
)

func main() {
	//handle completions
	completer.Complete(COMMAND_NAME)

	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) == 1 { //no subcommand specified
		fmt.Fprint(outW, SEQWATCH_CMD_HELP)
		return
	}

	mainSubCommand := args[1]
	mainSubCommandArgs := args[2:]

	//if the command has the shape help <subcommand> ... we modify the arguments to ask the subcommand to print its help message.
	if mainSubCommand == HELP_SUBCMD && len(mainSubCommandArgs) > 0 && mainSubCommandArgs[0] != "" && unicode.IsLetter(rune(mainSubCommandArgs[0][0])) {
		mainSubCommand = mainSubCommandArgs[0]
		mainSubCommandArgs = []string{"-h"}
	}

	if slices.Contains(HELP_SUBCMD_EQUIVALENTS, mainSubCommand) {
		mainSubCommand = HELP_SUBCMD
	}

	//unknown command
	if !slices.Contains(SUBCOMMANDS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'", mainSubCommand)

		closest, _, ok := utils.FindClosestString(context.Background(), SUBCOMMANDS, mainSubCommand, 2)
		if ok {
			fmt.Fprintf(errW, ", did you mean '%s' ?\n", closest)
		} else {
			fmt.Fprint(errW, "\n"+SEQWATCH_CMD_HELP)
		}
		return ERROR_STATUS_CODE
	}

	switch mainSubCommand {
	case HELP_SUBCMD:
		fmt.Fprint(outW, SEQWATCH_CMD_HELP)
		return
	case REPLAY_SUBCMD:
		return ReplayScenario(mainSubCommand, mainSubCommandArgs, outW, errW)
	case INIT_CONFIG_SUBCMD:
		path, err := config.WriteDefault()
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, path)
		return
	case INSTALL_COMPLETIONS_SUBCMD:
		err := install.Install(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "installed")
		return
	case UNINSTALL_COMPLETIONS_SUBCMD:
		err := install.Uninstall(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "uninstalled")
		return
	default:
		panic(core.ErrUnreachable)
	}
}

// setupLogger makes the core package log to errW, a console writer is used unless the output is JSON.
func setupLogger(errW io.Writer, level zerolog.Level, jsonOutput bool, colorize bool) zerolog.Logger {
	var w io.Writer = errW
	if !jsonOutput {
		w = zerolog.ConsoleWriter{
			Out:     errW,
			NoColor: !colorize,
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	core.SetLogger(logger)
	return logger
}
