//go:build unix

package config

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	UNIX = true
)

func targetSpecificInit() {
	// FORCE COLOR

	if s, ok := os.LookupEnv("FORCE_COLOR"); ok {
		FORCE_COLOR = len(s) != 0 && s != "false" && s != "0"
	}

	//TERMCOLOR

	TRUECOLOR_COLORTERM = os.Getenv("COLORTERM") == "truecolor"

	//NO_COLOR

	if s, ok := os.LookupEnv("NO_COLOR"); ok {
		NO_COLOR = len(s) != 0 && s != "false" && s != "0"
	}

	//TERM

	termEnv := os.Getenv("TERM")
	if strings.Contains(termEnv, "256color") {
		TERM_256COLOR_CAPABLE = true
	}

	STDOUT_IS_TERMINAL = term.IsTerminal(int(os.Stdout.Fd()))

	SHOULD_COLORIZE = !NO_COLOR && (FORCE_COLOR ||
		STDOUT_IS_TERMINAL && (TRUECOLOR_COLORTERM || TERM_256COLOR_CAPABLE || termenv.NewOutput(os.Stdout).EnvColorProfile() != termenv.Ascii))
}
