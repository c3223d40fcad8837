package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/inoxlang/seqwatch/internal/core"
	"github.com/inoxlang/seqwatch/internal/scenario"
	"github.com/inoxlang/seqwatch/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TEST_SCENARIO = `
initial: [0, 1, 2, 3, 4]
operations:
  - op: splice
    args: [4, 1]
    items: [4]
  - op: pop
`
	TEST_CONFIG = "color: false\n"
)

func TestSeqwatchCommand(t *testing.T) {

	setup := func(t *testing.T) (scenarioPath string, configPath string) {
		dir := t.TempDir()
		scenarioPath = filepath.Join(dir, "scenario.yaml")
		configPath = filepath.Join(dir, "config.yaml")

		require.NoError(t, os.WriteFile(scenarioPath, []byte(TEST_SCENARIO), 0o600))
		require.NoError(t, os.WriteFile(configPath, []byte(TEST_CONFIG), 0o600))
		return
	}

	t.Run("no subcommand", func(t *testing.T) {
		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		assert.Zero(t, _main([]string{COMMAND_NAME}, out, errOut))
		assert.Equal(t, SEQWATCH_CMD_HELP, out.String())
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		assert.Equal(t, ERROR_STATUS_CODE, _main([]string{COMMAND_NAME, "replya"}, out, errOut))
		assert.Equal(t, "unknown command 'replya', did you mean 'replay' ?\n", errOut.String())
	})

	t.Run("help of a subcommand", func(t *testing.T) {
		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		assert.Zero(t, _main([]string{COMMAND_NAME, HELP_SUBCMD, REPLAY_SUBCMD}, out, errOut))
		assert.Contains(t, errOut.String(), "-reset-between")
	})

	t.Run("replay: text output", func(t *testing.T) {
		scenarioPath, configPath := setup(t)
		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		code := _main([]string{COMMAND_NAME, REPLAY_SUBCMD, "-config", configPath, scenarioPath}, out, errOut)
		require.Zero(t, code, errOut.String())

		output := out.String()
		assert.Contains(t, output, "#0 splice[4 1 4]")
		assert.Contains(t, output, "[ 0  1  2  3 -6]")
		assert.Contains(t, output, "(splice-replace, 4, 1, [4])")
		assert.Contains(t, output, "#1 remove-last")
		assert.Contains(t, output, "(remove-last)")
		assert.NotContains(t, output, "\x1b[")
	})

	t.Run("replay: colorized text output", func(t *testing.T) {
		scenarioPath, _ := setup(t)
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("color: true\n"), 0o600))

		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		code := _main([]string{COMMAND_NAME, REPLAY_SUBCMD, "-config", configPath, scenarioPath}, out, errOut)
		require.Zero(t, code, errOut.String())

		assert.Contains(t, out.String(), "\x1b[")

		output := utils.StripANSISequences(out.String())
		assert.NotContains(t, output, "\x1b[")
		assert.Contains(t, output, "#0 splice[4 1 4]")
		assert.Contains(t, output, "[ 0  1  2  3 -6]")
		assert.Contains(t, output, "(splice-replace, 4, 1, [4])")
		assert.Contains(t, output, "#1 remove-last")
	})

	t.Run("replay: JSON output", func(t *testing.T) {
		scenarioPath, configPath := setup(t)
		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		code := _main([]string{COMMAND_NAME, REPLAY_SUBCMD, "-config", configPath, "-json", "-reset-between", scenarioPath}, out, errOut)
		require.Zero(t, code, errOut.String())

		var report scenario.Report
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Steps, 2)

		assert.Equal(t, []int{0, 1, 2, 3, -6}, report.Steps[0].IndexMap)
		assert.Equal(t, []int{0, 1, 2, 3}, report.Steps[1].IndexMap)
		assert.Equal(t, core.RemoveLastMutation, report.Steps[1].Notifications[0].Kind)
	})

	t.Run("replay: missing scenario file argument", func(t *testing.T) {
		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		assert.Equal(t, ERROR_STATUS_CODE, _main([]string{COMMAND_NAME, REPLAY_SUBCMD}, out, errOut))
		assert.Contains(t, errOut.String(), "a single scenario file should be provided")
	})

	t.Run("replay: invalid scenario", func(t *testing.T) {
		_, configPath := setup(t)
		scenarioPath := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(scenarioPath, []byte("initial: []\noperations:\n  - op: insert\n"), 0o600))

		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		code := _main([]string{COMMAND_NAME, REPLAY_SUBCMD, "-config", configPath, scenarioPath}, out, errOut)
		assert.Equal(t, ERROR_STATUS_CODE, code)
		assert.Contains(t, errOut.String(), scenario.ErrUnknownOperation.Error())
	})

	t.Run("replay: invalid output flag", func(t *testing.T) {
		scenarioPath, configPath := setup(t)
		out := bytes.NewBuffer(nil)
		errOut := bytes.NewBuffer(nil)

		code := _main([]string{COMMAND_NAME, REPLAY_SUBCMD, "-config", configPath, "-output", "xml", scenarioPath}, out, errOut)
		assert.Equal(t, ERROR_STATUS_CODE, code)
		assert.Contains(t, errOut.String(), "invalid output format")
	})
}
