package main

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/inoxlang/seqwatch/internal/utils"
	"github.com/rs/zerolog"
)

const (
	REPLAY_DEBOUNCE_DURATION = 200 * time.Millisecond
)

// watchScenario replays the scenario once and then each time the scenario file is written, until ctx is done.
// The parent directory is watched because some editors replace the file instead of writing it.
func watchScenario(ctx context.Context, params replayParams, outW io.Writer, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path, err := filepath.Abs(params.scenarioPath)
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var outputLock sync.Mutex
	stopped := false //protected by outputLock

	replay := func() {
		outputLock.Lock()
		defer outputLock.Unlock()

		if stopped || ctx.Err() != nil {
			return
		}

		defer func() {
			if e := recover(); e != nil {
				logReplayError(logger, path, utils.ConvertPanicValueToError(e))
			}
		}()

		if params.config.ShouldColorize() {
			utils.ClearScreen(outW)
		}
		if err := replayOnce(ctx, params, outW); err != nil {
			logReplayError(logger, path, err)
		}
	}

	replay()
	debounced := debounce.New(REPLAY_DEBOUNCE_DURATION)

	//nothing is written to outW once watchScenario has returned: a running replay is waited for and pending
	//replays are dropped.
	defer func() {
		debounced(func() {})

		outputLock.Lock()
		stopped = true
		outputLock.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug().Str("scenario", path).Stringer("op", event.Op).Msg("scenario file changed")
				debounced(replay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
