package internal

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	tt "github.com/swlin/swlin/internal/types"
)

// StartWatching begins watching the given directories for source changes
// and re-lints a file whenever it is written. Reported issues go through
// the report callback; pass nil for the default log output.
func (e *Engine) StartWatching(dirs []string, report func(filename string, issues []tt.Issue)) error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	if report == nil {
		report = logIssues
	}

	e.watcher = watcher
	e.watchStop = make(chan struct{})
	e.isWatching = true
	go e.watchLoop(report)
	return nil
}

// StopWatching shuts down the watch loop. It is safe to call when no watch
// is running.
func (e *Engine) StopWatching() error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if !e.isWatching {
		return nil
	}

	e.isWatching = false
	close(e.watchStop)
	return e.watcher.Close()
}

func (e *Engine) watchLoop(report func(string, []tt.Issue)) {
	for {
		select {
		case <-e.watchStop:
			return
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event, report)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event, report func(string, []tt.Issue)) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".swift") {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)
	issues, err := e.Run(context.Background(), event.Name)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	report(event.Name, issues)
}

func logIssues(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		log.Printf("no issues found in %s", filename)
		return
	}

	log.Printf("found %d issues in %s", len(issues), filename)
	for _, issue := range issues {
		log.Printf("- %s: %s", issue.Rule, issue.Message)
	}
}
