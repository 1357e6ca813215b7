// Package filesystem reads documents from a local directory and reports
// changes to them as they happen.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/logger"
	"github.com/custodia-labs/docqa/internal/normalisers"
)

// ErrClosed is returned by operations on a closed connector.
var ErrClosed = errors.New("filesystem connector closed")

// Connector watches the top level of one directory. Only files with an
// extension the normalisers support are reported; hidden files and
// subdirectories are skipped.
type Connector struct {
	rootPath string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a connector for rootPath.
func New(rootPath string) *Connector {
	return &Connector{rootPath: rootPath}
}

// RootPath returns the watched directory.
func (c *Connector) RootPath() string {
	return c.rootPath
}

// Validate checks that the root path is a readable directory.
func (c *Connector) Validate() error {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", c.rootPath)
	}
	return nil
}

// FullSync reads every supported file currently in the directory, in name
// order. Unreadable files are reported on the error channel and skipped.
// Both channels are closed when the scan ends.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		if err := c.Validate(); err != nil {
			errs <- err
			return
		}

		entries, err := os.ReadDir(c.rootPath)
		if err != nil {
			errs <- fmt.Errorf("reading %s: %w", c.rootPath, err)
			return
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			if entry.IsDir() || !wanted(entry.Name()) {
				continue
			}

			doc, err := readDocument(filepath.Join(c.rootPath, entry.Name()))
			if err != nil {
				select {
				case errs <- err:
				default:
					logger.Warn("Skipping %s: %v", entry.Name(), err)
				}
				continue
			}

			select {
			case docs <- doc:
			case <-ctx.Done():
				return
			}
		}
	}()

	return docs, errs
}

// Watch reports file changes until ctx is cancelled or the connector is
// closed, then closes the returned channel.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(c.rootPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", c.rootPath, err)
	}
	c.watcher = watcher

	changes := make(chan domain.RawDocumentChange)
	go c.loop(ctx, watcher, changes)
	return changes, nil
}

func (c *Connector) loop(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- domain.RawDocumentChange) {
	defer close(changes)
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			change := c.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleFsEvent converts a filesystem event to a change, or nil when the
// event is not relevant.
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	if !wanted(filepath.Base(event.Name)) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.RawDocumentChange{
			Type:     domain.ChangeDeleted,
			Document: rawDocument(event.Name, nil),
		}
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		doc, err := readDocument(event.Name)
		if err != nil {
			logger.Warn("Skipping %s: %v", event.Name, err)
			return nil
		}
		changeType := domain.ChangeUpdated
		if event.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.RawDocumentChange{Type: changeType, Document: doc}
	default:
		return nil
	}
}

// Close stops any active watch. Further calls to Watch fail.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

func readDocument(path string) (domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return rawDocument(path, content), nil
}

func rawDocument(path string, content []byte) domain.RawDocument {
	return domain.RawDocument{
		Name:     domain.NameFromPath(path),
		URI:      path,
		MIMEType: normalisers.DetectMIMEType(path),
		Content:  content,
	}
}

// wanted reports whether a file name should be ingested.
func wanted(name string) bool {
	return !isHidden(name) && normalisers.Supported(name)
}

// isHidden reports whether a file name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
