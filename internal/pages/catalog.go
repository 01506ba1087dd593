package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// MessageRotation is how long each 404 message stays up.
const MessageRotation = 3 * time.Second

const (
	PageAbout    = "about"
	PageNotFound = "not-found"
	PageWorks    = "works"
)

var ErrUnknownPage = errors.New("unknown page")

// Catalog holds the live site content. An override file, when set, replaces
// the embedded copy and is reloaded whenever it changes on disk.
type Catalog struct {
	mu      sync.RWMutex
	content *Content
	path    string
	log     *slog.Logger
}

func NewCatalog(log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{content: Default(), log: log}
}

// LoadFile parses path and makes it the live content. A bad file leaves the
// previous content in place.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read site content: %w", err)
	}
	content, err := Parse(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.content = content
	c.path = path
	c.mu.Unlock()
	return nil
}

func (c *Catalog) Content() *Content {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content
}

// NotFoundMessage is the 404 message showing at now. Messages advance every
// MessageRotation.
func NotFoundMessage(msgs []string, now time.Time) (string, int) {
	if len(msgs) == 0 {
		return "", 0
	}
	i := int((now.UnixMilli() / MessageRotation.Milliseconds()) % int64(len(msgs)))
	return msgs[i], i
}

type NotFoundPage struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Index   int       `json:"index"`
	Hint    string    `json:"hint"`
	NextAt  time.Time `json:"next_at"`
}

// Page returns the named page as it looks at now.
func (c *Catalog) Page(name string, now time.Time) (any, error) {
	content := c.Content()
	switch name {
	case PageAbout:
		about := struct {
			About
			BioHTML []string `json:"bio_html"`
			Contact Contact  `json:"contact"`
		}{content.About, content.BioHTML, content.Contact}
		return about, nil
	case PageWorks:
		return content.WorksPage, nil
	case PageNotFound:
		msg, i := NotFoundMessage(content.NotFound.Messages, now)
		next := now.Truncate(MessageRotation).Add(MessageRotation)
		return NotFoundPage{
			Code:    content.NotFound.Code,
			Message: msg,
			Index:   i,
			Hint:    content.NotFound.Hint,
			NextAt:  next,
		}, nil
	}
	return nil, ErrUnknownPage
}

// Watch reloads the override file on every write until ctx is done. The
// directory is watched rather than the file so editors that replace the file
// on save keep working.
func (c *Catalog) Watch(ctx context.Context) error {
	c.mu.RLock()
	path := c.path
	c.mu.RUnlock()
	if path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("content watcher: %w", err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := c.LoadFile(path); err != nil {
				c.log.Warn("pages reload: failed", slog.String("path", path), slog.String("error", err.Error()))
				continue
			}
			c.log.Info("pages reload: ok", slog.String("path", path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("pages watch: error", slog.String("error", err.Error()))
		}
	}
}
