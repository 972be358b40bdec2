// Package store reads and writes the newline-delimited backing file of a
// TextBuddy session.
package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"textbuddy/internal/logging"
)

// DefaultLockTimeout bounds how long Load and Save wait for the file lock.
const DefaultLockTimeout = 3 * time.Second

const (
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// ErrLockTimeout is returned when another process holds the file lock.
var ErrLockTimeout = errors.New("file is locked by another process")

// FatalError reports an I/O failure the session cannot recover from.
// The caller decides whether that ends the process.
type FatalError struct {
	Op   string
	Path string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Options configures a TextFile.
type Options struct {
	// LockTimeout defaults to DefaultLockTimeout.
	LockTimeout time.Duration
	// Locks defaults to FlockFactory.
	Locks FileLockFactory
}

// TextFile is a file holding one entry per line.
type TextFile struct {
	path        string
	lockTimeout time.Duration
	lock        FileLock
}

// Open returns a TextFile for path. The file is not touched until Load or Save.
func Open(path string, opts Options) *TextFile {
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}
	if opts.Locks == nil {
		opts.Locks = &FlockFactory{}
	}
	return &TextFile{
		path:        path,
		lockTimeout: opts.LockTimeout,
		lock:        opts.Locks.New(path + ".lock"),
	}
}

// Load returns the lines of the file in order with line terminators removed.
// A missing file is created empty.
func (f *TextFile) Load(ctx context.Context) ([]string, error) {
	var lines []string
	err := f.withLock(ctx, "load", func() error {
		file, err := os.OpenFile(f.path, os.O_RDONLY|os.O_CREATE, 0o644)
		if err != nil {
			return err
		}
		defer file.Close()

		lines, err = ReadLines(file)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("loaded file", slog.String("path", f.path), slog.Int("lines", len(lines)))
	return lines, nil
}

// Save replaces the file content with entries, one per line.
func (f *TextFile) Save(ctx context.Context, entries []string) error {
	err := f.withLock(ctx, "save", func() error {
		file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if err := WriteLines(file, entries); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("saved file", slog.String("path", f.path), slog.Int("lines", len(entries)))
	return nil
}

// ReadLines splits r into lines of any length. A trailing "\r" on each line
// is dropped and a missing final newline is tolerated.
func ReadLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)
	lines := make([]string, 0)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read lines: %w", err)
		}
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			lines = append(lines, line)
		}
		if err != nil {
			return lines, nil
		}
	}
}

// WriteLines writes each entry followed by "\n".
func WriteLines(w io.Writer, entries []string) error {
	bw := bufio.NewWriter(w)
	for _, entry := range entries {
		if _, err := bw.WriteString(entry); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (f *TextFile) withLock(ctx context.Context, op string, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, f.lockTimeout)
	defer cancel()

	if err := f.acquireLock(ctx); err != nil {
		return &FatalError{Op: op, Path: f.path, Err: err}
	}
	defer func() { _ = f.lock.Unlock() }()

	if err := fn(); err != nil {
		return &FatalError{Op: op, Path: f.path, Err: err}
	}
	return nil
}

func (f *TextFile) acquireLock(ctx context.Context) error {
	log := logging.FromContext(ctx)
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return ErrLockTimeout
			}
			return fmt.Errorf("acquire lock: %w", err)
		}
		if locked {
			log.Debug("acquired lock", slog.String("path", f.path), slog.Int("attempt", i+1))
			return nil
		}

		select {
		case <-ctx.Done():
			return ErrLockTimeout
		case <-time.After(lockRetryDelay):
		}
	}
	return ErrLockTimeout
}
