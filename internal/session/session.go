// Package session runs the interactive TextBuddy loop: it loads the backing
// file, reads one command per line, prints each response and saves the list
// when the user exits.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"textbuddy/internal/buddy"
	"textbuddy/internal/command"
	"textbuddy/internal/logging"

	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	// DefaultPrompt is written before every read.
	DefaultPrompt = "command: "

	welcomeMsg = "Welcome to TextBuddy. %s is ready for use"
)

// Store loads and saves the entry list.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, entries []string) error
}

// Options defines the configurable parameters of a session.
type Options struct {
	// Target is the name shown in messages, normally the file name.
	Target string
	// Prompt defaults to DefaultPrompt.
	Prompt string
	Color  bool
	In     io.Reader
	Out    io.Writer
}

// Run loads the list from store, serves commands from opts.In until exit or
// end of input, then saves the list back. Load and save failures are
// returned unchanged; bad commands never end the session.
func Run(ctx context.Context, store Store, opts Options) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	log := logging.FromContext(ctx)

	entries, err := store.Load(ctx)
	if err != nil {
		return err
	}
	engine := buddy.New(opts.Target, entries)
	log.Info("session started", slog.String("target", opts.Target), slog.Int("entries", engine.Len()))

	prompt := opts.Prompt
	if opts.Color {
		prompt = text.Colors{text.Bold, text.FgCyan}.Sprint(prompt)
	}

	if _, err := fmt.Fprintf(opts.Out, welcomeMsg+"\n", opts.Target); err != nil {
		return fmt.Errorf("write welcome: %w", err)
	}

	loopErr := serve(engine, opts, prompt, log)

	if err := store.Save(ctx, engine.Entries()); err != nil {
		return errors.Join(loopErr, err)
	}
	log.Info("session saved", slog.String("target", opts.Target), slog.Int("entries", engine.Len()))
	return loopErr
}

// serve feeds input lines to engine until exit, end of input or an I/O
// failure. Lines have no length limit.
func serve(engine *buddy.Engine, opts Options, prompt string, log *slog.Logger) error {
	reader := bufio.NewReader(opts.In)
	for !engine.Terminated() {
		if _, err := io.WriteString(opts.Out, prompt); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read command: %w", err)
		}
		if err != nil && line == "" {
			log.Info("input closed without exit")
			return nil
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		cmd := command.Parse(line)
		res := engine.Execute(cmd)
		log.Debug("dispatched command", slog.String("command", cmd.String()), slog.Int("entries", engine.Len()))
		if res.Exit {
			return nil
		}
		if _, err := fmt.Fprintln(opts.Out, res.Message); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return nil
}
