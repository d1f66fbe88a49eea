// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/asha"
	"github.com/poiesic/asha/chat"
	"github.com/poiesic/asha/config"
	"github.com/poiesic/asha/kb"
	"github.com/poiesic/asha/tui"
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "asha",
		Usage: "Career assistant for the JobsForHer knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (uses ./config.yaml or ~/.config/asha/config.yaml if not provided)",
			},
			&cli.StringFlag{
				Name:  "knowledge-base",
				Usage: "Path to a YAML knowledge base, overriding the config",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive chat session",
				Action: chatCommand,
			},
			{
				Name:      "ask",
				Usage:     "Answer questions given as arguments, or one per line on stdin",
				ArgsUsage: "[question...]",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of questions answered concurrently",
						Value:   runtime.NumCPU(),
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report progress on stderr",
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Build the index and report its size",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rebuild",
						Usage: "Discard cached embeddings before building",
					},
				},
			},
			{
				Name:   "examples",
				Usage:  "Print example questions",
				Action: examplesCommand,
			},
			{
				Name:   "seed",
				Usage:  "Write the built-in knowledge base to a YAML file for editing",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Destination YAML file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path := c.String("knowledge-base"); path != "" {
		cfg.KnowledgeBase.Path = path
	}
	return cfg, nil
}

func openAssistant(c *cli.Context, opts ...asha.Option) (*asha.Assistant, *config.AppConfig, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	assistant, err := asha.Open(c.Context, cfg, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build assistant: %w", err)
	}
	return assistant, cfg, nil
}

func chatCommand(c *cli.Context) error {
	assistant, cfg, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	handler := assistant.Handler()
	model := tui.New(c.Context, handler, cfg.Assistant.Name, handler.Welcome(), chat.ExamplePrompts)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	questions := c.Args().Slice()
	if len(questions) == 0 {
		var err error
		questions, err = readQuestions(c.App.Reader)
		if err != nil {
			return err
		}
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions given")
	}
	if c.Int("workers") <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	assistant, _, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	batchOpts := []chat.BatchOption{chat.WithPoolSize(c.Int("workers"))}
	if c.Bool("progress") {
		batchOpts = append(batchOpts, chat.WithProgress(c.App.ErrWriter))
	}
	batch, err := chat.NewBatch(assistant.Handler(), batchOpts...)
	if err != nil {
		return err
	}
	defer batch.Release()

	failed := 0
	for i, answer := range batch.Answer(c.Context, questions) {
		if i > 0 {
			fmt.Fprintln(c.App.Writer)
		}
		fmt.Fprintf(c.App.Writer, "> %s\n", answer.Question)
		if answer.Err != nil {
			failed++
			fmt.Fprintf(c.App.Writer, "error: %v\n", answer.Err)
			continue
		}
		fmt.Fprintln(c.App.Writer, answer.Reply)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d questions failed", failed, len(questions))
	}
	return nil
}

func readQuestions(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	var questions []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			questions = append(questions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return questions, nil
}

func indexCommand(c *cli.Context) error {
	var opts []asha.Option
	if c.Bool("rebuild") {
		opts = append(opts, asha.WithRebuild())
	}
	assistant, cfg, err := openAssistant(c, opts...)
	if err != nil {
		return err
	}
	defer assistant.Close()

	stats := assistant.Stats()
	w := c.App.Writer
	fmt.Fprintf(w, "Model: %s\n", stats.ModelID)
	fmt.Fprintf(w, "Units: %d\n", stats.Units)
	fmt.Fprintf(w, "Dimension: %d\n", stats.Dimension)
	if cfg.Cache.Enabled {
		fmt.Fprintf(w, "Cache: %s\n", cfg.Cache.Dir)
		fmt.Fprintf(w, "Cached: %d\n", stats.Cached)
		fmt.Fprintf(w, "Purged: %t\n", stats.Purged)
	}
	fmt.Fprintf(w, "Embedded: %d\n", stats.Embedded)
	fmt.Fprintf(w, "Build time: %s\n", stats.Duration)
	return nil
}

func examplesCommand(c *cli.Context) error {
	for _, prompt := range chat.ExamplePrompts {
		fmt.Fprintln(c.App.Writer, prompt)
	}
	return nil
}

func seedCommand(c *cli.Context) error {
	path := c.String("out")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := kb.Save(path, kb.Default()); err != nil {
		return fmt.Errorf("failed to write knowledge base: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Wrote knowledge base to %s\n", path)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
