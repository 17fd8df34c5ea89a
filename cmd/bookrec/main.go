// Copyright 2026 The bookrec Authors
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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yunseol/bookrec"
	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/encoder"
	"github.com/yunseol/bookrec/extract"
)

func main() {
	app := &cli.App{
		Name:  "bookrec",
		Usage: "Keyword extraction and recommendation for book catalogs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Extract and store keywords for a batch of catalog records",
				Action: extractCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "records",
						Aliases:  []string{"r"},
						Usage:    "Path to JSON file of catalog records",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dict",
						Usage:    "Path to foreign-to-canonical dictionary CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Path to ONNX encoder model",
					},
					&cli.StringFlag{
						Name:  "tokenizer",
						Usage: "Path to tokenizer.json of the encoder model",
					},
					&cli.StringFlag{
						Name:  "ort-library",
						Usage: "Path to the ONNX Runtime shared library",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "OpenAI-compatible embedding service URL (remote encoder instead of ONNX)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name for the remote encoder",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of extraction workers (0 = half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Keywords kept per record",
						Value: extract.DefaultTopN,
					},
					&cli.DurationFlag{
						Name:  "embed-timeout",
						Usage: "Embedding timeout per record",
						Value: extract.DefaultEmbedTimeout,
					},
				},
			},
			{
				Name:   "recommend",
				Usage:  "Recommend catalog items for a search query",
				Action: recommendCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dict",
						Usage:    "Path to foreign-to-canonical dictionary CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "vectors",
						Usage: "Path to word2vec text-format model (omit to disable expansion)",
					},
					&cli.StringSliceFlag{
						Name:     "term",
						Aliases:  []string{"t"},
						Usage:    "Search term (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "library",
						Usage: "Restrict results to one library",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Export stored keyword results to an artifact file",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dict",
						Usage:    "Path to foreign-to-canonical dictionary CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Artifact output path",
						Required: true,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import keyword results from an artifact file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dict",
						Usage:    "Path to foreign-to-canonical dictionary CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "in",
						Aliases:  []string{"i"},
						Usage:    "Artifact input path",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// jsonRecord is the on-disk shape of one catalog record.
type jsonRecord struct {
	ISBN        string   `json:"isbn"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Publisher   []string `json:"publisher"`
	Subjects    []string `json:"subjects"`
	Description []string `json:"description"`
}

func loadRecords(path string) ([]*core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []jsonRecord
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}

	records := make([]*core.Record, len(rows))
	for i, row := range rows {
		records[i] = &core.Record{
			ISBN:        row.ISBN,
			Title:       row.Title,
			Authors:     row.Authors,
			Publisher:   row.Publisher,
			Subjects:    row.Subjects,
			Description: row.Description,
		}
	}
	return records, nil
}

func extractCommand(c *cli.Context) error {
	ctx := context.Background()

	records, err := loadRecords(c.String("records"))
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	cfg := encoder.DefaultConfig()
	cfg.ModelPath = c.String("model")
	cfg.TokenizerPath = c.String("tokenizer")
	cfg.OrtLibraryPath = c.String("ort-library")
	cfg.EmbeddingHost = c.String("embedding-host")
	cfg.EmbeddingModel = c.String("embedding-model")

	encoderOpt := bookrec.WithLocalEncoder(cfg)
	if cfg.EmbeddingHost != "" {
		if err := cfg.ValidateRemote(); err != nil {
			return fmt.Errorf("invalid encoder configuration: %w", err)
		}
		encoderOpt = bookrec.WithRemoteEncoder(cfg)
	} else if err := cfg.ValidateLocal(); err != nil {
		return fmt.Errorf("invalid encoder configuration: %w", err)
	}

	service, err := bookrec.Open(c.String("db"),
		bookrec.WithDictionary(c.String("dict")),
		encoderOpt,
	)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	opts := []extract.Option{
		extract.WithTopN(c.Int("top-n")),
		extract.WithEmbedTimeout(c.Duration("embed-timeout")),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, extract.WithPoolSize(workers))
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Records: %d\n", len(records))
	fmt.Fprintln(os.Stderr)

	start := time.Now()
	batch, err := service.ExtractKeywords(ctx, records, opts...)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Extracted %d of %d records in %s\n",
		len(batch.ISBNs), len(records), time.Since(start).Round(time.Millisecond))
	if len(batch.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "Failed: %s\n", strings.Join(batch.Failed, " "))
	}
	return nil
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()

	opts := []bookrec.ServiceOption{
		bookrec.WithDictionary(c.String("dict")),
	}
	if vectors := c.String("vectors"); vectors != "" {
		opts = append(opts, bookrec.WithWordVectors(vectors))
	}

	service, err := bookrec.Open(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	result, err := service.Recommend(ctx, bookrec.Query{
		UserTerms:       c.StringSlice("term"),
		SelectedLibrary: c.String("library"),
	})
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if result.Degraded {
		fmt.Fprintln(os.Stderr, "Query expansion unavailable; results are low confidence")
	}
	if len(result.Rows) == 0 {
		fmt.Println("No recommendations found")
		return nil
	}

	for i, row := range result.Rows {
		fmt.Printf("%2d. [%d] %s\n", i+1, row.Score, row.Title)
		fmt.Printf("    ISBN %s", row.ISBN)
		if row.Authors != "" {
			fmt.Printf("  %s", row.Authors)
		}
		if row.Publisher != "" {
			fmt.Printf("  %s", row.Publisher)
		}
		fmt.Println()
		if row.LibraryNames != "" {
			fmt.Printf("    Libraries: %s\n", row.LibraryNames)
		}
	}
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := bookrec.Open(c.String("db"),
		bookrec.WithDictionary(c.String("dict")))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	f, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}

	count, err := service.ExportKeywords(ctx, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d keyword results to %s\n", count, c.String("out"))
	return nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := bookrec.Open(c.String("db"),
		bookrec.WithDictionary(c.String("dict")))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	f, err := os.Open(c.String("in"))
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	count, err := service.ImportKeywords(ctx, f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d keyword results from %s\n", count, c.String("in"))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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
