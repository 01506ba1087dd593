package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"kh-portfolio/internal/config"
	"kh-portfolio/internal/logging"
	"kh-portfolio/internal/storage"
	"kh-portfolio/internal/works"
)

// openStorage opens the configured backend, honouring --driver.
func openStorage(cc *cli.Context) (storage.Storage, func(context.Context) error, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, "text")

	driver := cfg.StorageDriver
	if d := cc.String("driver"); d != "" {
		driver = d
	}

	ctx, cancel := context.WithTimeout(cc.Context, 10*time.Second)
	defer cancel()
	st, closeFn, err := storage.Open(ctx, storage.Options{
		Driver:        driver,
		Dir:           cfg.StorageDir,
		MemoryQuota:   cfg.StorageQuota,
		RedisURL:      cfg.RedisURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		MongoURI:      cfg.MongoURI,
		MongoDB:       cfg.MongoDB,
		SQLitePath:    cfg.SQLitePath,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return st, closeFn, logger, nil
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:   "seed",
		Usage:  "overwrite the stored works list with the built-in seed",
		Action: seedAction,
	}
}

func seedAction(cc *cli.Context) error {
	st, closeFn, logger, err := openStorage(cc)
	if err != nil {
		return err
	}
	defer closeFn(context.Background())

	store := works.NewStore(st, works.Seed(), logger)
	store.Load(cc.Context)

	// Load only logs a failed write, so read it back.
	items, ok, err := works.ReadPersisted(cc.Context, st)
	if err != nil {
		return err
	}
	if !ok || len(items) != len(works.Seed()) {
		return errors.New("seed was not persisted")
	}
	fmt.Fprintf(cc.App.Writer, "seeded %d works under %s\n", len(items), works.StorageKey)
	return nil
}

func worksCommand() *cli.Command {
	return &cli.Command{
		Name:  "works",
		Usage: "read the stored works list",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print the stored works",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sort", Usage: "year_asc or year_desc"},
				},
				Action: listAction,
			},
			{
				Name:      "export",
				Usage:     "write the stored works to a .json or .yaml file",
				ArgsUsage: "<file>",
				Action:    exportAction,
			},
		},
	}
}

func readStored(cc *cli.Context) ([]works.Work, error) {
	st, closeFn, _, err := openStorage(cc)
	if err != nil {
		return nil, err
	}
	defer closeFn(context.Background())

	items, ok, err := works.ReadPersisted(cc.Context, st)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("nothing stored under %s; run seed first", works.StorageKey)
	}
	return items, nil
}

func listAction(cc *cli.Context) error {
	items, err := readStored(cc)
	if err != nil {
		return err
	}
	switch cc.String("sort") {
	case "":
	case works.SortYearAsc:
		items = works.SortByYear(items, false)
	case works.SortYearDesc:
		items = works.SortByYear(items, true)
	default:
		return fmt.Errorf("invalid sort %q", cc.String("sort"))
	}
	return printWorks(cc.App.Writer, items)
}

func printWorks(w io.Writer, items []works.Work) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tYEAR\tCATEGORY\tTITLE\tURL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", item.ID, item.Year, item.Category, item.Title, item.ProjectURL)
	}
	return tw.Flush()
}

func exportAction(cc *cli.Context) error {
	path := cc.Args().First()
	if path == "" {
		return errors.New("export needs a file path")
	}
	items, err := readStored(cc)
	if err != nil {
		return err
	}
	data, err := encodeWorks(path, items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cc.App.Writer, "exported %d works to %s\n", len(items), path)
	return nil
}

func encodeWorks(path string, items []works.Work) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(items)
	case ".json", "":
		return json.MarshalIndent(items, "", "  ")
	}
	return nil, fmt.Errorf("unsupported export format %q", filepath.Ext(path))
}
