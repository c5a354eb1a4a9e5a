package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/census"
)

func dbFlag() cli.Flag {
	return &cli.StringFlag{Name: "db", Usage: "census database file"}
}

// readSigFile adds one entry per line of the form "sig [name]". Blank
// lines and lines starting with '#' are skipped; the name defaults to the
// signature.
func readSigFile(ctx context.Context, w *census.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		sig, name, _ := strings.Cut(text, " ")
		name = strings.TrimSpace(name)
		if name == "" {
			name = sig
		}
		if err := w.Add(ctx, census.Entry{Sig: sig, Name: name}); err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
	}
	return sc.Err()
}

func (a *app) buildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Create a database from signature files",
		ArgsUsage: "sigs.txt...",
		Flags:     []cli.Flag{dbFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, err := a.dbPath(cmd, "db")
			if err != nil {
				return err
			}
			if cmd.NArg() == 0 {
				return fmt.Errorf("build: no signature files given")
			}
			w, err := census.CreateSQLite(ctx, db)
			if err != nil {
				return fmt.Errorf("build %s: %w", db, err)
			}
			for _, path := range cmd.Args().Slice() {
				if err := readSigFile(ctx, w, path); err != nil {
					w.Abort()
					return fmt.Errorf("build %s: %w", db, err)
				}
			}
			n := w.Count()
			if err := w.Close(); err != nil {
				return fmt.Errorf("build %s: %w", db, err)
			}
			a.logger.Debug("census built", zap.String("db", db), zap.Int("entries", n))
			fmt.Fprintf(cmd.Root().Writer, "%s: %d entries added\n", db, n)
			return nil
		},
	}
}

func (a *app) lookupCmd() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Print the entries stored under a signature",
		ArgsUsage: "sig",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.BoolFlag{Name: "json", Usage: "print entries as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, err := a.dbPath(cmd, "db")
			if err != nil {
				return err
			}
			if cmd.NArg() != 1 {
				return fmt.Errorf("lookup: want exactly one signature, got %d", cmd.NArg())
			}
			src, err := census.OpenSQLite(db)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", db, err)
			}
			defer src.Close()
			sig := cmd.Args().First()
			hits, err := src.Lookup(ctx, sig)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", db, err)
			}
			out := cmd.Root().Writer
			if cmd.Bool("json") {
				b, err := json.Marshal(census.LookupResponse{Sig: sig, Count: len(hits), Entries: hits})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintf(out, "%s: not found\n", sig)
				return nil
			}
			for _, h := range hits {
				fmt.Fprintf(out, "%s: %s\n", sig, h.Name)
			}
			return nil
		},
	}
}

func (a *app) optimiseCmd() *cli.Command {
	return &cli.Command{
		Name:  "optimise",
		Usage: "Rewrite a database in sorted signature order",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "out", Usage: "output database file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, err := a.dbPath(cmd, "db")
			if err != nil {
				return err
			}
			out := cmd.String("out")
			if out == "" {
				return fmt.Errorf("optimise: no --out given")
			}
			if err := census.Optimise(ctx, db, out, census.WithLogger(a.logger)); err != nil {
				return fmt.Errorf("optimise %s: %w", db, err)
			}
			return nil
		},
	}
}

func (a *app) serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve lookups over HTTP",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "addr", Usage: "listen address", Value: "127.0.0.1:8080"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, err := a.dbPath(cmd, "db")
			if err != nil {
				return err
			}
			addr := cmd.String("addr")
			if a.cfg.Addr != nil && !cmd.IsSet("addr") {
				addr = *a.cfg.Addr
			}
			src, err := census.OpenSQLite(db)
			if err != nil {
				return fmt.Errorf("serve %s: %w", db, err)
			}
			defer src.Close()

			e := echo.New()
			e.Use(middleware.Recover())
			census.NewServer(src, a.logger).Register(e)
			a.logger.Info("starting census server", zap.String("address", addr), zap.String("db", db))
			sc := echo.StartConfig{Address: addr}
			return sc.Start(ctx, e)
		},
	}
}
