// Bulk tiering runner: reads a list of event slugs, computes every
// tier, and writes a summary CSV plus one report file per event.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kenniky/ultrank-scoring/internal/config"
	"github.com/kenniky/ultrank-scoring/internal/constants"
	"github.com/kenniky/ultrank-scoring/internal/database"
	"github.com/kenniky/ultrank-scoring/internal/geocode"
	"github.com/kenniky/ultrank-scoring/internal/logger"
	"github.com/kenniky/ultrank-scoring/internal/refdata"
	"github.com/kenniky/ultrank-scoring/internal/repository"
	"github.com/kenniky/ultrank-scoring/internal/scoring"
	"github.com/kenniky/ultrank-scoring/internal/service"
	"github.com/kenniky/ultrank-scoring/internal/startgg"
)

var trueValues = map[string]bool{"true": true, "t": true, "1": true}

type job struct {
	slug         string
	invitational bool
}

type outcome struct {
	job    job
	report string
	score  int
	max    int
	count  int
	err    error
}

func main() {
	app := &cli.App{
		Name:  "ultrank-bulk",
		Usage: "compute tiering scores for a list of start.gg event slugs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "slug list: plain text, or CSV with an invitational column",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Value: "tts_values",
				Usage: "directory for the summary CSV and per-event reports",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: constants.BulkConcurrency,
				Usage: "events computed in parallel",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logger.New()

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	log = logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := refdata.Load(cfg, log)
	if err != nil {
		return err
	}

	svc := service.NewTieringService(
		startgg.NewClient(cfg, log),
		geocode.NewClient(cfg, log),
		store,
		repository.NewResultRepository(db, log),
		cfg,
		log,
	)

	jobs, err := readJobs(c.String("file"))
	if err != nil {
		return err
	}
	log.Info().Int("events", len(jobs)).Msg("slug list read")

	outcomes := compute(c.Context, svc, jobs, c.Int("concurrency"), log)

	outDir := c.String("output-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := writeSummary(outDir, outcomes); err != nil {
		return err
	}
	return writeReports(outDir, outcomes, log)
}

// readJobs parses the slug list. A .csv file may carry a second
// column flagging invitationals; any other file is one slug per line.
func readJobs(path string) ([]job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var jobs []job

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			if len(record) == 0 {
				continue
			}
			j := job{slug: strings.TrimSpace(record[0])}
			if len(record) > 1 {
				j.invitational = trueValues[strings.ToLower(strings.TrimSpace(record[1]))]
			}
			jobs = append(jobs, j)
		}
		return jobs, nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		slug := strings.TrimSpace(scanner.Text())
		if slug != "" {
			jobs = append(jobs, job{slug: slug})
		}
	}
	return jobs, scanner.Err()
}

// compute runs the jobs with bounded parallelism. Each event is an
// independent computation, so failures stay isolated per slug.
func compute(ctx context.Context, svc *service.TieringService, jobs []job, concurrency int, log zerolog.Logger) []outcome {
	outcomes := make([]outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, j := range jobs {
		outcomes[i].job = j

		if !startgg.ValidSlug(j.slug) {
			log.Warn().Str("slug", j.slug).Msg("skipping invalid slug")
			outcomes[i].err = startgg.ErrInvalidSlug
			continue
		}

		g.Go(func() error {
			log.Info().Str("slug", j.slug).Msg("calculating")

			result, err := svc.CalculateTier(gctx, j.slug, j.invitational)
			if err != nil {
				log.Error().Err(err).Str("slug", j.slug).Msg("calculation failed")
				outcomes[i].err = err
				return nil
			}

			outcomes[i].report = scoring.Report(result)
			outcomes[i].score = result.Score
			outcomes[i].max = result.MaxPotential
			outcomes[i].count = result.Entrants
			return nil
		})
	}

	// Individual failures are recorded per outcome, never returned.
	_ = g.Wait()
	return outcomes
}

func writeSummary(dir string, outcomes []outcome) error {
	f, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Slug", "Score", "Max Potential Score", "Num Entrants"}); err != nil {
		return err
	}

	for _, o := range outcomes {
		record := []string{o.job.slug, "", "", ""}
		if o.err == nil {
			record[1] = fmt.Sprintf("%d", o.score)
			record[2] = fmt.Sprintf("%d", o.max)
			record[3] = fmt.Sprintf("%d", o.count)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeReports(dir string, outcomes []outcome, log zerolog.Logger) error {
	for _, o := range outcomes {
		if o.err != nil {
			continue
		}

		name := strings.ReplaceAll(o.job.slug, "/", "_") + ".txt"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(o.report), 0o644); err != nil {
			return err
		}
		log.Info().Str("slug", o.job.slug).Str("file", name).Msg("report written")
	}
	return nil
}
