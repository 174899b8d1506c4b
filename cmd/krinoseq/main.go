// Command krinoseq drives a full filtering run against the analysis engine:
// upload a FASTA file, wait for analysis, submit the configured pipeline,
// wait for filtering, then interpret the results and record the run locally.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/GKamundia/KrinoSeq/internal/config"
	"github.com/GKamundia/KrinoSeq/internal/engine"
	"github.com/GKamundia/KrinoSeq/internal/filter"
	"github.com/GKamundia/KrinoSeq/internal/result"
	"github.com/GKamundia/KrinoSeq/internal/storage/sqlite"
	"github.com/GKamundia/KrinoSeq/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath   = flag.String("config", "config.yaml", "application config file")
		pipelinePath = flag.String("pipeline", "", "pipeline YAML file (required)")
		inputPath    = flag.String("input", "", "FASTA file to filter (required)")
		keepJob      = flag.Bool("keep-job", false, "leave the job and its files on the engine")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *pipelinePath == "" || *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	shutdown, err := telemetry.Init("krinoseq", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	if err := run(context.Background(), logger, *configPath, *pipelinePath, *inputPath, *keepJob); err != nil {
		var invalid *filter.InvalidConfigError
		if errors.As(err, &invalid) {
			fmt.Fprintln(os.Stderr, invalid.Result.Summary())
			for _, msg := range invalid.Result.Pipeline {
				fmt.Fprintf(os.Stderr, "  pipeline: %s\n", msg)
			}
			for idx, fieldErrs := range invalid.Result.Stages {
				for _, fe := range fieldErrs {
					fmt.Fprintf(os.Stderr, "  stage %d: %s\n", idx, fe.Error())
				}
			}
			os.Exit(1)
		}
		logger.Error("run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, pipelinePath, inputPath string, keepJob bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	pipeline, err := config.LoadPipeline(pipelinePath)
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer store.Close()

	client := engine.NewClient(
		engine.WithBaseURL(cfg.Engine.BaseURL),
		engine.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.Engine.WaitTimeout)
	defer cancel()

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	upload, err := client.Upload(ctx, filepath.Base(inputPath), f)
	f.Close()
	if err != nil {
		return err
	}

	run := &sqlite.Run{
		ID:        uuid.New().String(),
		JobID:     upload.JobID,
		InputFile: filepath.Base(inputPath),
		Status:    string(upload.Status),
	}
	if run.Config, err = json.Marshal(pipeline); err != nil {
		return fmt.Errorf("encode pipeline config: %w", err)
	}
	if err := store.SaveRun(ctx, run); err != nil {
		return err
	}
	if !keepJob {
		defer func() {
			if err := client.DeleteJob(context.Background(), upload.JobID); err != nil {
				logger.Warn("failed to delete engine job",
					slog.String("job_id", upload.JobID), slog.String("error", err.Error()))
			}
		}()
	}

	// Initial sequence analysis runs as soon as the upload lands.
	status, err := client.WaitForTerminal(ctx, upload.JobID, cfg.Engine.PollInterval)
	if err != nil {
		return saveFailure(ctx, store, run, err)
	}
	if status.Status == engine.StatusFailed {
		return saveFailure(ctx, store, run, fmt.Errorf("analysis failed: %s", status.Message))
	}

	if _, err := client.Configure(ctx, upload.JobID, pipeline); err != nil {
		return saveFailure(ctx, store, run, err)
	}
	if _, err := client.Execute(ctx, upload.JobID); err != nil {
		return saveFailure(ctx, store, run, err)
	}

	status, err = client.WaitForTerminal(ctx, upload.JobID, cfg.Engine.PollInterval)
	if err != nil {
		return saveFailure(ctx, store, run, err)
	}
	if status.Status == engine.StatusFailed {
		return saveFailure(ctx, store, run, fmt.Errorf("filtering failed: %s", status.Message))
	}

	results, err := client.Results(ctx, upload.JobID)
	if err != nil {
		return saveFailure(ctx, store, run, err)
	}

	disp := result.NewDispatcher(logger)
	stages := disp.InterpretAll(results.FilteringProcess)
	summary := result.Summarize(results.FilteringProcess, logger)

	run.Status = string(engine.StatusCompleted)
	if run.Results, err = json.Marshal(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if run.Summary, err = json.Marshal(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := store.SaveRun(ctx, run); err != nil {
		return err
	}

	report := map[string]any{
		"run_id":  run.ID,
		"job_id":  upload.JobID,
		"stages":  stages,
		"summary": summary,
	}
	if results.Assessment != nil {
		report["assessment"] = results.Assessment
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// saveFailure records the failed state before surfacing the error so the run
// is still inspectable in the viewer.
func saveFailure(ctx context.Context, store *sqlite.Store, run *sqlite.Run, cause error) error {
	run.Status = string(engine.StatusFailed)
	if err := store.SaveRun(ctx, run); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
