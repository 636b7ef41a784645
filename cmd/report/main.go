package main

import (
	"context"
	"fmt"
	"os"

	"upwork-analytics/config"
	"upwork-analytics/errors"
	"upwork-analytics/services"
	"upwork-analytics/storage"
	"upwork-analytics/utils"
)

func main() {
	cfg := config.Load()
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Upwork job market report for %s", cfg.CSVFilePath)

	source := storage.NewCSVReader(cfg.CSVFilePath, logger)
	pipeline := services.NewPipeline(source, logger, cfg.TopSkillsLimit)

	ds, err := pipeline.Build(context.Background())
	if err != nil {
		logger.Error("Pipeline failed (%s): %v", errors.TypeOf(err), err)
		os.Exit(1)
	}

	if err := services.WriteInsightReport(os.Stdout, ds.Report); err != nil {
		logger.Error("Failed to print report: %v", err)
		os.Exit(1)
	}
}
