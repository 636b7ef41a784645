package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"upwork-analytics/config"
	"upwork-analytics/utils"

	"github.com/chromedp/chromedp"
)

// newContext creates a headless Chrome tab sized like a desktop browser
func newContext() (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("log-level", "3"),
		chromedp.WindowSize(1440, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

func capture(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("#footer", chromedp.ByID),
		// chart iframes render after the page itself
		chromedp.Sleep(2*time.Second),
		chromedp.FullScreenshot(&buf, 90),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing %s: %w", url, err)
	}
	return buf, nil
}

func main() {
	cfg := config.Load()
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := newContext()
	defer cancel()

	logger.Info("Capturing dashboard at %s", cfg.SnapshotURL)

	var png []byte
	err = utils.RetryWithBackoff(cfg.SnapshotRetries, time.Second, func() error {
		var captureErr error
		png, captureErr = capture(ctx, cfg.SnapshotURL)
		return captureErr
	}, logger)
	if err != nil {
		logger.Error("Snapshot failed: %v", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SnapshotPath), 0o755); err != nil {
		logger.Error("Cannot create output directory: %v", err)
		os.Exit(1)
	}
	if err := os.WriteFile(cfg.SnapshotPath, png, 0o644); err != nil {
		logger.Error("Cannot write %s: %v", cfg.SnapshotPath, err)
		os.Exit(1)
	}
	logger.Info("Dashboard snapshot saved to %s (%d bytes)", cfg.SnapshotPath, len(png))
}
