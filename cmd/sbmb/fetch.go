package main

import (
	"fmt"

	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/crawl"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	from, to, err := c.Range()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sbmb.ErrorMessage(err))
		return err
	}

	if c.Refresh {
		deps.Harvester.Refresh = true
	}

	req := crawl.Request{
		Base:   deps.Config.BaseURL(),
		Labels: deps.Config.Labels(),
		From:   from,
		To:     to,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Fetching %d pages from %s\n", event.Total, req.Base)
		case crawl.ProgressFetched:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Key)
		case crawl.ProgressUnchanged:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (unchanged)\n", event.Completed, event.Total, event.Key)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (cached)\n", event.Completed, event.Total, event.Key)
		case crawl.ProgressFinished:
			// Summary printed after the harvest completes
		}
	}

	result, err := deps.Harvester.Harvest(deps.Ctx, req, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error fetching: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d pages (%s), %d already cached\n",
		result.Fetched, formatBytes(result.Bytes), result.Skipped)
	if result.Unchanged > 0 {
		fmt.Fprintf(deps.Stdout, "%d fetched pages were unchanged\n", result.Unchanged)
	}
	return nil
}

// formatBytes formats a byte count in human-readable form.
func formatBytes(n int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case n >= MB:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
