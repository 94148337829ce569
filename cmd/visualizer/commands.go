package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/client"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/models"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/report"
)

var errUsage = errors.New("invalid arguments")

type cli struct {
	api       *client.Client
	out       io.Writer
	reportDir string
	now       func() time.Time
	open      func(string) error
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "upload":
		return c.upload(ctx, args)
	case "history":
		return c.history(ctx, args)
	case "preview":
		return c.preview(ctx, args)
	case "report":
		return c.report(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// parseArgs lets flags appear before or after positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func (c *cli) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: upload takes exactly one FILE", errUsage)
	}

	f, err := os.Open(rest[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(c.out, "Uploading...")
	resp, err := c.api.Upload(ctx, filepath.Base(rest[0]), f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Fprintln(c.out, resp.Message)
	printSummary(c.out, &resp.Data)
	if resp.Report != "" {
		fmt.Fprintf(c.out, "Report: %s\n", resp.Report)
	}
	return nil
}

func printSummary(w io.Writer, s *models.Summary) {
	if s == nil {
		fmt.Fprintln(w, "No summary available")
		return
	}
	fmt.Fprintf(w, "Total Rows: %d\n", s.TotalRows)
	fmt.Fprintf(w, "Avg Pressure: %s\n", formatAverage(s.AveragePressure))
	fmt.Fprintf(w, "Avg Temperature: %s\n", formatAverage(s.AverageTemperature))

	labels := s.TypeLabels()
	if len(labels) == 0 {
		fmt.Fprintln(w, "Type Distribution: none")
		return
	}
	fmt.Fprintln(w, "Type Distribution:")
	for _, l := range labels {
		fmt.Fprintf(w, "  %s: %d\n", l, s.TypeDistribution[l])
	}
}

func formatAverage(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func (c *cli) history(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	page := fs.Int("page", 1, "Page number")
	size := fs.Int("size", 5, "Items per page")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	result, err := c.api.ListDatasets(ctx, *page, *size)
	if err != nil {
		return fmt.Errorf("could not load history: %w", err)
	}

	if len(result.Items) == 0 {
		fmt.Fprintln(c.out, "No uploads yet")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILENAME\tUPLOADED\tROWS\tREPORT")
	for _, item := range result.Items {
		rows := "-"
		if item.Summary != nil {
			rows = strconv.Itoa(item.Summary.TotalRows)
		}
		reportURL := "-"
		if item.ReportURL != nil {
			reportURL = *item.ReportURL
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", item.ID, item.Filename, item.UploadedAt.Local().Format("2006-01-02 15:04:05"), rows, reportURL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Page %d - %d items\n", result.Page, result.Total)
	return nil
}

func (c *cli) preview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: preview takes exactly one ID", errUsage)
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: dataset ID must be a positive integer", errUsage)
	}

	p, err := c.api.Preview(ctx, id)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(p.Columns, "\t"))
	for _, row := range p.Rows {
		cells := make([]string, len(p.Columns))
		for i, col := range p.Columns {
			if v, ok := row[col]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func (c *cli) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	text := fs.Bool("text", false, "Print the report's summary lines")
	open := fs.Bool("open", false, "Open the downloaded report")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: report takes exactly one URL", errUsage)
	}

	if err := os.MkdirAll(c.reportDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	local := filepath.Join(c.reportDir, fmt.Sprintf("report_%d.pdf", c.now().Unix()))

	f, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	fmt.Fprintln(c.out, "Downloading PDF...")
	if _, err := c.api.DownloadReport(ctx, rest[0], f); err != nil {
		f.Close()
		os.Remove(local)
		return fmt.Errorf("could not download PDF: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(c.out, "Saved %s\n", local)

	if *text {
		data, err := os.ReadFile(local)
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}
		lines, err := report.ReadLines(data)
		if err != nil {
			return fmt.Errorf("could not read PDF text: %w", err)
		}
		fmt.Fprintln(c.out, report.Title)
		for _, line := range lines {
			fmt.Fprintln(c.out, line)
		}
	}

	if *open {
		if err := c.open(local); err != nil {
			return fmt.Errorf("could not open PDF: %w", err)
		}
	}
	return nil
}
