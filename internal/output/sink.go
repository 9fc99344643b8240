// Package output renders view snapshots to the supported export formats.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/akobyl/KitchenCard/internal/cloudstore"
	"github.com/akobyl/KitchenCard/internal/models"
)

type Sink interface {
	WriteSnapshot(snap *models.ViewSnapshot) error
	Close() error
}

// ForConfig picks the sink named by the export config.
func ForConfig(cfg *models.Config) (Sink, error) {
	switch cfg.Export.Format {
	case "", "console":
		return &ConsoleSink{Out: os.Stdout}, nil
	case "json":
		w, err := openExportWriter(cfg, "restaurants.json")
		if err != nil {
			return nil, err
		}
		return NewJSONSink(w), nil
	case "csv":
		w, err := openExportWriter(cfg, "restaurants.csv")
		if err != nil {
			return nil, err
		}
		return NewCSVSink(w), nil
	case "parquet":
		return NewParquetSink(cfg)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", cfg.Export.Format)
	}
}

// cloudDestination reports whether exports go to cloud storage rather than
// the local filesystem.
func cloudDestination(cfg *models.Config) bool {
	return cfg.Export.Destination != "" && cfg.Export.Destination != "local"
}

// newCloudWriter opens a buffered object writer for the configured provider.
// The object is named after the output file, under the output folder.
func newCloudWriter(cfg *models.Config, defaultName string) (cloudstore.Writer, error) {
	var factory cloudstore.WriterFactory
	var err error

	switch cfg.Export.CloudStorage.Provider {
	case "s3":
		factory, err = cloudstore.NewS3WriterFactory(cfg.Export.CloudStorage.Region)
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.Export.CloudStorage.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
	}

	name := cfg.Export.OutputFile
	if name == "" || name == "-" {
		name = defaultName
	}
	objectPath := filepath.Join(cfg.Export.OutputFolder, filepath.Base(name))
	cw, err := factory.NewWriter(cfg.Export.CloudStorage.BucketName, objectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
	}
	return cw, nil
}

// openExportWriter resolves where a file-based sink writes: a cloud object,
// stdout for an empty or "-" local path, or a local file under the output
// folder.
func openExportWriter(cfg *models.Config, defaultName string) (io.WriteCloser, error) {
	if cloudDestination(cfg) {
		return newCloudWriter(cfg, defaultName)
	}

	name := cfg.Export.OutputFile
	if name == "" || name == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	if cfg.Export.OutputFolder != "" && !filepath.IsAbs(name) {
		name = filepath.Join(cfg.Export.OutputFolder, name)
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	return os.Create(name)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type ConsoleSink struct {
	Out io.Writer
}

func (c *ConsoleSink) WriteSnapshot(snap *models.ViewSnapshot) error {
	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tCOUNTY\tCUISINE\tLAST INSPECTED\tCRITICAL\tDISTANCE")
	for _, r := range snap.Restaurants {
		last := "never"
		if !r.LastInspected.IsZero() {
			last = r.LastInspected.Format("2006-01-02")
		}
		dist := ""
		if r.DistanceMiles != nil {
			dist = fmt.Sprintf("%.1f mi", *r.DistanceMiles)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Name, r.Address, r.County, r.Cuisine, last, r.CriticalViolations, dist)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.Out, "\n%d of %d restaurants\n", snap.FilteredCount, snap.TotalCount)
	return err
}

func (c *ConsoleSink) Close() error {
	return nil
}

type JSONSink struct {
	w io.WriteCloser
}

func NewJSONSink(w io.WriteCloser) *JSONSink {
	return &JSONSink{w: w}
}

func (j *JSONSink) WriteSnapshot(snap *models.ViewSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = j.w.Write(data)
	return err
}

func (j *JSONSink) Close() error {
	return j.w.Close()
}

type CSVSink struct {
	wc          io.WriteCloser
	w           *csv.Writer
	wroteHeader bool
}

func NewCSVSink(w io.WriteCloser) *CSVSink {
	return &CSVSink{wc: w, w: csv.NewWriter(w)}
}

var csvHeader = []string{
	"id", "name", "address", "county", "cuisine", "lat", "lng",
	"last_inspected", "critical_violations", "inspection_count", "distance_miles",
}

func (c *CSVSink) WriteSnapshot(snap *models.ViewSnapshot) error {
	if !c.wroteHeader {
		if err := c.w.Write(csvHeader); err != nil {
			return err
		}
		c.wroteHeader = true
	}

	for _, r := range snap.Restaurants {
		last := ""
		if !r.LastInspected.IsZero() {
			last = r.LastInspected.Format("2006-01-02")
		}
		dist := ""
		if r.DistanceMiles != nil {
			dist = fmt.Sprintf("%v", *r.DistanceMiles)
		}
		row := []string{
			r.ID, r.Name, r.Address, r.County, r.Cuisine,
			fmt.Sprintf("%v", r.Lat), fmt.Sprintf("%v", r.Lng),
			last, fmt.Sprintf("%d", r.CriticalViolations), fmt.Sprintf("%d", r.InspectionCount), dist,
		}
		if err := c.w.Write(row); err != nil {
			return err
		}
	}

	c.w.Flush()
	return c.w.Error()
}

func (c *CSVSink) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	return c.wc.Close()
}
