package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akobyl/KitchenCard/internal/cloudstore"
	"github.com/akobyl/KitchenCard/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetRow is the flat column layout for exported restaurants.
// LastInspected is a unix timestamp, 0 when never inspected.
type parquetRow struct {
	ID                 string   `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name               string   `parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Address            string   `parquet:"name=address,type=BYTE_ARRAY,convertedtype=UTF8"`
	County             string   `parquet:"name=county,type=BYTE_ARRAY,convertedtype=UTF8"`
	Cuisine            string   `parquet:"name=cuisine,type=BYTE_ARRAY,convertedtype=UTF8"`
	Lat                float64  `parquet:"name=lat,type=DOUBLE"`
	Lng                float64  `parquet:"name=lng,type=DOUBLE"`
	LastInspected      int64    `parquet:"name=last_inspected,type=INT64"`
	CriticalViolations int32    `parquet:"name=critical_violations,type=INT32"`
	InspectionCount    int32    `parquet:"name=inspection_count,type=INT32"`
	DistanceMiles      *float64 `parquet:"name=distance_miles,type=DOUBLE,repetitiontype=OPTIONAL"`
}

type ParquetSink struct {
	file source.ParquetFile
	pw   *writer.ParquetWriter
}

func NewParquetSink(cfg *models.Config) (*ParquetSink, error) {
	fw, err := openParquetFile(cfg)
	if err != nil {
		return nil, err
	}

	pw, err := writer.NewParquetWriter(fw, new(parquetRow), 4)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	return &ParquetSink{file: fw, pw: pw}, nil
}

func openParquetFile(cfg *models.Config) (source.ParquetFile, error) {
	if cloudDestination(cfg) {
		cw, err := newCloudWriter(cfg, "restaurants.parquet")
		if err != nil {
			return nil, err
		}
		return newCloudParquetFile(cw), nil
	}

	path := cfg.Export.OutputFile
	if path == "" {
		path = "restaurants.parquet"
	}
	if cfg.Export.OutputFolder != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Export.OutputFolder, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, nil
}

func (p *ParquetSink) WriteSnapshot(snap *models.ViewSnapshot) error {
	for i := range snap.Restaurants {
		if err := p.pw.Write(toParquetRow(&snap.Restaurants[i])); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func (p *ParquetSink) Close() error {
	if err := p.pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return p.file.Close()
}

func toParquetRow(r *models.RestaurantView) parquetRow {
	row := parquetRow{
		ID:                 r.ID,
		Name:               r.Name,
		Address:            r.Address,
		County:             r.County,
		Cuisine:            r.Cuisine,
		Lat:                r.Lat,
		Lng:                r.Lng,
		CriticalViolations: int32(r.CriticalViolations),
		InspectionCount:    int32(r.InspectionCount),
		DistanceMiles:      r.DistanceMiles,
	}
	if !r.LastInspected.IsZero() {
		row.LastInspected = r.LastInspected.Unix()
	}
	return row
}

// cloudParquetFile adapts a cloudstore writer to the parquet source
// interface. Reads and seeking from the end are not supported, uploads are
// write-once.
type cloudParquetFile struct {
	cloudWriter cloudstore.Writer
	offset      int64
}

func newCloudParquetFile(cw cloudstore.Writer) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
