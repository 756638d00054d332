package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mpetrova/hirescout/internal/leadexport"
	"github.com/mpetrova/hirescout/internal/platform/storage"
)

func (a *app) cmdExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	all := fs.Bool("all", false, "include non-relevant companies/jobs")
	grouped := fs.Bool("grouped", false, "use the grouped-by-company projection instead of one row per job")
	toS3 := fs.Bool("s3", false, "also upload the export artifact to S3 and print a presigned download URL")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hirescout export [--all] [--grouped] [--s3] <path>")
		return 2
	}
	path := fs.Arg(0)

	format := leadexport.FormatCSV
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = leadexport.FormatJSON
	}

	var buf bytes.Buffer
	var err error
	if *grouped {
		groups, gerr := a.store.ExportGrouped(a.ctx, *all)
		if gerr != nil {
			err = gerr
		} else {
			err = leadexport.WriteGrouped(&buf, groups, format)
		}
	} else {
		rows, rerr := a.store.ExportFlat(a.ctx, *all)
		if rerr != nil {
			err = rerr
		} else {
			err = leadexport.WriteFlat(&buf, rows, format)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout export: %v\n", err)
		return 2
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "hirescout export: failed to write %s: %v\n", path, err)
		return 2
	}
	fmt.Printf("wrote %d bytes to %s\n", buf.Len(), path)

	if *toS3 {
		if a.cfg.S3.Endpoint == "" || a.cfg.S3.Bucket == "" {
			fmt.Fprintln(os.Stderr, "hirescout export: --s3 requires S3_ENDPOINT and S3_EXPORT_BUCKET to be configured")
			return 2
		}
		s3Client, err := storage.NewS3Client(a.cfg.S3)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hirescout export: s3 client: %v\n", err)
			return 2
		}
		contentType := "text/csv"
		if format == leadexport.FormatJSON {
			contentType = "application/json"
		}
		key := fmt.Sprintf("exports/%s", filepath.Base(path))
		url, err := s3Client.UploadExport(a.ctx, key, buf.Bytes(), contentType, 24*time.Hour)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hirescout export: s3 upload: %v\n", err)
			return 2
		}
		fmt.Printf("uploaded to s3, presigned URL (24h): %s\n", url)
	}

	return 0
}
