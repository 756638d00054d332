package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mpetrova/hirescout/internal/platform/httpclient"
	"github.com/mpetrova/hirescout/internal/upload"

	"github.com/google/uuid"
)

func (a *app) cmdUpload(args []string) int {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	location := fs.String("location", "", "location label carried in the upload payload")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if a.cfg.Upload.VercelAPIURL == "" {
		fmt.Fprintln(os.Stderr, "hirescout upload: VERCEL_API_URL is required")
		return 2
	}

	leads, err := upload.BuildLeads(a.ctx, a.store, a.cfg.Source.MaxEmployeeCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout upload: failed to build leads: %v\n", err)
		return 2
	}

	client := upload.NewClient(httpclient.New(httpclient.EnrichmentTimeout), a.cfg.Upload.VercelAPIURL, a.cfg.Upload.LeadsAPIKey, a.cfg.JWT.ManifestSecret)
	result, err := client.Upload(a.ctx, upload.Payload{Location: *location, Leads: leads}, uuid.New().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout upload: %v\n", err)
		return 1
	}

	fmt.Printf("uploaded %d leads: %s\n", len(leads), result.Message)
	return 0
}
