package main

import (
	"flag"
	"fmt"
	"os"
)

func (a *app) cmdStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	stats, err := a.store.Statistics(a.ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout status: %v\n", err)
		return 2
	}

	fmt.Printf("companies:        %d (%d relevant)\n", stats.TotalCompanies, stats.RelevantCompanies)
	fmt.Printf("active jobs:      %d\n", stats.TotalActiveJobs)
	fmt.Printf("decision makers:  %d (%d with email)\n", stats.TotalDecisionMakers, stats.TotalWithEmail)
	fmt.Println("by ATS provider:")
	for provider, count := range stats.ByATSProvider {
		fmt.Printf("  %-16s %d\n", provider, count)
	}
	return 0
}
