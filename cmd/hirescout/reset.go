package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

func (a *app) cmdReset(args []string) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	force := fs.Bool("force", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*force {
		fmt.Print("this will truncate all seen-company markers, continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("aborted")
			return 0
		}
	}

	n, err := a.store.ResetSeenCompanies(a.ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout reset: %v\n", err)
		return 2
	}
	fmt.Printf("cleared %d seen-company markers\n", n)
	return 0
}
