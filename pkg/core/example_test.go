package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cer4sco/freesscan/pkg/core"
)

// ExampleScanSecrets scans a directory and prints the findings as JSON.
func ExampleScanSecrets() {
	res, err := core.ScanSecrets(context.Background(), core.SecretOptions{
		Root:         ".",
		IncludeGlobs: "*.go",
		Threads:      4,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}
	fmt.Printf("Scanned %d files in %s\n", res.FilesScanned, res.Duration)
	_ = core.MarshalFindings(os.Stdout, res.Findings)
}

// ExampleScanPorts probes the well-known service ports of a host.
func ExampleScanPorts() {
	findings, err := core.ScanPorts(context.Background(), "127.0.0.1", core.PortOptions{})
	if err != nil {
		panic(err)
	}
	for _, f := range findings {
		fmt.Println(f.Severity, f.Location, f.Service)
	}
}
