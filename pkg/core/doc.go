// Package core is a small, stable facade over freesscan's engines for
// programs that embed the scanner instead of running the CLI.
//
// Example:
//
//	res, err := core.ScanSecrets(ctx, core.SecretOptions{Root: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, res.Findings)
package core
