/*
Package runner implements the read-parse-print flow of a field extractor script.

A run prints an opening banner, extracts every line of standard input, then applies
the same extraction to the sole command-line argument, and finishes with a closing
banner. Failed records never print anything: they are recorded in the returned
domain.Report and logged at debug level.

# Key Components

  - Runner: Drives the two sections (STDIN, then ARGV) against an Extractor.
  - LineSource: A context-aware line pump that bounds how long stdin may stay silent.
  - Printer: Decouples how results are written (TextPrinter, JSONPrinter).
  - SignalManager: Cancels the run on SIGINT/SIGTERM.

# Usage

	r := runner.NewRunner(extractor,
		runner.WithBanners(runner.DefaultBanners(domain.VariantConversor)),
		runner.WithInputTimeout(time.Second),
	)

	report, err := r.Run(ctx, os.Stdin, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
