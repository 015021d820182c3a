/*
Package fieldprint reads `key=value` records, extracts the value and prints a derived result.

Two variants exist: the conversor adds 273 to an integer value (a Celsius to Kelvin
offset) and the nombre variant prints a greeting. Records come from standard input,
one per line, and from the sole command-line argument; both paths share the same
extraction so equivalent strings always derive identical output.

# Failure Policy

Malformed records never interrupt a run and print nothing. Each one is captured as a
failed domain.Result in the returned domain.Report and logged at debug level, so the
default user-facing output stays silent while failures remain observable.

# Usage

	ext, err := fieldprint.New(domain.VariantConversor,
		fieldprint.WithInputTimeout(time.Second),
	)
	if err != nil {
		log.Fatal(err)
	}

	// One record
	res := ext.Apply("temp=0", domain.SourceArgv)
	fmt.Println(res.Output) // 273

	// The whole script flow: banners, STDIN section, ARGV section
	report, err := ext.Run(ctx, os.Stdin, os.Stdout, os.Args[1:])
*/
package fieldprint
