/*
Package domain contains the core domain models of the field extractor.

It defines the records read from the outside world, the results derived from them
and the report of a whole run. This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - Record: One `key=value` line of input or the single command-line argument.
  - Result: The explicit success/failure outcome of extracting and transforming a Record.
  - Report: The ordered results of one run, plus how the STDIN section ended.
  - Variant: Which transformation a run applies (numeric conversion or greeting).
*/
package domain
