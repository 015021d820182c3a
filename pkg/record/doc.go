/*
Package record splits raw `key=value` strings into domain records.

Two forms are supported:

  - Plain: the string is split on '=' and the second segment is the value.
  - Query: the string is a URL query (`var=5&x=1`) and the value is read from a named field.
*/
package record
