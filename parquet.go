/*
Package parquet implements a read-only engine for the Apache Parquet
columnar file format.

Given one or more Parquet files sharing a compatible schema, it exposes
their schema, supports projecting a subset of columns, and decodes values
either column-at-a-time (FileReader.ColumnReader) or row-at-a-time
(FileReader.RowReader), reconstructing nested structs, lists and maps from
the flat, level-encoded column streams the format uses on disk. Several
files can be read as one concatenated row stream through MultiReader.

Writing Parquet files, predicate pushdown, bloom filters, page indexes and
statistics-driven skipping are outside the scope of this package.

# Reading

	f, err := parquet.OpenFile("data.parquet")
	...
	rows, err := f.RowReader(nil) // nil projection reads every column
	...
	for rows.Next() {
		id, _ := rows.Long("id")
	}

Column chunks of multiple files are decoded concurrently by a worker pool
owned by the reader (see package hardwood); the row cursor returned by
RowReader itself is single-threaded and must not be shared across
goroutines.
*/
package parquet
