package table

import "errors"

// ErrSchemaDrift indicates a record whose amplitude content differs
// from the file that defined the column schema. The row is dropped
// rather than written misaligned.
var ErrSchemaDrift = errors.New("table: column schema drift")

// ErrSchemaFileOpen indicates the schema-defining file could not be
// opened. Without it no column order exists, so the run cannot start.
var ErrSchemaFileOpen = errors.New("table: cannot open schema-defining file")
