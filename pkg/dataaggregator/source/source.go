package source

import "errors"

// UnsupportedSourceError hands the query on to the next source in the chain
var UnsupportedSourceError = errors.New("data source does not support this query")
