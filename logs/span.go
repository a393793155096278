package logs

// Span identifies the log records of one transpilation unit.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}
