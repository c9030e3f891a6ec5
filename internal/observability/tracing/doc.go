// Package tracing provides OpenTelemetry tracing integration.
//
// Middleware traces inbound HTTP requests; StartSpan and EndSpan wrap the
// individual summarization stages so a request shows up as one trace.
//
//	ctx, span := tracing.StartSpan(ctx, "summarize.normalize")
//	text, err := source.Fetch(ctx, url)
//	tracing.EndSpan(span, err)
package tracing
