/*
Package tracing owns the OpenTelemetry tracer provider of the process.

The provider is built once at startup by Init and handed explicitly to every
component that emits spans; no global provider is installed. When tracing is
disabled Init returns a no-op provider, so instrumented code runs unchanged.

	provider, err := tracing.Init(ctx, tracing.Config{
		Enabled:     true,
		Exporter:    tracing.ExporterOTLP,
		Endpoint:    "collector:4318",
		Insecure:    true,
		ServiceName: "coursecatalog",
	})
	defer provider.Shutdown(ctx) // flushes pending spans

	tracer := provider.Tracer()
	ctx, span := tracer.Start(ctx, "load_courses")
	defer span.End()
*/
package tracing
