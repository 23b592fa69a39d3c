package openrouter

import "providerwatch/lib/telemetry"

var tracer = telemetry.Tracer("providerwatch.lib.scrapers.openrouter")
