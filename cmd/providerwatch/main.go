package main

import (
	"context"
	"log/slog"
	"os"

	"providerwatch/cmd/providerwatch/commands"
	"providerwatch/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	err := telemetry.SetupFromEnv(context.Background(), "providerwatch")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to setup telemetry", "err", err)
	}
	commands.ExecuteContext(context.Background())
}
