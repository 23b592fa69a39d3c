package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"providerwatch/lib/configutil"
	"providerwatch/lib/restyutil"
	"providerwatch/lib/scrapers/openrouter"
	"providerwatch/lib/serviceutil"
	"providerwatch/lib/telemetry"
	"providerwatch/services/updater"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl       string `json:"base_url"`
	Catalog       string `json:"catalog"`
	PacingSeconds int    `json:"pacing_seconds"`
	Debug         bool   `json:"debug"`
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func readRunConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = "https://openrouter.ai"
	}
	if cfg.Catalog == "" {
		cfg.Catalog = "models.json"
	}
	if cfg.PacingSeconds == 0 {
		cfg.PacingSeconds = 2
	}
	return cfg
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Re-scrapes provider data for every model in the catalog and saves changes.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readRunConfig()

		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			serviceutil.Fatal(
				"missing credential",
				fmt.Errorf("OPENROUTER_API_KEY not found in environment variables"),
			)
		}

		var debugOutput restyutil.InstrumentOutput
		if cfg.Debug {
			telemetry.InitSlog(true)
			debugOutput = restyutil.NewFilesystemOutput(".dev/resty/openrouter")
		}

		client, err := openrouter.NewClient(openrouter.ClientOptions{
			BaseUrl:          cfg.BaseUrl,
			ApiKey:           apiKey,
			InstrumentOutput: debugOutput,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize openrouter client", err)
		}

		ctx := serviceutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx)

		svc := updater.NewService(
			catalogStore(cfg.Catalog),
			client,
			time.Duration(cfg.PacingSeconds)*time.Second,
		)

		t1 := time.Now()
		err = svc.Run(ctx)
		if err != nil {
			serviceutil.Fatal("update run failed", err)
		}
		slog.Info("update run finished", "seconds", time.Since(t1).Seconds())
	},
}
