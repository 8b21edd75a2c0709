package main

import (
	"f1stats-backend/cmd/f1-cli/commands"
	"f1stats-backend/lib/telemetry"
	"f1stats-backend/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	_, err := telemetry.SetupFromEnv(ctx, "f1-cli")
	if err != nil {
		serviceutil.Fatal("failed to set up telemetry", err)
	}
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
