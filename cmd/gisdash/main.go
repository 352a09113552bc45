package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// Globals are flags shared by every subcommand.
type Globals struct {
	Config   string `short:"c" type:"path" env:"GISDASH_CONFIG" help:"Path to the gisdash YAML config."`
	LogLevel string `name:"log-level" help:"Override the configured log level (debug, info, warn, error)."`
}

type cli struct {
	Globals

	Serve    serveCmd    `cmd:"" help:"Serve the dashboard, the map export and the JSON API."`
	Layers   layersCmd   `cmd:"" help:"Inspect or extend the layer manifest."`
	Export   exportCmd   `cmd:"" help:"Write the property tax report to disk."`
	FrameSim frameSimCmd `cmd:"" name:"frame-sim" help:"Connect a simulated map frame to a running dashboard view."`
}

type layersCmd struct {
	List layersListCmd `cmd:"" help:"List the registered layers."`
	Add  layersAddCmd  `cmd:"" help:"Add or replace a layer entry in a manifest."`
}

type exportCmd struct {
	CSV    exportCSVCmd    `cmd:"" name:"csv" help:"Export the tax report as CSV."`
	Report exportReportCmd `cmd:"" help:"Export the tax report as printable HTML."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	kctx := kong.Parse(&app,
		kong.Name("gisdash"),
		kong.Description("Municipal property tax GIS dashboard."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&app.Globals),
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
