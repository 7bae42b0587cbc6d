package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	lanegrid "github.com/BananaMilk313/Zerui-Li-Camera"
	"github.com/BananaMilk313/Zerui-Li-Camera/internal/creds"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot/client"
	"go.viam.com/utils/rpc"
)

func main() {
	credsPath := flag.String("creds", "", "path to machine credentials JSON file")
	configPath := flag.String("config", "", "path to pipeline config overlay JSON file (optional)")
	cameraName := flag.String("camera", "front-cam", "name of the front camera resource")
	frames := flag.Int("frames", 1, "number of frames to process before exiting")
	debugDir := flag.String("debug-dir", "", "directory for per-frame debug artifacts (optional)")
	flag.Parse()

	logger := logging.NewLogger("lanegrid-cli")

	if *credsPath == "" {
		logger.Fatal("-creds flag is required")
	}
	if *frames < 1 {
		logger.Fatal("-frames must be at least 1")
	}

	machineCreds, err := creds.Load(*credsPath)
	if err != nil {
		logger.Fatal(err)
	}

	cfg, err := lanegrid.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	machine, err := client.New(
		ctx,
		machineCreds.Address,
		logger,
		client.WithDialOptions(rpc.WithEntityCredentials(
			machineCreds.EntityID,
			rpc.Credentials{
				Type:    rpc.CredentialsTypeAPIKey,
				Payload: machineCreds.APIKey,
			})),
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer machine.Close(context.Background())

	logger.Info("Connected to machine")

	r, err := lanegrid.NewRover(ctx, machine, *cameraName, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if *debugDir != "" {
		r.DebugDir = *debugDir
	}

	logger.Infof("=== Processing %d frame(s) ===", *frames)

	if err := lanegrid.WatchFrames(ctx, r, *frames); err != nil {
		logger.Fatal(err)
	}

	printSummary(r, logger)
}

func printSummary(r *lanegrid.Rover, logger logging.Logger) {
	res := r.LastResult()
	if res == nil {
		logger.Info("No frames were processed")
		return
	}

	logger.Infof("Frames processed: %d, skipped: %d",
		r.State().FramesProcessed, r.State().FramesSkipped)
	logger.Infof("Last frame: brightness=%.2f threshold=%.2f", res.AverageBrightness, res.Threshold)
	logger.Infof("Grid: %dx%d, %d occupied cells",
		res.Grid.Rows, res.Grid.Cols, res.Grid.OccupiedCount())
	logger.Infof("Timings: receive=%v filter=%v threshold=%v morphology=%v overlay=%v projection=%v",
		res.Timings.Receive, res.Timings.Filter, res.Timings.Threshold,
		res.Timings.Morphology, res.Timings.Overlay, res.Timings.Projection)
}
