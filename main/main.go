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
	flag.Parse()

	logger := logging.NewDebugLogger("lanegrid")

	if *credsPath == "" {
		logger.Fatal("-creds flag is required")
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

	if err := lanegrid.Run(ctx, r); err != nil {
		logger.Fatal(err)
	}
}
