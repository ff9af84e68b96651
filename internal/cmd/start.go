package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hoppxi/blctl/internal/daemon"
	"github.com/hoppxi/blctl/internal/manager"
	"github.com/hoppxi/blctl/pkg/backlight"
	"github.com/hoppxi/blctl/pkg/operation"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the backlight service in the foreground",
	Run: func(cmd *cobra.Command, args []string) {
		if running, err := operation.Backlight.Running(); err == nil && running {
			fmt.Println("blctl service is already running on the system bus")
			return
		}

		cfg := manager.Config.Load()

		deviceDir, err := manager.Config.DeviceDir()
		if err != nil {
			log.Fatalf("Failed to resolve backlight device: %v", err)
		}
		log.Printf("Using backlight device %s", deviceDir)

		ctrl := backlight.NewController(deviceDir)
		svc := daemon.New(ctrl, cfg.GetString("bus_name"))

		if err := svc.Start(); err != nil {
			log.Fatalf("Failed to start service: %v", err)
		}
		defer svc.Stop()

		manager.Config.Watch(func() {
			log.Println("Config file changed, restart blctl to apply it")
		})

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		fmt.Println("\nReceived shutdown signal, releasing bus name...")
	},
}
