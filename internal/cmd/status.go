package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoppxi/blctl/pkg/operation"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the backlight service is running",
	Run: func(cmd *cobra.Command, args []string) {
		running, err := operation.Backlight.Running()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

		if !running {
			fmt.Println("blctl service is not running")
			os.Exit(1)
		}

		value, err := operation.Backlight.Get()
		if err != nil {
			fail(err)
		}
		max, err := operation.Backlight.Max()
		if err != nil {
			fail(err)
		}

		fmt.Printf("blctl service is running, brightness %d/%d\n", value, max)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print brightness levels as they change",
	Run: func(cmd *cobra.Command, args []string) {
		err := operation.Backlight.Watch(func(value uint32) {
			fmt.Println(value)
		})
		if err != nil {
			fail(err)
		}
	},
}
