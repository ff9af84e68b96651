package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hoppxi/blctl/pkg/operation"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current brightness level",
	Run: func(cmd *cobra.Command, args []string) {
		value, err := operation.Backlight.Get()
		if err != nil {
			fail(err)
		}
		fmt.Println(value)
	},
}

var maxCmd = &cobra.Command{
	Use:   "max",
	Short: "Print the maximum supported brightness level",
	Run: func(cmd *cobra.Command, args []string) {
		value, err := operation.Backlight.Max()
		if err != nil {
			fail(err)
		}
		fmt.Println(value)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Set an absolute brightness level (clamped to the device range)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		value := parseLevel(args[0])
		if err := operation.Backlight.Set(value); err != nil {
			fail(err)
		}
	},
}

var increaseCmd = &cobra.Command{
	Use:     "increase <percent>",
	Aliases: []string{"up"},
	Short:   "Increase brightness by a percentage of the maximum level",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		amount := parseLevel(args[0])
		if err := operation.Backlight.Increase(amount); err != nil {
			fail(err)
		}
	},
}

var decreaseCmd = &cobra.Command{
	Use:     "decrease <percent>",
	Aliases: []string{"down"},
	Short:   "Decrease brightness by a percentage of the maximum level",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		amount := parseLevel(args[0])
		if err := operation.Backlight.Decrease(amount); err != nil {
			fail(err)
		}
	},
}

func parseLevel(s string) uint32 {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		fmt.Printf("Invalid value %q: expected an unsigned integer\n", s)
		os.Exit(1)
	}
	return uint32(v)
}

func fail(err error) {
	fmt.Println("Error:", err)
	fmt.Println("Hint: run `blctl start` first")
	os.Exit(1)
}
