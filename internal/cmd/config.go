package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hoppxi/blctl/internal/daemon"
	"github.com/hoppxi/blctl/internal/manager"
	"github.com/hoppxi/blctl/pkg/backlight"
)

type Config struct {
	Device    string `yaml:"device"`
	SysfsPath string `yaml:"sysfs_path"`
	BusName   string `yaml:"bus_name"`
}

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate/update the blctl.yaml file",
	Run: func(cmd *cobra.Command, args []string) {
		reader := bufio.NewReader(os.Stdin)
		yamlPath := manager.ConfigPath()

		if _, err := os.Stat(yamlPath); !os.IsNotExist(err) {
			if !confirm(reader, "blctl.yaml already exists. Overwrite with new settings?") {
				return
			}
		}

		generateBlctlYaml(reader, yamlPath)
		fmt.Println("Config file updated.")
	},
}

func generateBlctlYaml(reader *bufio.Reader, yamlPath string) {
	conf := Config{}

	defaultDevice := ""
	if dir, err := backlight.Discover(backlight.DefaultSysfsPath); err == nil {
		defaultDevice = filepath.Base(dir)
	}

	conf.Device = prompt(reader, "Backlight device (empty = auto-discover)", defaultDevice)
	conf.SysfsPath = prompt(reader, "Sysfs backlight class path", backlight.DefaultSysfsPath)
	conf.BusName = prompt(reader, "D-Bus well-known name", daemon.DefaultBusName)

	d, _ := yaml.Marshal(&conf)
	os.MkdirAll(filepath.Dir(yamlPath), 0755)
	os.WriteFile(yamlPath, d, 0644)
}

func prompt(r *bufio.Reader, label, defaultValue string) string {
	fmt.Printf("%s [%s]: ", label, defaultValue)
	input, _ := r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func confirm(r *bufio.Reader, message string) bool {
	fmt.Printf("%s (y/N): ", message)
	input, _ := r.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}
