package manager

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/hoppxi/blctl/internal/daemon"
	"github.com/hoppxi/blctl/pkg/backlight"
)

var (
	once sync.Once
	v    *viper.Viper
)

type ConfigManager struct{}

var Config = &ConfigManager{}

// ConfigPath returns the blctl.yaml location under the user config dir.
func ConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("/etc", "blctl", "blctl.yaml")
	}
	return filepath.Join(configDir, "blctl", "blctl.yaml")
}

// Load reads blctl.yaml once. A missing file is fine, the daemon must
// come up with defaults on machines that never ran `blctl generate-config`.
func (c *ConfigManager) Load() *viper.Viper {
	once.Do(func() {
		v = load(ConfigPath())
	})
	return v
}

func load(path string) *viper.Viper {
	vp := viper.New()

	vp.SetDefault("device", "")
	vp.SetDefault("sysfs_path", backlight.DefaultSysfsPath)
	vp.SetDefault("bus_name", daemon.DefaultBusName)

	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")

	if err := vp.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return vp
		}
		log.Fatalf("Failed to read config %s: %v", path, err)
	}

	return vp
}

// DeviceDir resolves the backlight device directory, auto-discovering
// under sysfs_path when no device is pinned in the config.
func (c *ConfigManager) DeviceDir() (string, error) {
	return deviceDir(c.Load())
}

func deviceDir(cfg *viper.Viper) (string, error) {
	root := cfg.GetString("sysfs_path")
	if dev := cfg.GetString("device"); dev != "" {
		return filepath.Join(root, dev), nil
	}

	return backlight.Discover(root)
}

// Watch re-runs onChange whenever the config file changes on disk.
func (c *ConfigManager) Watch(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		onChange()
	})
}
