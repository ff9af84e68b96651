package backlight

import (
	"fmt"
	"os"
	"path/filepath"
)

// Discover returns the sysfs directory of the first usable backlight
// device under root. Laptops normally expose exactly one (amdgpu_bl0,
// intel_backlight, ...).
func Discover(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("failed to list backlight devices in %s: %w", root, err)
	}

	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, brightnessFile)); err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, maxBrightnessFile)); err != nil {
			continue
		}
		return dir, nil
	}

	return "", fmt.Errorf("no backlight device found under %s", root)
}
