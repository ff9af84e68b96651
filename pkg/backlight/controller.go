// Package backlight drives a sysfs backlight device
// (/sys/class/backlight/<device>) through its brightness and
// max_brightness kernel interface files.
package backlight

import (
	"path/filepath"
	"sync"
)

const (
	// DefaultSysfsPath is where the kernel exposes backlight devices.
	DefaultSysfsPath = "/sys/class/backlight"

	brightnessFile    = "brightness"
	maxBrightnessFile = "max_brightness"
)

// Controller performs read-modify-write sequences against one backlight
// device. The file paths are fixed at construction. The mutex serializes
// the read-compute-write sequence so concurrent bus calls cannot lose
// updates.
type Controller struct {
	mu                sync.Mutex
	brightnessPath    string
	maxBrightnessPath string
}

// NewController returns a controller for the backlight device at the
// given sysfs directory, e.g. /sys/class/backlight/amdgpu_bl0.
func NewController(deviceDir string) *Controller {
	return &Controller{
		brightnessPath:    filepath.Join(deviceDir, brightnessFile),
		maxBrightnessPath: filepath.Join(deviceDir, maxBrightnessFile),
	}
}

// Increase raises the brightness by amount percent of the maximum
// supported level, clamped at the maximum. Returns the value written.
func (c *Controller) Increase(amount uint32) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := readValue(c.brightnessPath)
	if err != nil {
		return 0, err
	}
	max, err := readValue(c.maxBrightnessPath)
	if err != nil {
		return 0, err
	}

	next := current + percentOf(max, amount)
	if next > max {
		next = max
	}

	return next, writeValue(c.brightnessPath, next)
}

// Decrease lowers the brightness by amount percent of the maximum
// supported level, floored at 0. Returns the value written.
func (c *Controller) Decrease(amount uint32) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := readValue(c.brightnessPath)
	if err != nil {
		return 0, err
	}
	max, err := readValue(c.maxBrightnessPath)
	if err != nil {
		return 0, err
	}

	delta := percentOf(max, amount)
	if current < delta {
		// Floor at 0 instead of wrapping around.
		current = delta
	}

	next := current - delta
	return next, writeValue(c.brightnessPath, next)
}

// Set writes the given brightness level, clamped between 0 and the
// maximum supported level. Returns the value written.
func (c *Controller) Set(value uint32) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	max, err := readValue(c.maxBrightnessPath)
	if err != nil {
		return 0, err
	}
	if value > max {
		value = max
	}

	return value, writeValue(c.brightnessPath, value)
}

// Get returns the current brightness level.
func (c *Controller) Get() (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return readValue(c.brightnessPath)
}

// Max returns the maximum supported brightness level. It is re-read
// from sysfs on every call, the kernel file is the source of truth.
func (c *Controller) Max() (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return readValue(c.maxBrightnessPath)
}

// percentOf converts a percentage of max to an absolute level. The
// fractional part is truncated, matching the kernel tools this replaces.
func percentOf(max, amount uint32) uint32 {
	return uint32(float64(max) / 100 * float64(amount))
}
