package backlight

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readValue reads a whole kernel interface file and parses the trimmed
// text as an unsigned integer.
func readValue(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read kernel interface %s: %w", path, err)
	}

	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("failed to parse kernel interface %s data %q: %w", path, string(data), err)
	}

	return uint32(v), nil
}

// writeValue writes the value as decimal text to a kernel interface file.
// The file must already exist; sysfs nodes are never created by us.
// No trailing newline, the kernel does not want one.
func writeValue(path string, value uint32) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open kernel interface %s for writing: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.FormatUint(uint64(value), 10)); err != nil {
		return fmt.Errorf("failed to write to kernel interface %s: %w", path, err)
	}

	return nil
}
