package backlight

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDevice lays out a fake sysfs backlight device in a temp dir.
func newTestDevice(t *testing.T, current, max string) (string, *Controller) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte(current), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "max_brightness"), []byte(max), 0644))

	return dir, NewController(dir)
}

func storedBrightness(t *testing.T, dir string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "brightness"))
	require.NoError(t, err)
	return string(data)
}

func TestIncrease_PercentOfMax(t *testing.T) {
	dir, ctrl := newTestDevice(t, "100", "255")

	// delta = trunc(255/100 * 10) = trunc(25.5) = 25
	value, err := ctrl.Increase(10)

	require.NoError(t, err)
	assert.Equal(t, uint32(125), value)
	assert.Equal(t, "125", storedBrightness(t, dir))
}

func TestIncrease_ClampsAtMax(t *testing.T) {
	dir, ctrl := newTestDevice(t, "250", "255")

	value, err := ctrl.Increase(10)

	require.NoError(t, err)
	assert.Equal(t, uint32(255), value)
	assert.Equal(t, "255", storedBrightness(t, dir))
}

func TestIncrease_OverHundredPercentStillClamps(t *testing.T) {
	dir, ctrl := newTestDevice(t, "0", "255")

	value, err := ctrl.Increase(200)

	require.NoError(t, err)
	assert.Equal(t, uint32(255), value)
	assert.Equal(t, "255", storedBrightness(t, dir))
}

func TestIncrease_ZeroAmountKeepsLevel(t *testing.T) {
	dir, ctrl := newTestDevice(t, "42", "255")

	value, err := ctrl.Increase(0)

	require.NoError(t, err)
	assert.Equal(t, uint32(42), value)
	assert.Equal(t, "42", storedBrightness(t, dir))
}

func TestDecrease_PercentOfMax(t *testing.T) {
	dir, ctrl := newTestDevice(t, "200", "255")

	// delta = trunc(255/100 * 10) = 25
	value, err := ctrl.Decrease(10)

	require.NoError(t, err)
	assert.Equal(t, uint32(175), value)
	assert.Equal(t, "175", storedBrightness(t, dir))
}

func TestDecrease_FloorsAtZero(t *testing.T) {
	dir, ctrl := newTestDevice(t, "10", "255")

	// delta = trunc(255/100 * 50) = 127 > current
	value, err := ctrl.Decrease(50)

	require.NoError(t, err)
	assert.Equal(t, uint32(0), value)
	assert.Equal(t, "0", storedBrightness(t, dir))
}

func TestSet_ClampsToMax(t *testing.T) {
	dir, ctrl := newTestDevice(t, "0", "255")

	value, err := ctrl.Set(300)

	require.NoError(t, err)
	assert.Equal(t, uint32(255), value)
	assert.Equal(t, "255", storedBrightness(t, dir))
}

func TestSet_WithinRangeIsExact(t *testing.T) {
	dir, ctrl := newTestDevice(t, "0", "255")

	value, err := ctrl.Set(100)

	require.NoError(t, err)
	assert.Equal(t, uint32(100), value)
	assert.Equal(t, "100", storedBrightness(t, dir))
}

func TestGet_RoundTripsLastWrite(t *testing.T) {
	_, ctrl := newTestDevice(t, "0", "255")

	_, err := ctrl.Set(180)
	require.NoError(t, err)

	value, err := ctrl.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(180), value)
}

func TestMax_UnaffectedByBrightnessWrites(t *testing.T) {
	_, ctrl := newTestDevice(t, "0", "255")

	_, err := ctrl.Set(100)
	require.NoError(t, err)

	max, err := ctrl.Max()
	require.NoError(t, err)
	assert.Equal(t, uint32(255), max)
}

func TestMax_IsReReadEveryCall(t *testing.T) {
	dir, ctrl := newTestDevice(t, "0", "255")

	// Simulate the kernel changing the limit between calls.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "max_brightness"), []byte("100"), 0644))

	value, err := ctrl.Set(300)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), value)
}

func TestParse_ToleratesSurroundingWhitespace(t *testing.T) {
	_, ctrl := newTestDevice(t, "100\n", " 255 \n")

	value, err := ctrl.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(100), value)

	max, err := ctrl.Max()
	require.NoError(t, err)
	assert.Equal(t, uint32(255), max)
}

func TestMalformedBrightness_FailsWithoutWriting(t *testing.T) {
	dir, ctrl := newTestDevice(t, "not-a-number", "255")

	_, err := ctrl.Increase(10)

	assert.Error(t, err)
	assert.Equal(t, "not-a-number", storedBrightness(t, dir))
}

func TestMalformedMax_FailsWithoutWriting(t *testing.T) {
	dir, ctrl := newTestDevice(t, "100", "")

	_, err := ctrl.Decrease(10)

	assert.Error(t, err)
	assert.Equal(t, "100", storedBrightness(t, dir))
}

func TestMissingDevice_Fails(t *testing.T) {
	ctrl := NewController(filepath.Join(t.TempDir(), "gone"))

	_, err := ctrl.Get()
	assert.Error(t, err)

	_, err = ctrl.Set(10)
	assert.Error(t, err)
}

func TestConcurrentIncreases_AreNotLost(t *testing.T) {
	dir, ctrl := newTestDevice(t, "0", "1000")

	// Each call adds trunc(1000/100 * 1) = 10.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ctrl.Increase(1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := strconv.Atoi(storedBrightness(t, dir))
	require.NoError(t, err)
	assert.Equal(t, 100, final)
}
