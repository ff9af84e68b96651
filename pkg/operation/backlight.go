package operation

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

type backlight struct{}

// Backlight is the exported instance.
var Backlight backlight

const (
	blctlBus       = "me.xela.blctl"
	blctlPath      = "/me/xela/blctl"
	blctlInterface = "me.xela.blctl1"
)

// Increase raises the brightness by a percentage of the maximum level.
func (b *backlight) Increase(amount uint32) error {
	return b.callVoid("Increase", amount)
}

// Decrease lowers the brightness by a percentage of the maximum level.
func (b *backlight) Decrease(amount uint32) error {
	return b.callVoid("Decrease", amount)
}

// Set writes an absolute brightness level. The daemon clamps it to the
// supported range.
func (b *backlight) Set(value uint32) error {
	return b.callVoid("Set", value)
}

// Get returns the current brightness level.
func (b *backlight) Get() (uint32, error) {
	return b.callValue("Get")
}

// Max returns the maximum supported brightness level.
func (b *backlight) Max() (uint32, error) {
	return b.callValue("Max")
}

// Running reports whether a blctl daemon currently owns the bus name.
func (b *backlight) Running() (bool, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return false, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	var has bool
	err = conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, blctlBus).Store(&has)
	if err != nil {
		return false, fmt.Errorf("failed to query bus name owner: %w", err)
	}

	return has, nil
}

// Watch invokes onChange with the new level for every BrightnessChanged
// signal. It blocks until the bus connection drops.
func (b *backlight) Watch(onChange func(uint32)) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbus.ObjectPath(blctlPath)),
		dbus.WithMatchInterface(blctlInterface),
		dbus.WithMatchMember("BrightnessChanged"),
	); err != nil {
		return fmt.Errorf("failed to add signal match: %w", err)
	}

	ch := make(chan *dbus.Signal, 10)
	conn.Signal(ch)

	for sig := range ch {
		var value uint32
		if err := dbus.Store(sig.Body, &value); err != nil {
			continue
		}
		onChange(value)
	}

	return nil
}

func (b *backlight) callVoid(method string, args ...interface{}) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(blctlBus, dbus.ObjectPath(blctlPath))
	if call := obj.Call(blctlInterface+"."+method, 0, args...); call.Err != nil {
		return fmt.Errorf("%s call failed: %w", method, call.Err)
	}

	return nil
}

func (b *backlight) callValue(method string) (uint32, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return 0, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(blctlBus, dbus.ObjectPath(blctlPath))

	var value uint32
	if err := obj.Call(blctlInterface+"."+method, 0).Store(&value); err != nil {
		return 0, fmt.Errorf("%s call failed: %w", method, err)
	}

	return value, nil
}
