// Package daemon exports the backlight controller on the system D-Bus.
package daemon

import (
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/hoppxi/blctl/internal/subscribe"
	"github.com/hoppxi/blctl/pkg/backlight"
)

const (
	// DefaultBusName is the well-known name claimed on the system bus.
	DefaultBusName = "me.xela.blctl"

	// ObjectPath is where the controller object lives.
	ObjectPath = "/me/xela/blctl"

	// Interface is the D-Bus interface the five methods hang off.
	Interface = "me.xela.blctl1"

	// ChangedSignal is emitted with the new level after every write and
	// whenever the kernel reports an external backlight change.
	ChangedSignal = "BrightnessChanged"

	errKernelInterface = Interface + ".Error.KernelInterface"
)

// Service owns the bus connection and the exported controller object.
type Service struct {
	conn    *dbus.Conn
	ctrl    *backlight.Controller
	busName string
	stop    chan struct{}
}

// New builds a service around the given controller. Nothing touches the
// bus until Start.
func New(ctrl *backlight.Controller, busName string) *Service {
	if busName == "" {
		busName = DefaultBusName
	}
	return &Service{
		ctrl:    ctrl,
		busName: busName,
		stop:    make(chan struct{}),
	}
}

// Start connects to the system bus, exports the controller object and
// claims the well-known name. It also starts the uevent watcher that
// mirrors external brightness changes onto the bus.
func (s *Service) Start() error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	s.conn = conn

	obj := &controllerObject{svc: s}
	if err := conn.Export(obj, ObjectPath, Interface); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export controller object: %w", err)
	}
	if err := conn.Export(introspect.NewIntrospectable(introspectNode()), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export introspection data: %w", err)
	}

	reply, err := conn.RequestName(s.busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to request bus name %s: %w", s.busName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("bus name %s is already taken, is another blctl running?", s.busName)
	}

	go s.watchExternalChanges()

	log.Printf("Listening on D-Bus name %s, object %s", s.busName, ObjectPath)
	return nil
}

// Stop releases the bus name and closes the connection.
func (s *Service) Stop() {
	close(s.stop)
	if s.conn != nil {
		_, _ = s.conn.ReleaseName(s.busName)
		_ = s.conn.Close()
	}
}

// watchExternalChanges forwards kernel backlight uevents as
// BrightnessChanged signals. Hardware brightness keys handled by the
// firmware never go through us, this is how clients still hear about
// them.
func (s *Service) watchExternalChanges() {
	events := subscribe.BacklightEvents()

	for {
		select {
		case <-s.stop:
			return
		case <-events:
			value, err := s.ctrl.Get()
			if err != nil {
				log.Printf("Failed to read brightness after uevent: %v", err)
				continue
			}
			s.emitChanged(value)
		}
	}
}

func (s *Service) emitChanged(value uint32) {
	if s.conn == nil {
		return
	}
	if err := s.conn.Emit(ObjectPath, Interface+"."+ChangedSignal, value); err != nil {
		log.Printf("Failed to emit %s: %v", ChangedSignal, err)
	}
}

// controllerObject is the value exported on the bus. Only the five
// remote methods live here so Export does not leak lifecycle methods.
type controllerObject struct {
	svc *Service
}

// Increase raises the brightness by amount percent of the maximum
// supported level.
func (o *controllerObject) Increase(amount uint32) *dbus.Error {
	log.Printf("Received 'increase(amount: %d)' message", amount)

	value, err := o.svc.ctrl.Increase(amount)
	if err != nil {
		return kernelInterfaceError(err)
	}
	o.svc.emitChanged(value)
	return nil
}

// Decrease lowers the brightness by amount percent of the maximum
// supported level.
func (o *controllerObject) Decrease(amount uint32) *dbus.Error {
	log.Printf("Received 'decrease(amount: %d)' message", amount)

	value, err := o.svc.ctrl.Decrease(amount)
	if err != nil {
		return kernelInterfaceError(err)
	}
	o.svc.emitChanged(value)
	return nil
}

// Set writes the given brightness level, clamped to the supported range.
func (o *controllerObject) Set(value uint32) *dbus.Error {
	log.Printf("Received 'set(value: %d)' message", value)

	written, err := o.svc.ctrl.Set(value)
	if err != nil {
		return kernelInterfaceError(err)
	}
	o.svc.emitChanged(written)
	return nil
}

// Get returns the current brightness level.
func (o *controllerObject) Get() (uint32, *dbus.Error) {
	log.Printf("Received 'get()' message")

	value, err := o.svc.ctrl.Get()
	if err != nil {
		return 0, kernelInterfaceError(err)
	}
	return value, nil
}

// Max returns the maximum supported brightness level.
func (o *controllerObject) Max() (uint32, *dbus.Error) {
	log.Printf("Received 'max()' message")

	value, err := o.svc.ctrl.Max()
	if err != nil {
		return 0, kernelInterfaceError(err)
	}
	return value, nil
}

// kernelInterfaceError maps a controller error to a structured bus
// error. A bad sysfs node fails the one call instead of taking the
// whole daemon down with it.
func kernelInterfaceError(err error) *dbus.Error {
	return dbus.NewError(errKernelInterface, []interface{}{err.Error()})
}

func introspectNode() *introspect.Node {
	return &introspect.Node{
		Name: ObjectPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name: Interface,
				Methods: []introspect.Method{
					{Name: "Increase", Args: []introspect.Arg{
						{Name: "amount", Type: "u", Direction: "in"},
					}},
					{Name: "Decrease", Args: []introspect.Arg{
						{Name: "amount", Type: "u", Direction: "in"},
					}},
					{Name: "Set", Args: []introspect.Arg{
						{Name: "value", Type: "u", Direction: "in"},
					}},
					{Name: "Get", Args: []introspect.Arg{
						{Name: "value", Type: "u", Direction: "out"},
					}},
					{Name: "Max", Args: []introspect.Arg{
						{Name: "value", Type: "u", Direction: "out"},
					}},
				},
				Signals: []introspect.Signal{
					{Name: ChangedSignal, Args: []introspect.Arg{
						{Name: "value", Type: "u"},
					}},
				},
			},
		},
	}
}
