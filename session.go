package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	usb "github.com/kevmo314/go-usb"
	"golang.org/x/sys/unix"
)

// deviceHandle is the slice of *usb.DeviceHandle the session uses. Tests
// substitute a fake.
type deviceHandle interface {
	Descriptor() usb.DeviceDescriptor
	ConfigDescriptorByValue(index uint8) (*usb.ConfigDescriptor, error)
	SetConfiguration(config int) error
	SetInterfaceAltSetting(iface uint8, altSetting uint8) error
	ClaimInterface(iface uint8) error
	ReleaseInterface(iface uint8) error
	DetachKernelDriver(iface uint8) error
	AttachKernelDriver(iface uint8) error
	ControlTransfer(requestType, request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)
	Close() error
}

// session owns the claimed interfaces of an open device for the duration of
// one command. Whatever happens after setup starts, teardown releases every
// interface it claimed and reattaches every kernel driver it detached.
type session struct {
	h        deviceHandle
	claimed  []uint8
	detached []uint8
}

func newSession(h deviceHandle) *session {
	return &session{h: h}
}

// run claims the device, sends the reports in order and unwinds. The
// returned error reflects setup or transfer failures only; teardown problems
// are logged and never override the verdict.
func (s *session) run(reports ...[]byte) error {
	err := s.setup()
	if err == nil {
		err = s.send(reports)
	}
	s.teardown()
	return err
}

func (s *session) setup() error {
	endpoints := findEndpoints(s.h)
	if len(endpoints) == 0 {
		return ErrNoEndpoints
	}
	if verbose {
		for _, ep := range endpoints {
			fmt.Printf("🔍 Endpoint: %s\n", ep)
		}
	}

	// The first discovered endpoint decides what to activate.
	ep := endpoints[0]

	// The configuration must be selected while no interface is claimed.
	if err := s.h.SetConfiguration(int(ep.config)); err != nil {
		return fmt.Errorf("failed to set configuration %d: %w", ep.config, err)
	}

	for _, iface := range claimSet(ep.iface) {
		if err := s.claim(iface); err != nil {
			return err
		}
	}

	if err := s.h.SetInterfaceAltSetting(ep.iface, ep.altSetting); err != nil {
		return fmt.Errorf("failed to set alt setting %d on interface %d: %w",
			ep.altSetting, ep.iface, err)
	}

	return nil
}

// claimSet lists the interfaces a command needs: the discovered endpoint's
// interface plus the fixed report interface.
func claimSet(endpointIface uint8) []uint8 {
	if endpointIface == REPORT_INTERFACE {
		return []uint8{endpointIface}
	}
	return []uint8{endpointIface, REPORT_INTERFACE}
}

// claim takes exclusive ownership of one interface. usbfs has no
// side-effect-free "is a kernel driver bound" query, so the session probes
// by claiming: EBUSY means a driver holds the interface, in which case it is
// detached, recorded for reattachment, and the claim is retried.
func (s *session) claim(iface uint8) error {
	err := s.h.ClaimInterface(iface)
	if err == nil {
		s.claimed = append(s.claimed, iface)
		return nil
	}
	if !errors.Is(err, usb.ErrDeviceBusy) && !errors.Is(err, unix.EBUSY) {
		return fmt.Errorf("failed to claim interface %d: %w", iface, err)
	}

	if verbose {
		fmt.Printf("🔌 Detaching kernel driver from interface %d\n", iface)
	}
	if err := s.h.DetachKernelDriver(iface); err != nil {
		return fmt.Errorf("failed to detach kernel driver from interface %d: %w", iface, err)
	}
	s.detached = append(s.detached, iface)

	if err := s.h.ClaimInterface(iface); err != nil {
		return fmt.Errorf("failed to claim interface %d: %w", iface, err)
	}
	s.claimed = append(s.claimed, iface)
	return nil
}

func (s *session) send(reports [][]byte) error {
	for _, report := range reports {
		if verbose {
			fmt.Printf("📡 Sending report: % x\n", report)
		}
		if err := sendReport(s.h, report); err != nil {
			return err
		}
	}
	return nil
}

// teardown releases every claimed interface, then reattaches the kernel
// drivers detached during setup. Each step is attempted even when an earlier
// one failed; a release failure on one interface must not leave the others
// claimed.
func (s *session) teardown() {
	for _, iface := range s.claimed {
		if err := s.h.ReleaseInterface(iface); err != nil {
			log.Printf("warning: failed to release interface %d: %v", iface, err)
		}
	}
	s.claimed = nil

	if len(s.detached) == 0 {
		return
	}

	// Walk the descriptors again: claim and driver state changed since
	// setup.
	endpoints := findEndpoints(s.h)
	if verbose {
		fmt.Printf("🔍 %d endpoints after release\n", len(endpoints))
	}

	for _, iface := range s.detached {
		if verbose {
			fmt.Printf("🔌 Reattaching kernel driver to interface %d\n", iface)
		}
		if err := s.h.AttachKernelDriver(iface); err != nil {
			log.Printf("warning: failed to reattach kernel driver to interface %d: %v", iface, err)
		}
	}
	s.detached = nil
}

// runCommand opens the mouse, runs the reports through one session and
// closes the handle.
func runCommand(reports ...[]byte) error {
	handle, err := findMouse()
	if err != nil {
		return err
	}
	defer handle.Close()

	return newSession(handle).run(reports...)
}
