package main

import (
	"errors"
	"fmt"
	"log"

	usb "github.com/kevmo314/go-usb"
	"golang.org/x/sys/unix"
)

// findMouse enumerates the bus and opens the first device matching the
// fixed vendor/product identity. A permission failure on a matching device
// is reported as ErrOpenFailed so the caller can tell "not plugged in" from
// "run it as root"; any other open failure moves on to the next match.
func findMouse() (*usb.DeviceHandle, error) {
	devices, err := usb.DeviceList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	for _, dev := range devices {
		if dev.Descriptor.VendorID != SHARK_VID || dev.Descriptor.ProductID != SHARK_PID {
			continue
		}

		if verbose {
			fmt.Printf("🔍 Found mouse %04x:%04x on bus %03d device %03d\n",
				dev.Descriptor.VendorID, dev.Descriptor.ProductID, dev.Bus, dev.Address)
		}

		handle, err := dev.Open()
		if err != nil {
			if errors.Is(err, usb.ErrPermissionDenied) || errors.Is(err, unix.EACCES) {
				return nil, fmt.Errorf("%w: %v (try running as root)", ErrOpenFailed, err)
			}
			log.Printf("warning: skipping %s: %v", dev.Path, err)
			continue
		}

		return handle, nil
	}

	return nil, ErrDeviceNotFound
}
