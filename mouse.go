package main

import (
	"errors"
	"fmt"
)

const (
	SHARK_VID = 0x3554
	SHARK_PID = 0xf509

	// Commands are always delivered through this interface, regardless of
	// which interface the first discovered endpoint belongs to.
	REPORT_INTERFACE = 1

	REPORT_SIZE = 17

	MAX_PROFILES = 4
	MIN_DPI      = 50
	MAX_DPI      = 26000
)

var (
	ErrDeviceNotFound = errors.New("mouse not found")
	ErrOpenFailed     = errors.New("failed to open mouse")
	ErrNoEndpoints    = errors.New("no endpoints found")
)

func validateProfile(profile int) error {
	if profile < 0 || profile >= MAX_PROFILES {
		return fmt.Errorf("invalid profile %d (valid: 0-%d)", profile, MAX_PROFILES-1)
	}
	return nil
}

func validateProfileCount(count int) error {
	if count < 1 || count > MAX_PROFILES {
		return fmt.Errorf("invalid profile count %d (valid: 1-%d)", count, MAX_PROFILES)
	}
	return nil
}

func validateDPI(dpi int) error {
	if dpi < MIN_DPI || dpi > MAX_DPI {
		return fmt.Errorf("invalid DPI %d (valid: %d-%d)", dpi, MIN_DPI, MAX_DPI)
	}
	return nil
}
