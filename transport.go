package main

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// HID class SET_REPORT control transfer parameters. Fixed for this device:
// the report always travels host-to-device through interface 1.
const (
	setReportRequestType = 0x21   // class request, interface recipient, host to device
	setReportRequest     = 0x09   // SET_REPORT
	setReportValue       = 0x0208 // output report, report ID 0x08
	setReportIndex       = 0x0001

	transferTimeout = 1 * time.Second
)

// sendReport issues one blocking control transfer carrying the encoded
// report. There is no retry: a failure is classified and handed straight
// back to the session.
func sendReport(h deviceHandle, report []byte) error {
	n, err := h.ControlTransfer(setReportRequestType, setReportRequest,
		setReportValue, setReportIndex, report, transferTimeout)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", classifyTransferError(err))
	}
	if n != len(report) {
		return fmt.Errorf("transfer failed: short write (%d of %d bytes)", n, len(report))
	}
	return nil
}

func classifyTransferError(err error) error {
	switch {
	case errors.Is(err, unix.ETIMEDOUT):
		return fmt.Errorf("timeout: %w", err)
	case errors.Is(err, unix.EPIPE):
		return fmt.Errorf("endpoint stalled: %w", err)
	case errors.Is(err, unix.ENODEV), errors.Is(err, unix.ESHUTDOWN):
		return fmt.Errorf("device disconnected: %w", err)
	default:
		return err
	}
}
