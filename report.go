package main

// Report encoding for the vendor-specific SET_REPORT protocol.
//
// Every command is a fixed 17-byte payload:
//
//	[0x08, 0x07, 0x00, 0x00, opcode, length, payload..., checksum]
//
// The parameter bytes are followed by a complement byte (0x55 minus the
// payload sum, mod 256) and the final byte is a checksum derived from the
// opcode. Both wrap mod 256; the firmware rejects reports that don't match
// exactly.

const (
	opcodeProfileCount  = 0x02
	opcodeActiveProfile = 0x04
	opcodeProfileDPI    = 0x0c // + profile*4
)

func newReport(opcode, length byte, payload []byte) []byte {
	report := make([]byte, REPORT_SIZE)
	report[0] = 0x08   // Report ID
	report[1] = 0x07   // Command class
	report[2] = 0x00   // Reserved
	report[3] = 0x00   // Reserved
	report[4] = opcode // Command opcode
	report[5] = length // Payload length
	copy(report[6:REPORT_SIZE-1], payload)
	report[REPORT_SIZE-1] = byte(0x155 - (0x13 + int(opcode) + 0x55))
	return report
}

// encodeProfileCount sets how many of the stored profiles are active.
// Caller validates count (1-4).
func encodeProfileCount(count int) []byte {
	c := byte(count)
	return newReport(opcodeProfileCount, 0x02, []byte{c, 0x55 - c})
}

// encodeActiveProfile selects the active profile slot. Caller validates
// profile (0-3).
func encodeActiveProfile(profile int) []byte {
	p := byte(profile)
	return newReport(opcodeActiveProfile, 0x02, []byte{p, 0x55 - p})
}

// encodeProfileDPI programs a profile's DPI value. The firmware stores DPI
// as a 16-bit index of 50-DPI steps; the value is rounded down to a multiple
// of 50. Caller validates profile (0-3) and dpi (50-26000).
func encodeProfileDPI(profile, dpi int) []byte {
	opcode := byte(opcodeProfileDPI + profile*4)
	index := dpi/50 - 1
	lo := byte(index)
	hi := byte(index >> 8)
	return newReport(opcode, 0x04, []byte{
		lo,
		lo,
		hi * 0x44,
		0x55 - 2*lo - 0x44*hi,
	})
}
