package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "attackshark-dpi",
	Short: "Attack Shark Mouse DPI Profile Tool",
	Long:  "Configures DPI profiles on an Attack Shark gaming mouse (3554:f509) over USB",
}

var activateCmd = &cobra.Command{
	Use:   "activate [count]",
	Short: "Set how many DPI profiles are active (1-4)",
	Args:  cobra.ExactArgs(1),
	Run:   runActivate,
}

var selectCmd = &cobra.Command{
	Use:   "select [profile]",
	Short: "Select the active DPI profile (0-3)",
	Args:  cobra.ExactArgs(1),
	Run:   runSelect,
}

var setCmd = &cobra.Command{
	Use:   "set [profile] [dpi]",
	Short: "Program a profile's DPI value (50-26000)",
	Args:  cobra.ExactArgs(2),
	Run:   runSet,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Program the whole profile layout from the config file",
	Run:   runApply,
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Print device and endpoint information",
	Run:   runDebug,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(debugCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fail prints the error and exits. A missing mouse gets its own exit code
// so scripts can tell "not plugged in" from everything else.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	if errors.Is(err, ErrDeviceNotFound) {
		os.Exit(2)
	}
	os.Exit(1)
}

func parseIntArg(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return n, nil
}

func runActivate(cmd *cobra.Command, args []string) {
	count, err := parseIntArg("profile count", args[0])
	if err != nil {
		fail(err)
	}
	if err := validateProfileCount(count); err != nil {
		fail(err)
	}

	if err := runCommand(encodeProfileCount(count)); err != nil {
		fail(err)
	}
	fmt.Printf("✅ %d profiles active\n", count)
}

func runSelect(cmd *cobra.Command, args []string) {
	profile, err := parseIntArg("profile", args[0])
	if err != nil {
		fail(err)
	}
	if err := validateProfile(profile); err != nil {
		fail(err)
	}

	if err := runCommand(encodeActiveProfile(profile)); err != nil {
		fail(err)
	}
	fmt.Printf("✅ Profile %d selected\n", profile)
}

func runSet(cmd *cobra.Command, args []string) {
	profile, err := parseIntArg("profile", args[0])
	if err != nil {
		fail(err)
	}
	dpi, err := parseIntArg("DPI value", args[1])
	if err != nil {
		fail(err)
	}
	if err := validateProfile(profile); err != nil {
		fail(err)
	}
	if err := validateDPI(dpi); err != nil {
		fail(err)
	}

	if err := runCommand(encodeProfileDPI(profile, dpi)); err != nil {
		fail(err)
	}
	fmt.Printf("✅ Profile %d set to %d DPI\n", profile, dpi-dpi%50)
}

func runApply(cmd *cobra.Command, args []string) {
	config, err := LoadConfig(configFile)
	if err != nil {
		fail(err)
	}

	if err := runCommand(config.Reports()...); err != nil {
		fail(err)
	}
	fmt.Printf("✅ Applied %d profiles, profile %d active\n",
		config.ProfileCount, config.ActiveProfile)
}

func runDebug(cmd *cobra.Command, args []string) {
	fmt.Println("🔧 Attack Shark Device Debug")
	fmt.Println("============================")

	handle, err := findMouse()
	if err != nil {
		fail(err)
	}
	defer handle.Close()

	dev := handle.Device()
	desc := handle.Descriptor()
	fmt.Printf("Bus %03d Device %03d ID %04x:%04x\n",
		dev.Bus, dev.Address, desc.VendorID, desc.ProductID)
	fmt.Printf("Configurations %d Packet size %d\n",
		desc.NumConfigurations, desc.MaxPacketSize0)

	if product, err := handle.StringDescriptor(desc.ProductIndex); err == nil && product != "" {
		fmt.Printf("Product: %s\n", product)
	}

	for n := uint8(0); n < desc.NumConfigurations; n++ {
		config, err := handle.ConfigDescriptorByValue(n)
		if err != nil {
			fmt.Printf("⚠️ Config %d unreadable: %v\n", n, err)
			continue
		}
		fmt.Printf("Config %d: max power %d, %d interfaces\n",
			config.ConfigurationValue, config.MaxPower, config.NumInterfaces)
		for _, iface := range config.Interfaces {
			for _, alt := range iface.AltSettings {
				fmt.Printf("  Interface %d alt %d class %02x, %d endpoints\n",
					alt.InterfaceNumber, alt.AlternateSetting,
					alt.InterfaceClass, alt.NumEndpoints)
				for _, ep := range alt.Endpoints {
					fmt.Printf("    Endpoint 0x%02x %s %s, max packet %d\n",
						ep.EndpointAddr, directionName(ep.IsInput()),
						transferTypeName(uint8(ep.TransferType())), ep.MaxPacketSize)
				}
			}
		}
	}

	fmt.Println("✅ Device opened successfully")
}

func directionName(in bool) string {
	if in {
		return "IN"
	}
	return "OUT"
}

func transferTypeName(t uint8) string {
	switch t {
	case 0:
		return "Control"
	case 1:
		return "Isochronous"
	case 2:
		return "Bulk"
	default:
		return "Interrupt"
	}
}
