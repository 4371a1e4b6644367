package main

import (
	"fmt"
	"log"

	usb "github.com/kevmo314/go-usb"
)

// endpointRecord identifies one endpoint by the descriptor path leading to
// it. The first record found decides which configuration, interface and
// alternate setting the session activates.
type endpointRecord struct {
	config     uint8
	iface      uint8
	altSetting uint8
	address    uint8
}

func (e endpointRecord) String() string {
	return fmt.Sprintf("config %d iface %d alt %d addr 0x%02x",
		e.config, e.iface, e.altSetting, e.address)
}

// findEndpoints walks every configuration of the device and returns one
// record per endpoint, in descriptor order. Configurations whose descriptor
// cannot be read are skipped with a warning. The walk is never cached: the
// session runs it again after releasing the interfaces, since claim and
// driver state may have changed in between.
func findEndpoints(h deviceHandle) []endpointRecord {
	numConfigs := h.Descriptor().NumConfigurations

	configs := make([]*usb.ConfigDescriptor, 0, numConfigs)
	for n := uint8(0); n < numConfigs; n++ {
		config, err := h.ConfigDescriptorByValue(n)
		if err != nil {
			log.Printf("warning: skipping config %d: %v", n, err)
			continue
		}
		configs = append(configs, config)
	}

	return collectEndpoints(configs)
}

func collectEndpoints(configs []*usb.ConfigDescriptor) []endpointRecord {
	var records []endpointRecord
	for _, config := range configs {
		for _, iface := range config.Interfaces {
			for _, alt := range iface.AltSettings {
				for _, ep := range alt.Endpoints {
					records = append(records, endpointRecord{
						config:     config.ConfigurationValue,
						iface:      alt.InterfaceNumber,
						altSetting: alt.AlternateSetting,
						address:    ep.EndpointAddr,
					})
				}
			}
		}
	}
	return records
}
