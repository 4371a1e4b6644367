package main

import (
	"testing"

	usb "github.com/kevmo314/go-usb"
)

func testConfig(value uint8, ifaces ...usb.Interface) *usb.ConfigDescriptor {
	return &usb.ConfigDescriptor{
		ConfigurationValue: value,
		NumInterfaces:      uint8(len(ifaces)),
		Interfaces:         ifaces,
	}
}

func testInterface(number uint8, alts ...usb.InterfaceAltSetting) usb.Interface {
	for i := range alts {
		alts[i].InterfaceNumber = number
	}
	return usb.Interface{AltSettings: alts}
}

func testAltSetting(alt uint8, addrs ...uint8) usb.InterfaceAltSetting {
	endpoints := make([]usb.Endpoint, len(addrs))
	for i, addr := range addrs {
		endpoints[i] = usb.Endpoint{EndpointAddr: addr}
	}
	return usb.InterfaceAltSetting{
		AlternateSetting: alt,
		NumEndpoints:     uint8(len(addrs)),
		Endpoints:        endpoints,
	}
}

func TestCollectEndpoints(t *testing.T) {
	configs := []*usb.ConfigDescriptor{
		testConfig(1, testInterface(0, testAltSetting(0, 0x81, 0x02))),
		testConfig(2, testInterface(0, testAltSetting(0, 0x83, 0x04))),
	}

	records := collectEndpoints(configs)
	want := []endpointRecord{
		{config: 1, iface: 0, altSetting: 0, address: 0x81},
		{config: 1, iface: 0, altSetting: 0, address: 0x02},
		{config: 2, iface: 0, altSetting: 0, address: 0x83},
		{config: 2, iface: 0, altSetting: 0, address: 0x04},
	}

	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestCollectEndpointsAltSettings(t *testing.T) {
	configs := []*usb.ConfigDescriptor{
		testConfig(1, testInterface(2,
			testAltSetting(0, 0x81),
			testAltSetting(1, 0x81, 0x02),
		)),
	}

	records := collectEndpoints(configs)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0] != (endpointRecord{config: 1, iface: 2, altSetting: 0, address: 0x81}) {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[2] != (endpointRecord{config: 1, iface: 2, altSetting: 1, address: 0x02}) {
		t.Errorf("record 2 = %+v", records[2])
	}
}

func TestCollectEndpointsEmpty(t *testing.T) {
	if records := collectEndpoints(nil); len(records) != 0 {
		t.Errorf("got %d records from empty tree, want 0", len(records))
	}
	configs := []*usb.ConfigDescriptor{
		testConfig(1, testInterface(0, testAltSetting(0))),
	}
	if records := collectEndpoints(configs); len(records) != 0 {
		t.Errorf("got %d records from endpoint-less tree, want 0", len(records))
	}
}
