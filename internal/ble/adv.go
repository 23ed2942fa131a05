package ble

import (
	"strings"

	"github.com/google/uuid"
)

// AD structure types used in the advertising data.
const (
	adTypeFlags        = 0x01
	adTypeShortName    = 0x08 // shortened local name
	adTypeName         = 0x09 // complete local name
	adType128BitUUIDs  = 0x07 // complete list of 128-bit service UUIDs
	adFlagsGeneralDisc = 0x06 // LE general discoverable, BR/EDR unsupported
)

// maxPDU is the payload limit of a legacy advertising or scan response PDU.
const maxPDU = 31

// DeriveName builds the advertised device name from a base and the
// adapter's own hardware address: "<base>-<last 2 address bytes in hex>".
// Stable per unit, distinguishable across multiple deployed devices.
func DeriveName(base, hwAddr string) string {
	h := strings.ToUpper(strings.NewReplacer(":", "", "-", "").Replace(hwAddr))
	if len(h) < 4 {
		return base
	}
	return base + "-" + h[len(h)-4:]
}

// AdvertisingPayload builds the raw advertising PDU data: flags and the
// 128-bit service UUID list (UUID bytes little-endian, per the AD format).
// The UUID list alone takes 18 of the 31 bytes, so the device name does not
// fit here and goes in the scan response instead.
func AdvertisingPayload() []byte {
	ad := make([]byte, 0, maxPDU)

	ad = append(ad, 2, adTypeFlags, adFlagsGeneralDisc)

	svc := uuid.MustParse(ServiceUUIDString)
	ad = append(ad, 17, adType128BitUUIDs)
	for i := 15; i >= 0; i-- {
		ad = append(ad, svc[i])
	}

	return ad
}

// ScanResponsePayload builds the scan response data carrying the local
// name. A name longer than the PDU allows is truncated and marked as a
// shortened name.
func ScanResponsePayload(name string) []byte {
	adType := byte(adTypeName)
	if len(name) > maxPDU-2 {
		name = name[:maxPDU-2]
		adType = adTypeShortName
	}

	sr := make([]byte, 0, maxPDU)
	sr = append(sr, byte(len(name)+1), adType)
	sr = append(sr, name...)
	return sr
}
