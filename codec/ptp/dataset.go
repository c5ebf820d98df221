package ptp

import (
	"fmt"
)

// DeviceInfo is the dataset returned in the data phase of GetDeviceInfo.
type DeviceInfo struct {
	StandardVersion           uint16   `json:"standard-version"`
	VendorExtensionID         uint32   `json:"vendor-extension-id"`
	VendorExtensionVersion    uint16   `json:"vendor-extension-version"`
	VendorExtensionDesc       string   `json:"vendor-extension-desc"`
	FunctionalMode            uint16   `json:"functional-mode"`
	OperationsSupported       []uint16 `json:"operations-supported"`
	EventsSupported           []uint16 `json:"events-supported"`
	DevicePropertiesSupported []uint16 `json:"device-properties-supported"`
	CaptureFormats            []uint16 `json:"capture-formats"`
	ImageFormats              []uint16 `json:"image-formats"`
	Manufacturer              string   `json:"manufacturer"`
	Model                     string   `json:"model"`
	DeviceVersion             string   `json:"device-version"`
	SerialNumber              string   `json:"serial-number"`
}

func (di *DeviceInfo) Encode() ([]byte, error) {
	var err error
	frame := make([]byte, 0, 128)
	frame = AppendUint16(frame, di.StandardVersion)
	frame = AppendUint32(frame, di.VendorExtensionID)
	frame = AppendUint16(frame, di.VendorExtensionVersion)
	if frame, err = AppendString(frame, di.VendorExtensionDesc); err != nil {
		return nil, err
	}
	frame = AppendUint16(frame, di.FunctionalMode)
	frame = AppendUint16Array(frame, di.OperationsSupported)
	frame = AppendUint16Array(frame, di.EventsSupported)
	frame = AppendUint16Array(frame, di.DevicePropertiesSupported)
	frame = AppendUint16Array(frame, di.CaptureFormats)
	frame = AppendUint16Array(frame, di.ImageFormats)
	for _, s := range []string{di.Manufacturer, di.Model, di.DeviceVersion, di.SerialNumber} {
		if frame, err = AppendString(frame, s); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// Decode parses the dataset; di is only updated when the whole dataset is valid.
func (di *DeviceInfo) Decode(frame []byte) error {
	r := &reader{data: frame}
	tmp := DeviceInfo{}
	tmp.StandardVersion = r.uint16()
	tmp.VendorExtensionID = r.uint32()
	tmp.VendorExtensionVersion = r.uint16()
	tmp.VendorExtensionDesc = r.string()
	tmp.FunctionalMode = r.uint16()
	tmp.OperationsSupported = r.uint16Array()
	tmp.EventsSupported = r.uint16Array()
	tmp.DevicePropertiesSupported = r.uint16Array()
	tmp.CaptureFormats = r.uint16Array()
	tmp.ImageFormats = r.uint16Array()
	tmp.Manufacturer = r.string()
	tmp.Model = r.string()
	tmp.DeviceVersion = r.string()
	tmp.SerialNumber = r.string()
	if r.err != nil {
		return r.err
	}
	*di = tmp
	return nil
}

func (di *DeviceInfo) String() string {
	return fmt.Sprintf("{ StandardVersion: %d, VendorExtensionID: 0x%x, Manufacturer: %s, Model: %s, DeviceVersion: %s, SerialNumber: %s, Operations: %d }",
		di.StandardVersion, di.VendorExtensionID, di.Manufacturer, di.Model, di.DeviceVersion, di.SerialNumber, len(di.OperationsSupported))
}
