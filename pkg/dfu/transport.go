package dfu

// Transport carries DFU class requests to a device. It mirrors
// gousb.Device.Control: rType is bmRequestType, request is bRequest, val and
// idx are wValue and wIndex, and data is the data stage in either direction.
type Transport interface {
	Control(rType, request uint8, val, idx uint16, data []byte) (int, error)
	// Reset issues a USB port reset. The device re-enumerates afterwards.
	Reset() error
}
