// Package dfu implements the host side of the USB Device Firmware Upgrade
// class protocol (DFU 1.1) as used by Atmel bootloaders.
//
// A Session issues the seven class requests over a Transport, keeps the
// block transaction counter and caches the last GETSTATUS reply. MakeIdle
// drives a device from any state into DFU_IDLE. The USB transport is built on
// gousb; tests substitute a mock or a simulated bootloader.
package dfu
