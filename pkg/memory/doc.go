// Package memory models a flash image held on the host side of an Atmel DFU
// transfer.
//
// A Buffer owns a byte array the size of the target memory, a parallel
// validity map, and three inclusive ranges: the bounding box of valid data,
// the writable region of the target, and the block cursor used while
// streaming to or from the device. Blocks never exceed MaxTransferSize bytes
// and never cross a 64 KiB page, matching what the bootloader accepts in a
// single request.
//
// Output buffers (hex image → device) yield blocks that cover runs of valid
// bytes only. Input buffers (device → host) yield fixed-size blocks over the
// data range.
package memory
