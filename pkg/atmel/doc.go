// Package atmel implements the Atmel vendor command set carried over DFU
// DNLOAD/UPLOAD requests by the 8051, AVR, AVR32 and XMEGA USB bootloaders.
//
// A Device wraps an idle dfu.Session. Memory is addressed in 64 KiB pages
// selected with SelectPage; within a page, commands carry 16-bit start and
// end offsets. Images move in blocks produced by a memory.Buffer.
//
// Simulator is an in-memory bootloader speaking the same command set. It
// implements dfu.Transport and backs the package tests and the command
// line's simulated transport.
package atmel
