package target

// builtin lists the Atmel DFU bootloader targets known without a descriptor
// file. Values follow Atmel's bootloader documentation (AT89C51, AVR,
// AVR32 UC3 and XMEGA application notes).
var builtin = []Descriptor{
	{Name: "at89c51snd1c", Family: Family8051, VendorID: 0x03eb, ProductID: 0x2fff, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at89c51snd2c", Family: Family8051, VendorID: 0x03eb, ProductID: 0x2fff, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at89c5130", Family: Family8051, VendorID: 0x03eb, ProductID: 0x2ffd, MemorySize: 0x04000, BootloaderSize: 0x0000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 128, EEPROMSize: 0x0400},
	{Name: "at89c5131", Family: Family8051, VendorID: 0x03eb, ProductID: 0x2ffd, MemorySize: 0x08000, BootloaderSize: 0x0000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 128, EEPROMSize: 0x0400},
	{Name: "at89c5132", Family: Family8051, VendorID: 0x03eb, ProductID: 0x2fff, MemorySize: 0x10000, BootloaderSize: 0x0C00, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at90usb1287", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ffb, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x1000},
	{Name: "at90usb1286", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ffb, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x1000},
	{Name: "at90usb1287-4k", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ffb, MemorySize: 0x20000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x1000},
	{Name: "at90usb1286-4k", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ffb, MemorySize: 0x20000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x1000},
	{Name: "at90usb647", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ff9, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0800},
	{Name: "at90usb646", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ff9, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0800},
	{Name: "at90usb162", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ffa, MemorySize: 0x04000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0200},
	{Name: "at90usb82", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ff7, MemorySize: 0x02000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0200},
	{Name: "atmega32u6", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ff2, MemorySize: 0x08000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0400},
	{Name: "atmega32u4", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ff4, MemorySize: 0x08000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0400},
	{Name: "atmega32u2", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ff0, MemorySize: 0x08000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0400},
	{Name: "atmega16u4", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2ff3, MemorySize: 0x04000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0200},
	{Name: "atmega16u2", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2fef, MemorySize: 0x04000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0200},
	{Name: "atmega8u2", Family: FamilyAVR, VendorID: 0x03eb, ProductID: 0x2fee, MemorySize: 0x02000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 128, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 128, EEPROMSize: 0x0200},
	{Name: "at32uc3a0128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a1128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a0256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a1256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a0512", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a1512", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a0512es", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a1512es", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff8, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a364", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff1, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a364s", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff1, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a3128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff1, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a3128s", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff1, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a3256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff1, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a3256s", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff1, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3a4256s", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff1, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b064", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b164", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b0128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b1128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b0256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b1256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b0256es", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b1256es", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b0512", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3b1512", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2ff6, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c064", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c0128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c0256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c0512", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c164", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c1128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c1256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c1512", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c264", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x10000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c2128", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c2256", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "at32uc3c2512", Family: FamilyAVR32, VendorID: 0x03eb, ProductID: 0x2feb, MemorySize: 0x80000, BootloaderSize: 0x2000, BootloaderAtHighMem: false, FlashPageSize: 512, InitialAbort: false, HonorInterfaceClass: true, EEPROMPageSize: 0, EEPROMSize: 0},
	{Name: "atxmega64a1u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe8, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega128a1u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fed, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega64a3u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe5, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega128a3u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe6, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 512, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega192a3u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe7, MemorySize: 0x30000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 512, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega256a3u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fec, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 512, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x1000},
	{Name: "atxmega16a4u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe3, MemorySize: 0x04000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0400},
	{Name: "atxmega32a4u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe4, MemorySize: 0x08000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0400},
	{Name: "atxmega64a4u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fdd, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega128a4u", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fde, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega256a3b", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe2, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 512, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x1000},
	{Name: "atxmega64b1", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe1, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega128b1", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fea, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega64b3", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fdf, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega128b3", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fe0, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega64c3", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fd6, MemorySize: 0x10000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega128c3", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fd7, MemorySize: 0x20000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 512, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x0800},
	{Name: "atxmega256c3", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fda, MemorySize: 0x40000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 512, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x1000},
	{Name: "atxmega384c3", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fdb, MemorySize: 0x60000, BootloaderSize: 0x2000, BootloaderAtHighMem: true, FlashPageSize: 512, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x1000},
	{Name: "atxmega16c4", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fd8, MemorySize: 0x4000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x400},
	{Name: "atxmega32c4", Family: FamilyXMEGA, VendorID: 0x03eb, ProductID: 0x2fd9, MemorySize: 0x8000, BootloaderSize: 0x1000, BootloaderAtHighMem: true, FlashPageSize: 256, InitialAbort: true, HonorInterfaceClass: false, EEPROMPageSize: 32, EEPROMSize: 0x400},
}
