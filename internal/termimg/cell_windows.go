//go:build windows

package termimg

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazyDLL("kernel32.dll")
	procGetCurrentConsoleFont = modkernel32.NewProc("GetCurrentConsoleFont")
)

type consoleFontInfo struct {
	nFont      uint32
	dwFontSize windows.Coord
}

// cellSize returns one terminal cell's pixel dimensions from the current
// console font, or zeros when the console does not report it.
func cellSize() (w, h int) {
	handle := windows.Handle(os.Stdout.Fd())

	var cfi consoleFontInfo
	ret, _, _ := procGetCurrentConsoleFont.Call(uintptr(handle), 0, uintptr(unsafe.Pointer(&cfi)))
	if ret == 0 {
		return 0, 0
	}
	return int(cfi.dwFontSize.X), int(cfi.dwFontSize.Y)
}
