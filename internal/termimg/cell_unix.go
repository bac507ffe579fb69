//go:build !windows

package termimg

import (
	"os"

	"golang.org/x/sys/unix"
)

// cellSize returns one terminal cell's pixel dimensions, or zeros when the
// terminal does not report pixel geometry.
func cellSize() (w, h int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 0, 0
	}
	return int(ws.Xpixel) / int(ws.Col), int(ws.Ypixel) / int(ws.Row)
}
