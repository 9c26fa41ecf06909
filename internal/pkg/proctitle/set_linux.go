//go:build linux

package proctitle

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// comm is limited to 16 bytes including the trailing NUL.
const commLen = 16

// Set renames the process so it shows up as title in ps and top.
func Set(title string) error {
	title, err := normalize(title)
	if err != nil {
		return err
	}
	rewriteArgs(title)

	buf := make([]byte, commLen)
	copy(buf[:commLen-1], title)
	return unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0)
}
