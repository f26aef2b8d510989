//go:build linux || darwin

package storage

import "golang.org/x/sys/unix"

// diskStats returns the bytes available to unprivileged processes and the total size
// of the filesystem containing path
func diskStats(path string) (avail, total uint64) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0
	}
	bsize := uint64(st.Bsize)
	return uint64(st.Bavail) * bsize, uint64(st.Blocks) * bsize
}
