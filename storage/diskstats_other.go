//go:build !linux && !darwin

package storage

// diskStats is not available, (0, 0) means unknown
func diskStats(_ string) (avail, total uint64) { return 0, 0 }
