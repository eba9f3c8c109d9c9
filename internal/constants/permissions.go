package constants

import "os"

// Directory permission constants.
const (
	// DirPermStandard is the standard directory permission (owner rwx, group r-x).
	DirPermStandard os.FileMode = 0750
)

// File permission constants.
const (
	// FilePermLog is the permission of log files created by file sinks (owner rw, group r).
	FilePermLog os.FileMode = 0640

	// FilePermReadWrite is the standard file permission (owner rw, group r, other r).
	FilePermReadWrite os.FileMode = 0644
)
