package fsutil

// Permission modes for files and directories created by dscache.
const (
	FileModeDefault = 0o644 // -rw-r--r--: downloaded dataset files
	FileModeSecure  = 0o600 // -rw-------: config files that may sit next to credentials

	DirModeDefault  = 0o755 // drwxr-xr-x: dataset cache tree
	DirModeReadOnly = 0o555 // dr-xr-xr-x
)
