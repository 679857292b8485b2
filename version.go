package storelog

// Version is the storelog release.
const Version = "0.3.0"
