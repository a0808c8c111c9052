// Package installer writes rendered files to their fixed locations and
// removes them again.
//
// Writes go through a temporary file in the target directory followed by a
// rename, so a crash never leaves a truncated config or unit behind. Removal
// is idempotent. Both operations log their outcome and report it as a bool:
// filesystem problems are expected on a misconfigured host and are handled by
// the caller setting its own status, not by unwinding.
package installer
