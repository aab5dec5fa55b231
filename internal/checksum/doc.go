// Package checksum fingerprints credential sources.
//
// Two fingerprints are computed for every loaded source:
//   - Raw: SHA-256 of the bytes exactly as read
//   - Normalized: SHA-256 after CRLF/CR line endings become LF and trailing
//     whitespace is stripped from every line
//
// Sources that differ only in ways the loader ignores share a normalized
// checksum, so operators can tell a cosmetic re-export from a real change.
package checksum
