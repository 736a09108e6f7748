// Package filesystem provides a read-only filesystem abstraction.
//
// The input loader reads through FileSystemProvider so tests can supply
// documents from memory instead of touching disk.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
