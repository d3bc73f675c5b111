// Package fileutil holds the file modes schemagraph writes with.
package fileutil

import "os"

// OwnerReadWrite is the mode for rewritten schema documents, which may
// describe private data models.
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the mode for generated source files, which build tools
// and other users need to read.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the mode for directories created for generated output.
const DirReadableByAll os.FileMode = 0o755
