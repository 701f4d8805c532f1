package models

// EntryKind tags a discovered entry as a file or a directory
type EntryKind int

const (
	// KindFile is a regular file (or anything that is not a directory)
	KindFile EntryKind = iota
	// KindDirectory is a directory
	KindDirectory
)

// String returns a human-readable representation of the entry kind
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Entry is an absolute path discovered under a Root.
type Entry struct {
	Path string
	Kind EntryKind
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}
