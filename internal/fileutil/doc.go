// Package fileutil enumerates the entries of a root for an ordering pass.
//
// Discovery lists every file and directory under a root, pruning anything the
// root's ignore matcher excludes. Pruned directories are never descended into,
// so an ignored subtree costs a single match test regardless of its size.
//
// # Guarantees
//
//   - Every discovered path is absolute
//   - The result is a set: no duplicates regardless of traversal order
//   - Directories and files are both standalone entries
//   - Traversal is sequential; subdirectories are not walked in parallel
//
// # Failure Model
//
// Any error while listing a directory aborts discovery and is returned to the
// caller wrapped with the directory that failed. There is no partial-result
// suppression: the ordering driver logs the error and skips the root.
//
// # Usage
//
//	matcher, _ := ignore.Load(fs, root.Path)
//	entries := fileutil.NewEntrySet()
//	if err := fileutil.Discover(fs, root.Path, matcher, entries); err != nil {
//	    return err
//	}
//	for _, path := range entries.Paths() {
//	    fmt.Println(path)
//	}
//
// Filesystem access goes through go-billy so passes can run against the real
// disk (osfs) or an in-memory tree (memfs) in tests.
package fileutil
