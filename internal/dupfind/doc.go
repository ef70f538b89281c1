// Package dupfind locates duplicate files under a directory tree by content.
//
// It walks the tree using fastwalk for parallel traversal, buckets the
// surviving files by size, and hashes only files that share their size with
// at least one other file. Files whose (size, digest) pair is shared by two
// or more files are reported as duplicate groups.
package dupfind
