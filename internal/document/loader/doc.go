// Package loader turns files into validated documents.
//
// A [Loader] scans the leading front matter block, decodes it, assembles a
// [document.Document] and validates it. Loading is pure over the input
// bytes, so batches are parallelized across files with [Loader.LoadAll].
// [Expand] selects content files with doublestar globs and [Loader.Watch]
// reloads them as they change.
package loader
