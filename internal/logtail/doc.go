// Package logtail reads the end of the lifter log for the in-app
// diagnostics view.
//
// # Reading
//
// Read returns the last maxLines of a file using a ring buffer of size
// maxLines, so memory stays O(maxLines) no matter how large the log grows.
// A missing file is not an error; it returns nil, nil. Rotated backups are
// not read.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Parsing
//
// The log is written by logrus' text formatter:
//
//	time="2025-10-08T21:01:05+02:00" level=error msg="catalog load failed" error="..."
//
// That is logfmt, so Parse decodes it with go-logfmt and splits the pairs
// into time, level, message and the remaining fields. Lines in any other
// shape (a panic trace, say) are kept whole as
// the message at info level, so nothing is dropped from the view.
//
// Filter applies a minimum severity. The diagnostics view uses it to switch
// between all lines and warnings-and-above.
package logtail
