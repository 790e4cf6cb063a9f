// Package logtail reads the end of the mesonconfig log file.
//
// The TUI owns the terminal, so a session's diagnostics only go to the file
// named by --log-file or the log_file setting. Tail extracts the last
// records from that file with a ring buffer: one sequential pass and
// O(maxLines) memory regardless of file size. AtLeast filters records by
// the level tag charmbracelet/log's text formatter writes (DEBU, INFO,
// WARN, ERRO, FATA); untagged continuation lines follow the record they
// belong to.
//
// A missing file yields no lines rather than an error, since nothing has
// been logged yet.
package logtail
