// Package logtail reads the end of roster's own log file for the in-app log
// overlay.
//
// Read scans the file once and keeps a window of at most maxLines lines, so
// memory stays bounded however large the log grows. Level recognises the
// bracketed level tag hclog writes ("[ERROR]", "[WARN]", ...) so the UI can
// color each line.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	for _, line := range lines {
//		switch logtail.Level(line) {
//		case "error":
//			// render in the danger color
//		}
//	}
package logtail
