package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

const maxLineBytes = 1024 * 1024

// Read returns the last maxLines lines of the file at path, oldest first.
// maxLines <= 0 returns every line. A missing file yields no lines and no
// error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var window []string
	if maxLines > 0 {
		window = make([]string, 0, maxLines)
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if maxLines > 0 && len(window) == maxLines {
			// Shift left in place; capacity stays at maxLines.
			copy(window, window[1:])
			window = window[:maxLines-1]
		}
		window = append(window, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return window, nil
}

// Level extracts the hclog level from a formatted line such as
//
//	2026-10-17T09:12:44.120+0200 [ERROR] roster.directory: fetch users failed: ...
//
// and returns it lowercased ("error", "warn", "info", "debug", "trace"), or
// "" for lines that carry no level (continuations, foreign output).
func Level(line string) string {
	open := strings.IndexByte(line, '[')
	if open < 0 {
		return ""
	}
	end := strings.IndexByte(line[open:], ']')
	if end < 0 {
		return ""
	}
	switch tag := strings.TrimSpace(line[open+1 : open+end]); tag {
	case "ERROR":
		return "error"
	case "WARN":
		return "warn"
	case "INFO":
		return "info"
	case "DEBUG":
		return "debug"
	case "TRACE":
		return "trace"
	}
	return ""
}
