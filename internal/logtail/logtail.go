package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-logfmt/logfmt"
	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed logrus text line.
type Entry struct {
	Time    string
	Level   logrus.Level
	Message string
	// Fields holds the remaining key=value pairs in line order.
	Fields [][2]string
	Raw    string
}

// Parse splits a logrus text-formatter line into its parts. Lines that are
// not in that format come back with Message set to the raw line and
// InfoLevel.
func Parse(line string) Entry {
	entry := Entry{Level: logrus.InfoLevel, Raw: line}
	pairs, ok := decodePairs(line)
	if !ok {
		entry.Message = line
		return entry
	}
	for _, kv := range pairs {
		switch kv[0] {
		case "time":
			entry.Time = kv[1]
		case "level":
			if lvl, err := logrus.ParseLevel(kv[1]); err == nil {
				entry.Level = lvl
			}
		case "msg":
			entry.Message = kv[1]
		default:
			entry.Fields = append(entry.Fields, kv)
		}
	}
	return entry
}

// Filter keeps the lines at or above min severity, oldest first.
func Filter(lines []string, min logrus.Level) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := Parse(line)
		// logrus levels count down: Panic=0 ... Trace=6.
		if entry.Level <= min {
			out = append(out, entry)
		}
	}
	return out
}

// decodePairs reads the logfmt pairs of line. It reports false when the line
// does not decode or carries neither a level nor a msg key, which is how
// free text such as a panic trace is told apart from a logrus line.
func decodePairs(line string) ([][2]string, bool) {
	dec := logfmt.NewDecoder(strings.NewReader(line))
	var pairs [][2]string
	structured := false
	for dec.ScanRecord() {
		for dec.ScanKeyval() {
			key := string(dec.Key())
			if key == "level" || key == "msg" {
				structured = true
			}
			pairs = append(pairs, [2]string{key, string(dec.Value())})
		}
	}
	if dec.Err() != nil || !structured {
		return nil, false
	}
	return pairs, true
}
