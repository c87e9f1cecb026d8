package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "zero lines",
			maxLines: 0,
			expected: nil,
		},
		{
			name:     "negative",
			maxLines: -1,
			expected: nil,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "logrus text line",
			input: `time="2025-10-08T21:01:05+02:00" level=error msg="persist failed" error="disk full" key=workout_templates`,
			want: Entry{
				Time:    "2025-10-08T21:01:05+02:00",
				Level:   logrus.ErrorLevel,
				Message: "persist failed",
				Fields:  [][2]string{{"error", "disk full"}, {"key", "workout_templates"}},
			},
		},
		{
			name:  "unquoted message",
			input: `time="2025-10-08T21:01:05+02:00" level=info msg=ready`,
			want: Entry{
				Time:    "2025-10-08T21:01:05+02:00",
				Level:   logrus.InfoLevel,
				Message: "ready",
			},
		},
		{
			name:  "free text",
			input: "panic: something odd",
			want:  Entry{Level: logrus.InfoLevel, Message: "panic: something odd"},
		},
		{
			name:  "escaped quotes in value",
			input: `level=warning msg="bad \"catalog_source\"" path=/tmp/x.json`,
			want: Entry{
				Level:   logrus.WarnLevel,
				Message: `bad "catalog_source"`,
				Fields:  [][2]string{{"path", "/tmp/x.json"}},
			},
		},
		{
			name:  "unterminated quote",
			input: `level=info msg="cut off`,
			want:  Entry{Level: logrus.InfoLevel, Message: `level=info msg="cut off`},
		},
		{
			name:  "pairs without level or msg",
			input: "retries=3 backoff=2s",
			want:  Entry{Level: logrus.InfoLevel, Message: "retries=3 backoff=2s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			tt.want.Raw = tt.input
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`level=debug msg=a`,
		`level=info msg=b`,
		``,
		`level=warning msg=c`,
		`level=error msg=d`,
	}

	got := Filter(lines, logrus.WarnLevel)
	var msgs []string
	for _, e := range got {
		msgs = append(msgs, e.Message)
	}
	if !reflect.DeepEqual(msgs, []string{"c", "d"}) {
		t.Fatalf("Filter() = %v, want [c d]", msgs)
	}

	if all := Filter(lines, logrus.TraceLevel); len(all) != 4 {
		t.Fatalf("Filter(trace) = %d entries, want 4", len(all))
	}
}
