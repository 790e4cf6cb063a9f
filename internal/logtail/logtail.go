package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Tail returns at most maxLines of the records at the end of the log file at
// path that keep accepts. A nil keep accepts every line. A missing file yields
// no lines.
func Tail(path string, maxLines int, keep func(line string) bool) ([]string, error) {
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
		line := scanner.Text()
		if keep != nil && !keep(line) {
			continue
		}
		ring[idx] = line
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

var levels = []log.Level{log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel, log.FatalLevel}

// levelTag is how the text formatter prints a level: four upper case letters.
func levelTag(l log.Level) string {
	tag := strings.ToUpper(l.String())
	if len(tag) > 4 {
		tag = tag[:4]
	}
	return tag
}

// AtLeast keeps records at or above minLevel. Lines without a level tag belong
// to the record before them and follow its decision.
func AtLeast(minLevel log.Level) func(line string) bool {
	last := true
	return func(line string) bool {
		for _, l := range levels {
			if hasTag(line, levelTag(l)) {
				last = l >= minLevel
				break
			}
		}
		return last
	}
}

func hasTag(line, tag string) bool {
	for _, field := range strings.Fields(line) {
		if field == tag {
			return true
		}
	}
	return false
}
