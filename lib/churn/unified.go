package churn

import (
	"bufio"
	"io"
	"strings"
)

// CountUnified counts added and removed lines of a unified diff.
// The ---/+++ file headers are skipped; inside a hunk every +/- line counts.
func CountUnified(r io.Reader) (added int, removed int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	inHunk := false
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "diff "):
			inHunk = false

		case strings.HasPrefix(line, "@@"):
			inHunk = true

		case !inHunk:
			continue

		case strings.HasPrefix(line, "+"):
			added++

		case strings.HasPrefix(line, "-"):
			removed++
		}
	}

	err = scanner.Err()
	return
}
