package file

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// CountLines reads the file once and returns its line count. A final line
// without a trailing newline still counts. The result only sizes the
// progress estimate; the load itself never depends on it.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("count lines: open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 256*1024)
	count := 0
	lastByte := byte('\n')

	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			lastByte = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("count lines: read %s: %w", path, err)
		}
	}

	if lastByte != '\n' {
		count++
	}
	return count, nil
}
