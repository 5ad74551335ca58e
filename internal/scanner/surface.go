package scanner

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineSurface turns a keyboard-wedge scanner stream (one code per line) into
// detections. The channel is closed at EOF, on a read error (delivered as a
// final failed detection) or when ctx is done.
func LineSurface(ctx context.Context, r io.Reader) <-chan Detection {
	out := make(chan Detection)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			det := Detection{Text: strings.TrimSpace(sc.Text())}
			select {
			case out <- det:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case out <- Detection{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return out
}
