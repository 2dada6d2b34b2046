package voice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrUnavailable is returned when no speech-to-text source can be used.
var ErrUnavailable = errors.New("voice input unavailable")

// Recognizer produces a stream of transcripts until ctx is cancelled or the
// source ends. The channel is closed when listening stops.
type Recognizer interface {
	Listen(ctx context.Context) (<-chan string, error)
}

// Detect returns a Recognizer for argv, or ErrUnavailable when argv is empty
// or its executable cannot be found.
func Detect(argv []string, log *slog.Logger) (Recognizer, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, fmt.Errorf("%w: no recognizer command configured", ErrUnavailable)
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &ExecRecognizer{Path: path, Args: argv[1:], log: log}, nil
}

// ExecRecognizer runs an external speech-to-text program and treats every
// non-empty line of its stdout as one transcript.
type ExecRecognizer struct {
	Path string
	Args []string
	log  *slog.Logger
}

// Listen starts the process. It is killed when ctx is cancelled.
func (r *ExecRecognizer) Listen(ctx context.Context) (<-chan string, error) {
	cmd := exec.CommandContext(ctx, r.Path, r.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("recognizer stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %s: %v", ErrUnavailable, r.Path, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		scan(ctx, stdout, out)
		if err := cmd.Wait(); err != nil && ctx.Err() == nil && r.log != nil {
			r.log.Warn("recognizer exited", "path", r.Path, "error", err)
		}
	}()
	return out, nil
}

// ReaderRecognizer streams transcripts line by line from R.
type ReaderRecognizer struct {
	R io.Reader
}

// Listen reads R until EOF or ctx is cancelled.
func (r ReaderRecognizer) Listen(ctx context.Context) (<-chan string, error) {
	if r.R == nil {
		return nil, ErrUnavailable
	}
	out := make(chan string)
	go func() {
		defer close(out)
		scan(ctx, r.R, out)
	}()
	return out, nil
}

func scan(ctx context.Context, rd io.Reader, out chan<- string) {
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		select {
		case out <- line:
		case <-ctx.Done():
			return
		}
	}
}

// Commands classifies every transcript from transcripts and forwards the
// recognised ones. The returned channel closes when transcripts does.
func Commands(ctx context.Context, transcripts <-chan string) <-chan Command {
	out := make(chan Command)
	go func() {
		defer close(out)
		for text := range transcripts {
			cmd := Classify(text)
			if cmd == Unrecognized {
				continue
			}
			select {
			case out <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
