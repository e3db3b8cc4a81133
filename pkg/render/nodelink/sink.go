package nodelink

import (
	"io"
	"os"

	"github.com/matzehuels/depdot/pkg/errors"
)

// Sink is where [Export] writes. It is implemented only by [PathSink] and
// [StreamSink].
type Sink interface {
	// open returns the writer to use and a release func that runs once the
	// export finishes.
	open() (w io.Writer, release func() error, err error)
	String() string
}

// PathSink is a file path. Export creates or truncates the file and closes
// it before returning.
type PathSink string

func (p PathSink) open() (io.Writer, func() error, error) {
	if p == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidArgument, "sink path must not be empty")
	}
	f, err := os.Create(string(p))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", string(p))
	}
	return f, f.Close, nil
}

func (p PathSink) String() string { return string(p) }

// StreamSink wraps a caller-owned writer. Export never closes it.
type StreamSink struct {
	W io.Writer
}

func (s StreamSink) open() (io.Writer, func() error, error) {
	if s.W == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidArgument, "stream sink has no writer")
	}
	return s.W, func() error { return nil }, nil
}

func (s StreamSink) String() string { return "stream" }

// SinkFor adapts a dynamic destination: a string becomes a [PathSink], an
// io.Writer becomes a [StreamSink] and a Sink is returned as is. Anything
// else, nil and the empty string included, fails with INVALID_ARGUMENT.
func SinkFor(v any) (Sink, error) {
	switch dst := v.(type) {
	case Sink:
		return dst, nil
	case string:
		if dst == "" {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "sink must be a path or a writer: got empty path")
		}
		return PathSink(dst), nil
	case io.Writer:
		return StreamSink{W: dst}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidArgument, "sink must be a path or a writer: got %v (%T)", v, v)
}
