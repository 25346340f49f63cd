package shared

import (
	"fmt"
	"io"
	"os"
)

// Reporter emits formatted console lines to the output and error sinks.
type Reporter interface {
	Printf(format string, args ...any)
	Errorf(format string, args ...any)
}

type writerReporter struct {
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewWriterReporter constructs a Reporter writing progress to outputWriter and failures to errorWriter.
// Nil writers fall back to the process standard streams.
func NewWriterReporter(outputWriter io.Writer, errorWriter io.Writer) Reporter {
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	if errorWriter == nil {
		errorWriter = os.Stderr
	}
	return writerReporter{outputWriter: outputWriter, errorWriter: errorWriter}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	fmt.Fprintf(reporter.outputWriter, format, args...)
}

func (reporter writerReporter) Errorf(format string, args ...any) {
	fmt.Fprintf(reporter.errorWriter, format, args...)
}
