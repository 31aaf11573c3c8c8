// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/models"
)

// Stdio is the path that selects standard input or output.
const Stdio = "-"

// Generator produces an enveloped message.
type Generator interface {
	Generate(ctx context.Context, req assembler.Request) (assembler.Result, error)
}

// GenerateOptions describes one generate invocation.
type GenerateOptions struct {
	PayloadFile string
	SchemaFile  string
	MessageCode string
	// Output is a file path, Stdio, or empty to derive a name in OutputDir.
	Output    string
	OutputDir string
	// FragmentsOnly writes header and body without the envelope.
	FragmentsOnly bool
	Now           time.Time
}

// ReadInput reads path, or stdin when path is empty or Stdio.
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == Stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading standard input: %w", err)
		}
		return data, nil
	}
	return fileutils.ReadFile(path)
}

// WriteOutput writes data to path, or to stdout when path is Stdio.
// Missing parent directories are created.
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == Stdio {
		_, err := stdout.Write(data)
		return err
	}
	return fileutils.WriteFile(path, data, models.PermissionOutputFile)
}

// OutputPath resolves where a generated document goes.
func OutputPath(output, outputDir, messageCode string, now time.Time) string {
	if output != "" {
		return output
	}
	return filepath.Join(outputDir, fileutils.DefaultOutputName(messageCode, "xml", now))
}

// GenerateFileWithError reads the payload and schema, generates the message
// and writes it. It returns the path written, or Stdio.
func GenerateFileWithError(ctx context.Context, g Generator, opts GenerateOptions, stdin io.Reader, stdout io.Writer, log logging.Logger) (string, error) {
	if opts.MessageCode == "" {
		return "", fmt.Errorf("message code is required")
	}
	if opts.SchemaFile == "" {
		return "", fmt.Errorf("envelope schema file is required")
	}

	payload, err := ReadInput(opts.PayloadFile, stdin)
	if err != nil {
		return "", err
	}
	schema, err := fileutils.ReadFile(opts.SchemaFile)
	if err != nil {
		return "", err
	}

	log.Info("Generating message",
		logging.F(logging.FieldMessageCode, opts.MessageCode),
		logging.F(logging.FieldSchemaFile, opts.SchemaFile))

	result, err := g.Generate(ctx, assembler.Request{
		MessageCode: opts.MessageCode,
		Payload:     payload,
		Schema:      schema,
	})
	if err != nil {
		return "", err
	}

	document := result.Document
	if opts.FragmentsOnly {
		document = result.Header + "\n" + result.Body
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	out := OutputPath(opts.Output, opts.OutputDir, opts.MessageCode, now)
	if err := WriteOutput(out, []byte(document+"\n"), stdout); err != nil {
		return "", err
	}
	if out != Stdio {
		log.Info("Message written", logging.F(logging.FieldOutputFile, out))
	}
	return out, nil
}

// Exit logs err and terminates the command with a non-zero status.
func Exit(log logging.Logger, action string, err error) {
	log.WithError(err).Fatalf("Error %s: %v", action, err)
	os.Exit(1)
}
