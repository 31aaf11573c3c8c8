// Package batch generates enveloped messages for every payload file in a
// directory and records the outcome of each in a CSV manifest.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/messages"
	"fjacquet/iso20022-gen/internal/models"
)

// ManifestName is the file name of the manifest written to the output
// directory.
const ManifestName = "manifest.csv"

// PayloadExtensions lists the payload file extensions a run picks up.
var PayloadExtensions = []string{".json", ".yaml", ".yml"}

// defaultCodes maps a message type found in a file name to the message
// code used when the job does not name one.
var defaultCodes = map[string]string{
	models.MessageTypeCreditTransfer: models.CreditTransferNamespace,
	models.MessageTypeStatusRequest:  models.StatusRequestNamespace,
	models.MessageTypeSystemEvent:    models.SystemEventNamespace,
}

// Generator produces one enveloped message.
type Generator interface {
	Generate(ctx context.Context, req assembler.Request) (assembler.Result, error)
}

// Job describes one batch run.
type Job struct {
	InputDir  string
	OutputDir string
	// MessageCode applies to every payload. When empty it is inferred per
	// file from a leading message type such as "pacs.008_".
	MessageCode string
	// Schema is the envelope schema text.
	Schema []byte
}

// Summary reports the outcome of a run.
type Summary struct {
	Total        int
	Succeeded    int
	Failed       int
	ManifestPath string
	Entries      []ManifestEntry
}

// Runner processes batch jobs.
type Runner struct {
	generator Generator
	logger    logging.Logger
	now       func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(generator Generator, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// Run generates a message for every payload in job.InputDir. A failing
// payload is recorded in the manifest and does not stop the run; only
// problems with the directories or the manifest itself return an error.
func (r *Runner) Run(ctx context.Context, job Job) (Summary, error) {
	start := r.now()

	files, err := ListPayloads(job.InputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := fileutils.EnsureDirectoryExists(job.OutputDir); err != nil {
		return Summary{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	r.logger.Info("Starting batch generation",
		logging.F(logging.FieldPath, job.InputDir),
		logging.F(logging.FieldCount, len(files)))

	summary := Summary{Total: len(files)}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		entry := r.process(ctx, job, file)
		if entry.Status == StatusOK {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Entries = append(summary.Entries, entry)
	}

	summary.ManifestPath = filepath.Join(job.OutputDir, ManifestName)
	if err := WriteManifest(summary.ManifestPath, summary.Entries); err != nil {
		return summary, err
	}

	r.logger.Info("Batch generation complete",
		logging.F("succeeded", summary.Succeeded),
		logging.F("failed", summary.Failed),
		logging.F(logging.FieldDuration, r.now().Sub(start).Milliseconds()))
	return summary, nil
}

func (r *Runner) process(ctx context.Context, job Job, file string) ManifestEntry {
	base := filepath.Base(file)
	entry := ManifestEntry{InputFile: base}
	log := r.logger.WithFields(logging.F(logging.FieldInputFile, base))

	fail := func(err error) ManifestEntry {
		entry.Status = StatusFailed
		entry.Error = err.Error()
		log.WithError(err).Error("Failed to generate message")
		return entry
	}

	code := job.MessageCode
	if code == "" {
		inferred, ok := InferMessageCode(base)
		if !ok {
			return fail(errors.New("message code not given and not inferable from file name"))
		}
		code = inferred
	}
	entry.MessageCode = code

	payload, err := fileutils.ReadFile(file)
	if err != nil {
		return fail(err)
	}

	result, err := r.generator.Generate(ctx, assembler.Request{
		MessageCode: code,
		Payload:     payload,
		Schema:      job.Schema,
	})
	if err != nil {
		return fail(err)
	}

	output := fileutils.ReplaceExtension(base, "xml")
	if err := fileutils.WriteFile(filepath.Join(job.OutputDir, output), []byte(result.Document), models.PermissionOutputFile); err != nil {
		return fail(err)
	}

	entry.OutputFile = output
	entry.Status = StatusOK
	log.Debug("Generated message", logging.F(logging.FieldOutputFile, output))
	return entry
}

// ListPayloads returns the payload files directly inside dir, sorted by
// name.
func ListPayloads(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range PayloadExtensions {
			if ext == want {
				files = append(files, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// InferMessageCode reads the message type a payload file name starts with:
// "pacs.008_0001.json" and "pacs.008.001.08-x.json" both name pacs.008.
func InferMessageCode(filename string) (string, bool) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if i := strings.IndexAny(name, "_- "); i >= 0 {
		name = name[:i]
	}
	code, ok := defaultCodes[messages.TypeOf(name)]
	if !ok {
		return "", false
	}
	// a full definition in the name wins over the default version
	if strings.Count(name, ".") == 3 {
		return models.ISO20022NamespacePrefix + name, true
	}
	return code, true
}
