package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/credload/internal/checksum"
	"github.com/vvka-141/credload/internal/files/filesystem"
	"github.com/vvka-141/credload/internal/logging"
	"github.com/vvka-141/credload/internal/record"
	"github.com/vvka-141/credload/internal/store"
	"github.com/vvka-141/credload/pkg/credload"
)

// Loader validates credential sources and commits them to a store.
type Loader struct {
	fs       filesystem.Provider
	logger   credload.Logger
	checksum checksum.Calculator
	policy   record.Policy
}

// Option configures a Loader.
type Option func(*Loader)

// WithPolicy enables optional record checks such as rejecting duplicates.
func WithPolicy(policy record.Policy) Option {
	return func(l *Loader) {
		l.policy = policy
	}
}

// WithChecksum replaces the SHA-256 source fingerprinting.
func WithChecksum(calc checksum.Calculator) Option {
	return func(l *Loader) {
		l.checksum = calc
	}
}

// New creates a Loader reading sources from fs.
// Panics if fs or logger is nil.
func New(fs filesystem.Provider, logger credload.Logger, opts ...Option) *Loader {
	if fs == nil {
		panic("filesystem provider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	l := &Loader{
		fs:       fs,
		logger:   logger,
		checksum: checksum.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads source, validates every record and, only if all are valid,
// commits the entries to s in source order.
//
// On any error s is left unchanged. Errors wrap credload.ErrSourceUnavailable,
// a *credload.RecordError (matching credload.ErrInvalidRecord), or
// credload.ErrCommitFailed.
func (l *Loader) Load(ctx context.Context, source string, s credload.Store) (credload.Report, error) {
	start := time.Now()
	report := credload.Report{
		LoadID: uuid.NewString(),
		Source: source,
		Store:  storeName(s),
	}
	l.logger.Verbose("Load %s: reading %s", report.LoadID, source)

	content, err := l.read(source)
	if err != nil {
		return credload.Report{}, err
	}
	l.fingerprint(&report, content)

	// Phase 1: validate everything before touching the store
	var entries []credload.Entry
	parser := record.NewParser(l.policy)
	err = record.Scan(content, func(lineNum int, line string) error {
		report.Lines = lineNum
		entry, err := parser.ParseLine(lineNum, line)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		l.logger.Verbose("Load %s: rejected: %v", report.LoadID, err)
		return credload.Report{}, fmt.Errorf("load %s: %w", source, err)
	}
	l.logger.Verbose("Load %s: %d line(s) validated", report.LoadID, report.Lines)

	// Phase 2: single commit of the complete collection
	if len(entries) > 0 {
		if err := s.Commit(credload.WithLoadID(ctx, report.LoadID), entries); err != nil {
			if !errors.Is(err, credload.ErrCommitFailed) {
				err = fmt.Errorf("%w: %w", credload.ErrCommitFailed, err)
			}
			return credload.Report{}, fmt.Errorf("load %s: %w", source, err)
		}
	}

	report.Entries = len(entries)
	report.Unique = countUnique(entries)
	report.Duration = time.Since(start)
	l.logger.Verbose("Load %s: committed %d entr(ies), %d distinct username(s) in %v",
		report.LoadID, report.Entries, report.Unique, report.Duration)

	return report, nil
}

// Check validates source without committing anything and returns every
// invalid line rather than stopping at the first. The returned error is
// reserved for an unreadable source.
func (l *Loader) Check(source string) (credload.Report, []*credload.RecordError, error) {
	start := time.Now()
	report := credload.Report{
		LoadID: uuid.NewString(),
		Source: source,
	}

	content, err := l.read(source)
	if err != nil {
		return credload.Report{}, nil, err
	}
	l.fingerprint(&report, content)

	var problems []*credload.RecordError
	var entries []credload.Entry
	parser := record.NewParser(l.policy)
	err = record.Scan(content, func(lineNum int, line string) error {
		report.Lines = lineNum
		entry, err := parser.ParseLine(lineNum, line)
		if err != nil {
			var recErr *credload.RecordError
			if errors.As(err, &recErr) {
				problems = append(problems, recErr)
				return nil
			}
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return credload.Report{}, nil, fmt.Errorf("check %s: %w", source, err)
	}

	report.Entries = len(entries)
	report.Unique = countUnique(entries)
	report.Duration = time.Since(start)
	l.logger.Verbose("Check %s: %d line(s), %d invalid", source, report.Lines, len(problems))

	return report, problems, nil
}

// read acquires the source, reads it fully and releases it on every path.
func (l *Loader) read(source string) ([]byte, error) {
	rc, err := l.fs.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", source, credload.ErrSourceUnavailable, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", source, credload.ErrSourceUnavailable, err)
	}
	return content, nil
}

func (l *Loader) fingerprint(report *credload.Report, content []byte) {
	report.Checksum = l.checksum.CalculateRaw(content)
	report.NormalizedChecksum = l.checksum.CalculateNormalized(content)
}

func countUnique(entries []credload.Entry) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Username] = struct{}{}
	}
	return len(seen)
}

func storeName(s credload.Store) string {
	if named, ok := s.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", s)
}

// Load reads the file at source into creds and reports whether it succeeded.
//
// It is all-or-nothing: on false creds holds exactly what it held before the
// call. Callers needing the reason should use (*Loader).Load.
func Load(source string, creds credload.Credentials) bool {
	l := New(filesystem.NewOSFileSystem(), logging.NewNullLogger())
	_, err := l.Load(context.Background(), source, store.NewMap(creds))
	return err == nil
}
