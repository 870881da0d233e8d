package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// DiagnosticsFactory builds the diagnostics sink for one upload.
type DiagnosticsFactory func(ctx context.Context, uploadID string) Diagnostics

// ServiceConfig holds the knobs the Service needs.
type ServiceConfig struct {
	Rule          CountryCodeRule
	MaxConcurrent int
	MaxWait       time.Duration
	Timeout       time.Duration
}

// Service runs uploads through decode, normalize and validate.
// It holds no per-request state; every call works on its own rows.
type Service struct {
	codecs      CodecResolver
	rule        CountryCodeRule
	timeout     time.Duration
	limiter     *UploadLimiter
	diagnostics DiagnosticsFactory
}

// NewService creates a Service. A nil diagnostics factory discards events.
func NewService(codecs CodecResolver, cfg ServiceConfig, diagnostics DiagnosticsFactory) (*Service, error) {
	if codecs == nil {
		return nil, fmt.Errorf("new service: codec resolver is required")
	}
	if cfg.Rule == (CountryCodeRule{}) {
		cfg.Rule = DefaultCountryCodeRule
	}
	if diagnostics == nil {
		diagnostics = func(context.Context, string) Diagnostics { return NopDiagnostics{} }
	}
	return &Service{
		codecs:      codecs,
		rule:        cfg.Rule,
		timeout:     cfg.Timeout,
		limiter:     NewUploadLimiter(cfg.MaxConcurrent, cfg.MaxWait),
		diagnostics: diagnostics,
	}, nil
}

// ProcessResult is the outcome of Process.
type ProcessResult struct {
	UploadID string
	Rows     []NormalizedRow
	Result   Result
}

// Summary derives the user-facing summary.
func (p *ProcessResult) Summary() Summary {
	return p.Result.Summary()
}

// CleanResult is the outcome of Clean.
type CleanResult struct {
	UploadID string
	Rows     []NormalizedRow
	Data     []byte
}

// Process decodes the upload, normalizes it and validates every row.
// Only request-level failures are returned as errors; rejected rows are in
// the Result.
func (s *Service) Process(ctx context.Context, filename string, r io.Reader) (*ProcessResult, error) {
	out := &ProcessResult{UploadID: uuid.New().String()}

	err := s.run(ctx, func(ctx context.Context) error {
		diag := s.diagnostics(ctx, out.UploadID)

		rows, err := s.decode(ctx, filename, r, diag)
		if err != nil {
			return err
		}

		out.Rows = rows
		out.Result = NewValidator(s.rule, diag).Validate(rows)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", filename, err)
	}
	return out, nil
}

// Clean decodes and normalizes the upload and re-encodes it as a two-column
// workbook. Rows are not validated.
func (s *Service) Clean(ctx context.Context, filename string, r io.Reader, out SpreadsheetCodec) (*CleanResult, error) {
	res := &CleanResult{UploadID: uuid.New().String()}

	err := s.run(ctx, func(ctx context.Context) error {
		rows, err := s.decode(ctx, filename, r, s.diagnostics(ctx, res.UploadID))
		if err != nil {
			return err
		}

		data, err := out.Encode(rows)
		if err != nil {
			return &WriteFailure{Op: "encode", Err: err}
		}

		res.Rows = rows
		res.Data = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", filename, err)
	}
	return res, nil
}

// LimiterStatus reports upload slot usage.
func (s *Service) LimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx is done.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func (s *Service) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.limiter.Do(ctx, fn)
}

func (s *Service) decode(ctx context.Context, filename string, r io.Reader, diag Diagnostics) ([]NormalizedRow, error) {
	if r == nil {
		return nil, ErrNoFile
	}

	codec, err := s.codecs(filename)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyFile
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := codec.Decode(buf.Bytes())
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			if de.Filename == "" {
				de.Filename = filename
			}
			return nil, de
		}
		return nil, NewDecodeError(filename, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return NewNormalizer(diag).Normalize(raw), nil
}
