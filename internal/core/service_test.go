package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// fakeCodec decodes "name,phone" lines and encodes rows back the same way.
type fakeCodec struct {
	decodeErr error
	encodeErr error
}

func (c fakeCodec) Decode(data []byte) ([]RawRow, error) {
	if c.decodeErr != nil {
		return nil, c.decodeErr
	}
	var rows []RawRow
	for _, line := range strings.Split(string(data), "\n") {
		var row RawRow
		for _, cell := range strings.Split(line, ",") {
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c fakeCodec) Encode(rows []NormalizedRow) ([]byte, error) {
	if c.encodeErr != nil {
		return nil, c.encodeErr
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(strings.Join(r, ","))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func resolverFor(c SpreadsheetCodec) CodecResolver {
	return func(name string) (SpreadsheetCodec, error) {
		if strings.HasSuffix(name, ".ods") {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
		}
		return c, nil
	}
}

func newTestService(t *testing.T, c SpreadsheetCodec) *Service {
	t.Helper()
	svc, err := NewService(resolverFor(c), ServiceConfig{MaxConcurrent: 1, MaxWait: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestService_Process(t *testing.T) {
	svc := newTestService(t, fakeCodec{})
	input := "Name,Phone\nAlice,0712345678\nBob,712345678\n,254700000000\nCarol,\n,"

	res, err := svc.Process(context.Background(), "contacts.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if res.UploadID == "" {
		t.Error("UploadID should be set")
	}
	if len(res.Rows) != 5 {
		t.Errorf("normalized rows = %d, want 5 (trailing empty row dropped)", len(res.Rows))
	}
	s := res.Summary()
	if s.Found != 4 || s.Errors != 3 {
		t.Errorf("summary = found %d errors %d, want 4 and 3", s.Found, s.Errors)
	}
	if len(res.Result.Contacts) != 1 || res.Result.Contacts[0].Phone != "254712345678" {
		t.Errorf("contacts = %+v", res.Result.Contacts)
	}
}

func TestService_ProcessErrors(t *testing.T) {
	tests := []struct {
		name     string
		codec    fakeCodec
		filename string
		body     string
		check    func(error) bool
	}{
		{
			name:     "decode failure becomes DecodeError",
			codec:    fakeCodec{decodeErr: errors.New("zip: not a valid zip file")},
			filename: "x.xlsx",
			body:     "garbage",
			check:    IsDecodeError,
		},
		{
			name:     "empty upload",
			filename: "x.xlsx",
			body:     "",
			check:    func(err error) bool { return errors.Is(err, ErrEmptyFile) },
		},
		{
			name:     "unsupported extension",
			filename: "x.ods",
			body:     "a,b",
			check:    func(err error) bool { return errors.Is(err, ErrUnsupportedFormat) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.codec)
			res, err := svc.Process(context.Background(), tt.filename, strings.NewReader(tt.body))
			if err == nil {
				t.Fatalf("expected error, got %+v", res)
			}
			if !tt.check(err) {
				t.Errorf("unexpected error type: %v", err)
			}
		})
	}
}

func TestService_Clean(t *testing.T) {
	svc := newTestService(t, fakeCodec{})

	res, err := svc.Clean(context.Background(), "x.csv", strings.NewReader(" A , 1 ,extra\n,\nB"), fakeCodec{})
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got, want := string(res.Data), "A,1\nB,\n"; got != want {
		t.Errorf("Data = %q, want %q", got, want)
	}
}

func TestService_CleanWriteFailure(t *testing.T) {
	svc := newTestService(t, fakeCodec{})

	_, err := svc.Clean(context.Background(), "x.csv", strings.NewReader("A,1"), fakeCodec{encodeErr: errors.New("disk full")})
	if !IsWriteFailure(err) {
		t.Fatalf("expected WriteFailure, got %v", err)
	}
	if got := MapError(err).Code; got != "OUT001" {
		t.Errorf("code = %q, want OUT001", got)
	}
}

func TestService_Busy(t *testing.T) {
	svc := newTestService(t, fakeCodec{})
	if !svc.limiter.TryAcquire() {
		t.Fatal("could not take the only slot")
	}
	defer svc.limiter.Release()

	_, err := svc.Process(context.Background(), "x.csv", strings.NewReader("A,712345678"))
	if !errors.Is(err, ErrTooManyUploads) {
		t.Errorf("expected ErrTooManyUploads, got %v", err)
	}
}
