package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"editcard/internal/trace"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Load when the profile file does not exist.
var ErrNotFound = errors.New("profile not found")

// Store reads and writes a Profile as YAML.
// Layout: a single file, e.g. ~/.local/share/rollcall/profile.yaml
type Store struct {
	path   string
	delay  time.Duration
	tracer oteltrace.Tracer
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDelay adds artificial latency to Save so slow backends can be simulated.
func WithDelay(d time.Duration) StoreOption {
	return func(s *Store) { s.delay = d }
}

// WithTracer overrides the tracer used for save/load spans.
func WithTracer(t oteltrace.Tracer) StoreOption {
	return func(s *Store) { s.tracer = t }
}

// NewStore creates a store for path. The path is used as given; overrides
// from flags or the environment are resolved by the config layer.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path, tracer: trace.Tracer()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the profile. A missing file yields ErrNotFound.
func (s *Store) Load(ctx context.Context) (Profile, error) {
	_, span := s.tracer.Start(ctx, "profile.load",
		oteltrace.WithAttributes(attribute.String("profile.path", s.path)))
	defer span.End()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, fmt.Errorf("parse profile %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes p atomically (temp file + rename). It honours ctx cancellation
// while waiting out the configured delay.
func (s *Store) Save(ctx context.Context, p Profile) error {
	ctx, span := s.tracer.Start(ctx, "profile.save", oteltrace.WithAttributes(
		attribute.String("profile.path", s.path),
		attribute.String("profile.username", p.Username),
	))
	defer span.End()

	if err := s.save(ctx, p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *Store) save(ctx context.Context, p Profile) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("save profile: %w", ctx.Err())
		case <-timer.C:
		}
	}

	b, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".profile-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp profile: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}
