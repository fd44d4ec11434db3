package profile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func testProfile() Profile {
	return Profile{
		Username:  "sara",
		FirstName: "Sara",
		LastName:  "Ahmadi",
		Email:     "sara@example.com",
		Detail:    Detail{PersonnelCode: "P-0042", Phone: "555-0100"},
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")
	store := NewStore(path)

	require.NoError(t, store.Save(context.Background(), testProfile()))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProfile(), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "personnel_code: P-0042")

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profile.yaml"))

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("first_name: [unterminated"), 0o644))

	_, err := NewStore(path).Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNewStore_PathIsUsedAsGiven(t *testing.T) {
	t.Setenv("ROLLCALL_PROFILE", filepath.Join(t.TempDir(), "env.yaml"))

	store := NewStore("/srv/rollcall/profile.yaml")
	assert.Equal(t, "/srv/rollcall/profile.yaml", store.Path())
}

func TestStore_SaveCancelledDuringDelay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	store := NewStore(path, WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, testProfile())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_SaveRecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	store := NewStore(filepath.Join(t.TempDir(), "profile.yaml"), WithTracer(tp.Tracer("test")))

	require.NoError(t, store.Save(context.Background(), testProfile()))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "profile.save", spans[0].Name())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)

	var username string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "profile.username" {
			username = kv.Value.AsString()
		}
	}
	assert.Equal(t, "sara", username)
}
