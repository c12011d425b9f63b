package defaults

import (
	"errors"
	"sync"
	"testing"

	"github.com/concave-dev/dsenv/internal/config"
	"github.com/concave-dev/dsenv/internal/resolve"
)

// countingSource is a resolution source that counts how often it runs
type countingSource struct {
	mu    sync.Mutex
	id    string
	ok    bool
	calls int
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Infer() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.id, s.ok
}

func (s *countingSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// clearEnv unsets both dataset environment variables for the test
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.DatasetEnvVar, "")
	t.Setenv(config.GCDDatasetEnvVar, "")
}

// TestLazyResolutionCachesValue tests that the first getter call resolves
// and later calls reuse the cache without re-probing
func TestLazyResolutionCachesValue(t *testing.T) {
	clearEnv(t)

	source := &countingSource{id: "probed-dataset", ok: true}
	container := NewContainer(resolve.New(source))

	id, ok := container.DatasetID()
	if !ok || id != "probed-dataset" {
		t.Fatalf("DatasetID() = (%q, %v), want (%q, true)", id, ok, "probed-dataset")
	}

	// Change what the source would return; the cache must win
	source.id = "changed-dataset"

	id, ok = container.DatasetID()
	if !ok || id != "probed-dataset" {
		t.Errorf("second DatasetID() = (%q, %v), want cached (%q, true)", id, ok, "probed-dataset")
	}
	if source.callCount() != 1 {
		t.Errorf("source ran %d times, want exactly 1", source.callCount())
	}
}

// TestNegativeResultIsMemoized tests that a failed first lookup is cached:
// env changes after the first read are deliberately not picked up
func TestNegativeResultIsMemoized(t *testing.T) {
	clearEnv(t)

	source := &countingSource{ok: false}
	container := NewContainer(resolve.New(source))

	if id, ok := container.DatasetID(); ok {
		t.Fatalf("DatasetID() = (%q, true), want absence", id)
	}

	// Environment changes after the first failed lookup
	t.Setenv(config.DatasetEnvVar, "late-dataset")

	if id, ok := container.DatasetID(); ok {
		t.Errorf("DatasetID() = (%q, true), want memoized absence despite env change", id)
	}
	if source.callCount() != 1 {
		t.Errorf("source ran %d times, want exactly 1", source.callCount())
	}
}

// TestSetDatasetIDExplicit tests the eager setter with an explicit value
func TestSetDatasetIDExplicit(t *testing.T) {
	clearEnv(t)

	source := &countingSource{ok: false}
	container := NewContainer(resolve.New(source))

	if err := container.SetDatasetID("explicit-dataset"); err != nil {
		t.Fatalf("SetDatasetID() error = %v", err)
	}

	id, ok := container.DatasetID()
	if !ok || id != "explicit-dataset" {
		t.Errorf("DatasetID() = (%q, %v), want (%q, true)", id, ok, "explicit-dataset")
	}
	if source.callCount() != 0 {
		t.Error("explicit set must not trigger probing")
	}
}

// TestSetDatasetIDInferred tests the setter falling back to the environment
func TestSetDatasetIDInferred(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.DatasetEnvVar, "env-dataset")

	container := NewContainer(resolve.New())

	if err := container.SetDatasetID(""); err != nil {
		t.Fatalf("SetDatasetID(\"\") error = %v", err)
	}

	if id, ok := container.DatasetID(); !ok || id != "env-dataset" {
		t.Errorf("DatasetID() = (%q, %v), want (%q, true)", id, ok, "env-dataset")
	}
}

// TestSetDatasetIDNothingResolves tests the single user-visible failure:
// the setter errors with the exact configuration message when no source
// yields an identifier
func TestSetDatasetIDNothingResolves(t *testing.T) {
	clearEnv(t)

	source := &countingSource{ok: false}
	container := NewContainer(resolve.New(source))

	err := container.SetDatasetID("")
	if err == nil {
		t.Fatal("SetDatasetID(\"\") expected error, got nil")
	}
	if !errors.Is(err, ErrNoDatasetID) {
		t.Errorf("SetDatasetID(\"\") error = %v, want ErrNoDatasetID", err)
	}
	if err.Error() != "No identifier could be inferred" {
		t.Errorf("error message = %q, want %q", err.Error(), "No identifier could be inferred")
	}
}

// TestSetOverwritesLazyCache tests that an explicit set replaces a value
// cached by an earlier lazy resolution
func TestSetOverwritesLazyCache(t *testing.T) {
	clearEnv(t)

	source := &countingSource{id: "probed-dataset", ok: true}
	container := NewContainer(resolve.New(source))

	container.DatasetID()

	if err := container.SetDatasetID("overwritten-dataset"); err != nil {
		t.Fatalf("SetDatasetID() error = %v", err)
	}
	if id, _ := container.DatasetID(); id != "overwritten-dataset" {
		t.Errorf("DatasetID() = %q, want %q", id, "overwritten-dataset")
	}
}

// TestExplicitContainerNeverProbes tests that a container committed at
// construction never triggers resolution, even when committed to absence
func TestExplicitContainerNeverProbes(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.DatasetEnvVar, "env-dataset")

	source := &countingSource{id: "probed-dataset", ok: true}

	tests := []struct {
		name       string
		datasetID  string
		expectedID string
		expectedOK bool
	}{
		{
			name:       "committed to a concrete value",
			datasetID:  "pinned-dataset",
			expectedID: "pinned-dataset",
			expectedOK: true,
		},
		{
			name:       "committed to none",
			datasetID:  "",
			expectedID: "",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := NewExplicitContainer(resolve.New(source), tt.datasetID)

			// Repeated reads must keep returning the committed value
			for i := 0; i < 3; i++ {
				id, ok := container.DatasetID()
				if id != tt.expectedID || ok != tt.expectedOK {
					t.Errorf("DatasetID() = (%q, %v), want (%q, %v)",
						id, ok, tt.expectedID, tt.expectedOK)
				}
			}
			if source.callCount() != 0 {
				t.Errorf("explicit container ran probes %d times, want 0", source.callCount())
			}
		})
	}
}

// TestConnectionPassThrough tests that the connection field is storage only
func TestConnectionPassThrough(t *testing.T) {
	container := NewContainer(resolve.New())

	if conn := container.Connection(); conn != nil {
		t.Errorf("Connection() = %v, want nil before any set", conn)
	}

	type fakeConn struct{ addr string }
	conn := &fakeConn{addr: "backend:443"}

	container.SetConnection(conn)

	got, ok := container.Connection().(*fakeConn)
	if !ok || got != conn {
		t.Errorf("Connection() = %v, want the stored handle %v", got, conn)
	}
}

// TestLazyResolveIsAtMostOnceUnderConcurrency tests that concurrent first
// reads compute the underlying resolution exactly once
func TestLazyResolveIsAtMostOnceUnderConcurrency(t *testing.T) {
	clearEnv(t)

	source := &countingSource{id: "probed-dataset", ok: true}
	container := NewContainer(resolve.New(source))

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			id, _ := container.DatasetID()
			results[slot] = id
		}(i)
	}
	wg.Wait()

	for i, id := range results {
		if id != "probed-dataset" {
			t.Errorf("goroutine %d observed %q, want %q", i, id, "probed-dataset")
		}
	}
	if source.callCount() != 1 {
		t.Errorf("source ran %d times under concurrency, want exactly 1", source.callCount())
	}
}
