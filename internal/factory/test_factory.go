package factory

import (
	"time"

	"github.com/mpetrie/geohunt/internal/dependencies/mocks"
	"github.com/mpetrie/geohunt/internal/services/auth"
	"github.com/mpetrie/geohunt/internal/storage/memory"
	"github.com/mpetrie/geohunt/internal/streetview"
	"github.com/mpetrie/geohunt/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	FakeProvider *streetview.FakeProvider
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The fake provider snaps every imagery check to the queried point unless
// results are queued, so games resolve deterministically.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	fakeProvider := streetview.NewFakeProvider()

	app := newWithDependencies(store, mockClock, mockRandom, fakeProvider, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		FakeProvider: fakeProvider,
	}
}
