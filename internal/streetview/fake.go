package streetview

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/mpetrie/geohunt/internal/model"
)

// FakeProvider is a scripted Provider for testing.
// CheckImagery returns queued results in order; once the queue is
// exhausted it reports imagery at the queried point itself.
type FakeProvider struct {
	mu sync.Mutex

	// CheckResults is a queue of results for CheckImagery.
	// A nil entry means "no imagery here".
	CheckResults []CheckResult
	checkIndex   int

	// ImageData is returned by FetchImage
	ImageData []byte
	// FetchErr, when set, is returned by FetchImage
	FetchErr error

	// CheckCalls counts CheckImagery invocations
	CheckCalls int
	// FetchCalls counts FetchImage invocations
	FetchCalls int
	// LastFetchPos and LastFetchHeading record the most recent FetchImage call
	LastFetchPos     model.Point
	LastFetchHeading float64
}

// CheckResult is one scripted CheckImagery outcome
type CheckResult struct {
	Location *model.Point
	Err      error
}

// Ensure FakeProvider implements the interface
var _ Provider = (*FakeProvider)(nil)

// NewFakeProvider creates a FakeProvider with no scripted results
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{ImageData: []byte("fake-image")}
}

// QueueCheck adds scripted CheckImagery results
func (f *FakeProvider) QueueCheck(results ...CheckResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CheckResults = append(f.CheckResults, results...)
}

// QueueMiss adds n "no imagery" results
func (f *FakeProvider) QueueMiss(n int) {
	for i := 0; i < n; i++ {
		f.QueueCheck(CheckResult{})
	}
}

func (f *FakeProvider) CheckImagery(ctx context.Context, pos model.Point) (*model.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CheckCalls++

	if f.checkIndex < len(f.CheckResults) {
		result := f.CheckResults[f.checkIndex]
		f.checkIndex++
		return result.Location, result.Err
	}

	// Default: imagery exists exactly where asked
	p := pos
	return &p, nil
}

func (f *FakeProvider) FetchImage(ctx context.Context, pos model.Point, heading float64) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchCalls++
	f.LastFetchPos = pos
	f.LastFetchHeading = heading

	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return io.NopCloser(bytes.NewReader(f.ImageData)), nil
}
