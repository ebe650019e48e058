// Package streetview talks to the external imagery provider.
package streetview

import (
	"context"
	"errors"
	"io"

	"github.com/mpetrie/geohunt/internal/model"
)

// ErrUnavailable indicates a transient provider failure (network, timeout,
// upstream error). Callers surface it as-is; retries belong to the
// solution resolver's sampling loop, never to the provider call itself.
var ErrUnavailable = errors.New("street view provider unavailable")

// Provider supplies imagery validity checks and image streams
type Provider interface {
	// CheckImagery reports whether usable imagery exists near pos.
	// On success it returns the provider's snapped panorama location,
	// or nil when no imagery is available there.
	CheckImagery(ctx context.Context, pos model.Point) (*model.Point, error)

	// FetchImage returns an image stream for pos looking toward the
	// given compass heading. The caller must close the stream.
	FetchImage(ctx context.Context, pos model.Point, heading float64) (io.ReadCloser, error)
}
