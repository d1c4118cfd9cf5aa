package transit

import "context"

// FallbackLocator tries the primary locator and falls back to the secondary
// only when the primary errors. A primary answer of "no station in range"
// is final and does not trigger a second lookup.
type FallbackLocator struct {
	primary  Locator
	fallback Locator
}

// NewFallbackLocator chains two locators.
func NewFallbackLocator(primary, fallback Locator) *FallbackLocator {
	return &FallbackLocator{primary: primary, fallback: fallback}
}

// Nearest delegates to the primary locator, consulting the fallback only
// when the primary fails.
func (l *FallbackLocator) Nearest(ctx context.Context, lat, lng float64) (*Hit, error) {
	hit, err := l.primary.Nearest(ctx, lat, lng)
	if err == nil {
		return hit, nil
	}
	if l.fallback == nil {
		return nil, err
	}
	return l.fallback.Nearest(ctx, lat, lng)
}

var _ Locator = (*FallbackLocator)(nil)
