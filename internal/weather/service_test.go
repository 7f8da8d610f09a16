package weather

import (
	"context"
	"errors"
	"testing"
)

type fakeProvider struct {
	calls  int
	last   Location
	report Report
	err    error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Current(_ context.Context, loc Location) (Report, error) {
	f.calls++
	f.last = loc
	return f.report, f.err
}

func TestServiceCurrentSkipsProviderOnInvalidLocation(t *testing.T) {
	fp := &fakeProvider{}
	svc := NewService(fp, nil)

	_, err := svc.Current(context.Background(), Location{})
	if !errors.Is(err, ErrMissingLocation) {
		t.Fatalf("expected ErrMissingLocation, got %v", err)
	}

	_, err = svc.Current(context.Background(), Location{Lat: ptr(3)})
	if !errors.Is(err, ErrIncompleteCoordinates) {
		t.Fatalf("expected ErrIncompleteCoordinates, got %v", err)
	}

	if fp.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", fp.calls)
	}
}

func TestServiceCurrentPassesResolvedLocation(t *testing.T) {
	fp := &fakeProvider{report: Report{Place: "London", Category: ConditionClear}}
	svc := NewService(fp, nil)

	report, err := svc.Current(context.Background(), Location{City: "London", Lat: ptr(1), Lon: ptr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Place != "London" {
		t.Fatalf("expected London, got %q", report.Place)
	}
	if fp.last.City != "London" || fp.last.HasCoordinates() {
		t.Fatalf("expected city-only location, got %+v", fp.last)
	}
}

func TestServiceCurrentPropagatesProviderError(t *testing.T) {
	fp := &fakeProvider{err: ErrFetchFailed}
	svc := NewService(fp, nil)

	_, err := svc.Current(context.Background(), Location{City: "Oslo"})
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", fp.calls)
	}
}
