package geo_test

import (
	"errors"
	"math"
	"testing"

	"bloodlink/internal/geo"
	"bloodlink/pkg/e"
)

func TestParseLatitude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		required bool
		want     *float64
		wantErr  error
	}{
		{name: "valid", raw: "12.9716", required: true, want: ptr(12.9716)},
		{name: "rounded to 7dp", raw: "12.97161234567", required: true, want: ptr(12.9716123)},
		{name: "boundary north", raw: "90", required: true, want: ptr(90.0)},
		{name: "boundary south", raw: "-90", required: true, want: ptr(-90.0)},
		{name: "out of range", raw: "90.0000001", required: true, wantErr: e.ErrOutOfRange},
		{name: "not a number", raw: "north", required: true, wantErr: e.ErrInvalidFormat},
		{name: "nan", raw: "NaN", required: true, wantErr: e.ErrInvalidFormat},
		{name: "inf", raw: "+Inf", required: true, wantErr: e.ErrInvalidFormat},
		{name: "empty required", raw: "", required: true, wantErr: e.ErrMissingField},
		{name: "empty optional", raw: "", required: false, want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := geo.ParseLatitude(tt.raw, tt.required)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("want %v, got %v", *tt.want, *got)
			}
		})
	}
}

func TestParseLongitude_Range(t *testing.T) {
	t.Parallel()

	if _, err := geo.ParseLongitude("180", true); err != nil {
		t.Fatalf("180 must be valid: %v", err)
	}
	if _, err := geo.ParseLongitude("-180", true); err != nil {
		t.Fatalf("-180 must be valid: %v", err)
	}
	if _, err := geo.ParseLongitude("180.5", true); !errors.Is(err, e.ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
	if _, err := geo.ParseLongitude("", true); !errors.Is(err, e.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}

func TestHaversineKM(t *testing.T) {
	t.Parallel()

	// Same point.
	if d := geo.HaversineKM(12.9716, 77.5946, 12.9716, 77.5946); d != 0 {
		t.Fatalf("same point must be 0, got %v", d)
	}

	// Symmetry.
	ab := geo.HaversineKM(12.9716, 77.5946, 13.0827, 80.2707)
	ba := geo.HaversineKM(13.0827, 80.2707, 12.9716, 77.5946)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}

	// Bengaluru to Chennai is roughly 290 km great-circle.
	if ab < 280 || ab > 300 {
		t.Fatalf("implausible distance: %v", ab)
	}

	// Antipodal points sit half a circumference apart.
	half := math.Pi * 6371.0
	if d := geo.HaversineKM(0, 0, 0, 180); math.Abs(d-half) > 0.5 {
		t.Fatalf("antipodal distance %v, want ~%v", d, half)
	}
}

func TestRounding(t *testing.T) {
	t.Parallel()

	if got := geo.Round7(12.97161234567); got != 12.9716123 {
		t.Fatalf("Round7: got %v", got)
	}
	if got := geo.Round2(3.14159); got != 3.14 {
		t.Fatalf("Round2: got %v", got)
	}
	if got := geo.Round2(0.125); got != 0.13 {
		t.Fatalf("Round2 half away from zero: got %v", got)
	}
}

func ptr(v float64) *float64 { return &v }
