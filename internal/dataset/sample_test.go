package dataset_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"csvdash/internal/dataset"
)

func sequential(n int) dataset.Dataset {
	ds := make(dataset.Dataset, n)
	for i := range ds {
		ds[i] = dataset.Record{"Age": dataset.Number(float64(i))}
	}
	return ds
}

func TestSampleSmallDatasetUnchanged(t *testing.T) {
	ds := sequential(2)
	out, err := dataset.Sample(ds, 100)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !reflect.DeepEqual(out, ds) {
		t.Fatalf("dataset within the cap must pass through unchanged")
	}
}

func TestSampleLargeDatasetStride(t *testing.T) {
	// 1000 rows at cap 100: stride 10, rows 0, 10, ... 990.
	ds := sequential(1000)
	out, err := dataset.Sample(ds, 100)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(out) != 100 {
		t.Fatalf("expected exactly 100 rows, got %d", len(out))
	}
	first, _ := out[0]["Age"].Num()
	last, _ := out[99]["Age"].Num()
	if first != 0 || last != 990 {
		t.Fatalf("expected first 0 and last 990, got %v and %v", first, last)
	}
	for i, r := range out {
		if n, _ := r["Age"].Num(); n != float64(i*10) {
			t.Fatalf("row %d should hold %d, got %v", i, i*10, n)
		}
	}
}

func TestSampleBound(t *testing.T) {
	for _, tc := range []struct{ n, max int }{{7, 3}, {10, 10}, {11, 10}, {999, 100}, {0, 5}} {
		ds := sequential(tc.n)
		out, err := dataset.Sample(ds, tc.max)
		if err != nil {
			t.Fatalf("sample(%d, %d): %v", tc.n, tc.max, err)
		}
		if len(out) > tc.max {
			t.Fatalf("sample(%d, %d) returned %d rows", tc.n, tc.max, len(out))
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	ds := sequential(137)
	a, err := dataset.Sample(ds, 10)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := dataset.Sample(ds, 10)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls with identical inputs must agree")
	}
}

func TestSampleInvalidMaxPoints(t *testing.T) {
	for _, m := range []int{0, -1} {
		_, err := dataset.Sample(sequential(3), m)
		if !errors.Is(err, dataset.ErrInvalidArgument) {
			t.Fatalf("maxPoints=%d: expected ErrInvalidArgument, got %v", m, err)
		}
	}
}

func ExampleSample() {
	ds := sequential(6)
	out, _ := dataset.Sample(ds, 3)
	for _, r := range out {
		n, _ := r["Age"].Num()
		fmt.Println(n)
	}
	// Output:
	// 0
	// 2
	// 4
}
