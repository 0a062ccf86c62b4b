package cli

import (
	"testing"

	"github.com/mlmac-seid/london-train-network/pkg/metrics"
)

func TestHistogramBar(t *testing.T) {
	tests := []struct {
		name         string
		count, max   int
		width        int
		wantLen      int
		wantNonEmpty bool
	}{
		{"Max", 10, 10, 40, 40, true},
		{"Half", 5, 10, 40, 20, true},
		{"TinyNonZero", 1, 1000, 40, 1, true},
		{"Zero", 0, 10, 40, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := histogramBar(tt.count, tt.max, tt.width)
			got := len([]rune(bar))
			if got != tt.wantLen {
				t.Errorf("histogramBar(%d, %d, %d) length = %d, want %d",
					tt.count, tt.max, tt.width, got, tt.wantLen)
			}
			if (bar != "") != tt.wantNonEmpty {
				t.Errorf("histogramBar(%d, %d, %d) = %q", tt.count, tt.max, tt.width, bar)
			}
		})
	}
}

func TestComponentSizes(t *testing.T) {
	if got := componentSizes(nil, 5); got != "none" {
		t.Errorf("componentSizes(nil) = %q", got)
	}
	if got := componentSizes([]int{5, 3, 1}, 5); got != "5, 3, 1" {
		t.Errorf("componentSizes = %q", got)
	}
	if got := componentSizes([]int{9, 8, 7, 6, 5, 4}, 3); got != "9, 8, 7, …" {
		t.Errorf("componentSizes elided = %q", got)
	}
}

func TestStationNames(t *testing.T) {
	r := &metrics.Report{
		DegreeTable: []metrics.DegreeEntry{
			{StationID: 1, Name: "A", Degree: 2},
			{StationID: 2, Name: "B", Degree: 1},
		},
	}
	names := stationNames(r)
	if names[1] != "A" || names[2] != "B" {
		t.Errorf("stationNames = %v", names)
	}
}
