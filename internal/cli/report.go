package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mlmac-seid/london-train-network/pkg/metrics"
)

// printReport renders the metrics report as styled terminal output.
// topN limits the degree table; the full table is always in the JSON artifact.
func printReport(r *metrics.Report, topN int) {
	names := stationNames(r)

	printNewline()
	fmt.Println(StyleTitle.Render("Network metrics"))
	printKeyValue("Stations", fmt.Sprintf("%d", r.StationCount))
	printKeyValue("Routes", fmt.Sprintf("%d", r.RouteCount))
	printKeyValue("Density", fmt.Sprintf("%.4f", r.Density))
	printKeyValue("Mean distance", fmt.Sprintf("%.3f", r.MeanDistance))
	printKeyValue("Unreachable pairs", fmt.Sprintf("%d", r.UnreachablePairs))
	printKeyValue("Diameter", fmt.Sprintf("%d", r.Diameter))
	printKeyValue("Components", fmt.Sprintf("%d", r.Components.Count))
	printKeyValue("Layout seed", fmt.Sprintf("%d", r.Seed))

	printDegreeTable(r, topN)
	printHistogram(r)
	printDiameterPath(r, names)
	printComponents(r)
}

// stationNames builds an id → name lookup from the degree table, which
// always carries every station.
func stationNames(r *metrics.Report) map[int64]string {
	names := make(map[int64]string, len(r.DegreeTable))
	for _, e := range r.DegreeTable {
		names[e.StationID] = e.Name
	}
	return names
}

func printDegreeTable(r *metrics.Report, topN int) {
	if len(r.DegreeTable) == 0 {
		return
	}
	if topN <= 0 || topN > len(r.DegreeTable) {
		topN = len(r.DegreeTable)
	}

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Degree centrality (top %d)", topN)))
	for i, e := range r.DegreeTable[:topN] {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("station %d", e.StationID)
		}
		rank := StyleDim.Render(fmt.Sprintf("%3d.", i+1))
		fmt.Printf("%s %s %s\n",
			rank,
			StyleValue.Render(fmt.Sprintf("%-32s", name)),
			StyleNumber.Render(fmt.Sprintf("%d", e.Degree)))
	}
}

func printHistogram(r *metrics.Report) {
	if len(r.DistanceHistogram) == 0 {
		return
	}

	lengths := make([]int, 0, len(r.DistanceHistogram))
	for l := range r.DistanceHistogram {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	max := 0
	for _, l := range lengths {
		if r.DistanceHistogram[l] > max {
			max = r.DistanceHistogram[l]
		}
	}

	printNewline()
	fmt.Println(StyleTitle.Render("Geodesic distance histogram"))
	for _, l := range lengths {
		count := r.DistanceHistogram[l]
		bar := histogramBar(count, max, 40)
		fmt.Printf("%s %s %s\n",
			StyleDim.Render(fmt.Sprintf("%3d", l)),
			StyleHighlight.Render(bar),
			StyleDim.Render(fmt.Sprintf("%d pairs", count)))
	}
}

// histogramBar scales count against max into a bar of at most width cells.
// Non-zero counts always get at least one cell.
func histogramBar(count, max, width int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	n := count * width / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func printDiameterPath(r *metrics.Report, names map[int64]string) {
	if len(r.DiameterPath) == 0 {
		return
	}

	parts := make([]string, 0, len(r.DiameterPath))
	for _, id := range r.DiameterPath {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("%d", id)
		}
		parts = append(parts, name)
	}

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Diameter witness (%d hops)", r.Diameter)))
	fmt.Println("  " + StyleValue.Render(strings.Join(parts, " "+iconArrow+" ")))
}

func printComponents(r *metrics.Report) {
	printNewline()
	fmt.Println(StyleTitle.Render("Strongly connected components"))
	printDetail("%d components, largest %s", r.Components.Count, componentSizes(r.Components.Sizes, 5))
}

// componentSizes formats the first n sizes, eliding the rest.
func componentSizes(sizes []int, n int) string {
	if len(sizes) == 0 {
		return "none"
	}
	shown := sizes
	elided := false
	if len(shown) > n {
		shown = shown[:n]
		elided = true
	}
	parts := make([]string, len(shown))
	for i, s := range shown {
		parts[i] = fmt.Sprintf("%d", s)
	}
	out := strings.Join(parts, ", ")
	if elided {
		out += ", …"
	}
	return out
}
