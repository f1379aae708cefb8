package output

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const gridSide = 256

// KeyGrid buckets keys into a gridSide x gridSide grid covering [min, max].
// Cell (x, y) holds the keys of slot x*gridSide+y.
func KeyGrid(keys []int64) (counts [gridSide][gridSide]uint32, min, max int64) {
	if len(keys) == 0 {
		return counts, 0, 0
	}
	min, max = keys[0], keys[0]
	for _, k := range keys[1:] {
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	span := uint64(max) - uint64(min)
	for _, k := range keys {
		slot := slotOf(uint64(k)-uint64(min), span)
		counts[slot/gridSide][slot%gridSide]++
	}
	return counts, min, max
}

// slotOf scales off in [0, span] to [0, gridSide*gridSide).
func slotOf(off, span uint64) uint64 {
	const slots = gridSide * gridSide
	if span < slots {
		return off
	}
	// span+1 may overflow, so divide first
	width := span/slots + 1
	return off / width
}

// PlotKeyHeatmap creates an interactive heatmap of the key distribution.
func PlotKeyHeatmap(keys []int64, title, filename string) error {
	counts, min, max := KeyGrid(keys)
	span := uint64(max) - uint64(min)

	// Prepare data with hover info
	var heatmapData []opts.HeatMapData
	var maxCount uint32
	for x := 0; x < gridSide; x++ {
		for y := 0; y < gridSide; y++ {
			count := counts[x][y]
			if count > maxCount {
				maxCount = count
			}
			if count > 0 {
				heatmapData = append(heatmapData, opts.HeatMapData{
					Value: [3]interface{}{x, y, count},
					Name:  slotLabel(uint64(x*gridSide+y), min, span),
				})
			}
		}
	}

	heatmap := charts.NewHeatMap()
	heatmap.SetGlobalOptions(
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Key Heatmap",
			Width:           "180vh",
			Height:          "100vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("keys %d to %d", min, max),
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "item",
			Formatter: opts.FuncOpts(`function (params) {
		return params.name + '<br />Count: ' + params.value[2];
	}`),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show: opts.Bool(true),
			Min:  0,
			Max:  float32(maxCount),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#ffff8f", "#ff0000", "#000000"},
			},
			Orient: "vertical",
			Right:  "5%",
			Top:    "middle",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "Slot (high)",
			Type:        "category",
			Data:        makeRange(0, gridSide-1),
			SplitNumber: 16,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:        "Slot (low)",
			Type:        "category",
			Data:        makeRange(0, gridSide-1),
			SplitNumber: 16,
		}),
	)

	heatmap.AddSeries("Heatmap", heatmapData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(heatmap)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create heatmap file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering heatmap: %w", err)
	}
	return nil
}

// slotLabel names the key range a slot covers.
func slotLabel(slot uint64, min int64, span uint64) string {
	const slots = gridSide * gridSide
	if span < slots {
		return fmt.Sprintf("%d", min+int64(slot))
	}
	width := span/slots + 1
	lo := min + int64(slot*width)
	return fmt.Sprintf("%d .. %d", lo, lo+int64(width-1))
}

// makeRange creates an integer slice [min..max]
func makeRange(min, max int) []int {
	r := make([]int, max-min+1)
	for i := range r {
		r[i] = min + i
	}
	return r
}
