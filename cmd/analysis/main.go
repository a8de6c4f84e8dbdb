//go:build analysis

// Signature-size analysis: builds aggregates across ring sizes and output
// counts for both proof formats, measures the serialized footprint, and
// renders the results as charts plus a JSON report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/tuneinsight/lattigo/v4/utils"

	"RingCT-Bridge/bridge"
	"RingCT-Bridge/measure"
	"RingCT-Bridge/measureutil"
	"RingCT-Bridge/prof"
	"RingCT-Bridge/rct"
	"RingCT-Bridge/stubengine"
)

type sizePoint struct {
	RingSize int               `json:"ring_size"`
	Outputs  int               `json:"outputs"`
	Variant  string            `json:"variant"`
	Bytes    int               `json:"bytes"`
	Sections map[string]uint64 `json:"sections"`
}

// ------------------------------ fixture input ------------------------------

func buildInput(prng utils.PRNG, ringSize, outputs int) (bridge.BuildInput, error) {
	key := func() ([]byte, error) {
		b := make([]byte, rct.KeySize)
		_, err := prng.Read(b)
		return b, err
	}
	in := bridge.BuildInput{
		SpendIndices: []uint32{uint32(ringSize / 2)},
		InAmounts:    []rct.Amount{1_000_000},
		Fee:          1_000,
	}
	var err error
	if in.PrefixHash, err = key(); err != nil {
		return in, err
	}
	secret, err := key()
	if err != nil {
		return in, err
	}
	mask, err := key()
	if err != nil {
		return in, err
	}
	in.SpendKeys = []bridge.SpendKeyBytes{{Secret: secret, Mask: mask}}

	row := make([]bridge.RingMemberBytes, ringSize)
	for i := range row {
		if row[i].Dest, err = key(); err != nil {
			return in, err
		}
		if row[i].Mask, err = key(); err != nil {
			return in, err
		}
	}
	in.Ring = [][]bridge.RingMemberBytes{row}

	per := (in.InAmounts[0] - in.Fee) / rct.Amount(outputs)
	rem := (in.InAmounts[0] - in.Fee) % rct.Amount(outputs)
	for o := 0; o < outputs; o++ {
		dest, err := key()
		if err != nil {
			return in, err
		}
		ak, err := key()
		if err != nil {
			return in, err
		}
		in.Destinations = append(in.Destinations, dest)
		in.AmountKeys = append(in.AmountKeys, ak)
		amount := per
		if o == 0 {
			amount += rem
		}
		in.OutAmounts = append(in.OutAmounts, amount)
	}
	return in, nil
}

// ------------------------------ chart helpers ------------------------------

func newSizeChart(title, xName string, labels []string, series map[string][]int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "serialized bytes, stub engine shapes"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "bytes"}),
	)
	line.SetXAxis(labels)
	for name, vals := range series {
		items := make([]opts.LineData, len(vals))
		for i, v := range vals {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, items)
	}
	return line
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ------------------------------- main routine -------------------------------

func main() {
	maxRing := flag.Int("max-ring", 16, "largest ring size to measure")
	outputs := flag.Int("outputs", 2, "outputs per signature for the ring sweep")
	maxOutputs := flag.Int("max-outputs", 16, "largest output count for the output sweep")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *outDir, err)
	}
	measure.Enabled = true

	variants := []struct {
		name string
		v    bridge.RangeProofVariant
	}{
		{"mg (padded v2)", bridge.RangeProofPaddedV2},
		{"clsag (compact)", bridge.RangeProofCompact},
	}

	var points []sizePoint
	runOne := func(variant bridge.RangeProofVariant, name string, ringSize, outs int) int {
		prng, err := utils.NewKeyedPRNG([]byte(fmt.Sprintf("analysis/%s/%d/%d", name, ringSize, outs)))
		if err != nil {
			log.Fatalf("keyed prng: %v", err)
		}
		in, err := buildInput(prng, ringSize, outs)
		if err != nil {
			log.Fatalf("fixture: %v", err)
		}
		b := bridge.Builder{Engine: stubengine.Engine{}, Variant: variant}
		start := time.Now()
		sig, err := b.BuildSimple(in)
		if err != nil {
			log.Fatalf("build (%s, ring %d, outs %d): %v", name, ringSize, outs, err)
		}
		prof.Track(start, "build/"+name)

		start = time.Now()
		buf, err := sig.Serialize()
		if err != nil {
			log.Fatalf("serialize: %v", err)
		}
		prof.Track(start, "serialize/"+name)

		points = append(points, sizePoint{
			RingSize: ringSize,
			Outputs:  outs,
			Variant:  name,
			Bytes:    len(buf),
			Sections: measureutil.SnapshotAndReset(),
		})
		return len(buf)
	}

	// Sweep ring sizes at a fixed output count.
	var ringLabels []string
	ringSeries := make(map[string][]int)
	for ringSize := 2; ringSize <= *maxRing; ringSize++ {
		ringLabels = append(ringLabels, fmt.Sprintf("%d", ringSize))
		for _, variant := range variants {
			n := runOne(variant.v, variant.name, ringSize, *outputs)
			ringSeries[variant.name] = append(ringSeries[variant.name], n)
		}
	}

	// Sweep output counts at a fixed ring size.
	var outLabels []string
	outSeries := make(map[string][]int)
	for outs := 1; outs <= *maxOutputs; outs++ {
		outLabels = append(outLabels, fmt.Sprintf("%d", outs))
		for _, variant := range variants {
			n := runOne(variant.v, variant.name, 11, outs)
			outSeries[variant.name] = append(outSeries[variant.name], n)
		}
	}

	ts := time.Now().Format("20060102_150405")
	page := components.NewPage()
	page.AddCharts(
		newSizeChart(fmt.Sprintf("signature size vs ring size (%d outputs)", *outputs), "ring size", ringLabels, ringSeries),
		newSizeChart("signature size vs outputs (ring size 11)", "outputs", outLabels, outSeries),
	)
	htmlPath := filepath.Join(*outDir, fmt.Sprintf("sig_sizes_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}

	jsonPath := filepath.Join(*outDir, fmt.Sprintf("sig_sizes_%s.json", ts))
	report := struct {
		Points  []sizePoint              `json:"points"`
		Timings map[string]time.Duration `json:"timings"`
	}{points, prof.Totals(prof.SnapshotAndReset())}
	if err := saveJSON(jsonPath, report); err != nil {
		log.Fatalf("write json: %v", err)
	}

	fmt.Println("Size charts:", htmlPath)
	fmt.Println("Report JSON:", jsonPath)
}
