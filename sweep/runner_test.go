package sweep

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cocosip/go-wavelet-codec/raster"
)

func testRaster(t *testing.T, h, w int) *raster.Raster {
	t.Helper()
	r := raster.New(h, w, raster.Float32)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(y, x, float64((x*7+y*3)%256))
		}
	}
	return r
}

func testGrid() Grid {
	return Grid{
		Wavelets:      []string{"haar", "db2"},
		Levels:        []int{1, 2},
		QuantSteps:    []float64{10, 40},
		DeflateLevels: []int{6},
	}
}

func TestGridTasks(t *testing.T) {
	r := testRaster(t, 16, 16)

	t.Run("counts", func(t *testing.T) {
		// 1 deflate + 2 wavelets x 2 levels x 2 steps.
		tasks := testGrid().Tasks(r)
		if len(tasks) != 9 {
			t.Errorf("got %d tasks, want 9", len(tasks))
		}
	})

	t.Run("infeasible levels dropped", func(t *testing.T) {
		g := testGrid()
		g.Levels = []int{1, 99}
		tasks := g.Tasks(r)
		// 1 deflate + 2 wavelets x 1 feasible level x 2 steps.
		if len(tasks) != 5 {
			t.Errorf("got %d tasks, want 5", len(tasks))
		}
	})

	t.Run("unknown wavelets kept", func(t *testing.T) {
		g := Grid{
			Wavelets:   []string{"no_such"},
			Levels:     []int{1},
			QuantSteps: []float64{10},
		}
		tasks := g.Tasks(r)
		if len(tasks) != 1 {
			t.Fatalf("got %d tasks, want 1", len(tasks))
		}
		if tasks[0].WaveletName != "no_such" {
			t.Errorf("WaveletName = %q", tasks[0].WaveletName)
		}
	})
}

func TestRunnerRun(t *testing.T) {
	r := testRaster(t, 16, 16)
	rn := NewRunner(2)
	if rn.RunID == "" {
		t.Fatal("NewRunner assigned no run id")
	}

	rows, err := rn.Run(context.Background(), r, testGrid())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 9 {
		t.Fatalf("got %d rows, want 9", len(rows))
	}

	for i, row := range rows {
		if row.Err != "" {
			t.Errorf("row %d (%s %s) failed: %s", i, row.Algorithm, row.Params, row.Err)
			continue
		}
		if row.RunID != rn.RunID {
			t.Errorf("row %d run id = %q, want %q", i, row.RunID, rn.RunID)
		}
		if row.Dimensions != "16x16" {
			t.Errorf("row %d dimensions = %q", i, row.Dimensions)
		}
		if row.CompressedBytes <= 0 || row.Ratio <= 0 || row.BPP <= 0 {
			t.Errorf("row %d sizes not populated: %+v", i, row)
		}
		if row.PSNR <= 0 || row.SSIM <= 0 || row.SSIM > 1 {
			t.Errorf("row %d metrics out of range: PSNR=%v SSIM=%v", i, row.PSNR, row.SSIM)
		}
	}

	for i := 1; i < len(rows); i++ {
		if rows[i-1].Ratio < rows[i].Ratio {
			t.Errorf("rows not sorted by ratio: %v before %v", rows[i-1].Ratio, rows[i].Ratio)
		}
	}
}

func TestRunnerRecordsFailures(t *testing.T) {
	r := testRaster(t, 16, 16)
	g := Grid{
		Wavelets:   []string{"haar", "no_such"},
		Levels:     []int{1},
		QuantSteps: []float64{10},
	}

	rows, err := NewRunner(1).Run(context.Background(), r, g)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// Failed rows sort to the bottom.
	if rows[0].Err != "" {
		t.Errorf("first row failed: %s", rows[0].Err)
	}
	last := rows[len(rows)-1]
	if last.Err == "" || !strings.Contains(last.Err, "no_such") {
		t.Errorf("failure row error = %q, want a mention of the unknown wavelet", last.Err)
	}
	if last.CompressedBytes != 0 {
		t.Errorf("failure row has compressed size %d", last.CompressedBytes)
	}
}

func TestRunnerEmptyRaster(t *testing.T) {
	if _, err := NewRunner(1).Run(context.Background(), &raster.Raster{}, testGrid()); err == nil {
		t.Error("expected error for an empty raster")
	}
}

func TestRunnerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(1).Run(ctx, testRaster(t, 16, 16), testGrid()); err == nil {
		t.Error("expected error from a cancelled context")
	}
}

func TestRunnerSavesArtifacts(t *testing.T) {
	dir := t.TempDir()
	rn := NewRunner(1)
	rn.SaveDir = dir

	g := Grid{
		Wavelets:   []string{"haar"},
		Levels:     []int{1},
		QuantSteps: []float64{10},
	}
	rows, err := rn.Run(context.Background(), testRaster(t, 16, 16), g)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Err != "" {
		t.Fatal(rows[0].Err)
	}

	var bins, jsons, pngs int
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".bin":
			bins++
		case ".json":
			jsons++
		case ".png":
			pngs++
		}
	}
	if bins != 1 || jsons != 1 || pngs != 1 {
		t.Errorf("got %d .bin, %d .json, %d .png artifacts, want 1 of each", bins, jsons, pngs)
	}
}

func TestSort(t *testing.T) {
	rows := []Result{
		{Params: "fails", Ratio: 99, Err: "boom"},
		{Params: "low", Ratio: 1.5, CompressedBytes: 400},
		{Params: "high", Ratio: 3.0, CompressedBytes: 200},
		{Params: "tie-small", Ratio: 1.5, CompressedBytes: 100},
	}
	Sort(rows)

	order := make([]string, len(rows))
	for i, r := range rows {
		order[i] = r.Params
	}
	want := []string{"high", "tie-small", "low", "fails"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	r := testRaster(t, 16, 16)
	rn := NewRunner(2)
	rows, err := rn.Run(context.Background(), r, testGrid())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	if err := WriteCSV(path, rows); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != len(rows)+1 {
		t.Fatalf("got %d records, want %d", len(records), len(rows)+1)
	}
	if len(records[0]) != len(csvHeader) {
		t.Fatalf("header has %d columns, want %d", len(records[0]), len(csvHeader))
	}
	for i, col := range csvHeader {
		if records[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, records[0][i], col)
		}
	}
	if records[1][0] != rn.RunID {
		t.Errorf("first data row run id = %q, want %q", records[1][0], rn.RunID)
	}
}
