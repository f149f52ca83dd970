package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/workdir"
)

func TestPlan_FrameCount(t *testing.T) {
	tests := []struct {
		name      string
		height    int64
		viewport  int64
		maxFrames int
		want      int
	}{
		{"zero_height", 0, 1000, 0, 0},
		{"negative_height", -5, 1000, 0, 0},
		{"shorter_than_viewport", 500, 1000, 0, 1},
		{"exactly_one_viewport", 1000, 1000, 0, 1},
		{"just_over_one_viewport", 1001, 1000, 0, 2},
		{"exact_multiple", 3000, 1000, 0, 3},
		{"partial_last_frame", 2500, 1000, 0, 3},
		{"capped", 25000, 1000, 5, 5},
		{"cap_not_reached", 2500, 1000, 10, 3},
		{"unit_viewport", 7, 1, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.height, tt.viewport, tt.maxFrames)
			if len(got) != tt.want {
				t.Errorf("Plan(%d, %d, %d) produced %d offsets, want %d",
					tt.height, tt.viewport, tt.maxFrames, len(got), tt.want)
			}
		})
	}
}

func TestPlan_OffsetsStrictlyIncreasing(t *testing.T) {
	offsets := Plan(2500, 1000, 0)
	want := []int64{0, 1000, 2000}
	if len(offsets) != len(want) {
		t.Fatalf("Plan() = %v, want %v", offsets, want)
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offset[%d] = %d, want %d", i, offsets[i], want[i])
		}
	}
}

// fakeDoc implements renderer.Document without a browser.
type fakeDoc struct {
	height     int64
	scrolls    []int64
	shots      int
	closeCount int
}

func (d *fakeDoc) Height() int64 { return d.height }
func (d *fakeDoc) Title() string { return "fake" }

func (d *fakeDoc) ScrollTo(ctx context.Context, y int64) error {
	d.scrolls = append(d.scrolls, y)
	return nil
}

func (d *fakeDoc) Screenshot(ctx context.Context) ([]byte, error) {
	d.shots++
	return []byte(fmt.Sprintf("png-%d", d.shots)), nil
}

func (d *fakeDoc) Close() error {
	d.closeCount++
	return nil
}

func testSequencer(maxFrames int) *Sequencer {
	return New(Config{
		ViewportHeight: 1000,
		SettleDelay:    time.Millisecond,
		MaxFrames:      maxFrames,
	})
}

func TestCapture_SequentialOrder(t *testing.T) {
	run, err := workdir.New(t.TempDir())
	if err != nil {
		t.Fatalf("workdir.New() error = %v", err)
	}

	doc := &fakeDoc{height: 2500}
	frames, err := testSequencer(0).Capture(context.Background(), doc, run)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	if len(frames) != 3 {
		t.Fatalf("Capture() produced %d frames, want 3", len(frames))
	}

	wantOffsets := []int64{0, 1000, 2000}
	for i, f := range frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
		if f.Offset != wantOffsets[i] {
			t.Errorf("frame %d offset = %d, want %d", i, f.Offset, wantOffsets[i])
		}
		if len(f.Data) == 0 {
			t.Errorf("frame %d has no image data", i)
		}
	}

	// Scroll order observed by the document must match frame order.
	for i, y := range doc.scrolls {
		if y != wantOffsets[i] {
			t.Errorf("scroll %d went to %d, want %d", i, y, wantOffsets[i])
		}
	}
}

func TestCapture_PersistsFramesInLexicalOrder(t *testing.T) {
	base := t.TempDir()
	run, err := workdir.New(base)
	if err != nil {
		t.Fatalf("workdir.New() error = %v", err)
	}

	doc := &fakeDoc{height: 10500}
	frames, err := testSequencer(0).Capture(context.Background(), doc, run)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(frames) != 11 {
		t.Fatalf("got %d frames, want 11", len(frames))
	}

	entries, err := os.ReadDir(run.Path())
	if err != nil {
		t.Fatalf("reading run dir: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("frame filenames not lexically sorted: %v", names)
	}
	// Lexical order must equal capture order, including past index 9.
	for i, f := range frames {
		if filepath.Base(f.Path) != names[i] {
			t.Errorf("frame %d persisted as %s, directory order has %s",
				i, filepath.Base(f.Path), names[i])
		}
	}
}

func TestCapture_ZeroHeightPage(t *testing.T) {
	run, err := workdir.New(t.TempDir())
	if err != nil {
		t.Fatalf("workdir.New() error = %v", err)
	}

	doc := &fakeDoc{height: 0}
	frames, err := testSequencer(0).Capture(context.Background(), doc, run)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("got %d frames for zero-height page, want 0", len(frames))
	}
	if doc.shots != 0 {
		t.Errorf("screenshot taken for zero-height page")
	}
}

func TestCapture_RespectsMaxFrames(t *testing.T) {
	run, err := workdir.New(t.TempDir())
	if err != nil {
		t.Fatalf("workdir.New() error = %v", err)
	}

	doc := &fakeDoc{height: 100000}
	frames, err := testSequencer(4).Capture(context.Background(), doc, run)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(frames) != 4 {
		t.Errorf("got %d frames, want 4 (capped)", len(frames))
	}
}

func TestCapture_CancelledContext(t *testing.T) {
	run, err := workdir.New(t.TempDir())
	if err != nil {
		t.Fatalf("workdir.New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := &fakeDoc{height: 2500}
	_, err = testSequencer(0).Capture(ctx, doc, run)
	if err == nil {
		t.Fatal("Capture() with cancelled context should fail")
	}
}
