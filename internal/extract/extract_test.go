package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/capture"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/vision"
)

type stubProvider struct {
	response    string
	err         error
	gotImages   []vision.Image
	gotText     string
	respectsCtx bool
}

func (p *stubProvider) Submit(ctx context.Context, instruction string, images []vision.Image) (string, error) {
	p.gotText = instruction
	p.gotImages = images
	if p.respectsCtx {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *stubProvider) Name() string  { return "stub" }
func (p *stubProvider) Model() string { return "stub-1" }

func frames(n int) []capture.Frame {
	fs := make([]capture.Frame, n)
	for i := range fs {
		fs[i] = capture.Frame{Index: i, Offset: int64(i) * 1000, Data: []byte{byte(i)}}
	}
	return fs
}

func TestExtract_PassesOrderedImages(t *testing.T) {
	p := &stubProvider{response: `{"reviews":[]}`}
	e := New(p, 0)

	raw, err := e.Extract(context.Background(), frames(3))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if raw != `{"reviews":[]}` {
		t.Errorf("raw = %q", raw)
	}

	if len(p.gotImages) != 3 {
		t.Fatalf("provider got %d images, want 3", len(p.gotImages))
	}
	for i, img := range p.gotImages {
		if img.MediaType != "image/png" {
			t.Errorf("image %d media type = %q", i, img.MediaType)
		}
		if img.Data[0] != byte(i) {
			t.Errorf("image %d out of order", i)
		}
	}
}

func TestExtract_ProviderFailureIsServiceError(t *testing.T) {
	p := &stubProvider{err: errors.New("quota exceeded")}
	e := New(p, 0)

	_, err := e.Extract(context.Background(), frames(1))
	if err == nil {
		t.Fatal("Extract() should propagate provider failure")
	}
	if !IsServiceError(err) {
		t.Errorf("error %v is not a ServiceError", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error %q lost the cause", err)
	}
}

func TestExtract_TimeoutBoundsCall(t *testing.T) {
	p := &stubProvider{respectsCtx: true}
	e := New(p, 10*time.Millisecond)

	start := time.Now()
	_, err := e.Extract(context.Background(), frames(1))
	if err == nil {
		t.Fatal("Extract() should time out")
	}
	if !IsServiceError(err) {
		t.Errorf("timeout should surface as ServiceError, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Extract() took %v, timeout not applied", elapsed)
	}
}

func TestBuildInstruction(t *testing.T) {
	got := buildInstruction(3)

	for _, want := range []string{
		"3 attached images",
		`"title"`,
		`"body"`,
		`"rating"`,
		`"reviewer"`,
		"[truncated]",
		`{"reviews": []}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
}
