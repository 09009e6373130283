package panel

import (
	"bytes"
	"strings"
	"testing"
)

func TestLayoutConfigRoundTrip(t *testing.T) {
	in := LayoutConfig{
		Mode:           ModeManual,
		UseOutbuilding: true,
		UseFacade:      true,
		RemovedIndices: []int{0, 4, 9},
		Outbuilding:    Outbuilding{Length: 7, Width: 3.5, Height: 2.4, OffsetX: 1, OffsetY: -2},
	}

	var buf bytes.Buffer
	if err := in.EncodeTOML(&buf); err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	out, err := DecodeTOML(&buf)
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	if out.Mode != in.Mode || out.UseOutbuilding != in.UseOutbuilding || out.UseFacade != in.UseFacade {
		t.Errorf("policy flags changed in round trip: %+v", out)
	}
	if len(out.RemovedIndices) != 3 || out.RemovedIndices[2] != 9 {
		t.Errorf("removed indices = %v, want [0 4 9]", out.RemovedIndices)
	}
	if out.Outbuilding != in.Outbuilding {
		t.Errorf("outbuilding = %+v, want %+v", out.Outbuilding, in.Outbuilding)
	}
}

func TestDecodeTOMLToleratesUnknownAndMissingFields(t *testing.T) {
	src := `
mode = "manual"
a_future_field = "ignored"

[outbuilding]
length = 5.0
`
	cfg, err := DecodeTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	if cfg.Mode != ModeManual {
		t.Errorf("mode = %q, want manual", cfg.Mode)
	}
	if cfg.Outbuilding.Length != 5 {
		t.Errorf("outbuilding length = %v, want 5", cfg.Outbuilding.Length)
	}
	if cfg.UseFacade {
		t.Error("use_facade should default to false")
	}
}

func TestDecodeTOMLNormalizesMode(t *testing.T) {
	cfg, err := DecodeTOML(strings.NewReader(`mode = "freeform"`))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	if cfg.Mode != ModeAuto {
		t.Errorf("mode = %q, want auto fallback", cfg.Mode)
	}
}
