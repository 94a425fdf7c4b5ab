package codegen

import (
	"strings"
	"testing"

	"github.com/vellumhq/vellum/pkg/scene"
)

func classString(s *scene.Styles) string {
	return strings.Join(classesFor(s), " ")
}

func TestSpacingScaleLookup(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{16, "p-4"},
		{64, "p-16"},
		{1, "p-px"},
		{63, "p-[63px]"},
		{7.5, "p-[7.5px]"},
	}
	for _, c := range cases {
		got := classString(&scene.Styles{Padding: scene.F(c.val)})
		if got != c.want {
			t.Errorf("padding %v = %q, want %q", c.val, got, c.want)
		}
	}
}

func TestZeroSpacingOmitted(t *testing.T) {
	if got := classString(&scene.Styles{Padding: scene.F(0), Gap: scene.F(0)}); got != "" {
		t.Errorf("zero spacing emitted %q, want nothing", got)
	}
}

func TestPerSideOverridesShorthand(t *testing.T) {
	// Uniform only: single shorthand token.
	got := classString(&scene.Styles{Margin: scene.F(16)})
	if got != "m-4" {
		t.Errorf("uniform margin = %q, want m-4", got)
	}
	// One per-side override switches to four explicit sides; the other
	// three resolve from the shorthand.
	got = classString(&scene.Styles{Margin: scene.F(16), MarginTop: scene.F(32)})
	want := "mt-8 mr-4 mb-4 ml-4"
	if got != want {
		t.Errorf("mixed margin = %q, want %q", got, want)
	}
	// Per-side with no shorthand emits only the set sides.
	got = classString(&scene.Styles{PaddingLeft: scene.F(24)})
	if got != "pl-6" {
		t.Errorf("single side = %q, want pl-6", got)
	}
}

func TestColorTokens(t *testing.T) {
	got := classString(&scene.Styles{BackgroundColor: scene.S("#3b82f6")})
	if got != "bg-blue-500" {
		t.Errorf("palette color = %q, want bg-blue-500", got)
	}
	// Unknown hex carries through verbatim, case-normalized.
	got = classString(&scene.Styles{TextColor: scene.S("#ABC123")})
	if got != "text-[#abc123]" {
		t.Errorf("arbitrary color = %q, want text-[#abc123]", got)
	}
}

func TestRadiusExplicitZero(t *testing.T) {
	got := classString(&scene.Styles{BorderRadius: scene.F(0)})
	if got != "rounded-none" {
		t.Errorf("explicit zero radius = %q, want rounded-none", got)
	}
	got = classString(&scene.Styles{BorderRadius: scene.F(8)})
	if got != "rounded-lg" {
		t.Errorf("radius 8 = %q, want rounded-lg", got)
	}
	got = classString(&scene.Styles{BorderRadius: scene.F(10)})
	if got != "rounded-[10px]" {
		t.Errorf("radius 10 = %q, want rounded-[10px]", got)
	}
}

func TestTypographyTokens(t *testing.T) {
	got := classString(&scene.Styles{
		FontSize:   scene.F(24),
		FontWeight: scene.I(700),
		TextAlign:  scene.S("center"),
	})
	want := "text-2xl font-bold text-center"
	if got != want {
		t.Errorf("typography = %q, want %q", got, want)
	}
	got = classString(&scene.Styles{FontSize: scene.F(17)})
	if got != "text-[17px]" {
		t.Errorf("odd font size = %q, want text-[17px]", got)
	}
}

func TestLayoutTokens(t *testing.T) {
	got := classString(&scene.Styles{
		Display:        scene.S("flex"),
		FlexDirection:  scene.S("column"),
		JustifyContent: scene.S("between"),
		AlignItems:     scene.S("center"),
		Gap:            scene.F(8),
	})
	want := "flex flex-col justify-between items-center gap-2"
	if got != want {
		t.Errorf("flex layout = %q, want %q", got, want)
	}

	got = classString(&scene.Styles{Display: scene.S("grid"), GridColumns: scene.I(3)})
	if got != "grid grid-cols-3" {
		t.Errorf("grid layout = %q, want grid grid-cols-3", got)
	}
	got = classString(&scene.Styles{Display: scene.S("grid"), GridColumns: scene.I(16)})
	if got != "grid grid-cols-[repeat(16,minmax(0,1fr))]" {
		t.Errorf("wide grid = %q", got)
	}
}

func TestBorderTokens(t *testing.T) {
	got := classString(&scene.Styles{
		BorderWidth: scene.F(1),
		BorderColor: scene.S("#e5e7eb"),
	})
	if got != "border border-gray-200" {
		t.Errorf("border = %q, want border border-gray-200", got)
	}
	got = classString(&scene.Styles{BorderWidth: scene.F(3)})
	if got != "border-[3px]" {
		t.Errorf("odd border width = %q, want border-[3px]", got)
	}
}

func TestEffectTokens(t *testing.T) {
	got := classString(&scene.Styles{
		Opacity: scene.F(0.5),
		Shadow:  scene.S("md"),
		ZIndex:  scene.I(10),
	})
	want := "opacity-50 shadow-md z-10"
	if got != want {
		t.Errorf("effects = %q, want %q", got, want)
	}
	got = classString(&scene.Styles{Shadow: scene.S("0 4px 6px rgba(0,0,0,0.1)")})
	if got != "shadow-[0_4px_6px_rgba(0,0,0,0.1)]" {
		t.Errorf("custom shadow = %q", got)
	}
	got = classString(&scene.Styles{ZIndex: scene.I(7)})
	if got != "z-[7]" {
		t.Errorf("odd z-index = %q, want z-[7]", got)
	}
}

func TestPrefixed(t *testing.T) {
	got := prefixed("md:", []string{"flex", "gap-2"})
	if got[0] != "md:flex" || got[1] != "md:gap-2" {
		t.Errorf("prefixed = %v", got)
	}
}

func TestPxTrimsTrailingZeros(t *testing.T) {
	if got := px(64); got != "64px" {
		t.Errorf("px(64) = %q", got)
	}
	if got := px(7.5); got != "7.5px" {
		t.Errorf("px(7.5) = %q", got)
	}
}
