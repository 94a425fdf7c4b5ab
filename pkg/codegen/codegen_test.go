package codegen

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vellumhq/vellum/pkg/engine"
	"github.com/vellumhq/vellum/pkg/scene"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(scene.NewDocument("test"),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestGenerateBaseline(t *testing.T) {
	e := newEngine(t)
	files := Generate(e.Document())

	for _, name := range []string{"src/index.css", "src/main.jsx", "src/App.jsx", "src/pages/Home.jsx"} {
		if _, ok := files[name]; !ok {
			t.Errorf("missing generated file %s", name)
		}
	}
	if !strings.Contains(files["src/index.css"], "@tailwind utilities;") {
		t.Error("stylesheet bootstrap incomplete")
	}
	if !strings.Contains(files["src/main.jsx"], "createRoot") {
		t.Error("entrypoint missing createRoot")
	}
	// Single page: App renders it directly, no nav shell.
	if strings.Contains(files["src/App.jsx"], "useState") {
		t.Error("single-page app should not carry the nav shell")
	}
	if !strings.Contains(files["src/App.jsx"], "return <Home />;") {
		t.Errorf("App.jsx = %q", files["src/App.jsx"])
	}
	if !strings.Contains(files["src/pages/Home.jsx"], "export default function Home()") {
		t.Error("page component header wrong")
	}
	if !strings.Contains(files["src/pages/Home.jsx"], "relative w-full min-h-screen") {
		t.Error("page root classes missing")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	e := newEngine(t)
	stack := e.AddElement(scene.KindStack, "", nil)
	e.AddElement(scene.KindText, stack, nil)
	icon := e.AddElement(scene.KindIcon, stack, nil)
	e.SetIconName(icon, "arrow-right")
	e.SetVariantStyles(stack, scene.VariantHover, &scene.Styles{BackgroundColor: scene.S("#f3f4f6")})
	e.SetVariantStyles(stack, scene.VariantFocus, &scene.Styles{BackgroundColor: scene.S("#e5e7eb")})
	e.AddPage("About")

	first := Generate(e.Document())
	for i := 0; i < 20; i++ {
		again := Generate(e.Document())
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d files, want %d", i, len(again), len(first))
		}
		for name, content := range first {
			if again[name] != content {
				t.Fatalf("run %d: %s differs between runs", i, name)
			}
		}
	}
}

func TestGenerateMultiPageShell(t *testing.T) {
	e := newEngine(t)
	e.AddPage("About")
	e.AddPage("Pricing")

	files := Generate(e.Document())
	app := files["src/App.jsx"]
	for _, frag := range []string{
		"import { useState } from 'react';",
		"import Home from './pages/Home';",
		"import About from './pages/About';",
		"import Pricing from './pages/Pricing';",
		"useState('Home')",
		"{Page ? <Page /> : null}",
	} {
		if !strings.Contains(app, frag) {
			t.Errorf("App.jsx missing %q", frag)
		}
	}
	if _, ok := files["src/pages/Pricing.jsx"]; !ok {
		t.Error("missing page module for Pricing")
	}
}

func TestGeneratePageNameCollisions(t *testing.T) {
	e := newEngine(t)
	page := e.Document().CurrentPageID
	e.RenamePage(page, "Landing")
	e.AddPage("landing!")

	files := Generate(e.Document())
	if _, ok := files["src/pages/Landing.jsx"]; !ok {
		t.Error("first page module missing")
	}
	if _, ok := files["src/pages/Landing2.jsx"]; !ok {
		t.Error("colliding page should get a disambiguating suffix")
	}
}

func TestEmitLeafKinds(t *testing.T) {
	e := newEngine(t)
	doc := e.Document()

	text := e.AddElement(scene.KindText, "", nil)
	e.SetTextContent(text, "Save 20% on <everything> & {more}")
	link := e.AddElement(scene.KindLink, "", nil)
	e.SetLinkTarget(link, "Docs", "/docs?a=1&b=2", true)
	img := e.AddElement(scene.KindImage, "", nil)
	e.SetImageSource(img, "/hero.png", `say "hi"`)
	video := e.AddElement(scene.KindVideo, "", nil)
	e.SetVideoSource(video, "/v.mp4", true, false, true, true)

	page := doc.CurrentPage()
	out := pageFile(doc, page, "Home")

	if !strings.Contains(out, "Save 20% on &lt;everything&gt; &amp; &#123;more&#125;") {
		t.Errorf("text escaping wrong:\n%s", out)
	}
	if !strings.Contains(out, `href="/docs?a=1&amp;b=2" target="_blank" rel="noopener noreferrer"`) {
		t.Errorf("link attributes wrong:\n%s", out)
	}
	if !strings.Contains(out, `alt="say &quot;hi&quot;"`) {
		t.Errorf("attribute escaping wrong:\n%s", out)
	}
	if !strings.Contains(out, `<video src="/v.mp4" autoPlay muted controls`) {
		t.Errorf("video flags wrong:\n%s", out)
	}
}

func TestEmitIconImports(t *testing.T) {
	e := newEngine(t)
	doc := e.Document()
	a := e.AddElement(scene.KindIcon, "", nil)
	e.SetIconName(a, "arrow-right")
	b := e.AddElement(scene.KindIcon, "", nil)
	e.SetIconName(b, "zap")
	c := e.AddElement(scene.KindIcon, "", nil)
	e.SetIconName(c, "arrow-right")

	out := pageFile(doc, doc.CurrentPage(), "Home")
	if !strings.Contains(out, "import { ArrowRight, Zap } from 'lucide-react';") {
		t.Errorf("icon import line wrong:\n%s", out)
	}
	if strings.Count(out, "<ArrowRight") != 2 {
		t.Errorf("expected two ArrowRight usages:\n%s", out)
	}
}

func TestHiddenSubtreesSkipped(t *testing.T) {
	e := newEngine(t)
	doc := e.Document()
	frame := e.AddElement(scene.KindFrame, "", nil)
	inner := e.AddElement(scene.KindText, frame, nil)
	e.SetTextContent(inner, "secret")
	e.SetVisible(frame, false)

	out := pageFile(doc, doc.CurrentPage(), "Home")
	if strings.Contains(out, "secret") {
		t.Errorf("hidden subtree leaked into output:\n%s", out)
	}
}

func TestResponsiveAndVariantClasses(t *testing.T) {
	e := newEngine(t)
	doc := e.Document()
	text := e.AddElement(scene.KindText, "", nil)
	e.UpdateElementStyles(text, &scene.Styles{FontSize: scene.F(24)})
	e.SetResponsiveStyles(text, scene.BreakpointMobile, &scene.Styles{FontSize: scene.F(14)})
	e.SetResponsiveStyles(text, scene.BreakpointTablet, &scene.Styles{FontSize: scene.F(18)})
	e.SetVariantStyles(text, scene.VariantHover, &scene.Styles{TextColor: scene.S("#2563eb")})

	out := pageFile(doc, doc.CurrentPage(), "Home")
	// Tablet before mobile, variants after both.
	idxBase := strings.Index(out, "text-2xl")
	idxTab := strings.Index(out, "md:text-lg")
	idxMob := strings.Index(out, "sm:text-sm")
	idxHov := strings.Index(out, "hover:text-blue-600")
	if idxBase < 0 || idxTab < 0 || idxMob < 0 || idxHov < 0 {
		t.Fatalf("missing class tokens:\n%s", out)
	}
	if !(idxBase < idxTab && idxTab < idxMob && idxMob < idxHov) {
		t.Errorf("class order wrong: base=%d tablet=%d mobile=%d hover=%d", idxBase, idxTab, idxMob, idxHov)
	}
}

func TestAbsolutePositioningClasses(t *testing.T) {
	e := newEngine(t)
	doc := e.Document()
	id := e.AddElement(scene.KindFrame, "", &scene.Position{X: 40, Y: 80})
	e.ResizeElement(id, scene.Size{Width: 320, Height: 240})

	out := pageFile(doc, doc.CurrentPage(), "Home")
	if !strings.Contains(out, "absolute left-[40px] top-[80px] w-[320px] h-[240px]") {
		t.Errorf("absolute geometry classes wrong:\n%s", out)
	}
}

func TestCardWithLabel(t *testing.T) {
	e := newEngine(t)
	doc := e.Document()
	card := e.AddElement(scene.KindCard, "", nil)
	e.SetCardLabel(card, "Features")

	out := pageFile(doc, doc.CurrentPage(), "Home")
	if !strings.Contains(out, `<h3 className="font-semibold">Features</h3>`) {
		t.Errorf("card label missing:\n%s", out)
	}
}
