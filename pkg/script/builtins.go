package script

import (
	"fmt"
	"sync/atomic"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/vellumhq/vellum/pkg/engine"
	"github.com/vellumhq/vellum/pkg/scene"
)

// builtinFn is the zygomys function shape after the cancellation guard.
type builtinFn func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the command builtins into a sandbox. Each
// builtin is one engine operation; the canceled flag makes a timed-out
// run stop touching the engine between forms.
func registerBuiltins(env *zygo.Zlisp, eng *engine.Engine, canceled *atomic.Bool) {
	add := func(name string, fn builtinFn) {
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if canceled.Load() {
				return zygo.SexpNull, fmt.Errorf("%s: run canceled", name)
			}
			return fn(env, name, args)
		})
	}

	// -------------------------------------------------------------------
	// (add-element :text :parent "element-1" :x 40 :y 80 :content "Hi")
	// Kind comes first, positionally or via :kind. Payload keywords are
	// forwarded to the matching payload setter. Returns the new ID.
	// -------------------------------------------------------------------
	add("add_element", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		kindSexp, ok := pa.kw["kind"]
		if !ok {
			if len(pa.positional) == 0 {
				return zygo.SexpNull, fmt.Errorf("add-element: missing kind")
			}
			kindSexp = pa.positional[0]
		}
		kindName, err := toKeywordString(kindSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-element: kind: %w", err)
		}
		kind, ok := scene.KindFromString(kindName)
		if !ok || kind == scene.KindPageRoot {
			return zygo.SexpNull, fmt.Errorf("add-element: unknown kind %q", kindName)
		}

		parentID := ""
		if v, ok := pa.kw["parent"]; ok {
			if parentID, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("add-element: parent: %w", err)
			}
		}
		var at *scene.Position
		if xv, okX := pa.kw["x"]; okX {
			yv, okY := pa.kw["y"]
			if !okY {
				return zygo.SexpNull, fmt.Errorf("add-element: :x given without :y")
			}
			x, err := toFloat64(xv)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add-element: x: %w", err)
			}
			y, err := toFloat64(yv)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add-element: y: %w", err)
			}
			at = &scene.Position{X: x, Y: y}
		}

		id := eng.AddElement(kind, parentID, at)
		if id == "" {
			return zygo.SexpNull, fmt.Errorf("add-element: rejected (parent %q)", parentID)
		}
		if err := applyPayloadArgs(eng, id, kind, pa); err != nil {
			return zygo.SexpNull, fmt.Errorf("add-element: %w", err)
		}
		return &zygo.SexpStr{S: id}, nil
	})

	add("delete_element", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := oneStringArg("delete-element", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.DeleteElement(id)
		return zygo.SexpNull, nil
	})

	add("duplicate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := oneStringArg("duplicate", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		clone := eng.DuplicateElement(id)
		if clone == "" {
			return zygo.SexpNull, fmt.Errorf("duplicate: rejected for %q", id)
		}
		return &zygo.SexpStr{S: clone}, nil
	})

	// (move "element-3" 120 40)
	add("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("move: want (move id x y)")
		}
		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		x, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: x: %w", err)
		}
		y, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: y: %w", err)
		}
		eng.MoveElement(id, scene.Position{X: x, Y: y})
		return &zygo.SexpStr{S: id}, nil
	})

	// (resize "element-3" 320 200)
	add("resize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("resize: want (resize id width height)")
		}
		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resize: %w", err)
		}
		w, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resize: width: %w", err)
		}
		h, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resize: height: %w", err)
		}
		eng.ResizeElement(id, scene.Size{Width: w, Height: h})
		return &zygo.SexpStr{S: id}, nil
	})

	add("reparent", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("reparent: want (reparent id new-parent)")
		}
		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reparent: %w", err)
		}
		parent, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("reparent: %w", err)
		}
		eng.ReparentElement(id, parent)
		return &zygo.SexpStr{S: id}, nil
	})

	// (wrap "element-2" "element-3") -> frame ID
	add("wrap", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ids := make([]string, 0, len(args))
		for _, a := range args {
			id, err := toString(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("wrap: %w", err)
			}
			ids = append(ids, id)
		}
		frame := eng.WrapInFrame(ids)
		if frame == "" {
			return zygo.SexpNull, fmt.Errorf("wrap: rejected")
		}
		return &zygo.SexpStr{S: frame}, nil
	})

	add("ungroup", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := oneStringArg("ungroup", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.Ungroup(id)
		return zygo.SexpNull, nil
	})

	// (set-styles "element-3" :font-size 24 :bg "#1f2937" :padding 16)
	add("set_styles", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("set-styles: want (set-styles id :prop value ...)")
		}
		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-styles: %w", err)
		}
		pa := parseArgs(args[1:])
		styles, err := stylesFromArgs(pa.kw)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-styles: %w", err)
		}
		eng.UpdateElementStyles(id, styles)
		return &zygo.SexpStr{S: id}, nil
	})

	// (set-responsive-styles "element-3" :mobile :font-size 14)
	add("set_responsive_styles", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("set-responsive-styles: want (set-responsive-styles id :breakpoint :prop value ...)")
		}
		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-responsive-styles: %w", err)
		}
		bpName, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-responsive-styles: breakpoint: %w", err)
		}
		bp := scene.Breakpoint(bpName)
		if bp != scene.BreakpointTablet && bp != scene.BreakpointMobile {
			return zygo.SexpNull, fmt.Errorf("set-responsive-styles: unknown breakpoint %q", bpName)
		}
		pa := parseArgs(args[2:])
		styles, err := stylesFromArgs(pa.kw)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-responsive-styles: %w", err)
		}
		eng.SetResponsiveStyles(id, bp, styles)
		return &zygo.SexpStr{S: id}, nil
	})

	// (set-variant-styles "element-3" :hover :bg "#111827")
	add("set_variant_styles", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("set-variant-styles: want (set-variant-styles id :variant :prop value ...)")
		}
		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-variant-styles: %w", err)
		}
		variant, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-variant-styles: variant: %w", err)
		}
		pa := parseArgs(args[2:])
		styles, err := stylesFromArgs(pa.kw)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-variant-styles: %w", err)
		}
		eng.SetVariantStyles(id, scene.Variant(variant), styles)
		return &zygo.SexpStr{S: id}, nil
	})

	add("set_text", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, val, err := twoStringArgs("set-text", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.SetTextContent(id, val)
		return &zygo.SexpStr{S: id}, nil
	})

	add("set_button_label", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, val, err := twoStringArgs("set-button-label", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.SetButtonLabel(id, val)
		return &zygo.SexpStr{S: id}, nil
	})

	add("rename", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, val, err := twoStringArgs("rename", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.RenameElement(id, val)
		return &zygo.SexpStr{S: id}, nil
	})

	add("set_locked", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, v, err := stringBoolArgs("set-locked", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.SetLocked(id, v)
		return &zygo.SexpStr{S: id}, nil
	})

	add("set_visible", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, v, err := stringBoolArgs("set-visible", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.SetVisible(id, v)
		return &zygo.SexpStr{S: id}, nil
	})

	// ------------------------------- pages -------------------------------

	add("add_page", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pname, err := oneStringArg("add-page", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpStr{S: eng.AddPage(pname)}, nil
	})

	add("delete_page", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := oneStringArg("delete-page", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.DeletePage(id)
		return zygo.SexpNull, nil
	})

	add("rename_page", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, val, err := twoStringArgs("rename-page", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.RenamePage(id, val)
		return &zygo.SexpStr{S: id}, nil
	})

	add("set_current_page", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := oneStringArg("set-current-page", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		eng.SetCurrentPage(id)
		return &zygo.SexpStr{S: id}, nil
	})

	// ----------------------- selection and clipboard ----------------------

	add("select", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ids := make([]string, 0, len(args))
		for _, a := range args {
			id, err := toString(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("select: %w", err)
			}
			ids = append(ids, id)
		}
		eng.Select(ids...)
		return zygo.SexpNull, nil
	})

	add("copy", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		eng.Copy()
		return zygo.SexpNull, nil
	})

	add("cut", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		eng.Cut()
		return zygo.SexpNull, nil
	})

	// (paste) or (paste :x 40 :y 80)
	add("paste", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var at *scene.Position
		if xv, okX := pa.kw["x"]; okX {
			yv, okY := pa.kw["y"]
			if !okY {
				return zygo.SexpNull, fmt.Errorf("paste: :x given without :y")
			}
			x, err := toFloat64(xv)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("paste: x: %w", err)
			}
			y, err := toFloat64(yv)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("paste: y: %w", err)
			}
			at = &scene.Position{X: x, Y: y}
		}
		roots := eng.Paste(at)
		arr := make([]zygo.Sexp, len(roots))
		for i, id := range roots {
			arr[i] = &zygo.SexpStr{S: id}
		}
		return env.NewSexpArray(arr), nil
	})

	add("undo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: eng.Undo()}, nil
	})

	add("redo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: eng.Redo()}, nil
	})
}

// applyPayloadArgs forwards payload keywords from add-element to the
// matching kind setter.
func applyPayloadArgs(eng *engine.Engine, id string, kind scene.ElementKind, pa kwArgs) error {
	str := func(key string) (string, bool, error) {
		v, ok := pa.kw[key]
		if !ok {
			return "", false, nil
		}
		s, err := toString(v)
		if err != nil {
			return "", false, fmt.Errorf("%s: %w", key, err)
		}
		return s, true, nil
	}
	boolean := func(key string) (bool, error) {
		v, ok := pa.kw[key]
		if !ok {
			return false, nil
		}
		b, err := toBool(v)
		if err != nil {
			return false, fmt.Errorf("%s: %w", key, err)
		}
		return b, nil
	}

	switch kind {
	case scene.KindText:
		if content, ok, err := str("content"); err != nil {
			return err
		} else if ok {
			eng.SetTextContent(id, content)
		}
	case scene.KindButton:
		if label, ok, err := str("label"); err != nil {
			return err
		} else if ok {
			eng.SetButtonLabel(id, label)
		}
	case scene.KindLink:
		text, okText, err := str("text")
		if err != nil {
			return err
		}
		href, okHref, err := str("href")
		if err != nil {
			return err
		}
		if okText || okHref {
			newTab, err := boolean("new-tab")
			if err != nil {
				return err
			}
			eng.SetLinkTarget(id, text, href, newTab)
		}
	case scene.KindImage:
		src, okSrc, err := str("src")
		if err != nil {
			return err
		}
		alt, _, err := str("alt")
		if err != nil {
			return err
		}
		if okSrc {
			eng.SetImageSource(id, src, alt)
		}
	case scene.KindInput:
		placeholder, okP, err := str("placeholder")
		if err != nil {
			return err
		}
		typ, okT, err := str("type")
		if err != nil {
			return err
		}
		if okP || okT {
			eng.SetInputPlaceholder(id, placeholder, typ)
		}
	case scene.KindIcon:
		if name, ok, err := str("name"); err != nil {
			return err
		} else if ok {
			eng.SetIconName(id, name)
		}
	case scene.KindVideo:
		src, okSrc, err := str("src")
		if err != nil {
			return err
		}
		if okSrc {
			autoplay, err := boolean("autoplay")
			if err != nil {
				return err
			}
			loop, err := boolean("loop")
			if err != nil {
				return err
			}
			muted, err := boolean("muted")
			if err != nil {
				return err
			}
			controls, err := boolean("controls")
			if err != nil {
				return err
			}
			eng.SetVideoSource(id, src, autoplay, loop, muted, controls)
		}
	case scene.KindCard:
		if label, ok, err := str("label"); err != nil {
			return err
		} else if ok {
			eng.SetCardLabel(id, label)
		}
	}
	return nil
}

func oneStringArg(fn string, args []zygo.Sexp) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: want exactly one argument", fn)
	}
	s, err := toString(args[0])
	if err != nil {
		return "", fmt.Errorf("%s: %w", fn, err)
	}
	return s, nil
}

func twoStringArgs(fn string, args []zygo.Sexp) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("%s: want exactly two arguments", fn)
	}
	a, err := toString(args[0])
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", fn, err)
	}
	b, err := toString(args[1])
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", fn, err)
	}
	return a, b, nil
}

func stringBoolArgs(fn string, args []zygo.Sexp) (string, bool, error) {
	if len(args) != 2 {
		return "", false, fmt.Errorf("%s: want exactly two arguments", fn)
	}
	id, err := toString(args[0])
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", fn, err)
	}
	v, err := toBool(args[1])
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", fn, err)
	}
	return id, v, nil
}
