// Package codegen derives React + Tailwind source files from a scene
// document. Generation is a pure function of the document: no hidden
// state, and the same input always produces byte-identical output, so
// the surrounding system can re-run it as often as it likes and diff
// the results for hot reload.
package codegen

import (
	"fmt"
	"strings"

	"github.com/vellumhq/vellum/pkg/scene"
)

// Generate walks every page of the document and returns the complete
// generated source tree as a path -> file content map. The map always
// contains the program entry, the stylesheet bootstrap, an App shell,
// and one module per page.
func Generate(doc *scene.Document) map[string]string {
	files := map[string]string{
		"src/index.css": stylesheetBootstrap,
		"src/main.jsx":  entrypoint,
	}

	var pages []*scene.Page
	var names []string
	for _, pid := range doc.PageOrder {
		p := doc.Pages[pid]
		if p == nil {
			continue
		}
		pages = append(pages, p)
		names = append(names, p.Name)
	}
	comps := componentNames(names)

	for i, p := range pages {
		files["src/pages/"+comps[i]+".jsx"] = pageFile(doc, p, comps[i])
	}
	files["src/App.jsx"] = appFile(comps)
	return files
}

const stylesheetBootstrap = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

const entrypoint = `import React from 'react';
import { createRoot } from 'react-dom/client';
import App from './App';
import './index.css';

createRoot(document.getElementById('root')).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`

// pageFile renders one page module: icon imports, then a component
// returning the page root's markup tree.
func pageFile(doc *scene.Document, p *scene.Page, component string) string {
	root := doc.Get(p.RootElementID)
	var b strings.Builder
	if root != nil {
		if icons := collectIcons(doc, root); len(icons) > 0 {
			fmt.Fprintf(&b, "import { %s } from 'lucide-react';\n\n", strings.Join(icons, ", "))
		}
	}
	fmt.Fprintf(&b, "export default function %s() {\n", component)
	b.WriteString("  return (\n")
	if root == nil || !root.Visible {
		b.WriteString("    <div />\n")
	} else {
		em := &emitter{doc: doc}
		em.emit(root, 2)
		b.WriteString(em.b.String())
	}
	b.WriteString("  );\n")
	b.WriteString("}\n")
	return b.String()
}

// appFile renders the program shell. A single page renders directly; a
// multi-page document gets a state-based navigation shell (the editor
// preview has no real router).
func appFile(components []string) string {
	var b strings.Builder
	if len(components) == 1 {
		fmt.Fprintf(&b, "import %s from './pages/%s';\n\n", components[0], components[0])
		b.WriteString("export default function App() {\n")
		fmt.Fprintf(&b, "  return <%s />;\n", components[0])
		b.WriteString("}\n")
		return b.String()
	}

	b.WriteString("import { useState } from 'react';\n")
	for _, c := range components {
		fmt.Fprintf(&b, "import %s from './pages/%s';\n", c, c)
	}
	b.WriteString("\nconst pages = {\n")
	for _, c := range components {
		fmt.Fprintf(&b, "  %s: %s,\n", c, c)
	}
	b.WriteString("};\n\n")
	b.WriteString("export default function App() {\n")
	if len(components) > 0 {
		fmt.Fprintf(&b, "  const [current, setCurrent] = useState('%s');\n", components[0])
	} else {
		b.WriteString("  const [current, setCurrent] = useState('');\n")
	}
	b.WriteString("  const Page = pages[current];\n")
	b.WriteString("  return (\n")
	b.WriteString("    <div>\n")
	b.WriteString("      <nav className=\"flex gap-4 border-b border-gray-200 px-4 py-2\">\n")
	b.WriteString("        {Object.keys(pages).map((name) => (\n")
	b.WriteString("          <button\n")
	b.WriteString("            key={name}\n")
	b.WriteString("            className={name === current ? 'font-semibold underline' : ''}\n")
	b.WriteString("            onClick={() => setCurrent(name)}\n")
	b.WriteString("          >\n")
	b.WriteString("            {name}\n")
	b.WriteString("          </button>\n")
	b.WriteString("        ))}\n")
	b.WriteString("      </nav>\n")
	b.WriteString("      {Page ? <Page /> : null}\n")
	b.WriteString("    </div>\n")
	b.WriteString("  );\n")
	b.WriteString("}\n")
	return b.String()
}
