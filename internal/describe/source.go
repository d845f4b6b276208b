// SPDX-License-Identifier: MPL-2.0

package describe

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

type (
	// sourceDocs extracts Go doc comments from source files. Parsed files are
	// indexed once and kept for the life of the process.
	sourceDocs struct {
		files map[string]*fileIndex
	}

	// fileIndex holds the doc comments of one file's top-level declarations.
	// Funcs are keyed by name, methods by "Recv.Name".
	fileIndex struct {
		funcs map[string]string
		types map[string]string
	}
)

func newSourceDocs() *sourceDocs {
	return &sourceDocs{files: make(map[string]*fileIndex)}
}

// funcDoc returns the doc comment of the func or method declared in file.
// recv is the receiver type name without pointer, or "" for plain funcs.
func (s *sourceDocs) funcDoc(file, recv, name string) string {
	idx := s.index(file)
	if idx == nil {
		return ""
	}
	if recv != "" {
		return idx.funcs[recv+"."+name]
	}
	return idx.funcs[name]
}

// typeDoc returns the doc comment of the type declared in any of files.
func (s *sourceDocs) typeDoc(files []string, name string) string {
	for _, f := range files {
		if idx := s.index(f); idx != nil {
			if doc, ok := idx.types[name]; ok {
				return doc
			}
		}
	}
	return ""
}

// methodDoc returns the doc comment of a method declared in any of files.
func (s *sourceDocs) methodDoc(files []string, recv, name string) string {
	for _, f := range files {
		if doc := s.funcDoc(f, recv, name); doc != "" {
			return doc
		}
	}
	return ""
}

func (s *sourceDocs) index(file string) *fileIndex {
	if idx, ok := s.files[file]; ok {
		return idx
	}
	idx := parseFileIndex(file)
	s.files[file] = idx
	return idx
}

// parseFileIndex parses file and indexes its doc comments. Unreadable or
// unparsable files yield nil.
func parseFileIndex(file string) *fileIndex {
	if !strings.HasSuffix(file, ".go") {
		return nil
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil
	}

	idx := &fileIndex{
		funcs: make(map[string]string),
		types: make(map[string]string),
	}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			key := d.Name.Name
			if recv := receiverName(d); recv != "" {
				key = recv + "." + key
			}
			if d.Doc != nil {
				idx.funcs[key] = d.Doc.Text()
			}
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				switch {
				case ts.Doc != nil:
					idx.types[ts.Name.Name] = ts.Doc.Text()
				case d.Doc != nil && len(d.Specs) == 1:
					idx.types[ts.Name.Name] = d.Doc.Text()
				}
			}
		}
	}
	return idx
}

// receiverName returns the receiver base type name of a method declaration.
func receiverName(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return ""
	}
	expr := d.Recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// splitSymbol splits a compiled func symbol into receiver type name and func
// name: "pkg.(*Job).Kill" gives ("Job", "Kill"), "pkg.Submit" gives
// ("", "Submit"). Closures yield a name that matches no declaration.
func splitSymbol(symbol string) (recv, name string) {
	s := strings.ReplaceAll(strings.TrimSuffix(symbol, "-fm"), "[...]", "")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) == 1 {
		return "", parts[0]
	}
	recv = strings.TrimSuffix(strings.TrimPrefix(parts[0], "(*"), ")")
	return recv, parts[len(parts)-1]
}
