package structure

import (
	"strings"

	"github.com/theirongolddev/sienna/internal/textmatch"
)

// Tree is a generated folder layout for one project.
type Tree struct {
	Folders []Folder `json:"folders"`
	Applied []string `json:"applied_rules,omitempty"`
}

// Generate copies the master tree and applies every rule whose keywords
// occur in context. The template is never modified.
func (t *Template) Generate(context string) Tree {
	tree := Tree{Folders: cloneFolders(t.Folders)}

	for _, rule := range t.Rules {
		if !textmatch.ContainsAny(context, rule.Keywords...) {
			continue
		}
		for _, add := range rule.Add {
			tree.add(add)
		}
		tree.Applied = append(tree.Applied, rule.Name)
	}
	return tree
}

func (tr *Tree) add(f Folder) {
	for i := range tr.Folders {
		if tr.Folders[i].Name == f.Name {
			tr.Folders[i].Entries = append(tr.Folders[i].Entries, f.Entries...)
			return
		}
	}
	tr.Folders = append(tr.Folders, Folder{
		Name:    f.Name,
		Entries: append([]string(nil), f.Entries...),
	})
}

func cloneFolders(in []Folder) []Folder {
	out := make([]Folder, len(in))
	for i, f := range in {
		out[i] = Folder{Name: f.Name, Entries: append([]string(nil), f.Entries...)}
	}
	return out
}

// Paths flattens the tree into slash-separated directory paths, parents
// before children, without duplicates.
func (tr Tree) Paths() []string {
	var paths []string
	seen := make(map[string]bool)
	push := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, f := range tr.Folders {
		push(f.Name)
		for _, e := range f.Entries {
			parts := strings.Split(strings.Trim(e, "/"), "/")
			cur := f.Name
			for _, part := range parts {
				if part == "" {
					continue
				}
				cur += "/" + part
				push(cur)
			}
		}
	}
	return paths
}

// Has reports whether path names a directory in the tree.
func (tr Tree) Has(path string) bool {
	path = strings.Trim(path, "/")
	for _, p := range tr.Paths() {
		if p == path {
			return true
		}
	}
	return false
}

// Generate builds a tree from the default template.
func Generate(context string) Tree {
	return DefaultTemplate().Generate(context)
}
