package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/sienna/internal/bundle"
	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/structure"

	tea "github.com/charmbracelet/bubbletea"
)

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadAttachments reads template files from disk.
func LoadAttachments(paths []string) ([]bundle.Attachment, error) {
	atts := make([]bundle.Attachment, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading attachment: %w", err)
		}
		atts = append(atts, bundle.Attachment{Name: filepath.Base(p), Data: data})
	}
	return atts, nil
}

// WriteBundle writes the project archive into dir and returns its path.
func WriteBundle(deps Deps, project bundle.Project, tree structure.Tree, result *estimate.Result, attachmentPaths []string) (string, bundle.Manifest, error) {
	atts, err := LoadAttachments(attachmentPaths)
	if err != nil {
		return "", bundle.Manifest{}, err
	}

	if err := os.MkdirAll(deps.OutputDir, 0o755); err != nil {
		return "", bundle.Manifest{}, fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(deps.OutputDir, project.ArchiveName())
	f, err := os.Create(path)
	if err != nil {
		return "", bundle.Manifest{}, fmt.Errorf("creating bundle file: %w", err)
	}

	man, err := bundle.Write(f, project, tree, result, bundle.Options{Now: deps.Now(), Attachments: atts})
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", man, err
	}
	return path, man, nil
}

func writeBundleCmd(deps Deps, name, context string, tree structure.Tree, result *estimate.Result, attachments []string) tea.Cmd {
	return func() tea.Msg {
		path, man, err := WriteBundle(deps, bundle.Project{Name: name, Context: context}, tree, result, attachments)
		return bundleDoneMsg{path: path, manifest: man, err: err}
	}
}
