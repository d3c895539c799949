// Package bundle packages a project folder tree and its budget into a zip
// archive.
package bundle

import (
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/structure"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
)

// Budget file locations inside the project root.
const (
	CostsFolder  = "05_Costos_y_Presupuestos"
	SummaryName  = "PRESUPUESTO_SIENNA_PARTIDAS.csv"
	WorkbookName = "PRESUPUESTO_SIENNA.xlsx"
	ReportName   = "PRESUPUESTO_SIENNA.pdf"
	ReadmeName   = "LEAME_SIENNA.txt"

	// FallbackFolder receives attachments whose mapped folder is absent.
	FallbackFolder = "00_Insumos/01_Referencias"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeName = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]`)
)

// Project identifies the bundle being built.
type Project struct {
	Name    string `json:"project_name"`
	Context string `json:"context,omitempty"`
}

// RootName is the top-level folder name: the project name with each run of
// whitespace and every path separator or reserved character replaced by an
// underscore. Leading and trailing dots are dropped, so the result is always
// a single path element below the extraction directory.
func (p Project) RootName() string {
	name := whitespace.ReplaceAllString(p.Name, "_")
	name = unsafeName.ReplaceAllString(name, "_")
	name = strings.Trim(name, ".")
	if name == "" {
		return "Proyecto"
	}
	return name
}

// ArchiveName is the download file name for the project bundle.
func (p Project) ArchiveName() string {
	return p.RootName() + "_Estructura_SIENNA.zip"
}

// Attachment is a user-supplied template file.
type Attachment struct {
	Name string
	Data []byte
}

// Options controls the generated bundle. Zero values pick the current time
// and a random id.
type Options struct {
	Now         time.Time
	ID          string
	Attachments []Attachment
}

// Manifest describes a written bundle.
type Manifest struct {
	ID    string   `json:"id"`
	Root  string   `json:"root"`
	Files []string `json:"files"`
	Dirs  int      `json:"dirs"`
}

// Write streams the zip archive for project to w. A nil result omits the
// budget files.
func Write(w io.Writer, project Project, tree structure.Tree, result *estimate.Result, opts Options) (Manifest, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}

	root := project.RootName()
	man := Manifest{ID: opts.ID, Root: root}
	zw := zip.NewWriter(w)
	aw := &archive{zw: zw, now: opts.Now}

	if err := aw.dir(root); err != nil {
		return man, err
	}
	for _, p := range tree.Paths() {
		if err := aw.dir(path.Join(root, p)); err != nil {
			return man, err
		}
	}
	man.Dirs = aw.dirs

	if result != nil {
		if !tree.Has(CostsFolder) {
			if err := aw.dir(path.Join(root, CostsFolder)); err != nil {
				return man, err
			}
		}
		summary, err := SummaryCSV(result)
		if err != nil {
			return man, fmt.Errorf("building budget summary: %w", err)
		}
		workbook, err := Workbook(project, result)
		if err != nil {
			return man, fmt.Errorf("building budget workbook: %w", err)
		}
		report, err := Report(project, result, opts.Now)
		if err != nil {
			return man, fmt.Errorf("building budget report: %w", err)
		}
		for _, f := range []struct {
			name string
			data []byte
		}{
			{SummaryName, summary},
			{WorkbookName, workbook},
			{ReportName, report},
		} {
			name := path.Join(root, CostsFolder, f.name)
			if err := aw.file(name, f.data); err != nil {
				return man, err
			}
			man.Files = append(man.Files, name)
		}
	}

	for _, att := range opts.Attachments {
		name := path.Join(root, Placement(tree, att.Name), path.Base(att.Name))
		if err := aw.file(name, att.Data); err != nil {
			return man, err
		}
		man.Files = append(man.Files, name)
	}

	readme := path.Join(root, ReadmeName)
	if err := aw.file(readme, Readme(project, opts.ID, opts.Now, result != nil)); err != nil {
		return man, err
	}
	man.Files = append(man.Files, readme)

	if err := zw.Close(); err != nil {
		return man, fmt.Errorf("finishing archive: %w", err)
	}
	return man, nil
}

type archive struct {
	zw   *zip.Writer
	now  time.Time
	dirs int
}

func (a *archive) dir(name string) error {
	hdr := &zip.FileHeader{Name: strings.TrimSuffix(name, "/") + "/", Method: zip.Store, Modified: a.now}
	if _, err := a.zw.CreateHeader(hdr); err != nil {
		return fmt.Errorf("adding folder %s: %w", name, err)
	}
	a.dirs++
	return nil
}

func (a *archive) file(name string, data []byte) error {
	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: a.now}
	fw, err := a.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding file %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing file %s: %w", name, err)
	}
	return nil
}

// placements maps template extensions to their target folder.
var placements = map[string]string{
	".dwg":  "02_Ejecutivo_Arquitectonico/01_Planos_Generales",
	".skp":  "01_Anteproyecto/02_Bocetos/Sketchup",
	".rvt":  "06_Visualizacion/01_Modelo_3D",
	".xlsx": "05_Costos_y_Presupuestos/04_Analisis_Precios_Unitarios",
	".xls":  "05_Costos_y_Presupuestos/04_Analisis_Precios_Unitarios",
}

// Placement returns the folder, relative to the project root, that receives
// an attachment named filename.
func Placement(tree structure.Tree, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if dir, ok := placements[ext]; ok && tree.Has(dir) {
		return dir
	}
	return FallbackFolder
}
