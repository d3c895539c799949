// Package wizard implements the interactive terminal flow: name the project,
// preview its folders, estimate a budget and write the bundle.
package wizard

import (
	"fmt"
	"time"

	"github.com/theirongolddev/sienna/internal/bundle"
	"github.com/theirongolddev/sienna/internal/catalog"
	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/structure"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Phase is a wizard step.
type Phase int

// Wizard phases, in order.
const (
	PhaseInit Phase = iota
	PhaseStructure
	PhaseCost
	PhaseExecution
	PhaseDone
)

// Label returns the step heading.
func (p Phase) Label() string {
	switch p {
	case PhaseInit:
		return "01. INICIALIZACIÓN"
	case PhaseStructure:
		return "02. ESTRUCTURA"
	case PhaseCost:
		return "03. COSTO PARAMÉTRICO"
	case PhaseExecution:
		return "04. EJECUCIÓN"
	default:
		return "LISTO"
	}
}

// Deps are the collaborators the wizard works with.
type Deps struct {
	Catalog     *catalog.Catalog
	Template    *structure.Template
	OutputDir   string
	DefaultTier estimate.Tier
	Now         func() time.Time
}

// formValues backs the huh fields. It lives behind a pointer so the bound
// field pointers survive bubbletea copying the model.
type formValues struct {
	Name        string
	Context     string
	Attachments string
	WithBudget  bool
	Area        string
	Tier        string
	Preferences string
	Confirm     bool
}

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "salir")),
}

// bundleDoneMsg reports the end of the async bundle write.
type bundleDoneMsg struct {
	path     string
	manifest bundle.Manifest
	err      error
}

// Model is the bubbletea model for the wizard.
type Model struct {
	deps      Deps
	estimator *estimate.Estimator

	phase   Phase
	values  *formValues
	form    *huh.Form
	spinner spinner.Model
	busy    bool

	tree   structure.Tree
	result *estimate.Result

	outPath  string
	manifest bundle.Manifest
	err      error
	log      []string
	width    int
	aborted  bool
}

// New returns a wizard at the first phase.
func New(deps Deps) Model {
	if deps.Template == nil {
		deps.Template = structure.DefaultTemplate()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if !deps.DefaultTier.Valid() {
		deps.DefaultTier = estimate.Medium
	}
	if deps.OutputDir == "" {
		deps.OutputDir = "."
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := Model{
		deps:      deps,
		estimator: estimate.New(deps.Catalog),
		values:    &formValues{WithBudget: true, Tier: string(deps.DefaultTier)},
		spinner:   sp,
	}
	m.form = m.formFor(PhaseInit)
	m.logf("Sistema listo. Catálogo con %d conceptos.", deps.Catalog.Len())
	return m
}

// Phase returns the current step.
func (m Model) Phase() Phase { return m.phase }

// Err returns the bundle error, if any.
func (m Model) Err() error { return m.err }

// OutputPath returns where the bundle was written.
func (m Model) OutputPath() string { return m.outPath }

// Aborted reports whether the user quit before finishing.
func (m Model) Aborted() bool { return m.aborted }

func (m *Model) logf(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf("> "+format, args...))
	if len(m.log) > 6 {
		m.log = m.log[len(m.log)-6:]
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.aborted = m.phase != PhaseDone
			return m, tea.Quit
		}
		if m.phase == PhaseDone {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bundleDoneMsg:
		m.busy = false
		m.phase = PhaseDone
		m.outPath, m.manifest, m.err = msg.path, msg.manifest, msg.err
		if msg.err != nil {
			m.logf("ERROR: bundle generation failed: %v", msg.err)
		} else {
			m.logf("Expediente escrito en %s", msg.path)
		}
		return m, nil
	}

	if m.form == nil || m.busy {
		return m, nil
	}
	return m.updateForm(msg)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		next := m.advance()
		return m, tea.Batch(cmd, next)
	case huh.StateAborted:
		m.aborted = true
		return m, tea.Quit
	}
	return m, cmd
}

// advance finishes the current phase and prepares the next one.
func (m *Model) advance() tea.Cmd {
	switch m.phase {
	case PhaseInit:
		m.tree = m.deps.Template.Generate(m.values.Context)
		m.logf("Estructura generada: %d carpetas.", len(m.tree.Paths()))
		if len(m.tree.Applied) > 0 {
			m.logf("Reglas de contexto aplicadas: %v", m.tree.Applied)
		}
		m.phase = PhaseStructure

	case PhaseStructure:
		if paths := splitPaths(m.values.Attachments); len(paths) > 0 {
			m.logf("%d plantillas seleccionadas.", len(paths))
		}
		m.phase = PhaseCost

	case PhaseCost:
		m.result = nil
		if m.values.WithBudget {
			req, err := m.request()
			if err != nil {
				m.logf("Entrada inválida: %v", err)
				break
			}
			m.logf("Calculando costo paramétrico para %s m² - %s...", req.Area, req.Tier.Label())
			res, err := m.estimator.Estimate(req)
			if err != nil {
				m.logf("Entrada inválida: %v", err)
				break
			}
			m.result = &res
			m.logf("Costo estimado: $%s", res.Total.StringFixed(2))
		}
		m.phase = PhaseExecution

	case PhaseExecution:
		if !m.values.Confirm {
			m.aborted = true
			return tea.Quit
		}
		m.busy = true
		m.logf("Generando expediente...")
		return writeBundleCmd(m.deps, m.values.Name, m.values.Context, m.tree, m.result, splitPaths(m.values.Attachments))
	}

	m.form = m.formFor(m.phase)
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

func (m Model) request() (estimate.Request, error) {
	area, err := estimate.ParseArea(m.values.Area)
	if err != nil {
		return estimate.Request{}, err
	}
	tier, err := estimate.ParseTier(m.values.Tier)
	if err != nil {
		return estimate.Request{}, err
	}
	return estimate.Request{Area: area, Tier: tier, Preferences: m.values.Preferences}, nil
}
