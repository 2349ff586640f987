package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ssafy-wtd/wtd/internal/activity"
	"github.com/ssafy-wtd/wtd/internal/config"
	"github.com/ssafy-wtd/wtd/internal/logging"
	"github.com/ssafy-wtd/wtd/internal/prefs"
	"github.com/ssafy-wtd/wtd/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewFilters View = iota
	ViewResults
)

// Options configures the UI. The logger is taken from Context.
type Options struct {
	Context   context.Context
	Client    activity.RecommendationFetcher
	Store     *state.Store
	Config    *config.Config
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    activity.RecommendationFetcher
	store     *state.Store
	config    config.Config
	logger    *zap.Logger
	prefs     prefs.Prefs
	prefsPath string
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot   state.FilterState
	updates    <-chan state.FilterState
	unsub      func()
	searching  bool
	estimating bool
	spinner    spinner.Model

	// Status line
	status      string
	statusIsErr bool

	// Filters view
	cursor       int
	editing      bool
	input        textinput.Model
	resetPending bool

	// Results view
	selected int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx).Named("ui")
	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 200

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		config:    cfg,
		logger:    logger,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.Prefs.Theme),
		spinner:   sp,
		input:     ti,
	}
	if opts.Prefs.StartView == prefs.ViewResults {
		m.currentView = ViewResults
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		m.updates, m.unsub = m.store.Subscribe()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.updates), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-24)
		m.ready = true
		return m, nil

	case stateMsg:
		m.snapshot = state.FilterState(msg)
		m.selected = clampInt(m.selected, 0, max(0, len(m.snapshot.Recommendations)-1))
		return m, waitForState(m.updates)

	case recommendMsg:
		return m.handleRecommend(msg)

	case estimateMsg:
		return m.handleEstimate(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	switch m.currentView {
	case ViewResults:
		b.WriteString(m.renderResults())
	default:
		b.WriteString(m.renderFilters())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	if !key.Matches(msg, m.keys.Reset) {
		m.resetPending = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
			m.logger.Warn("save prefs failed", zap.Error(err))
		}
		return m, nil

	case key.Matches(msg, m.keys.SwitchView):
		if m.currentView == ViewFilters {
			m.currentView = ViewResults
		} else {
			m.currentView = ViewFilters
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m.startSearch()

	case key.Matches(msg, m.keys.Estimate):
		return m.startEstimate()

	case key.Matches(msg, m.keys.Expand):
		expanded := !m.snapshot.IsExpandedSearch
		m.apply(m.store.SetExpandedSearch(m.ctx, expanded))
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		if m.prefs.ConfirmReset && !m.resetPending {
			m.resetPending = true
			m.setStatus("Press R again to reset all filters", false)
			return m, nil
		}
		m.resetPending = false
		if err := m.store.Reset(m.ctx); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.snapshot = m.store.Snapshot()
		m.cursor, m.selected = 0, 0
		m.setStatus("Filters reset", false)
		return m, nil
	}

	switch m.currentView {
	case ViewResults:
		return m.handleResultsKey(msg)
	default:
		return m.handleFiltersKey(msg)
	}
}

// apply records a store error in the status line and refreshes the snapshot.
func (m *Model) apply(err error) {
	if err != nil {
		m.logger.Warn("store update failed", zap.Error(err))
		m.setStatus(err.Error(), true)
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

func (m *Model) shutdown() {
	if m.unsub != nil {
		m.unsub()
	}
}

// startSearch marks the state searched and fires a recommendation request
// built from the current filters.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	if m.searching || m.client == nil {
		return m, nil
	}
	m.apply(m.store.MarkSearched(m.ctx))
	req := m.snapshot.Filters.Request(m.config.UserIDInt(), m.config.Latitude, m.config.Longitude)
	m.searching = true
	m.setStatus("Searching…", false)
	return m, recommendCmd(m.ctx, m.client, req)
}

func (m Model) handleRecommend(msg recommendMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}
	var places []activity.PlaceInfo
	if msg.res != nil {
		places = msg.res.Recommendations
	}
	m.apply(m.store.SetRecommendations(m.ctx, places))
	m.selected = 0
	m.currentView = ViewResults
	if !m.statusIsErr {
		m.setStatus(fmt.Sprintf("%d recommendations", len(places)), false)
	}
	return m, nil
}

func (m Model) startEstimate() (tea.Model, tea.Cmd) {
	if m.estimating || m.client == nil {
		return m, nil
	}
	if m.config.UserID == "" {
		m.setStatus("Set user_id in the config to estimate charge time", true)
		return m, nil
	}
	m.estimating = true
	m.setStatus("Estimating charge time…", false)
	return m, estimateCmd(m.ctx, m.client, m.config.UserID)
}

func (m Model) handleEstimate(msg estimateMsg) (tea.Model, tea.Cmd) {
	m.estimating = false
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}
	if msg.minutes <= 0 {
		m.setStatus("No charge time estimate available", false)
		return m, nil
	}
	m.apply(m.store.Update(m.ctx, func(s *state.FilterState) {
		s.Filters.ChargeTime = msg.minutes
	}))
	if !m.statusIsErr {
		m.setStatus(fmt.Sprintf("Charge time set to %d min", msg.minutes), false)
	}
	return m, nil
}

// Messages

type stateMsg state.FilterState

type recommendMsg struct {
	res *activity.RecommendResponse
	err error
}

type estimateMsg struct {
	minutes int
	err     error
}

// Commands

func waitForState(updates <-chan state.FilterState) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func recommendCmd(ctx context.Context, client activity.RecommendationFetcher, req activity.RecommendRequest) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Recommend(ctx, req)
		return recommendMsg{res: res, err: err}
	}
}

func estimateCmd(ctx context.Context, client activity.RecommendationFetcher, userID string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.EstimatedTime(ctx, userID)
		if err != nil {
			return estimateMsg{err: err}
		}
		return estimateMsg{minutes: res.Minutes()}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a filter store")
	}
	m := New(opts)
	defer m.shutdown()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil && m.ctx.Err() == nil {
		return err
	}
	return nil
}
