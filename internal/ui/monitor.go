package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/labhacker007/joti-cli/internal/api"
	"github.com/labhacker007/joti-cli/internal/ui/components"
)

// --- Messages ---

type systemStatusLoadedMsg struct{ status api.SystemStatus }
type monitorTickMsg struct{ gen int }

const monitorPollInterval = 5 * time.Second

// --- Monitor Model ---

type MonitorModel struct {
	client  *api.Client
	status  *api.SystemStatus
	loading bool
	spin    spinner.Model
	tickGen int
	width   int
	height  int
}

func NewMonitorModel(client *api.Client) MonitorModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)
	return MonitorModel{
		client: client,
		spin:   sp,
	}
}

// Init starts a fresh poll chain. Bumping the generation orphans any tick
// still pending from an earlier visit to the tab, so re-entering within the
// poll interval never stacks chains.
func (m *MonitorModel) Init() tea.Cmd {
	m.tickGen++
	m.loading = m.status == nil
	return tea.Batch(m.spin.Tick, m.loadStatus, m.scheduleTick(m.tickGen))
}

func (m MonitorModel) Update(msg tea.Msg) (MonitorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case systemStatusLoadedMsg:
		m.loading = false
		status := msg.status
		m.status = &status
		return m, nil
	case monitorTickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		return m, tea.Batch(m.loadStatus, m.scheduleTick(msg.gen))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case errMsg:
		m.loading = false
		return m, nil
	case tea.KeyMsg:
		if isKey(msg, "r") {
			m.loading = m.status == nil
			return m, m.loadStatus
		}
	}
	return m, nil
}

func (m MonitorModel) View() string {
	if m.loading && m.status == nil {
		return components.Indent(m.spin.View()+" "+MutedStyle.Render("Loading system status..."), 1)
	}
	if m.status == nil {
		return components.Indent(MutedStyle.Render("System status unavailable."), 1)
	}

	s := m.status
	rows := []components.TableRow{
		{Label: "Status", Value: s.Status, ValueColor: statusColor(s.Status)},
		{Label: "Uptime", Value: formatUptime(s.UptimeSeconds)},
		{Label: "Articles", Value: fmt.Sprintf("%d", s.ArticleCount)},
		{Label: "Today", Value: fmt.Sprintf("%d", s.ArticlesToday)},
		{Label: "High priority", Value: fmt.Sprintf("%d", s.HighPriorityCount), ValueColor: highPriorityColor(s.HighPriorityCount)},
		{Label: "Feeds healthy", Value: fmt.Sprintf("%d", s.FeedsHealthy), ValueColor: string(ColorSuccess)},
	}
	if s.FeedsFailing > 0 {
		rows = append(rows, components.TableRow{
			Label:      "Feeds failing",
			Value:      fmt.Sprintf("%d", s.FeedsFailing),
			ValueColor: string(ColorError),
		})
	}
	rows = append(rows, components.TableRow{Label: "Storage", Value: formatBytes(s.StorageBytes)})
	if s.LastIngestAt != nil {
		rows = append(rows, components.TableRow{
			Label: "Last ingest",
			Value: s.LastIngestAt.Local().Format("2006-01-02 15:04:05"),
		})
	}

	body := components.Table("System Status", rows, m.width)
	footer := MutedStyle.Render(fmt.Sprintf("auto-refresh every %s · r to refresh now", monitorPollInterval))
	return components.Indent(body+"\n\n"+footer, 1)
}

// --- Helpers ---

func (m MonitorModel) loadStatus() tea.Msg {
	status, err := m.client.SystemStatus()
	if err != nil {
		return errMsg{err}
	}
	return systemStatusLoadedMsg{status: *status}
}

func (m MonitorModel) scheduleTick(gen int) tea.Cmd {
	return tea.Tick(monitorPollInterval, func(time.Time) tea.Msg {
		return monitorTickMsg{gen: gen}
	})
}

func statusColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "healthy", "ok":
		return string(ColorSuccess)
	case "degraded":
		return string(ColorWarning)
	default:
		return string(ColorError)
	}
}

func highPriorityColor(count int) string {
	if count > 0 {
		return string(ColorHigh)
	}
	return string(ColorSuccess)
}

func formatUptime(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
