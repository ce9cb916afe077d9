package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/diillson/investment-analyzer-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct {
	// MarkdownStyle é o estilo do glamour usado em DisplayMarkdown.
	MarkdownStyle string
}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{MarkdownStyle: "dark"}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BoldRed    = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightBlue = color.New(color.FgBlue, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// barWidth é o comprimento da maior barra do gráfico de tendência.
const barWidth = 40

// DisplayBucketTrend exibe a evolução do valor de um bucket como barras, período a período.
func (c *Console) DisplayBucketTrend(title string, points []types.PeriodValue) {
	fmt.Println("\n" + renderTrend(title, points))
}

func renderTrend(title string, points []types.PeriodValue) string {
	maxValue := 0.0
	for _, p := range points {
		maxValue = math.Max(maxValue, math.Abs(p.Value))
	}

	if maxValue == 0 {
		return pterm.Warning.Sprintfln("%s: all values are zero", title)
	}

	tableData := pterm.TableData{
		{"Period", "Value", "", "Change"},
	}

	var prev *float64
	for _, p := range points {
		bar := strings.Repeat("█", int(math.Abs(p.Value)/maxValue*barWidth))
		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if prev != nil {
			change, barColor = describeChange(*prev, p.Value, bar)
		}

		display := p.Display
		if display == "" {
			display = fmt.Sprintf("%.2f", p.Value)
		}
		tableData = append(tableData, []string{p.Period, display, barColor, change})

		current := p.Value
		prev = &current
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	return pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
}

// describeChange devolve a variação percentual em relação ao período anterior e a barra colorida.
func describeChange(prev, current float64, bar string) (string, string) {
	if math.Abs(prev) < 0.01 {
		if math.Abs(current) < 0.01 {
			return pterm.FgYellow.Sprint("0%"), pterm.FgYellow.Sprint(bar)
		}
		return pterm.FgGreen.Sprint("N/A"), pterm.FgGreen.Sprint(bar)
	}

	changePercent := (current - prev) / math.Abs(prev) * 100.0
	switch {
	case math.Abs(changePercent) < 0.01:
		return pterm.FgYellow.Sprint("0%"), pterm.FgYellow.Sprint(bar)
	case changePercent > 999:
		return pterm.FgGreen.Sprint(">+999%"), pterm.FgGreen.Sprint(bar)
	case changePercent < -999:
		return pterm.FgRed.Sprint(">-999%"), pterm.FgRed.Sprint(bar)
	case changePercent > 0:
		return pterm.FgGreen.Sprintf("+%.2f%%", changePercent), pterm.FgGreen.Sprint(bar)
	default:
		return pterm.FgRed.Sprintf("%.2f%%", changePercent), pterm.FgRed.Sprint(bar)
	}
}

// DisplayMarkdown renderiza markdown no terminal via glamour.
// Se a renderização falhar, o texto é impresso sem formatação.
func (c *Console) DisplayMarkdown(markdown string) {
	style := c.MarkdownStyle
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(markdown, style)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
