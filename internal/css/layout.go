package css

// FixedWidth is the share of the row one answer takes when a question shows
// Count answers per row.
type FixedWidth struct {
	Count   int
	Percent string
}

// Margin returns the answer margin for the row size. A lone answer gets wide
// side margins so it stays centered.
func (w FixedWidth) Margin() string {
	if w.Count == 1 {
		return "5px 7%"
	}
	return "5px 0.9%"
}

// FixedWidths drives the per-row rules of both the modern and the legacy
// layout attributes.
var FixedWidths = []FixedWidth{
	{1, "86%"},
	{2, "48%"},
	{3, "31.5%"},
	{4, "23%"},
	{5, "18%"},
	{6, "14.5%"},
	{7, "12.25%"},
	{8, "10.5%"},
	{9, "9.1%"},
	{10, "8%"},
	{11, "7%"},
	{12, "6.3%"},
	{13, "5.6%"},
	{14, "5.1%"},
}

// Alignment maps a data-answers-alignment value to its justify-content.
type Alignment struct {
	Value   string
	Justify string
}

var Alignments = []Alignment{
	{"left", "flex-start"},
	{"center", "center"},
	{"right", "flex-end"},
	{"space-between", "space-between"},
	{"space-around", "space-around"},
	{"space-evenly", "space-evenly"},
}

// layoutSystem is one generation of the layout markup. Scope narrows the
// container selector so all-at-once surveys keep their own layout.
type layoutSystem struct {
	Attr  string
	Scope string
}

var (
	modernLayout = layoutSystem{Attr: "data-answers-layout", Scope: `:not([data-survey-display="all-at-once"])`}
	legacyLayout = layoutSystem{Attr: "data-answer-widths"}
)

type layoutRow struct {
	System layoutSystem
	Width  FixedWidth
}

type layoutData struct {
	Widths     []FixedWidth
	Alignments []Alignment
	Modern     layoutSystem
	Legacy     layoutSystem
}
