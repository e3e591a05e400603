package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/wiverson/life-calendar/internal/dateutil"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfEmptyColor  = props.Color{Red: 245, Green: 245, Blue: 245}
	pdfLivedColor  = props.Color{Red: 215, Green: 215, Blue: 215}
)

// labelCols is the width of the age column left of every grid row.
const labelCols = 4

// PDF renders the summary as an A4 document: the week grid with one row per
// year of age, followed by the event table.
func PDF(s Summary) ([]byte, error) {
	m, err := buildPDF(s)
	if err != nil {
		return nil, err
	}
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// SavePDF renders the summary and writes it to path.
func SavePDF(s Summary, path string) error {
	m, err := buildPDF(s)
	if err != nil {
		return err
	}
	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}
	return doc.Save(path)
}

func buildPDF(s Summary) (core.Maroto, error) {
	perRow := s.Model.WeeksPerRow
	if perRow <= 0 || len(s.Model.Weeks) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	grid := perRow + labelCols

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(12).
		WithRightMargin(10).
		WithMaxGridSize(grid).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(grid, "Life calendar", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(7,
		text.NewCol(grid, fmt.Sprintf("Born %s  ·  %d of %d weeks lived  ·  %d events",
			dateutil.FormatForDisplay(s.Anchor), s.LivedWeeks, len(s.Model.Weeks), len(s.Events)),
			props.Text{Size: 10, Color: &pdfMutedColor}),
	)
	m.AddRow(3, line.NewCol(grid, props.Line{Color: &pdfLineColor}))

	// Month header over the first row.
	header := []core.Col{col.New(labelCols)}
	for _, span := range s.Model.MonthSpans {
		header = append(header, text.NewCol(span.Weeks, span.Label, props.Text{
			Size:  5,
			Color: &pdfMutedColor,
		}))
	}
	m.AddRow(4, header...)

	for r := 0; r < s.Model.Rows; r++ {
		cells := s.Model.Row(r)
		if len(cells) == 0 {
			break
		}
		label := ""
		if r%5 == 0 {
			label = strconv.Itoa(cells[0].Age)
		}
		cols := []core.Col{text.NewCol(labelCols, label, props.Text{
			Size:  4,
			Align: align.Right,
			Color: &pdfMutedColor,
			Right: 1,
		})}
		for _, c := range cells {
			fill := pdfEmptyColor
			if c.Bucket.Index < s.LivedWeeks {
				fill = pdfLivedColor
			}
			if c.Event != nil {
				if rgb, ok := parseHexColor(c.Event.Color); ok {
					fill = rgb
				}
			}
			cols = append(cols, col.New(1).WithStyle(&props.Cell{
				BackgroundColor: &fill,
				BorderType:      border.Full,
				BorderColor:     &pdfLineColor,
				BorderThickness: 0.1,
			}))
		}
		m.AddRow(2.2, cols...)
	}

	m.AddRow(6)
	m.AddRow(8, text.NewCol(grid, "Events", props.Text{
		Style: fontstyle.Bold,
		Size:  12,
		Color: &pdfHeaderColor,
	}))

	nameCols := grid / 2
	dateCols := (grid - nameCols) * 2 / 3
	restCols := grid - nameCols - dateCols
	for _, e := range s.Events {
		swatch := pdfEmptyColor
		if rgb, ok := parseHexColor(e.Event.Color); ok {
			swatch = rgb
		}
		dates := e.Event.StartDate + " - " + e.Event.EndDate
		detail := "invalid dates"
		if e.Valid {
			dates = dateutil.FormatForDisplay(e.Start) + " - " + dateutil.FormatForDisplay(e.End)
			detail = fmt.Sprintf("age %d, %d wk", e.StartAge, e.Weeks)
		}
		m.AddRow(5,
			col.New(1).WithStyle(&props.Cell{BackgroundColor: &swatch}),
			text.NewCol(nameCols-1, " "+e.Event.Name, props.Text{Size: 8, Left: 1}),
			text.NewCol(dateCols, dates, props.Text{Size: 8, Color: &pdfMutedColor}),
			text.NewCol(restCols, detail, props.Text{Size: 8, Align: align.Right, Color: &pdfMutedColor}),
		)
	}

	return m, nil
}

// parseHexColor reads #rgb and #rrggbb colors.
func parseHexColor(s string) (props.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return props.Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return props.Color{}, false
	}
	return props.Color{
		Red:   int(v >> 16 & 0xff),
		Green: int(v >> 8 & 0xff),
		Blue:  int(v & 0xff),
	}, true
}
