// Package pdf renders the alumni event report as a paginated A4 document.
// The layout is absolute-positioned: a single vertical cursor advances down
// the page and an overflow check runs before every block, so no block is
// ever split across a page boundary without an explicit continuation header.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"alumni-portal/models"
	"alumni-portal/utils"
)

// Page geometry in millimeters (A4 portrait).
const (
	pageW    = 210.0
	pageH    = 297.0
	margin   = 20.0
	contentW = pageW - 2*margin

	bannerH   = 72.0
	bottomPad = 30.0 // reserved for the repeating footer
	contTop   = 22.0 // cursor reset position on continuation pages
)

// Config carries the branding stamped into banner and footer.
type Config struct {
	InstitutionName string
	PortalName      string

	// NoCompression emits uncompressed content streams. Layout is
	// unaffected; tests use it to inspect rendered text.
	NoCompression bool
}

// Engine is the PDF renderer. The zero value is not usable; create it with
// New.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) ContentType() string { return "application/pdf" }

func (e *Engine) Ext() string { return "pdf" }

// Render lays out the full document. Image slots that failed to resolve are
// simply absent from the payload; nothing in here aborts the document once
// assembly has started.
func (e *Engine) Render(p *models.ReportPayload) ([]byte, error) {
	d := newDoc(e.cfg, p)
	d.build()

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// doc holds the mutable layout state: the fpdf document, the vertical write
// cursor and a sequence for registered images.
type doc struct {
	cfg    Config
	p      *models.ReportPayload
	pdf    *fpdf.Fpdf
	tr     func(string) string
	y      float64
	imgSeq int
}

func newDoc(cfg Config, p *models.ReportPayload) *doc {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetCompression(!cfg.NoCompression)
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(margin, contTop, margin)
	f.AliasNbPages("")
	f.SetTitle(utils.Sanitize(p.Event.Title), true)

	d := &doc{
		cfg: cfg,
		p:   p,
		pdf: f,
		tr:  f.UnicodeTranslatorFromDescriptor(""),
	}

	// Continuation pages carry a slim banner strip with the event title.
	f.SetHeaderFunc(func() {
		if f.PageNo() <= 1 {
			return
		}
		f.SetFillColor(26, 54, 93)
		f.Rect(0, 0, pageW, 12, "F")
		f.SetTextColor(255, 255, 255)
		f.SetFont("Helvetica", "B", 8)
		d.textCentered(8, d.tr("Alumni Event Report — "+utils.Sanitize(p.Event.Title)))
	})

	// Every page gets the same footer; {nb} resolves to the final page
	// count when the document is closed.
	f.SetFooterFunc(func() {
		f.SetDrawColor(26, 54, 93)
		f.SetLineWidth(0.5)
		f.Line(margin, pageH-16, pageW-margin, pageH-16)
		f.SetFont("Helvetica", "", 7)
		f.SetTextColor(100, 100, 100)
		f.Text(margin, pageH-11, d.tr(cfg.InstitutionName+"  |  "+cfg.PortalName))
		d.textCentered(pageH-11, "Generated: "+p.GeneratedAt.Format("02/01/2006, 15:04:05"))
		pageLabel := fmt.Sprintf("Page %d of {nb}", f.PageNo())
		f.Text(pageW-margin-f.GetStringWidth(pageLabel), pageH-11, pageLabel)
	})

	return d
}

func (d *doc) build() {
	d.pdf.AddPage()
	d.banner()
	d.sections()
	d.approval()
}

// checkPage starts a new page when the next block would cross into the
// footer area.
func (d *doc) checkPage(needed float64) {
	if d.y+needed > pageH-bottomPad {
		d.pdf.AddPage()
		d.y = contTop
	}
}

// textCentered draws s horizontally centered using the current font.
func (d *doc) textCentered(y float64, s string) {
	d.pdf.Text((pageW-d.pdf.GetStringWidth(s))/2, y, s)
}

func (d *doc) putImage(img *models.Image, x, y, w, h float64) {
	d.imgSeq++
	name := "img" + strconv.Itoa(d.imgSeq)
	opts := fpdf.ImageOptions{ImageType: "JPEG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

// logoSlot draws a banner logo scaled to 22mm height, or the placeholder box
// when the slot is empty. x is the left edge for left-aligned slots; for
// right-aligned slots the image hangs left from the right margin.
func (d *doc) logoSlot(img *models.Image, right bool, placeholder string) {
	const logoH = 22.0
	if img != nil {
		logoW := float64(img.Width) / float64(img.Height) * logoH
		if logoW > 28 {
			logoW = 28
		}
		x := margin
		if right {
			x = pageW - margin - logoW
		}
		d.putImage(img, x, 8, logoW, logoH)
		return
	}
	x := margin
	if right {
		x = pageW - margin - 22
	}
	d.pdf.SetFillColor(200, 210, 230)
	d.pdf.RoundedRect(x, 8, 22, 22, 2, "1234", "F")
	d.pdf.SetFont("Helvetica", "", 5)
	d.pdf.SetTextColor(26, 54, 93)
	d.pdf.Text(x+11-d.pdf.GetStringWidth(placeholder)/2, 21, placeholder)
}

// banner draws the fixed-height first-page header block: logo slots, the
// institution lines, the report title and the event info, then the
// coordinator line below it.
func (d *doc) banner() {
	f := d.pdf
	ev := d.p.Event

	f.SetFillColor(26, 54, 93)
	f.Rect(0, 0, pageW, bannerH, "F")

	d.logoSlot(d.p.Branding.CollegeLogo, false, "LOGO")
	d.logoSlot(d.p.Branding.DepartmentLogo, true, "DEPT")

	f.SetTextColor(255, 255, 255)
	f.SetFont("Helvetica", "B", 15)
	d.textCentered(18, d.tr(d.cfg.InstitutionName))
	f.SetFont("Helvetica", "", 10)
	d.textCentered(27, d.tr("Department of "+utils.SanitizeOr(ev.DepartmentName, "N/A")))
	f.SetFont("Helvetica", "B", 13)
	d.textCentered(39, "ALUMNI EVENT REPORT")

	f.SetFont("Helvetica", "", 10)
	d.textCentered(49, d.tr(utils.Sanitize(ev.Title)))
	f.SetFontSize(9)
	d.textCentered(56, d.tr(utils.FormatDate(ev.Date)+"  |  "+utils.FormatTime(ev.Time)))
	d.textCentered(63, d.tr("Venue: "+utils.SanitizeOr(ev.Venue, "N/A")+
		"  |  Mode: "+utils.Capitalize(ev.Mode)+
		"  |  Type: "+utils.Capitalize(ev.Type)))

	// Accent line under the banner.
	f.SetFillColor(59, 130, 246)
	f.Rect(0, bannerH, pageW, 2, "F")

	d.y = bannerH + 14
	f.SetFont("Helvetica", "", 9)
	f.SetTextColor(80, 80, 80)
	d.textCentered(d.y, d.tr("Organized by: "+utils.Sanitize(d.p.Form.CoordinatorName)+
		"  |  Department: "+utils.SanitizeOr(ev.DepartmentName, "N/A")))
	d.y += 14
}

// sectionTitle draws the horizontal rule plus the bold numbered heading.
// Section numbers are fixed per section identity; omitting an optional
// section never renumbers the rest.
func (d *doc) sectionTitle(num, title string) {
	d.checkPage(18)
	f := d.pdf
	f.SetDrawColor(200, 210, 230)
	f.SetLineWidth(0.3)
	f.Line(margin, d.y, pageW-margin, d.y)
	d.y += 7
	f.SetFont("Helvetica", "B", 12)
	f.SetTextColor(26, 54, 93)
	f.Text(margin, d.y, num+". "+title)
	d.y += 8
}

// paragraph writes sanitized body text wrapped to the content width.
func (d *doc) paragraph(text string) {
	clean := utils.SanitizeOr(text, "N/A")
	f := d.pdf
	f.SetFont("Helvetica", "", 10)
	f.SetTextColor(50, 50, 50)
	lines := f.SplitText(d.tr(clean), contentW)
	d.checkPage(float64(len(lines))*5 + 4)
	for i, line := range lines {
		f.Text(margin, d.y+float64(i)*5, line)
	}
	d.y += float64(len(lines))*5 + 6
}

// field writes a small bold label with an inline value.
func (d *doc) field(label, value string) {
	d.checkPage(10)
	f := d.pdf
	f.SetFont("Helvetica", "B", 9)
	f.SetTextColor(80, 80, 80)
	labelText := label + ": "
	f.Text(margin, d.y, labelText)
	labelW := f.GetStringWidth(labelText)
	f.SetFont("Helvetica", "", 9)
	f.SetTextColor(50, 50, 50)
	f.Text(margin+labelW, d.y, d.tr(utils.SanitizeOr(value, "N/A")))
	d.y += 6
}

// ratingDisplay prefers the star-glyph string; the core fonts are cp1252
// and cannot encode the glyphs, in which case the numeric fraction is used.
// Either way this is plain string formatting and cannot fail.
func (d *doc) ratingDisplay() string {
	if d.tr("★") == "★" {
		return d.p.StarRating()
	}
	return d.p.NumericRating()
}

func (d *doc) sections() {
	p := d.p
	f := d.pdf

	if p.HasIntroduction() {
		d.sectionTitle("1", "Introduction")
		d.paragraph(p.Form.Introduction)
	}

	d.sectionTitle("2", "Event Overview")
	d.field("Theme / Topic", p.Event.Title)
	d.field("Type", utils.Capitalize(p.Event.Type))
	d.field("Mode", utils.Capitalize(p.Event.Mode))
	d.y += 2

	if p.HasSpeaker() {
		sp := p.Event.Speaker
		d.sectionTitle("3", "Speaker Details")
		d.field("Name", sp.Name)
		if sp.Designation != "" {
			d.field("Designation", sp.Designation)
		}
		if sp.Organization != "" {
			d.field("Organization", sp.Organization)
		}
		if sp.Bio != "" {
			f.SetFont("Helvetica", "I", 9)
			f.SetTextColor(80, 80, 80)
			bioLines := f.SplitText(d.tr(utils.Sanitize(sp.Bio)), contentW)
			d.checkPage(float64(len(bioLines))*4.5 + 4)
			for i, line := range bioLines {
				f.Text(margin, d.y+float64(i)*4.5, line)
			}
			d.y += float64(len(bioLines))*4.5 + 4
		}
		d.field("Speaker Rating", utils.Capitalize(p.Form.SpeakerRating))
		if p.Form.SpeakerFeedback != "" {
			d.field("Feedback", p.Form.SpeakerFeedback)
		}
		d.y += 2
	}

	d.sectionTitle("4", "Event Description")
	d.paragraph(p.Form.EventSummary)
	if p.HasKeyHighlights() {
		f.SetFont("Helvetica", "B", 10)
		f.SetTextColor(26, 54, 93)
		d.checkPage(8)
		f.Text(margin, d.y, "Key Highlights:")
		d.y += 6
		f.SetFont("Helvetica", "", 9)
		f.SetTextColor(50, 50, 50)
		for _, line := range p.KeyHighlightLines() {
			d.checkPage(6)
			f.Text(margin, d.y, d.tr("  •  "+line))
			d.y += 5.5
		}
		d.y += 4
	}

	d.sectionTitle("5", "Participation Details")
	d.drawTable(tableSpec{
		header:   []string{"Category", "Count"},
		widths:   []float64{55, 38.5},
		rows:     to2col(p.ParticipationRows()),
		fontSize: 9,
		rowH:     8,
		boldCol0: true,
		center:   map[int]bool{1: true},
	})
	d.y += 10

	if len(p.Attendees) > 0 {
		d.checkPage(20)
		f.SetFont("Helvetica", "B", 10)
		f.SetTextColor(26, 54, 93)
		f.Text(margin, d.y, "Alumni Attendance List")
		d.y += 6
		rows := make([][]string, len(p.Attendees))
		for i, a := range p.Attendees {
			year := ""
			if a.GraduationYear > 0 {
				year = strconv.Itoa(a.GraduationYear)
			}
			rows[i] = []string{strconv.Itoa(i + 1), a.Name, a.Email, year, a.Degree, a.Company}
		}
		d.drawTable(tableSpec{
			header:   []string{"#", "Name", "Email", "Year", "Degree", "Company"},
			widths:   []float64{10, 38, 52, 16, 28, 26},
			rows:     rows,
			fontSize: 8,
			rowH:     7,
		})
		d.y += 10
	}

	d.sectionTitle("6", "Outcomes & Impact")
	d.paragraph(p.Form.Outcomes)

	d.sectionTitle("7", "Feedback & Evaluation")
	d.drawTable(tableSpec{
		header:   []string{"Parameter", "Response"},
		widths:   []float64{55, 115},
		rows:     to2col(p.FeedbackRows(d.ratingDisplay())),
		fontSize: 9,
		rowH:     8,
		boldCol0: true,
	})
	d.y += 10

	if len(p.Photos) > 0 {
		d.sectionTitle("8", "Event Photos")
		d.photoGrid()
	}

	if p.HasConclusion() {
		d.sectionTitle("9", "Conclusion")
		d.paragraph(p.Form.Conclusion)
	}
}

// photoGrid lays the photos out three to a row in uniform square cells,
// aspect-fit and never upscaled past the cell. Rows respect the overflow
// rule as a unit.
func (d *doc) photoGrid() {
	cell := (contentW - 10) / 3
	col := 0
	for _, img := range d.p.Photos {
		if img == nil {
			continue
		}
		d.checkPage(cell + 10)
		x := margin + float64(col)*(cell+5)
		aspect := float64(img.Width) / float64(img.Height)
		drawW := cell
		drawH := cell / aspect
		if drawH > cell {
			drawH = cell
			drawW = cell * aspect
		}
		d.putImage(img, x, d.y, drawW, drawH)
		col++
		if col >= 3 {
			col = 0
			d.y += cell + 5
		}
	}
	if col > 0 {
		d.y += cell + 5
	}
	d.y += 4
}

// approval draws the two-signature authorization block.
func (d *doc) approval() {
	f := d.pdf
	d.checkPage(80)
	d.y += 8
	f.SetDrawColor(200, 210, 230)
	f.SetLineWidth(0.3)
	f.Line(margin, d.y, pageW-margin, d.y)
	d.y += 12

	f.SetFont("Helvetica", "B", 11)
	f.SetTextColor(26, 54, 93)
	d.textCentered(d.y, "APPROVAL & AUTHORIZATION")
	d.y += 12

	colW := (contentW - 20) / 2
	rightX := margin + colW + 20

	if sig := d.p.Branding.CoordinatorSignature; sig != nil {
		const sigH = 18.0
		sigW := float64(sig.Width) / float64(sig.Height) * sigH
		if sigW > colW {
			sigW = colW
		}
		d.putImage(sig, margin, d.y, sigW, sigH)
	}
	if sig := d.p.Branding.ApproverSignature; sig != nil {
		const sigH = 18.0
		sigW := float64(sig.Width) / float64(sig.Height) * sigH
		if sigW > colW {
			sigW = colW
		}
		d.putImage(sig, rightX, d.y, sigW, sigH)
	}
	d.y += 22

	f.SetDrawColor(100, 100, 100)
	f.SetLineWidth(0.5)
	f.Line(margin, d.y, margin+colW, d.y)
	f.Line(rightX, d.y, pageW-margin, d.y)
	d.y += 5
	f.SetFont("Helvetica", "B", 9)
	f.SetTextColor(30, 30, 30)
	f.Text(margin, d.y, d.tr(utils.Sanitize(d.p.Form.CoordinatorName)))
	f.Text(rightX, d.y, d.tr(utils.Sanitize(d.p.Form.ApprovedBy)))
	d.y += 4
	f.SetFont("Helvetica", "", 9)
	f.SetTextColor(100, 100, 100)
	f.Text(margin, d.y, "Event Coordinator")
	f.Text(rightX, d.y, "HOD / Director")
}

type tableSpec struct {
	header   []string
	widths   []float64
	rows     [][]string
	fontSize float64
	rowH     float64
	boldCol0 bool
	center   map[int]bool
}

// drawTable renders a striped table with a navy header row. When rows cross
// the page boundary the header row is repeated on the continuation page and
// row order is preserved.
func (d *doc) drawTable(t tableSpec) {
	f := d.pdf

	header := func() {
		f.SetXY(margin, d.y)
		f.SetFont("Helvetica", "B", t.fontSize)
		f.SetFillColor(26, 54, 93)
		f.SetTextColor(255, 255, 255)
		f.SetDrawColor(200, 210, 230)
		for i, h := range t.header {
			f.CellFormat(t.widths[i], t.rowH, d.tr(h), "1", 0, "L", true, 0, "")
		}
		d.y += t.rowH
	}

	d.checkPage(t.rowH * 2)
	header()

	for ri, row := range t.rows {
		if d.y+t.rowH > pageH-bottomPad {
			d.pdf.AddPage()
			d.y = contTop
			header()
		}
		f.SetXY(margin, d.y)
		if ri%2 == 1 {
			f.SetFillColor(245, 247, 252)
		} else {
			f.SetFillColor(255, 255, 255)
		}
		for ci, cellText := range row {
			style := ""
			if t.boldCol0 && ci == 0 {
				style = "B"
			}
			align := "L"
			if t.center[ci] {
				align = "C"
			}
			f.SetFont("Helvetica", style, t.fontSize)
			f.SetTextColor(50, 50, 50)
			f.CellFormat(t.widths[ci], t.rowH, d.fitCell(cellText, t.widths[ci]), "1", 0, align, true, 0, "")
		}
		d.y += t.rowH
	}
}

// fitCell truncates cell text that would overflow its column.
func (d *doc) fitCell(s string, w float64) string {
	t := d.tr(s)
	if d.pdf.GetStringWidth(t) <= w-2 {
		return t
	}
	runes := []rune(t)
	for len(runes) > 0 && d.pdf.GetStringWidth(string(runes)+"...") > w-2 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func to2col(rows [][2]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r[0], r[1]}
	}
	return out
}
