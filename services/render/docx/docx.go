// Package docx renders the alumni event report as a WordprocessingML
// document. Content mirrors the PDF engine section for section (same
// numbering, omission rules, sanitization, tables and star string); the host
// format paginates on its own, so there is no overflow tracking here.
package docx

import (
	"strconv"

	"alumni-portal/models"
	"alumni-portal/utils"
)

const (
	colorNavy   = "1A365D"
	colorSlate  = "4A5568"
	colorMuted  = "718096"
	colorStripe = "F5F7FC"
)

// Config carries the branding stamped into header and footer.
type Config struct {
	InstitutionName string
	PortalName      string
}

type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (e *Engine) Ext() string { return "docx" }

// Render builds the complete document. Image embedding failures cannot
// happen here (the payload carries already-decoded bytes); a nil image slot
// is simply skipped.
func (e *Engine) Render(p *models.ReportPayload) ([]byte, error) {
	d := &builder{cfg: e.cfg, p: p, pkg: &pkg{}}
	d.build()
	return d.pkg.bytes()
}

type builder struct {
	cfg    Config
	p      *models.ReportPayload
	pkg    *pkg
	imgSeq int
}

// text emits a sanitized single-run paragraph.
func (d *builder) text(s string, po paraOpts, ro runOpts) {
	d.pkg.write(para(po, run(utils.Sanitize(s), ro)))
}

// sectionTitle emits the bold numbered heading with the underline border.
// Numbers are fixed per section identity, matching the PDF engine.
func (d *builder) sectionTitle(num, title string) {
	d.text(num+". "+title,
		paraOpts{before: 400, after: 120, borderBottom: true},
		runOpts{bold: true, size: 26, color: colorNavy})
}

func (d *builder) spacer(before int) {
	d.pkg.write(para(paraOpts{before: before}))
}

// image embeds an already-resolved image scaled to the given pixel box.
func (d *builder) image(img *models.Image, wPx, hPx int, po paraOpts) {
	if img == nil {
		return
	}
	relID := d.pkg.addImage(img.Data)
	d.imgSeq++
	d.pkg.write(para(po, imageRun(relID, d.imgSeq, int64(wPx)*emuPerPixel, int64(hPx)*emuPerPixel)))
}

// kvTable renders a two-column parameter/value table, first column bold,
// alternating row shading. Carries the same contents as the PDF tables.
func (d *builder) kvTable(widthPct int, header [2]string, rows [][2]string) {
	trs := []string{tableRow(
		tableCell(2500, colorNavy, para(paraOpts{}, run(header[0], runOpts{bold: true, size: 18, color: "FFFFFF"}))),
		tableCell(2500, colorNavy, para(paraOpts{}, run(header[1], runOpts{bold: true, size: 18, color: "FFFFFF"}))),
	)}
	for i, row := range rows {
		shade := ""
		if i%2 == 1 {
			shade = colorStripe
		}
		trs = append(trs, tableRow(
			tableCell(2500, shade, para(paraOpts{}, run(row[0], runOpts{bold: true, size: 18}))),
			tableCell(2500, shade, para(paraOpts{}, run(row[1], runOpts{size: 18}))),
		))
	}
	d.pkg.write(table(widthPct, trs))
}

func (d *builder) build() {
	d.headerFooter()
	d.bannerBlock()
	d.sections()
	d.approvalBlock()
}

// headerFooter fills the document-wide header (event title, right aligned)
// and footer (institution line plus live Page X of Y fields).
func (d *builder) headerFooter() {
	d.pkg.headerXML = headerPart(para(
		paraOpts{align: "right"},
		run("Alumni Event Report — "+utils.Sanitize(d.p.Event.Title), runOpts{size: 16, color: colorMuted}),
	))

	footerRun := runOpts{size: 14, color: colorMuted}
	d.pkg.footerXML = footerPart(para(
		paraOpts{align: "center"},
		run(d.cfg.InstitutionName+"  |  "+d.cfg.PortalName+"  |  Page ", footerRun),
		pageField("PAGE", footerRun),
		run(" of ", footerRun),
		pageField("NUMPAGES", footerRun),
	))
}

func (d *builder) bannerBlock() {
	p := d.p
	ev := p.Event

	// College logo above the institution line, when provided.
	if logo := p.Branding.CollegeLogo; logo != nil {
		d.image(logo, 60, 60, paraOpts{align: "center"})
	}

	d.text(d.cfg.InstitutionName, paraOpts{align: "center"}, runOpts{bold: true, size: 28, color: colorNavy})
	d.text("Department of "+orNA(ev.DepartmentName), paraOpts{align: "center"}, runOpts{size: 22, color: colorSlate})
	d.spacer(100)
	d.text("ALUMNI EVENT REPORT", paraOpts{align: "center", before: 200, after: 100}, runOpts{bold: true, size: 36, color: colorNavy})
	d.text(ev.Title, paraOpts{align: "center"}, runOpts{bold: true, size: 28})
	d.text(utils.FormatDate(ev.Date)+"  |  "+utils.FormatTime(ev.Time), paraOpts{align: "center"}, runOpts{size: 20, color: colorSlate})
	d.text("Venue: "+orNA(ev.Venue)+"  |  Mode: "+utils.Capitalize(ev.Mode)+"  |  Type: "+utils.Capitalize(ev.Type),
		paraOpts{align: "center"}, runOpts{size: 20, color: colorSlate})
	d.text("Coordinator: "+utils.Sanitize(p.Form.CoordinatorName),
		paraOpts{align: "center", after: 300}, runOpts{size: 20, color: colorSlate})
}

func (d *builder) sections() {
	p := d.p

	if p.HasIntroduction() {
		d.sectionTitle("1", "Introduction")
		d.text(p.Form.Introduction, paraOpts{}, runOpts{})
	}

	d.sectionTitle("2", "Event Overview")
	d.text("Theme: "+p.Event.Title+"  |  Type: "+utils.Capitalize(p.Event.Type)+"  |  Mode: "+utils.Capitalize(p.Event.Mode),
		paraOpts{}, runOpts{})

	if p.HasSpeaker() {
		sp := p.Event.Speaker
		d.sectionTitle("3", "Speaker Details")
		d.text("Name: "+sp.Name, paraOpts{}, runOpts{})
		if sp.Designation != "" {
			d.text("Designation: "+sp.Designation, paraOpts{}, runOpts{})
		}
		if sp.Organization != "" {
			d.text("Organization: "+sp.Organization, paraOpts{}, runOpts{})
		}
		if sp.Bio != "" {
			d.text("Bio: "+sp.Bio, paraOpts{}, runOpts{italic: true, size: 20, color: colorSlate})
		}
		d.text("Performance: "+utils.Capitalize(p.Form.SpeakerRating)+" — "+utils.SanitizeOr(p.Form.SpeakerFeedback, "No comments"),
			paraOpts{}, runOpts{})
	}

	d.sectionTitle("4", "Event Description")
	d.text(orNA(p.Form.EventSummary), paraOpts{}, runOpts{})
	if p.HasKeyHighlights() {
		d.text("Key Highlights:", paraOpts{before: 100}, runOpts{bold: true, color: colorNavy})
		for _, line := range p.KeyHighlightLines() {
			d.text("•  "+line, paraOpts{}, runOpts{size: 20})
		}
	}

	d.sectionTitle("5", "Participation Details")
	d.kvTable(2750, [2]string{"Category", "Count"}, p.ParticipationRows())
	if len(p.Attendees) > 0 {
		d.text("Alumni Attendance List", paraOpts{before: 200, after: 100}, runOpts{bold: true, color: colorNavy})
		d.attendeeTable()
	}

	d.sectionTitle("6", "Outcomes & Impact")
	d.text(orNA(p.Form.Outcomes), paraOpts{}, runOpts{})

	d.sectionTitle("7", "Feedback & Evaluation")
	d.kvTable(5000, [2]string{"Parameter", "Response"}, p.FeedbackRows(p.StarRating()))

	if len(p.Photos) > 0 {
		d.sectionTitle("8", "Event Photos")
		for _, img := range p.Photos {
			if img == nil {
				continue
			}
			w, h := fitWidth(img, 400)
			d.image(img, w, h, paraOpts{align: "center", before: 100, after: 100})
		}
	}

	if p.HasConclusion() {
		d.sectionTitle("9", "Conclusion")
		d.text(p.Form.Conclusion, paraOpts{}, runOpts{})
	}
}

// attendeeTable is the 6-column roster; empty cells carry an em-dash
// placeholder. No header repetition logic here: Word re-breaks table rows
// across pages itself.
func (d *builder) attendeeTable() {
	headers := []string{"#", "Name", "Email", "Year", "Degree", "Company"}
	widths := []int{333, 833, 1250, 500, 1000, 1084} // fiftieths of a percent, sums to 5000

	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = tableCell(widths[i], colorNavy,
			para(paraOpts{}, run(h, runOpts{bold: true, size: 18, color: "FFFFFF"})))
	}
	trs := []string{tableRow(headerCells...)}

	for i, a := range d.p.Attendees {
		shade := ""
		if i%2 == 1 {
			shade = colorStripe
		}
		year := ""
		if a.GraduationYear > 0 {
			year = strconv.Itoa(a.GraduationYear)
		}
		values := []string{strconv.Itoa(i + 1), a.Name, a.Email, year, a.Degree, a.Company}
		cells := make([]string, len(values))
		for ci, v := range values {
			if v == "" {
				v = "—"
			}
			cells[ci] = tableCell(widths[ci], shade, para(paraOpts{}, run(v, runOpts{size: 18})))
		}
		trs = append(trs, tableRow(cells...))
	}
	d.pkg.write(table(5000, trs))
}

func (d *builder) approvalBlock() {
	p := d.p

	d.spacer(600)
	d.text("APPROVAL & AUTHORIZATION",
		paraOpts{align: "center", before: 400, after: 200, borderTop: true},
		runOpts{bold: true, size: 24, color: colorNavy})

	if sig := p.Branding.CoordinatorSignature; sig != nil {
		d.image(sig, 120, 50, paraOpts{before: 100})
	}
	d.text("Prepared by: "+p.Form.CoordinatorName, paraOpts{}, runOpts{bold: true})
	d.text("Event Coordinator", paraOpts{}, runOpts{size: 18, color: colorMuted})
	d.spacer(200)

	if sig := p.Branding.ApproverSignature; sig != nil {
		d.image(sig, 120, 50, paraOpts{before: 100})
	}
	d.text("Approved by: "+p.Form.ApprovedBy, paraOpts{}, runOpts{bold: true})
	d.text("HOD / Director", paraOpts{}, runOpts{size: 18, color: colorMuted})

	d.text("Report generated: "+p.GeneratedAt.Format("02/01/2006, 15:04:05"),
		paraOpts{before: 300}, runOpts{size: 18, color: colorMuted})
}

func orNA(s string) string {
	return utils.SanitizeOr(s, "N/A")
}

// fitWidth scales pixel dimensions to a maximum width without upscaling.
func fitWidth(img *models.Image, maxW int) (int, int) {
	w := img.Width
	if w > maxW {
		w = maxW
	}
	if img.Width == 0 || img.Height == 0 {
		return w, w
	}
	h := int(float64(w) * float64(img.Height) / float64(img.Width))
	return w, h
}
