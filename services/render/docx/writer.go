// WordprocessingML package plumbing: a .docx file is a zip of XML parts plus
// media. This file owns the container layout (content types, relationships,
// styles, header/footer parts) and the low-level markup builders; docx.go
// owns the report content.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const xmlProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// Fixed part relationships; image relationships start at imageRelBase so the
// two ranges can never collide.
const (
	relStyles    = "rId1"
	relHeader    = "rId2"
	relFooter    = "rId3"
	imageRelBase = 100
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func esc(s string) string {
	return xmlEscaper.Replace(s)
}

// pkg accumulates document body markup and embedded media, then assembles
// the zip container.
type pkg struct {
	body  strings.Builder
	media [][]byte

	headerXML string
	footerXML string
}

// addImage registers a JPEG blob and returns its relationship id.
func (p *pkg) addImage(data []byte) string {
	p.media = append(p.media, data)
	return fmt.Sprintf("rId%d", imageRelBase+len(p.media)-1)
}

func (p *pkg) write(s string) {
	p.body.WriteString(s)
}

// bytes assembles the complete OOXML package.
func (p *pkg) bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", p.contentTypes()},
		{"_rels/.rels", rootRels},
		{"word/document.xml", p.documentXML()},
		{"word/_rels/document.xml.rels", p.documentRels()},
		{"word/styles.xml", stylesXML},
		{"word/header1.xml", p.headerXML},
		{"word/footer1.xml", p.footerXML},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("docx part %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("docx part %s: %w", part.name, err)
		}
	}
	for i, data := range p.media {
		w, err := zw.Create(fmt.Sprintf("word/media/image%d.jpg", i+1))
		if err != nil {
			return nil, fmt.Errorf("docx media %d: %w", i+1, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("docx media %d: %w", i+1, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx close: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *pkg) contentTypes() string {
	var b strings.Builder
	b.WriteString(xmlProlog)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="jpg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	b.WriteString(`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`)
	b.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRels = xmlProlog +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func (p *pkg) documentRels() string {
	var b strings.Builder
	b.WriteString(xmlProlog)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="` + relStyles + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	b.WriteString(`<Relationship Id="` + relHeader + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>`)
	b.WriteString(`<Relationship Id="` + relFooter + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`)
	for i := range p.media {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image%d.jpg"/>`, imageRelBase+i, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const wmlNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

func (p *pkg) documentXML() string {
	var b strings.Builder
	b.WriteString(xmlProlog)
	b.WriteString(`<w:document ` + wmlNamespaces + `><w:body>`)
	b.WriteString(p.body.String())
	// A4 portrait, the original's page margins, numbering from 1, shared
	// header/footer on every page.
	b.WriteString(`<w:sectPr>` +
		`<w:headerReference w:type="default" r:id="` + relHeader + `"/>` +
		`<w:footerReference w:type="default" r:id="` + relFooter + `"/>` +
		`<w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="720" w:right="1080" w:bottom="720" w:left="1080" w:header="432" w:footer="432" w:gutter="0"/>` +
		`<w:pgNumType w:start="1"/>` +
		`</w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// Minimal stylesheet: Calibri 11pt document defaults.
const stylesXML = xmlProlog +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/>` +
	`</w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`</w:styles>`

func headerPart(content string) string {
	return xmlProlog + `<w:hdr ` + wmlNamespaces + `>` + content + `</w:hdr>`
}

func footerPart(content string) string {
	return xmlProlog + `<w:ftr ` + wmlNamespaces + `>` + content + `</w:ftr>`
}

// runOpts mirror docx run properties; size is in half-points (0 keeps the
// document default).
type runOpts struct {
	bold   bool
	italic bool
	size   int
	color  string // RRGGBB
}

func run(text string, o runOpts) string {
	var b strings.Builder
	b.WriteString(`<w:r>`)
	b.WriteString(runProps(o))
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(esc(text))
	b.WriteString(`</w:t></w:r>`)
	return b.String()
}

func runProps(o runOpts) string {
	if !o.bold && !o.italic && o.size == 0 && o.color == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<w:rPr>`)
	if o.bold {
		b.WriteString(`<w:b/>`)
	}
	if o.italic {
		b.WriteString(`<w:i/>`)
	}
	if o.color != "" {
		b.WriteString(`<w:color w:val="` + o.color + `"/>`)
	}
	if o.size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, o.size, o.size)
	}
	b.WriteString(`</w:rPr>`)
	return b.String()
}

// paraOpts mirror docx paragraph properties; spacing values are twips.
type paraOpts struct {
	align        string // "center", "right" or "" for left
	before       int
	after        int
	borderTop    bool
	borderBottom bool
}

func para(o paraOpts, runs ...string) string {
	var b strings.Builder
	b.WriteString(`<w:p>`)
	if props := paraProps(o); props != "" {
		b.WriteString(props)
	}
	for _, r := range runs {
		b.WriteString(r)
	}
	b.WriteString(`</w:p>`)
	return b.String()
}

func paraProps(o paraOpts) string {
	if o.align == "" && o.before == 0 && o.after == 0 && !o.borderTop && !o.borderBottom {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<w:pPr>`)
	if o.borderTop || o.borderBottom {
		b.WriteString(`<w:pBdr>`)
		if o.borderTop {
			b.WriteString(`<w:top w:val="single" w:sz="4" w:space="1" w:color="C8D2E6"/>`)
		}
		if o.borderBottom {
			b.WriteString(`<w:bottom w:val="single" w:sz="4" w:space="1" w:color="C8D2E6"/>`)
		}
		b.WriteString(`</w:pBdr>`)
	}
	if o.before > 0 || o.after > 0 {
		fmt.Fprintf(&b, `<w:spacing w:before="%d" w:after="%d"/>`, o.before, o.after)
	}
	if o.align != "" {
		b.WriteString(`<w:jc w:val="` + o.align + `"/>`)
	}
	b.WriteString(`</w:pPr>`)
	return b.String()
}

// pageField emits a live field code run ("PAGE" or "NUMPAGES"); viewers
// recompute the cached value on open.
func pageField(instr string, o runOpts) string {
	return `<w:fldSimple w:instr=" ` + instr + ` "><w:r>` + runProps(o) +
		`<w:t>1</w:t></w:r></w:fldSimple>`
}

// tableOpts: width is in fiftieths of a percent of the content width
// (5000 = 100%).
func table(widthPct int, rows []string) string {
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tblPr>`)
	fmt.Fprintf(&b, `<w:tblW w:w="%d" w:type="pct"/>`, widthPct)
	b.WriteString(`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:color="C8D2E6"/>` +
		`<w:left w:val="single" w:sz="4" w:color="C8D2E6"/>` +
		`<w:bottom w:val="single" w:sz="4" w:color="C8D2E6"/>` +
		`<w:right w:val="single" w:sz="4" w:color="C8D2E6"/>` +
		`<w:insideH w:val="single" w:sz="4" w:color="C8D2E6"/>` +
		`<w:insideV w:val="single" w:sz="4" w:color="C8D2E6"/>` +
		`</w:tblBorders></w:tblPr>`)
	for _, row := range rows {
		b.WriteString(row)
	}
	b.WriteString(`</w:tbl>`)
	return b.String()
}

func tableRow(cells ...string) string {
	return `<w:tr>` + strings.Join(cells, "") + `</w:tr>`
}

// tableCell: width in fiftieths of a percent; shade is a fill color or "".
func tableCell(widthPct int, shade string, content string) string {
	var b strings.Builder
	b.WriteString(`<w:tc><w:tcPr>`)
	fmt.Fprintf(&b, `<w:tcW w:w="%d" w:type="pct"/>`, widthPct)
	if shade != "" {
		b.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + shade + `"/>`)
	}
	b.WriteString(`</w:tcPr>`)
	b.WriteString(content)
	b.WriteString(`</w:tc>`)
	return b.String()
}

// imageRun embeds a registered image inline; cx/cy are EMUs (9525 per
// pixel at 96dpi).
func imageRun(relID string, seq int, cx, cy int64) string {
	return fmt.Sprintf(`<w:r><w:drawing>`+
		`<wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="image%d"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic>`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="image%d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic>`+
		`</a:graphicData></a:graphic>`+
		`</wp:inline></w:drawing></w:r>`,
		cx, cy, seq, seq, seq, seq, relID, cx, cy)
}

const emuPerPixel = 9525
