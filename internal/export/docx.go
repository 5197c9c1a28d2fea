package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"cvwizard-backend/internal/compose"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// RenderDocx serializes a document model into a DOCX byte slice. It is pure:
// no templates, no external processes. Section titles become Heading1
// paragraphs so a reader can recover the section sequence from the package.
func RenderDocx(model compose.DocumentModel) ([]byte, error) {
	documentXML, err := buildDocumentXML(model)
	if err != nil {
		return nil, err
	}
	if err := validateDocumentXML(documentXML); err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", documentXML},
	}
	for _, part := range parts {
		dst, err := writer.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := dst.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func buildDocumentXML(model compose.DocumentModel) (string, error) {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)

	if strings.TrimSpace(model.Title) != "" {
		writeStyledParagraph(&sb, "Title", model.Title)
	}

	for _, section := range model.Sections {
		writeStyledParagraph(&sb, "Heading1", section.Title)
		for _, block := range section.Blocks {
			if err := writeBlock(&sb, block); err != nil {
				return "", err
			}
		}
	}

	sb.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String(), nil
}

func writeBlock(sb *strings.Builder, block compose.Block) error {
	switch block.Kind {
	case compose.BlockParagraph:
		writeParagraph(sb, block.Text)
	case compose.BlockBullets:
		for _, item := range block.Items {
			writeBulletParagraph(sb, item)
		}
	case compose.BlockKeyValue:
		writeKeyValueParagraph(sb, block.Key, block.Value)
	default:
		return fmt.Errorf("unknown block kind %q", block.Kind)
	}
	return nil
}

func writeStyledParagraph(sb *strings.Builder, style, text string) {
	sb.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`)
	writeRun(sb, text, false)
	sb.WriteString(`</w:p>`)
}

func writeParagraph(sb *strings.Builder, text string) {
	sb.WriteString(`<w:p>`)
	writeRun(sb, text, false)
	sb.WriteString(`</w:p>`)
}

func writeBulletParagraph(sb *strings.Builder, text string) {
	sb.WriteString(`<w:p><w:pPr><w:pStyle w:val="ListParagraph"/></w:pPr>`)
	writeRun(sb, "• "+text, false)
	sb.WriteString(`</w:p>`)
}

func writeKeyValueParagraph(sb *strings.Builder, key, value string) {
	sb.WriteString(`<w:p>`)
	writeRun(sb, key, true)
	if strings.TrimSpace(value) != "" {
		writeRun(sb, " — "+value, false)
	}
	sb.WriteString(`</w:p>`)
}

// writeRun emits one run per line, joined by explicit breaks, normalizing CR
// and CRLF first.
func writeRun(sb *strings.Builder, text string, bold bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	sb.WriteString(`<w:r>`)
	if bold {
		sb.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	for i, line := range lines {
		if i > 0 {
			sb.WriteString(`<w:br/>`)
		}
		sb.WriteString(`<w:t xml:space="preserve">` + escapeXML(line) + `</w:t>`)
	}
	sb.WriteString(`</w:r>`)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// validateDocumentXML parses the generated XML end to end so a malformed
// document never leaves the renderer.
func validateDocumentXML(xmlText string) error {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w", err)
		}
	}
}

// ParseSectionTitles recovers the ordered Heading1 paragraph texts from a
// DOCX package.
func ParseSectionTitles(docxBytes []byte) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return nil, err
	}

	var documentXML []byte
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		documentXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		break
	}
	if documentXML == nil {
		return nil, errors.New("docx has no word/document.xml")
	}

	return headingTexts(string(documentXML))
}

func headingTexts(xmlText string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))

	var (
		titles    []string
		inPara    bool
		isHeading bool
		text      strings.Builder
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch {
			case isWmlElement(t.Name, "p"):
				inPara = true
				isHeading = false
				text.Reset()
			case inPara && isWmlElement(t.Name, "pStyle"):
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" && attr.Value == "Heading1" {
						isHeading = true
					}
				}
			case inPara && isWmlElement(t.Name, "t"):
				var content string
				if err := decoder.DecodeElement(&content, &t); err != nil {
					return nil, err
				}
				text.WriteString(content)
			}
		case xml.EndElement:
			if isWmlElement(t.Name, "p") && inPara {
				if isHeading {
					titles = append(titles, text.String())
				}
				inPara = false
			}
		}
	}
	return titles, nil
}

func isWmlElement(name xml.Name, local string) bool {
	return name.Local == local && name.Space == wmlNamespace
}
