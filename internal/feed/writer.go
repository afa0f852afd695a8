package feed

import (
	"bytes"
	"encoding/xml"
)

const AtomLinkType = "application/atom+xml"

// writeElement always emits the element, even with empty content, so the
// documents stay structurally uniform across entries.
func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	pad(buf, indent)
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	escapeInto(buf, content)
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func writeLink(buf *bytes.Buffer, rel, href, typ string, indent int) {
	pad(buf, indent)
	buf.WriteString(`<link rel="`)
	escapeInto(buf, rel)
	buf.WriteString(`" href="`)
	escapeInto(buf, href)
	buf.WriteString(`" type="`)
	escapeInto(buf, typ)
	buf.WriteString(`"/>` + "\n")
}

// escapeInto escapes XML special characters; extracted titles and authors
// are untrusted input and go through here before hitting the document.
func escapeInto(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}

func pad(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
}
