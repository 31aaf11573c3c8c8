package envelope

import (
	"strings"
)

const indentUnit = "  "

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

// Wrap nests the header and body fragments inside the envelope described
// by d. Fragment lines are re-indented to sit three levels deep; empty
// fragments are skipped.
func Wrap(d Descriptor, fragments ...string) string {
	var b strings.Builder

	b.WriteString("<" + d.RootElementName + ` xmlns="` + attrEscaper.Replace(d.TargetNamespace) + `">` + "\n")
	b.WriteString(indentUnit + "<" + d.ContainerElementName + ">\n")
	b.WriteString(strings.Repeat(indentUnit, 2) + "<" + d.MessageElementName + ">\n")

	pad := strings.Repeat(indentUnit, 3)
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		for _, line := range strings.Split(fragment, "\n") {
			b.WriteString(pad + strings.TrimRight(line, "\r") + "\n")
		}
	}

	b.WriteString(strings.Repeat(indentUnit, 2) + "</" + d.MessageElementName + ">\n")
	b.WriteString(indentUnit + "</" + d.ContainerElementName + ">\n")
	b.WriteString("</" + d.RootElementName + ">")
	return b.String()
}
