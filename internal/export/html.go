package export

import (
	"html"
	"strings"
)

// ToPrintableHTML monta um documento HTML com a tabela pronta para o diálogo
// de impressão/PDF do host. O documento é da direita para a esquerda, como o
// front-end original.
func ToPrintableHTML(title string, headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html dir="rtl" lang="ar">` + "\n")
	b.WriteString("<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: sans-serif; direction: rtl; }\n")
	b.WriteString("table { border-collapse: collapse; width: 100%; }\n")
	b.WriteString("th, td { border: 1px solid #999; padding: 6px 10px; text-align: right; }\n")
	b.WriteString("th { background: #eee; }\n")
	b.WriteString("</style>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n")
	b.WriteString("<table>\n")

	b.WriteString("<tr>")
	for _, header := range headers {
		b.WriteString("<th>" + html.EscapeString(header) + "</th>")
	}
	b.WriteString("</tr>\n")

	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>\n")
	}

	b.WriteString("</table>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")

	return b.String()
}
