package dump

import (
	"fmt"
	"strings"
)

// Builds a `SerieHistorica` element, values maps day to element text. Days not in
// the map are left out of the element.
func serie(code string, level int, dataHora string, prefix string, values map[int]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<SerieHistorica diffgr:id="SerieHistorica1" msdata:rowOrder="0">`)
	fmt.Fprintf(&b, "<EstacaoCodigo>%s</EstacaoCodigo>", code)
	fmt.Fprintf(&b, "<NivelConsistencia>%d</NivelConsistencia>", level)
	fmt.Fprintf(&b, "<DataHora>%s</DataHora>", dataHora)
	for day := 1; day <= 31; day++ {
		text, ok := values[day]
		if !ok {
			continue
		}
		if text == "" {
			fmt.Fprintf(&b, "<%s%02d />", prefix, day)
			continue
		}
		fmt.Fprintf(&b, "<%s%02d>%s</%s%02d>", prefix, day, text, prefix, day)
	}
	b.WriteString("</SerieHistorica>")
	return b.String()
}

func response(series ...string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:msdata="urn:schemas-microsoft-com:xml-msdata" xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <DocumentElement xmlns="">` + strings.Join(series, "\n") + `</DocumentElement>
  </diffgr:diffgram>
</DataTable>`
}

func allDays(n int, text string) map[int]string {
	out := make(map[int]string, n)
	for day := 1; day <= n; day++ {
		out[day] = text
	}
	return out
}
