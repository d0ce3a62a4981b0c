package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"incidentsaver/internal/core/incident"
	pstrings "incidentsaver/internal/platform/strings"
)

// Filename is the suggested download name
const Filename = "incidents.csv"

// Header is the first CSV row
var Header = []string{"Incident", "Occurrence", "Detection", "Resolve", "MTTD(ms)", "MTTR(ms)"}

// WriteCSV writes the header and one row per valid record. Absent fields are
// empty; a present zero duration is written as 0
func WriteCSV(w io.Writer, rs []incident.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rs {
		if !r.Valid() {
			continue
		}
		row := []string{
			r.Number,
			pstrings.Deref(r.Occurrence), pstrings.Deref(r.Detection), pstrings.Deref(r.Resolve),
			ms(r.Mttd), ms(r.Mttr),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV is WriteCSV into memory
func CSV(rs []incident.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ms(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}
