package iobulk

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/gnlib"
)

// vernEntry is one usable row of VernacularName.tsv.
type vernEntry struct {
	lang string
	name string
}

// cjkRussian lists languages whose vernacular names commonly carry a
// Latin transliteration in the export. The transliteration is appended
// in parentheses when present.
var cjkRussian = map[string]struct{}{
	"jpn": {}, "zho": {}, "kor": {}, "rus": {},
}

// readVernaculars loads VernacularName.tsv into a map keyed by taxon
// ID, keeping only languages from the allow-list. A missing file is
// not an error: older exports ship without vernacular names.
func readVernaculars(
	path string, langs map[string]struct{},
) (map[string][]vernEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]vernEntry{}, nil
		}
		return nil, VernacularsError(path, err)
	}
	defer f.Close()

	r := newTSVReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, VernacularsError(path, err)
	}
	cols := columnIndex(header)

	res := make(map[string][]vernEntry)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, VernacularsError(path, err)
		}

		taxonID := field(rec, cols, "col:taxonID")
		lang := checklist.NormalizeLang(field(rec, cols, "col:language"))
		name := gnlib.FixUtf8(field(rec, cols, "col:name"))
		if taxonID == "" || name == "" {
			continue
		}
		if _, ok := langs[lang]; !ok {
			continue
		}

		if translit := field(rec, cols, "col:transliteration"); translit != "" {
			if _, ok := cjkRussian[lang]; ok {
				name = fmt.Sprintf("%s (%s)", name, translit)
			}
		}

		res[taxonID] = append(res[taxonID], vernEntry{lang: lang, name: name})
	}

	return res, nil
}

// newTSVReader creates a CSV reader tuned for ColDP TSV files: tab
// separated, unescaped quotes in names, varying column counts across
// export versions.
func newTSVReader(r io.Reader) *csv.Reader {
	res := csv.NewReader(r)
	res.Comma = '\t'
	res.LazyQuotes = true
	res.FieldsPerRecord = -1
	return res
}

// columnIndex maps header names to their positions.
func columnIndex(header []string) map[string]int {
	res := make(map[string]int, len(header))
	for i, h := range header {
		res[h] = i
	}
	return res
}

// field returns a record's value for a named column, or an empty
// string when the column is absent or the record is short.
func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}
