package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{"configuration", "size (bytes)", "false negatives", "false positives"}

// WriteCSV writes one line per result after a header line:
//
//	configuration,size (bytes),false negatives,false positives
//	64/4,128,3,0
//
// With baseline set a "bloom false positives" column is appended.
func WriteCSV(w io.Writer, results []Result, baseline bool) error {
	cw := csv.NewWriter(w)

	header := csvHeader
	if baseline {
		header = append(append([]string(nil), csvHeader...), "bloom false positives")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		record := []string{
			fmt.Sprintf("%d/%d", r.SlotCount, r.ValueSize),
			strconv.FormatUint(r.SizeBytes, 10),
			strconv.Itoa(r.FalseNegatives),
			strconv.Itoa(r.FalsePositives),
		}
		if baseline {
			record = append(record, strconv.Itoa(r.BloomFalsePositives))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
