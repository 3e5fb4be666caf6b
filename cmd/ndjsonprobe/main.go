// Command ndjsonprobe samples the first N lines of an NDJSON file and
// prints, per top-level field, a normalized column name, inferred type,
// null/presence counts and a distinct-value estimate. Use it to eyeball a
// fresh metadata dump before starting a long load.
//
// Example:
//
//	ndjsonprobe -input data/arxiv.jsonlines -lines 500
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"arxivetl/internal/probe"
)

func main() {
	inputPath := flag.String("input", "", "path to the NDJSON file")
	lines := flag.Int("lines", 100, "maximum number of lines to sample")
	asJSON := flag.Bool("json", false, "emit the report as JSON")
	flag.Parse()

	if *inputPath == "" {
		fatalf("-input is required")
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		fatalf("open input: %v", err)
	}
	defer f.Close()

	stats, sampled, err := probe.Sample(f, *lines)
	if err != nil {
		fatalf("%v", err)
	}

	if *asJSON {
		out, err := json.MarshalIndent(struct {
			Lines  int               `json:"lines"`
			Fields []probe.FieldStat `json:"fields"`
		}{sampled, stats}, "", "  ")
		if err != nil {
			fatalf("encode report: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("sampled %d lines\n", sampled)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tCOLUMN\tTYPE\tPRESENT\tNULLS\tDISTINCT\tSAMPLE")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			s.Name, s.NormName, s.Type, s.Present, s.Nulls, s.Distinct, s.Sample)
	}
	w.Flush()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
