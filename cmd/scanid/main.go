// Package main provides a CLI for scanning text for security identifiers.
// It reads from files or stdin and emits one JSON object per match.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"secid-gateway/pkg/secid"
)

type matchOutput struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
}

func main() {
	schemesFlag := flag.String("schemes", "", "Comma-separated scheme restriction (e.g. isin,cusip)")
	countOnly := flag.Bool("count", false, "Print only the total match count")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `scanid - Scan text for security identifiers

Usage:
  scanid [flags] [file ...]

Reads the named files, or stdin when none are given, and prints one JSON
object per identifier found.

Examples:
  scanid report.txt
  cat holdings.csv | scanid -schemes isin,cusip
  scanid -count trades.log`)
		flag.PrintDefaults()
	}
	flag.Parse()

	restriction, err := parseSchemes(*schemesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scanid: %v\n", err)
		os.Exit(1)
	}

	total := 0
	enc := json.NewEncoder(os.Stdout)
	scanOne := func(name string, r io.Reader) error {
		n, err := scanReader(enc, name, r, restriction, *countOnly)
		total += n
		return err
	}

	if flag.NArg() == 0 {
		if err := scanOne("stdin", os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "scanid: %v\n", err)
			os.Exit(1)
		}
	}
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scanid: %v\n", err)
			os.Exit(1)
		}
		err = scanOne(path, f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "scanid: %v\n", err)
			os.Exit(1)
		}
	}

	if *countOnly {
		fmt.Println(total)
	}
}

// scanReader scans r line by line so offsets stay small and memory stays flat
// on large inputs.
func scanReader(enc *json.Encoder, source string, r io.Reader, restriction []secid.Scheme, countOnly bool) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	total := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		iter, err := secid.Scan(scanner.Text(), restriction...)
		if err != nil {
			return total, err
		}
		for {
			m, ok := iter.Next()
			if !ok {
				break
			}
			total++
			if countOnly {
				continue
			}
			if err := enc.Encode(matchOutput{
				Source: source,
				Line:   lineNo,
				Scheme: m.Scheme.String(),
				Value:  m.Value,
				Offset: m.Offset,
			}); err != nil {
				return total, err
			}
		}
	}
	return total, scanner.Err()
}

func parseSchemes(raw string) ([]secid.Scheme, error) {
	if raw == "" {
		return nil, nil
	}
	var out []secid.Scheme
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sc, err := secid.ParseScheme(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
