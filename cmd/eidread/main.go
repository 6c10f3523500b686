// Command eidread extracts identity records from eID reader XML files, or from
// stdin when no file is given, and prints them as JSON lines.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"eidreader/internal/eid/extractor"
	"eidreader/internal/platform/logger"
)

func main() {
	minimize := flag.Bool("minimize", false, "print only nationality, gender and birth year")
	flag.Parse()

	log := logger.NewWithWriter(os.Stderr, slog.LevelWarn)
	if err := run(flag.Args(), os.Stdin, os.Stdout, *minimize, log); err != nil {
		log.Error("eidread failed", "error", err)
		os.Exit(1)
	}
}

func run(paths []string, stdin io.Reader, out io.Writer, minimize bool, log *slog.Logger) error {
	enc := json.NewEncoder(out)
	if len(paths) == 0 {
		return readOne("-", stdin, enc, minimize, log)
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		err = readOne(path, f, enc, minimize, log)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func readOne(name string, r io.Reader, enc *json.Encoder, minimize bool, log *slog.Logger) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	record := extractor.Extract(string(raw))
	if record.IsEmpty() {
		log.Warn("no identity fields found", "source", name)
	}
	if minimize {
		record = record.Minimized()
	}
	return enc.Encode(record)
}
