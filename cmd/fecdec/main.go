package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"fecdec/internal"
	"fecdec/internal/config"
	"fecdec/internal/export"
	"fecdec/internal/reader"
	"fecdec/internal/schema"
	"fecdec/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	fields := schema.DefaultFields()
	if cfg.FieldsPath != "" {
		fields, err = schema.LoadFields(cfg.FieldsPath)
		must(err)
	}
	mapper := schema.NewMapper(fields)
	registry := schema.NewRegistry(cfg.HeadersDir)

	cmd := os.Args[1]
	switch cmd {
	case "decode":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		_ = fs.Parse(os.Args[2:])
		inputs := fs.Args()
		if len(inputs) == 0 {
			must(fmt.Errorf("at least one input file is required"))
		}
		failed := 0
		for _, input := range inputs {
			count, err := decodeToStdout(input, registry, mapper)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s: %v\n", input, err)
				failed++
				continue
			}
			fmt.Fprintf(os.Stderr, "decoded %s records=%d\n", input, count)
		}
		if failed > 0 {
			os.Exit(1)
		}
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		inputs := fs.Args()
		if *out == "" || len(inputs) == 0 {
			must(fmt.Errorf("--out and at least one input file are required"))
		}
		records := make([]internal.Record, 0)
		for _, input := range inputs {
			decoded, err := collectRecords(input, registry, mapper)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s: %v\n", input, err)
				continue
			}
			records = append(records, decoded...)
		}
		must(export.WriteXLSX(records, mapper.Canonicals(), *out))
		fmt.Printf("exported %d records to %s\n", len(records), *out)
	case "import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		_ = fs.Parse(os.Args[2:])
		inputs := fs.Args()
		if len(inputs) == 0 {
			must(fmt.Errorf("at least one input file is required"))
		}
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		for _, input := range inputs {
			count, err := importFile(db, input, registry, mapper)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s: %v\n", input, err)
				continue
			}
			fmt.Printf("imported %s records=%d\n", input, count)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func decodeToStdout(path string, registry *schema.Registry, mapper *schema.Mapper) (int, error) {
	stream, err := reader.Open(path, registry, mapper)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	enc := json.NewEncoder(os.Stdout)
	count := 0
	for stream.Next() {
		if err := enc.Encode(stream.Record()); err != nil {
			return count, err
		}
		count++
	}
	return count, stream.Err()
}

func collectRecords(path string, registry *schema.Registry, mapper *schema.Mapper) ([]internal.Record, error) {
	stream, err := reader.Open(path, registry, mapper)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	records := make([]internal.Record, 0)
	for stream.Next() {
		records = append(records, stream.Record())
	}
	return records, stream.Err()
}

func importFile(db *storage.DB, path string, registry *schema.Registry, mapper *schema.Mapper) (int, error) {
	importID, err := db.BeginImport(path)
	if err != nil {
		return 0, err
	}

	stream, err := reader.Open(path, registry, mapper)
	if err != nil {
		_ = db.FailImport(importID, err)
		return 0, err
	}
	defer stream.Close()

	count := 0
	for stream.Next() {
		if err := db.InsertRecord(importID, stream.Record()); err != nil {
			_ = db.FailImport(importID, err)
			return count, err
		}
		count++
	}
	if err := stream.Err(); err != nil {
		_ = db.FailImport(importID, err)
		return count, err
	}
	return count, db.FinishImport(importID, count)
}

func usage() {
	fmt.Println("usage: fecdec <command>")
	fmt.Println("commands:")
	fmt.Println("  decode <file|zip>...")
	fmt.Println("  export:xlsx --out=./out/result.xlsx <file|zip>...")
	fmt.Println("  import <file|zip>...")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
