package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsariola/slidermon"
	"github.com/vsariola/slidermon/report"
	"github.com/vsariola/slidermon/version"
)

func main() {
	safe := flag.Bool("n", false, "Never overwrite files; if file already exists and would be overwritten, give an error.")
	list := flag.Bool("l", false, "Do not write files; just list files that would change instead.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	formats := flag.String("f", "text", "Comma separated report formats to write. Possible values: text, markdown, or the names of the templates given with -t.")
	withState := flag.Bool("state", false, "Include the state of every step in the reports.")
	jsonOut := flag.Bool("j", false, "Output the recording as .json file.")
	yamlOut := flag.Bool("y", false, "Output the recording as .yml file.")
	tmplDir := flag.String("t", "", "Use the templates in this directory instead of the standard templates.")
	outPath := flag.String("o", "", "Directory or filename where to write the reports. Extension is ignored. Directory and its parents are created if needed. By default, everything is placed in the working directory.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Describe("slidermon-report"))
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	var rep *report.Report
	var err error
	if *tmplDir != "" {
		rep, err = report.NewFromTemplates(*tmplDir)
	} else {
		rep, err = report.New()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating report: %v\n", err)
		os.Exit(1)
	}
	rep.WithState = *withState
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			fmt.Print(string(contents))
			return nil
		}
		_, name := filepath.Split(filename)
		var dir string
		if *outPath != "" {
			// check if it's an already existing directory and the user just forgot trailing slash
			if info, err := os.Stat(*outPath); err == nil && info.IsDir() {
				dir = *outPath
			} else {
				outdir, outname := filepath.Split(*outPath)
				if outdir != "" {
					dir = outdir
				}
				if outname != "" {
					name = outname
				}
			}
		}
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("could not get working directory, specify the output directory explicitly: %w", err)
			}
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
		f := filepath.Join(dir, name)
		if original, err := os.ReadFile(f); err == nil {
			if bytes.Equal(original, contents) {
				return nil // no need to update
			}
			if !*list && *safe {
				return fmt.Errorf("file %v would be overwritten", f)
			}
		}
		if *list {
			fmt.Println(f)
			return nil
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %w", dir, err)
		}
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %w", f, err)
		}
		return nil
	}
	process := func(filename string) error {
		in, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %w", filename, err)
		}
		rec, err := slidermon.ReadRecording(in)
		in.Close()
		if err != nil {
			return err
		}
		if rec.Name == "" {
			rec.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		}
		for _, format := range strings.Split(*formats, ",") {
			format = strings.TrimSpace(format)
			if format == "" {
				continue
			}
			var b bytes.Buffer
			if err := rep.Render(&b, format, &rec); err != nil {
				return err
			}
			ext := rep.Extension(format)
			if ext == ".yml" || ext == ".json" {
				ext = "-" + format + ext // do not clobber the recording itself
			}
			if err := output(filename, ext, b.Bytes()); err != nil {
				return fmt.Errorf("error outputting %v report: %w", format, err)
			}
		}
		if *jsonOut {
			b, err := slidermon.MarshalRecording(&rec, true)
			if err != nil {
				return fmt.Errorf("could not marshal the recording as json file: %w", err)
			}
			if err := output(filename, ".json", b); err != nil {
				return fmt.Errorf("error outputting json file: %w", err)
			}
		}
		if *yamlOut {
			b, err := slidermon.MarshalRecording(&rec, false)
			if err != nil {
				return fmt.Errorf("could not marshal the recording as yaml file: %w", err)
			}
			if err := output(filename, ".yml", b); err != nil {
				return fmt.Errorf("error outputting yaml file: %w", err)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		files := []string{param}
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			files = nil
			for _, pattern := range []string{"*.yml", "*.yaml", "*.json"} {
				matches, err := filepath.Glob(filepath.Join(param, pattern))
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not glob the path %v for %v files: %v\n", param, pattern, err)
					retval = 1
					continue
				}
				files = append(files, matches...)
			}
		}
		for _, file := range files {
			if err := process(file); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Slidermon report. Input .yml or .json recordings, outputs timelines of the recorded states (e.g. .txt and .md files).\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
