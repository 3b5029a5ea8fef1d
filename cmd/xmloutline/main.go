package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/jacoelho/xmlreader/pkg/xmlcursor"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmloutline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxDepth := fs.Int("max-depth", 0, "skip subtrees below this element depth (0 means unlimited)")
	showAttrs := fs.Bool("attrs", false, "print attributes next to each element")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <document.xml>\n\n", os.Args[0]),
			writeln(stderr, "Prints the element outline of an XML document."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one XML file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	xmlPath := remaining[0]

	if *cpuProfilePath != "" {
		stopCPUProfile, err := startCPUProfile(*cpuProfilePath)
		if err != nil {
			if writeErr := writef(stderr, "error starting CPU profile: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", err)
			}
		}()
	}

	if *memProfilePath != "" {
		defer func() {
			if err := writeMemProfile(*memProfilePath); err != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", err)
			}
		}()
	}

	input, err := os.ReadFile(xmlPath)
	if err != nil {
		if writeErr := writef(stderr, "error reading document: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	if err := outline(stdout, input, *maxDepth, *showAttrs); err != nil {
		if writeErr := writef(stderr, "%s: %v\n", xmlPath, err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

func outline(stdout io.Writer, input []byte, maxDepth int, showAttrs bool) error {
	r := xmlcursor.NewReader(input, xmlcursor.EmitComments(false), xmlcursor.EmitPI(false))
	for {
		kind, err := r.Next()
		if err != nil {
			return err
		}
		switch kind {
		case xmlcursor.NodeElementStart, xmlcursor.NodeElementEmpty:
			if err := printElement(stdout, r, showAttrs); err != nil {
				return err
			}
			if maxDepth > 0 && kind == xmlcursor.NodeElementStart && r.Depth() >= maxDepth {
				if err := r.SkipSubtree(); err != nil {
					return err
				}
			}
		case xmlcursor.NodeEOF:
			return nil
		}
	}
}

func printElement(stdout io.Writer, r *xmlcursor.Reader, showAttrs bool) error {
	name, err := r.Name()
	if err != nil {
		return err
	}
	depth := r.Depth()
	if r.Kind() == xmlcursor.NodeElementEmpty {
		depth++
	}
	indent := strings.Repeat("  ", depth-1)
	if !showAttrs {
		return writef(stdout, "%s%s\n", indent, name)
	}
	var attrs strings.Builder
	count, err := r.AttrCount()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		attr, err := r.Attr(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(&attrs, " %s=%q", attr.Name, attr.Value)
	}
	return writef(stdout, "%s%s%s\n", indent, name, attrs.String())
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
