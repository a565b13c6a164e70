package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/voidlight/byteglass"
)

// sniffLen is how many leading bytes decide text vs binary when
// neither mode is forced.
const sniffLen = 512

func main() {
	log.SetFlags(0)

	binMode := flag.Bool("b", false, "binary mode: annotated hex dump")
	textMode := flag.Bool("t", false, "text mode: annotated lines (default: sniff the input)")
	cols := flag.Int("cols", 0, "binary-mode bytes per row (0: fit terminal width)")
	detail := flag.String("detail", "brief", "annotation detail: none, min, brief, full")
	focus := flag.String("focus", "", "comma-separated byte classes to highlight")
	ignore := flag.String("ignore", "", "comma-separated byte classes to mute")
	decode := flag.Bool("decode", false, "decode UTF-8 characters even in binary mode")
	lineNums := flag.Bool("n", false, "number output lines in text mode")
	maxBytes := flag.Int64("max-bytes", 0, "stop after this many input bytes (0: no limit)")
	maxLines := flag.Int("max-lines", 0, "stop after this many input lines (0: no limit)")
	chunk := flag.Int("chunk", 0, "read chunk size in bytes (0: default)")
	styles := flag.String("styles", "", "style output: live, escaped, off (default: live on a terminal)")
	sepLeft := flag.String("sep-left", "<", "left separator around escape annotations")
	sepRight := flag.String("sep-right", ">", "right separator around escape annotations")
	legend := flag.Bool("legend", false, "print the marker legend and exit")
	trace := flag.Bool("trace", false, "log every classification match to stderr")
	flag.Parse()

	if *binMode && *textMode {
		log.Fatalf("byteglass: -b and -t are mutually exclusive")
	}

	cfg := byteglass.DefaultConfig()
	cfg.Columns = *cols
	cfg.DecodeUTF8 = *decode
	cfg.LineNumbers = *lineNums
	cfg.MaxBytes = *maxBytes
	cfg.MaxLines = *maxLines
	cfg.ChunkSize = *chunk
	cfg.SepLeft = *sepLeft
	cfg.SepRight = *sepRight

	var err error
	if cfg.Detail, err = parseDetail(*detail); err != nil {
		log.Fatalf("byteglass: %v", err)
	}
	if err := applyClasses(&cfg, *focus, byteglass.DisplayFocused); err != nil {
		log.Fatalf("byteglass: %v", err)
	}
	if err := applyClasses(&cfg, *ignore, byteglass.DisplayIgnored); err != nil {
		log.Fatalf("byteglass: %v", err)
	}

	onTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	if cfg.Styles, err = parseStyles(*styles, onTerminal); err != nil {
		log.Fatalf("byteglass: %v", err)
	}
	if onTerminal {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cfg.Width = w
		}
	}

	src, name, err := openInput(flag.Args())
	if err != nil {
		log.Fatalf("byteglass: %v", err)
	}

	switch {
	case *binMode:
		cfg.ReadMode = byteglass.ReadBinary
	case *textMode:
		cfg.ReadMode = byteglass.ReadText
	default:
		if cfg.ReadMode, src, err = sniffReadMode(src); err != nil {
			log.Fatalf("byteglass: %s: %v", name, err)
		}
	}

	if *legend {
		if err := byteglass.Legend(os.Stdout, cfg); err != nil {
			log.Fatalf("byteglass: %v", err)
		}
		return
	}

	opts := []byteglass.Option{byteglass.WithConfig(cfg)}
	if *trace {
		opts = append(opts, byteglass.WithTrace(func(kind byteglass.Kind, raw []byte) {
			fmt.Fprintf(os.Stderr, "byteglass: %-9s %q\n", kind, raw)
		}))
	}

	if err := byteglass.New(opts...).Run(src); err != nil {
		log.Fatalf("byteglass: %s: %v", name, err)
	}
}

// openInput returns the stream to inspect: the single file argument,
// or stdin when none is given.
func openInput(args []string) (io.Reader, string, error) {
	switch len(args) {
	case 0:
		return os.Stdin, "stdin", nil
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			return nil, args[0], err
		}
		return f, args[0], nil
	default:
		return nil, "", fmt.Errorf("expected at most one file argument, got %d", len(args))
	}
}

// sniffReadMode peeks at the head of the stream and picks binary mode
// when it sees NUL bytes or a mostly non-text head. The peeked bytes
// are stitched back in front of the stream.
func sniffReadMode(src io.Reader) (byteglass.ReadMode, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return byteglass.ReadText, src, err
	}
	head = head[:n]
	src = io.MultiReader(bytes.NewReader(head), src)

	if bytes.IndexByte(head, 0x00) >= 0 {
		return byteglass.ReadBinary, src, nil
	}
	high := 0
	for _, b := range head {
		if b >= 0x80 {
			high++
		}
	}
	if n > 0 && high*4 > n*3 {
		return byteglass.ReadBinary, src, nil
	}
	return byteglass.ReadText, src, nil
}

func parseDetail(s string) (byteglass.DetailLevel, error) {
	switch s {
	case "none":
		return byteglass.DetailNone, nil
	case "min":
		return byteglass.DetailMin, nil
	case "brief":
		return byteglass.DetailBrief, nil
	case "full":
		return byteglass.DetailFull, nil
	}
	return 0, fmt.Errorf("unknown detail level %q", s)
}

func parseStyles(s string, onTerminal bool) (byteglass.StyleRendering, error) {
	switch s {
	case "":
		if onTerminal {
			return byteglass.StylesLive, nil
		}
		return byteglass.StylesOmitted, nil
	case "live":
		return byteglass.StylesLive, nil
	case "escaped":
		return byteglass.StylesEscaped, nil
	case "off":
		return byteglass.StylesOmitted, nil
	}
	return 0, fmt.Errorf("unknown style rendering %q", s)
}

// applyClasses sets one display mode for every class named in the
// comma-separated list.
func applyClasses(cfg *byteglass.Config, list string, mode byteglass.DisplayMode) error {
	if list == "" {
		return nil
	}
	for _, name := range strings.Split(list, ",") {
		class, err := byteglass.ParseClass(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		cfg.Display[class] = mode
	}
	return nil
}
