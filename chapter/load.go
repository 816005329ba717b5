package chapter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/cuelink/cuelink/filesystem"
	"github.com/cuelink/cuelink/timecode"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format identifies a chapter document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatText is the podlove simple-chapters plain text form: "TIMECODE Title" per line.
	FormatText Format = "txt"
)

// Document is the authored chapter list of one media file.
type Document struct {
	// Permalink is the address chapter permalinks are built on.
	Permalink string  `json:"permalink,omitempty" yaml:"permalink,omitempty" jsonschema:"description=Base address for chapter permalinks"`
	Chapters  []Entry `json:"chapters" yaml:"chapters" validate:"required,min=1,dive" jsonschema:"minItems=1"`
}

// Entry is one authored chapter. An empty end means "until the next chapter starts".
type Entry struct {
	Start string `json:"start" yaml:"start" validate:"required,timecode" jsonschema:"description=Timecode the chapter starts at,example=00:01:30"`
	End   string `json:"end,omitempty" yaml:"end,omitempty" validate:"omitempty,timecode" jsonschema:"description=Timecode the chapter ends at"`
	Title string `json:"title" yaml:"title" validate:"required" jsonschema:"minLength=1"`
}

// Options tune how a document becomes marks.
type Options struct {
	// Duration closes the last chapter when it has no explicit end.
	Duration float64
	// Permalink overrides the document's permalink base when non-empty.
	Permalink string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timecode", func(fl validator.FieldLevel) bool {
		return timecode.Parse(fl.Field().String()).IsPresent()
	})
	return v
}

// FormatOf guesses the document format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt", ".chapters":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown chapter format: %q", filepath.Ext(path))
	}
}

// Load reads the chapter document at path.
func Load(path string, options Options) ([]*Mark, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chapters: %w", err)
	}
	defer f.Close()

	return Decode(f, format, options)
}

// Decode reads a chapter document from r.
func Decode(r io.Reader, format Format, options Options) ([]*Mark, error) {
	var (
		doc Document
		err error
	)

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatText:
		doc, err = decodeText(r)
	default:
		err = fmt.Errorf("unknown chapter format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode chapters: %w", err)
	}

	return doc.Marks(options)
}

// decodeText reads "TIMECODE Title" lines. Blank lines and lines without a timecode are skipped.
func decodeText(r io.Reader) (Document, error) {
	var doc Document

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		start, title, _ := strings.Cut(line, " ")
		if timecode.Parse(start).IsAbsent() {
			continue
		}

		doc.Chapters = append(doc.Chapters, Entry{
			Start: start,
			Title: strings.TrimSpace(title),
		})
	}

	return doc, scanner.Err()
}

// Marks validates the document and converts it to marks in authored order.
func (d *Document) Marks(options Options) ([]*Mark, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("invalid chapters: %w", err)
	}

	base := d.Permalink
	if options.Permalink != "" {
		base = options.Permalink
	}

	marks := make([]*Mark, 0, len(d.Chapters))
	for i, entry := range d.Chapters {
		start := timecode.Parse(entry.Start).MustGet().Start

		var end float64
		switch {
		case entry.End != "":
			end = timecode.Parse(entry.End).MustGet().Start
		case i+1 < len(d.Chapters):
			end = timecode.Parse(d.Chapters[i+1].Start).MustGet().Start
		case options.Duration > 0:
			end = options.Duration
		default:
			end = math.Inf(1)
		}

		if end <= start {
			return nil, fmt.Errorf("chapter %d (%q): end %s is not after start %s",
				i+1, entry.Title, timecode.Part(end), timecode.Part(start))
		}

		marks = append(marks, NewMark(start, end, entry.Title, base))
	}

	return marks, nil
}
