package pdfdoc

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// MaxConfigSize limits configuration input (1MB).
const MaxConfigSize = 1 << 20

// Config is the YAML form of a document configuration. Every field is
// optional; absent fields leave the Document's current value alone.
//
//	page:
//	  size: A4
//	  orientation: landscape
//	margins:
//	  top: 20
//	font:
//	  family: georgia
//	  size: 11
//	metadata:
//	  title: Quarterly report
//	  keywords: [finance, q3]
//	output:
//	  filename: report.pdf
//	  destination: F
type Config struct {
	Page     PageConfig     `yaml:"page"`
	Margins  MarginsConfig  `yaml:"margins"`
	Font     FontConfig     `yaml:"font"`
	Metadata MetadataConfig `yaml:"metadata"`
	Output   OutputConfig   `yaml:"output"`
	Header   *Header        `yaml:"header"`
	Footer   *Footer        `yaml:"footer"`
	CSS      []string       `yaml:"css"`
}

// PageConfig holds paper options.
type PageConfig struct {
	Size        string `yaml:"size"`
	Orientation string `yaml:"orientation"`
}

// MarginsConfig holds margins in millimetres. Nil fields are not applied.
type MarginsConfig struct {
	Top    *int `yaml:"top"`
	Right  *int `yaml:"right"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Header *int `yaml:"header"`
	Footer *int `yaml:"footer"`
}

// FontConfig holds body font options.
type FontConfig struct {
	Family string `yaml:"family"`
	Size   int    `yaml:"size"`
}

// MetadataConfig holds document information.
type MetadataConfig struct {
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	Subject  string   `yaml:"subject"`
	Creator  string   `yaml:"creator"`
	Keywords []string `yaml:"keywords"`
}

// OutputConfig holds the filename and destination.
type OutputConfig struct {
	Filename    string `yaml:"filename"`
	Destination string `yaml:"destination"`
}

// ParseConfig decodes YAML, rejecting unknown fields.
func ParseConfig(data []byte) (*Config, error) {
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrConfigParse, MaxConfigSize)
	}
	var cfg Config
	if len(data) == 0 {
		return &cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("pdfdoc: reading config file: %w", err)
	}
	return ParseConfig(data)
}

// Apply runs the setters for every field present in c, in the order a
// caller would: page setup, margins, fonts, metadata, output, then content.
// Invalid values are handled by the setters exactly as direct calls are.
func (c *Config) Apply(d *Document) *Document {
	if c.Page.Size != "" {
		d.SetPageSize(c.Page.Size)
	}
	if c.Page.Orientation != "" {
		d.SetPageOrientation(c.Page.Orientation)
	}

	margins := []struct {
		side MarginSide
		v    *int
	}{
		{MarginTop, c.Margins.Top},
		{MarginRight, c.Margins.Right},
		{MarginBottom, c.Margins.Bottom},
		{MarginLeft, c.Margins.Left},
		{MarginHeader, c.Margins.Header},
		{MarginFooter, c.Margins.Footer},
	}
	for _, m := range margins {
		if m.v != nil {
			d.SetMargin(m.side, *m.v)
		}
	}

	if c.Font.Family != "" {
		d.SetFontType(c.Font.Family)
	}
	if c.Font.Size != 0 {
		d.SetFontSize(c.Font.Size)
	}

	meta := c.Metadata
	if meta.Title != "" {
		d.SetMetaTitle(meta.Title)
	}
	if meta.Author != "" {
		d.SetMetaAuthor(meta.Author)
	}
	if meta.Subject != "" {
		d.SetMetaSubject(meta.Subject)
	}
	if meta.Creator != "" {
		d.SetMetaCreator(meta.Creator)
	}
	if len(meta.Keywords) > 0 {
		d.SetMetaKeywords(meta.Keywords)
	}

	if c.Output.Filename != "" {
		d.SetFilename(c.Output.Filename)
	}
	if c.Output.Destination != "" {
		d.SetOutputDestination(c.Output.Destination)
	}

	if c.Header == nil && c.Footer == nil && len(c.CSS) == 0 {
		return d
	}
	d.RegisterPageMargins()
	for _, css := range c.CSS {
		d.AppendPageCSS(css)
	}
	if c.Header != nil {
		d.SetHeader(*c.Header)
	}
	if c.Footer != nil {
		d.SetFooter(*c.Footer)
	}
	return d
}
