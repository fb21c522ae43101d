// Package dashboard reads the YAML document describing the dashboard tabs,
// their placeholders and the data series bound to each placeholder.
package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type PlotType string

const (
	PlotTypeMap   PlotType = "map"
	PlotTypeChart PlotType = "chart"
)

func (p PlotType) Valid() bool {
	return p == PlotTypeMap || p == PlotTypeChart
}

type VisType string

const (
	VisTypeGeoJSON VisType = "geoJSON"
	VisTypeTMS     VisType = "tms"
	VisTypeJSON    VisType = "json"
)

func (v VisType) Valid() bool {
	return v == VisTypeGeoJSON || v == VisTypeTMS || v == VisTypeJSON
}

// DataBinding ties one data stream to the way it is drawn.
type DataBinding struct {
	DataType string  `yaml:"dataType" json:"dataType"`
	VisType  VisType `yaml:"visType" json:"visType"`
}

// Placeholder is one panel of a tab.
type Placeholder struct {
	PlotType  PlotType      `yaml:"plotType" json:"plotType"`
	ID        string        `yaml:"id" json:"id"`
	Heading   string        `yaml:"heading" json:"heading"`
	DataArray []DataBinding `yaml:"dataArray" json:"dataArray"`
}

// Tab is a dashboard page. View names the template used to render it and
// is not checked here.
type Tab struct {
	Title            string        `yaml:"title" json:"title"`
	Page             string        `yaml:"page" json:"page"`
	View             string        `yaml:"view" json:"view"`
	CSSArray         []string      `yaml:"cssArray" json:"cssArray"`
	JSArray          []string      `yaml:"jsArray" json:"jsArray"`
	PlaceholderArray []Placeholder `yaml:"placeholderArray" json:"placeholderArray"`
}

// HasPlotType reports whether any placeholder of the tab uses p.
func (t Tab) HasPlotType(p PlotType) bool {
	for _, ph := range t.PlaceholderArray {
		if ph.PlotType == p {
			return true
		}
	}
	return false
}

// Config is the parsed document. It is not modified after parsing.
type Config struct {
	tabs   []Tab
	byPage map[string]int
}

// clone returns a copy of t that shares no slices with it.
func (t Tab) clone() Tab {
	out := t
	out.CSSArray = append([]string{}, t.CSSArray...)
	out.JSArray = append([]string{}, t.JSArray...)
	out.PlaceholderArray = make([]Placeholder, len(t.PlaceholderArray))
	for i, ph := range t.PlaceholderArray {
		ph.DataArray = append([]DataBinding{}, ph.DataArray...)
		out.PlaceholderArray[i] = ph
	}
	return out
}

// Tabs returns a deep copy of the tab list in document order.
func (c *Config) Tabs() []Tab {
	out := make([]Tab, len(c.tabs))
	for i, t := range c.tabs {
		out[i] = t.clone()
	}
	return out
}

// TabByPage returns a copy of the tab whose page slug matches.
func (c *Config) TabByPage(page string) (Tab, bool) {
	i, ok := c.byPage[page]
	if !ok {
		return Tab{}, false
	}
	return c.tabs[i].clone(), true
}

// DefaultTab returns a copy of the first tab of the document.
func (c *Config) DefaultTab() (Tab, bool) {
	if len(c.tabs) == 0 {
		return Tab{}, false
	}
	return c.tabs[0].clone(), true
}

// ValidationError lists every structural problem found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid dashboard config: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Parse decodes a dashboard document. An empty document yields a config
// without tabs. Keys that no field maps to are ignored.
func Parse(data []byte) (*Config, error) {
	var tabs []Tab
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tabs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode dashboard config: %w", err)
	}

	normalize(tabs)
	cfg := &Config{tabs: tabs, byPage: make(map[string]int, len(tabs))}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dashboard config: %w", err)
	}
	return Parse(data)
}

func normalize(tabs []Tab) {
	for i := range tabs {
		t := &tabs[i]
		if t.CSSArray == nil {
			t.CSSArray = []string{}
		}
		if t.JSArray == nil {
			t.JSArray = []string{}
		}
		if t.PlaceholderArray == nil {
			t.PlaceholderArray = []Placeholder{}
		}
		for j := range t.PlaceholderArray {
			if t.PlaceholderArray[j].DataArray == nil {
				t.PlaceholderArray[j].DataArray = []DataBinding{}
			}
		}
	}
}

func (c *Config) validate() error {
	verr := &ValidationError{}
	for i, t := range c.tabs {
		if t.Title == "" {
			verr.add("tab %d: title is required", i)
		}
		if t.Page == "" {
			verr.add("tab %d: page is required", i)
		} else if prev, dup := c.byPage[t.Page]; dup {
			verr.add("tab %d: page %q already used by tab %d", i, t.Page, prev)
		} else {
			c.byPage[t.Page] = i
		}

		ids := map[string]bool{}
		for j, ph := range t.PlaceholderArray {
			if !ph.PlotType.Valid() {
				verr.add("tab %q placeholder %d: unknown plotType %q", t.Page, j, ph.PlotType)
			}
			if ph.ID == "" {
				verr.add("tab %q placeholder %d: id is required", t.Page, j)
			} else if ids[ph.ID] {
				verr.add("tab %q: duplicate placeholder id %q", t.Page, ph.ID)
			}
			ids[ph.ID] = true
			for k, b := range ph.DataArray {
				if b.DataType == "" {
					verr.add("tab %q placeholder %q binding %d: dataType is required", t.Page, ph.ID, k)
				}
				if !b.VisType.Valid() {
					verr.add("tab %q placeholder %q binding %d: unknown visType %q", t.Page, ph.ID, k, b.VisType)
				}
			}
		}
	}
	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}
