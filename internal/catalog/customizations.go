// Package catalog serves the design catalog and the per-category customization options.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"tailoringStorefront/internal/apperr"
)

// Option is one choice within a customization section. Price is the surcharge over the base price.
type Option struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Section groups mutually exclusive options, e.g. the neck design.
type Section struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// Customization lists the sections offered for a garment category.
type Customization struct {
	Category string    `json:"category"`
	Sections []Section `json:"sections"`
}

func opt(id, name string, price int64) Option {
	return Option{ID: id, Name: name, Price: decimal.NewFromInt(price)}
}

var customizations = []Customization{
	{
		Category: "Saree Blouse",
		Sections: []Section{
			{ID: "neck", Name: "Neck Design", Options: []Option{
				opt("n1", "V Neck", 0), opt("n2", "U Neck", 0), opt("n3", "Round Neck", 150),
				opt("n4", "Square Neck", 0), opt("n5", "Boat Neck", 200),
			}},
			{ID: "sleeve", Name: "Sleeve Design", Options: []Option{
				opt("s0", "No Sleeve", 0), opt("s1", "Short Sleeve", 0), opt("s2", "Elbow Sleeve", 100),
				opt("s3", "Full Sleeve", 200), opt("s4", "Puff Sleeve", 250), opt("s5", "Cap Sleeve", 0),
			}},
			{ID: "knot", Name: "Back Knot", Options: []Option{
				opt("k1", "No Knot", 0), opt("k2", "With Knot", 50),
			}},
			{ID: "back_design", Name: "Back Design", Options: []Option{
				opt("bd1", "Pot Neck", 150), opt("bd2", "Bow Back", 200), opt("bd3", "Keyhole", 100),
			}},
		},
	},
	{
		Category: "Chudithar",
		Sections: []Section{
			{ID: "neck", Name: "Neck Design", Options: []Option{
				opt("cn1", "V Neck", 0), opt("cn2", "U Neck", 0), opt("cn3", "Round Neck", 150), opt("cn4", "Square Neck", 0),
			}},
			{ID: "bottom", Name: "Bottom Wear Style", Options: []Option{
				opt("cb1", "Regular Salwar", 0), opt("cb2", "Patiala", 200), opt("cb3", "Cigarette Pant", 150),
			}},
		},
	},
	{
		Category: "Lehenga",
		Sections: []Section{
			{ID: "neck", Name: "Neck Design", Options: []Option{
				opt("ln1", "V Neck", 0), opt("ln2", "U Neck", 0), opt("ln3", "Round Neck", 150), opt("ln4", "Square Neck", 0),
			}},
			{ID: "blouse", Name: "Blouse Style", Options: []Option{
				opt("lb1", "Crop Top", 0), opt("lb2", "Peplum", 250), opt("lb3", "Corset", 300),
			}},
			{ID: "skirt", Name: "Skirt Flair", Options: []Option{
				opt("ls1", "A-Line", 0), opt("ls2", "Full Flair (Can-Can)", 500), opt("ls3", "Fish Cut", 300),
			}},
		},
	},
	{
		Category: "Half Saree",
		Sections: []Section{
			{ID: "neck", Name: "Neck Design", Options: []Option{
				opt("hsn1", "V Neck", 0), opt("hsn2", "U Neck", 0), opt("hsn3", "Round Neck", 150), opt("hsn4", "Square Neck", 0),
			}},
			{ID: "blouse", Name: "Blouse Pattern", Options: []Option{
				opt("hsb1", "Classic Short", 0), opt("hsb2", "Long Blouse", 150),
			}},
			{ID: "sleeve", Name: "Sleeve Design", Options: []Option{
				opt("hss1", "Short Sleeve", 0), opt("hss2", "Elbow Sleeve", 100), opt("hss3", "Puff Sleeve", 200),
			}},
		},
	},
}

// normalizeCategory folds case and accepts slugs, so "saree-blouse" finds "Saree Blouse".
func normalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

// Customizations returns the sections offered for category.
func Customizations(category string) (*Customization, bool) {
	want := normalizeCategory(category)
	for i := range customizations {
		if normalizeCategory(customizations[i].Category) == want {
			return &customizations[i], true
		}
	}
	return nil, false
}

// Categories lists the categories that can be customized.
func Categories() []string {
	out := make([]string, 0, len(customizations))
	for _, c := range customizations {
		out = append(out, c.Category)
	}
	sort.Strings(out)
	return out
}

// Quote sums the surcharges of the selected options. selections maps section id to option id.
func Quote(category string, selections map[string]string) (decimal.Decimal, error) {
	c, ok := Customizations(category)
	if !ok {
		return decimal.Zero, apperr.Validation("unknown category %q", category)
	}
	extra := decimal.Zero
	for sectionID, optionID := range selections {
		sec := c.section(sectionID)
		if sec == nil {
			return decimal.Zero, apperr.Validation("unknown section %q for %s", sectionID, c.Category)
		}
		o := sec.option(optionID)
		if o == nil {
			return decimal.Zero, apperr.Validation("unknown option %q in %s", optionID, sec.Name)
		}
		extra = extra.Add(o.Price)
	}
	return extra, nil
}

// Describe renders the selected option names in section order, e.g. "Neck Design: Boat Neck".
func Describe(category string, selections map[string]string) []string {
	c, ok := Customizations(category)
	if !ok {
		return nil
	}
	var out []string
	for _, sec := range c.Sections {
		if o := sec.option(selections[sec.ID]); o != nil {
			out = append(out, sec.Name+": "+o.Name)
		}
	}
	return out
}

func (c *Customization) section(id string) *Section {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

func (s *Section) option(id string) *Option {
	for i := range s.Options {
		if s.Options[i].ID == id {
			return &s.Options[i]
		}
	}
	return nil
}
