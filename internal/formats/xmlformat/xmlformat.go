// Package xmlformat is the shared XML-tree engine the Tier 2
// XML-based vendor formats (Decent Sampler, Bitwig, Ableton, TAL,
// Waldorf Qpat, MPC keygroup XPM) are built on: one common
// group/sample element schema, since spec §1 scopes "the concrete
// byte-level tables of every exotic format beyond the common
// techniques they share" out, and §4.7 only fully specifies
// korgmultisample. Libraries: stdlib encoding/xml — no XML library
// appears anywhere in the retrieval pack.
package xmlformat

import (
	"encoding/xml"
	"io"
)

// Document is the common multisample-as-XML shape every Tier 2 format
// plugin marshals to/from, with its own root element name substituted
// by the caller.
type Document struct {
	XMLName xml.Name `xml:""`
	Groups  []Group  `xml:"groups>group"`
}

type Group struct {
	Name    string   `xml:"name,attr,omitempty"`
	Samples []Sample `xml:"sample"`
}

type Sample struct {
	Path        string  `xml:"path,attr"`
	RootNote    int     `xml:"rootNote,attr"`
	LoNote      int     `xml:"loNote,attr"`
	HiNote      int     `xml:"hiNote,attr"`
	LoVel       int     `xml:"loVel,attr"`
	HiVel       int     `xml:"hiVel,attr"`
	Tuning      float64 `xml:"tuning,attr,omitempty"`
	Volume      float64 `xml:"volume,attr,omitempty"`
	Pan         float64 `xml:"pan,attr,omitempty"`
	Start       int64   `xml:"start,attr,omitempty"`
	End         int64   `xml:"end,attr,omitempty"`
	LoopStart   int64   `xml:"loopStart,attr,omitempty"`
	LoopEnd     int64   `xml:"loopEnd,attr,omitempty"`
	LoopEnabled bool    `xml:"loopEnabled,attr,omitempty"`
}

// Decode parses r into doc. rootName is not checked: any root element
// is accepted and its name is left in doc.XMLName, so the same Document
// shape can be reused across formats with different root tag names.
func Decode(r io.Reader, rootName string, doc *Document) error {
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return err
	}
	return nil
}

// Encode marshals doc under the given root element name, indented.
func Encode(w io.Writer, rootName string, doc *Document) error {
	doc.XMLName = xml.Name{Local: rootName}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}
