package manifest

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/beevik/etree"
)

// EncodeXML renders the manifest tree as an XML document for toolchains
// that consume structured exports. Elements appear in sorted key order.
func EncodeXML(data Data) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("fonts")

	for _, sourceName := range sortedKeys(data) {
		se := root.CreateElement("source")
		se.CreateAttr("name", sourceName)
		for _, locale := range sortedKeys(data[sourceName]) {
			le := se.CreateElement("locale")
			le.CreateAttr("name", locale)
			for _, family := range sortedKeys(data[sourceName][locale]) {
				fe := le.CreateElement("family")
				fe.CreateAttr("name", family)
				for _, entry := range data[sourceName][locale][family] {
					writeEntry(fe, entry)
				}
			}
		}
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode XML manifest: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(parent *etree.Element, entry Entry) {
	ee := parent.CreateElement("font")
	ee.CreateAttr("file", entry.File)
	if entry.Subfamily != "" {
		ee.CreateAttr("subfamily", entry.Subfamily)
	}
	if entry.Version != "" {
		ee.CreateAttr("version", entry.Version)
	}
	if entry.Source == nil {
		return
	}
	ce := ee.CreateElement("clash")
	ce.CreateAttr("from", entry.Source.From)
	ce.CreateAttr("original", entry.Source.Original)
	for _, source := range sortedKeys(entry.Source.Clashed) {
		offer := entry.Source.Clashed[source]
		oe := ce.CreateElement("offer")
		oe.CreateAttr("source", source)
		oe.CreateAttr("file", offer.File)
		if offer.Version != "" {
			oe.CreateAttr("version", offer.Version)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
