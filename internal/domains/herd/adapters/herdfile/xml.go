package herdfile

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

// xmlHerd accepts any root element and any child element name, e.g.
// <herd><labyak name="Betty-1" age="4" sex="f"/></herd>.
type xmlHerd struct {
	XMLName xml.Name
	Yaks    []xmlYak `xml:",any"`
}

// xmlYak takes its fields from attributes or from child elements.
type xmlYak struct {
	XMLName  xml.Name
	NameAttr string `xml:"name,attr"`
	AgeAttr  string `xml:"age,attr"`
	NameElem string `xml:"name"`
	AgeElem  string `xml:"age"`
}

func decodeXML(r io.Reader) ([]domain.Entry, error) {
	var doc xmlHerd
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, parseError("xml: %v", err)
	}
	entries := make([]domain.Entry, 0, len(doc.Yaks))
	for i, yak := range doc.Yaks {
		name := firstNonEmpty(yak.NameAttr, yak.NameElem)
		if name == "" {
			return nil, parseError("<%s> #%d has no name", yak.XMLName.Local, i)
		}
		rawAge := firstNonEmpty(yak.AgeAttr, yak.AgeElem)
		if rawAge == "" {
			return nil, parseError("yak %q has no age", name)
		}
		age, err := parseAge(rawAge)
		if err != nil {
			return nil, parseError("yak %q age %q: %v", name, rawAge, err)
		}
		entries = append(entries, domain.Entry{Name: name, AgeYears: age})
	}
	return entries, nil
}

// parseAge accepts anything ParseFloat does, including NaN and Inf, so the
// domain can reject them with ErrInvalidAge. Out of range values become ±Inf.
func parseAge(raw string) (float64, error) {
	age, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return age, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
