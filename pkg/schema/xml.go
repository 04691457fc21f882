package schema

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// ParseXML parses the XML-shaped input schema described in the external
// interfaces: a root <category id="..."> with ordered <item> children,
// each carrying one of <fixed>, <explicit>, <extended>, <repetitive>,
// <compound> as its single structural child.
//
// This is a direct deserialization, not a derivation: ParseXML performs no
// bit-budget or duplicate-name checking. Call Validate on the result before
// lowering.
func ParseXML(data []byte) (*Category, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("asterix schema: empty document")
		}
		if err != nil {
			return nil, fmt.Errorf("asterix schema: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "category" {
			return nil, fmt.Errorf("asterix schema: expected root <category>, found <%s>", start.Name.Local)
		}
		return parseCategory(dec, start)
	}
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func intAttr(start xml.StartElement, name string) (int, error) {
	v, ok := attr(start, name)
	if !ok {
		return 0, fmt.Errorf("missing attribute %q on <%s>", name, start.Name.Local)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("attribute %q on <%s> is not an integer: %q", name, start.Name.Local, v)
	}
	return n, nil
}

func parseCategory(dec *xml.Decoder, start xml.StartElement) (*Category, error) {
	id, err := intAttr(start, "id")
	if err != nil {
		return nil, err
	}
	cat := &Category{ID: uint8(id)}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "item" {
				return nil, fmt.Errorf("asterix schema: unexpected <%s> inside <category>", t.Name.Local)
			}
			item, err := parseItem(dec, t)
			if err != nil {
				return nil, err
			}
			cat.Items = append(cat.Items, *item)
		case xml.EndElement:
			if t.Name.Local == "category" {
				return cat, nil
			}
		}
	}
}

func parseItem(dec *xml.Decoder, start xml.StartElement) (*Item, error) {
	id, err := intAttr(start, "id")
	if err != nil {
		return nil, err
	}
	frn, err := intAttr(start, "frn")
	if err != nil {
		return nil, err
	}
	item := &Item{ID: uint8(id), FRN: frn}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if item.Structure != nil {
				return nil, fmt.Errorf("asterix schema: item %d has more than one structural child", id)
			}
			structure, err := parseItemStructure(dec, t)
			if err != nil {
				return nil, err
			}
			item.Structure = structure
		case xml.EndElement:
			if t.Name.Local == "item" {
				if item.Structure == nil {
					return nil, fmt.Errorf("asterix schema: item %d has no structural child", id)
				}
				return item, nil
			}
		}
	}
}

// parseItemStructure dispatches on the structural tag name. It is used both
// for an item's direct child and for a compound's sub-item children, which
// is how a <compound><compound>...</compound></compound> nesting is caught
// here syntactically and rejected by Validate (not by the Go type system,
// since SubItem.Structure must remain a plain ItemStructure to let the
// validator report a clear diagnostic rather than a parse failure).
func parseItemStructure(dec *xml.Decoder, start xml.StartElement) (ItemStructure, error) {
	switch start.Name.Local {
	case "fixed":
		return parseSimpleItem(dec, start, false)
	case "explicit":
		return parseSimpleItem(dec, start, true)
	case "extended":
		return parseExtendedItem(dec, start)
	case "repetitive":
		return parseRepetitiveItem(dec, start)
	case "compound":
		return parseCompoundItem(dec, start)
	default:
		return nil, fmt.Errorf("asterix schema: unknown structural tag <%s>", start.Name.Local)
	}
}

func parseSimpleItem(dec *xml.Decoder, start xml.StartElement, explicit bool) (ItemStructure, error) {
	bytesN, err := intAttr(start, "bytes")
	if err != nil {
		return nil, err
	}
	elements, err := parseElements(dec, start.Name.Local)
	if err != nil {
		return nil, err
	}
	if explicit {
		return ExplicitItem{Bytes: bytesN, Elements: elements}, nil
	}
	return FixedItem{Bytes: bytesN, Elements: elements}, nil
}

func parseExtendedItem(dec *xml.Decoder, start xml.StartElement) (ItemStructure, error) {
	bytesN, err := intAttr(start, "bytes")
	if err != nil {
		return nil, err
	}
	item := ExtendedItem{Bytes: bytesN}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "part" {
				return nil, fmt.Errorf("asterix schema: unexpected <%s> inside <extended>", t.Name.Local)
			}
			idx, err := intAttr(t, "index")
			if err != nil {
				return nil, err
			}
			elements, err := parseElements(dec, "part")
			if err != nil {
				return nil, err
			}
			item.PartGroups = append(item.PartGroups, PartGroup{Index: idx, Elements: elements})
		case xml.EndElement:
			if t.Name.Local == "extended" {
				return item, nil
			}
		}
	}
}

func parseRepetitiveItem(dec *xml.Decoder, start xml.StartElement) (ItemStructure, error) {
	bytesN, err := intAttr(start, "bytes")
	if err != nil {
		return nil, err
	}
	counter, err := intAttr(start, "counter")
	if err != nil {
		return nil, err
	}
	elements, err := parseElements(dec, "repetitive")
	if err != nil {
		return nil, err
	}
	return RepetitiveItem{Bytes: bytesN, Counter: counter, Elements: elements}, nil
}

func parseCompoundItem(dec *xml.Decoder, start xml.StartElement) (ItemStructure, error) {
	item := CompoundItem{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			idx, err := intAttr(t, "index")
			if err != nil {
				return nil, err
			}
			structure, err := parseItemStructure(dec, t)
			if err != nil {
				return nil, err
			}
			item.SubItems = append(item.SubItems, SubItem{Index: idx, Structure: structure})
		case xml.EndElement:
			if t.Name.Local == "compound" {
				return item, nil
			}
		}
	}
}

func parseElements(dec *xml.Decoder, closingTag string) ([]Element, error) {
	var elements []Element
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		case xml.EndElement:
			if t.Name.Local == closingTag {
				return elements, nil
			}
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (Element, error) {
	switch start.Name.Local {
	case "field":
		return parseField(dec, start)
	case "enum":
		return parseEnum(dec, start)
	case "epb":
		return parseEPB(dec, start)
	case "spare":
		return parseSpare(dec, start)
	default:
		return nil, fmt.Errorf("asterix schema: unknown element tag <%s>", start.Name.Local)
	}
}

func parseField(dec *xml.Decoder, start xml.StartElement) (Field, error) {
	name, ok := attr(start, "name")
	if !ok {
		return Field{}, fmt.Errorf("asterix schema: <field> missing name attribute")
	}
	bits, err := intAttr(start, "bits")
	if err != nil {
		return Field{}, err
	}
	typeTag, ok := attr(start, "type")
	if !ok {
		typeTag = FieldTypeNumeric
	}
	if err := skipToEnd(dec, "field"); err != nil {
		return Field{}, err
	}
	return Field{Name: name, Bits: bits, Type: typeTag}, nil
}

func parseSpare(dec *xml.Decoder, start xml.StartElement) (Spare, error) {
	bits, err := intAttr(start, "bits")
	if err != nil {
		return Spare{}, err
	}
	if err := skipToEnd(dec, "spare"); err != nil {
		return Spare{}, err
	}
	return Spare{Bits: bits}, nil
}

func parseEnum(dec *xml.Decoder, start xml.StartElement) (Enum, error) {
	name, ok := attr(start, "name")
	if !ok {
		return Enum{}, fmt.Errorf("asterix schema: <enum> missing name attribute")
	}
	bits, err := intAttr(start, "bits")
	if err != nil {
		return Enum{}, err
	}
	e := Enum{Name: name, Bits: bits}

	for {
		tok, err := dec.Token()
		if err != nil {
			return Enum{}, fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "value" {
				return Enum{}, fmt.Errorf("asterix schema: unexpected <%s> inside <enum>", t.Name.Local)
			}
			vname, ok := attr(t, "name")
			if !ok {
				return Enum{}, fmt.Errorf("asterix schema: <value> missing name attribute")
			}
			vval, err := intAttr(t, "value")
			if err != nil {
				return Enum{}, err
			}
			if err := skipToEnd(dec, "value"); err != nil {
				return Enum{}, err
			}
			e.Values = append(e.Values, EnumValue{Name: vname, Value: vval})
		case xml.EndElement:
			if t.Name.Local == "enum" {
				return e, nil
			}
		}
	}
}

func parseEPB(dec *xml.Decoder, start xml.StartElement) (EPB, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return EPB{}, fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var content Element
			var err error
			switch t.Name.Local {
			case "field":
				content, err = parseField(dec, t)
			case "enum":
				content, err = parseEnum(dec, t)
			default:
				err = fmt.Errorf("asterix schema: <epb> may only wrap <field> or <enum>, found <%s>", t.Name.Local)
			}
			if err != nil {
				return EPB{}, err
			}
			// parseField/parseEnum already consumed through their own
			// closing tag, so the next token is </epb>.
			return EPB{Content: content}, consumeEnd(dec, "epb")
		case xml.EndElement:
			if t.Name.Local == "epb" {
				return EPB{}, fmt.Errorf("asterix schema: <epb> has no wrapped content")
			}
		}
	}
}

// skipToEnd consumes tokens up to and including the matching end element
// for a self-describing leaf that was decoded via attributes alone (field,
// spare, value): it tolerates an immediate EndElement (empty tag) and
// otherwise drains any (unexpected) children.
func skipToEnd(dec *xml.Decoder, name string) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("asterix schema: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == name {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == name {
				if depth == 0 {
					return nil
				}
				depth--
			}
		}
	}
}

func consumeEnd(dec *xml.Decoder, name string) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("asterix schema: %w", err)
		}
		if end, ok := tok.(xml.EndElement); ok && end.Name.Local == name {
			return nil
		}
	}
}
