// =============================================================================
// Ventas BI - XML Export
// =============================================================================
//
// Generates an XML document from the cleaned set. The document follows this
// nesting pattern:
//
//   <ventas registros="2">               <!-- Root element -->
//     <venta n="1">                      <!-- One element per clean record -->
//       <fecha>2024-01-05</fecha>
//       <franja>Desayuno</franja>
//       <producto>Café</producto>
//       <familia>Bebida</familia>
//       <unidades>2</unidades>
//       <precio_unitario>1.5</precio_unitario>
//       <importe>3</importe>
//     </venta>
//     ...
//   </ventas>
//
// =============================================================================

package exporter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// XMLOptions contains options for XML generation.
type XMLOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// RootElement is the name of the root element.
	// Default: "ventas"
	RootElement string

	// RecordElement is the name of the element wrapping each record.
	// Default: "venta"
	RecordElement string

	// IndexAttribute is the attribute carrying the 1-based record index.
	// Default: "n"
	IndexAttribute string
}

// DefaultXMLOptions returns the default generation options.
func DefaultXMLOptions() XMLOptions {
	return XMLOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		RootElement:           "ventas",
		RecordElement:         "venta",
		IndexAttribute:        "n",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// EncodeXML renders records with the default options.
func EncodeXML(records []types.CleanRecord) ([]byte, error) {
	return EncodeXMLWithOptions(records, DefaultXMLOptions())
}

// EncodeXMLWithOptions renders records as an XML document.
func EncodeXMLWithOptions(records []types.CleanRecord, options XMLOptions) ([]byte, error) {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}

	root := xmlElement{
		name:  options.RootElement,
		attrs: []xml.Attr{{Name: xml.Name{Local: "registros"}, Value: strconv.Itoa(len(records))}},
	}

	fields := types.CleanFields()
	for i, record := range records {
		element := xmlElement{
			name:  options.RecordElement,
			attrs: []xml.Attr{{Name: xml.Name{Local: options.IndexAttribute}, Value: strconv.Itoa(i + 1)}},
		}
		for j, value := range record.Values() {
			element.children = append(element.children, xmlElement{name: fields[j], value: value})
		}
		root.children = append(root.children, element)
	}

	if err := writeElement(&buffer, root, options.Indent, 0); err != nil {
		return nil, fmt.Errorf("failed to write XML: %w", err)
	}

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// xmlElement is a generic element: either a text value or children.
type xmlElement struct {
	name     string
	attrs    []xml.Attr
	value    string
	children []xmlElement
}

// writeElement writes an element and its children with indentation.
func writeElement(buffer *bytes.Buffer, element xmlElement, indent string, level int) error {
	writeIndent(buffer, indent, level)

	buffer.WriteString("<")
	buffer.WriteString(element.name)
	for _, attr := range element.attrs {
		fmt.Fprintf(buffer, ` %s="`, attr.Name.Local)
		if err := xml.EscapeText(buffer, []byte(attr.Value)); err != nil {
			return err
		}
		buffer.WriteString(`"`)
	}

	if len(element.children) == 0 && element.value == "" {
		buffer.WriteString("/>\n")
		return nil
	}

	buffer.WriteString(">")

	if len(element.children) == 0 {
		if err := xml.EscapeText(buffer, []byte(element.value)); err != nil {
			return err
		}
	} else {
		buffer.WriteString("\n")
		for _, child := range element.children {
			if err := writeElement(buffer, child, indent, level+1); err != nil {
				return err
			}
		}
		writeIndent(buffer, indent, level)
	}

	buffer.WriteString("</")
	buffer.WriteString(element.name)
	buffer.WriteString(">\n")
	return nil
}

func writeIndent(buffer *bytes.Buffer, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}
}
