package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
)

// Codificaciones aceptadas para el catálogo.
const (
	encodingAuto   = "auto"
	encodingUTF8   = "utf-8"
	encodingLatin1 = "latin1"
)

var catalogColumns = []string{"productId", "name", "description", "costPrice", "sellingPrice", "quantity", "category"}

// decodeCatalog devuelve el contenido en UTF-8. Con "auto" se asume ISO-8859-1 cuando
// los bytes no son UTF-8 válido (exportaciones de Excel en Windows).
func decodeCatalog(raw []byte, encoding string) (io.Reader, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	switch strings.ToLower(encoding) {
	case "", encodingAuto:
		if utf8.Valid(raw) {
			return bytes.NewReader(raw), nil
		}
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	case encodingUTF8, "utf8":
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("el archivo no es UTF-8 válido; use --encoding latin1")
		}
		return bytes.NewReader(raw), nil
	case encodingLatin1, "iso-8859-1":
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("encoding no soportado: %q", encoding)
}

// parseCatalog lee el CSV (separador "," o ";") con encabezado. Las columnas se
// identifican por nombre; name, costPrice y sellingPrice son obligatorias.
func parseCatalog(raw []byte, encoding string) ([]dto.CreateProductRequest, error) {
	r, err := decodeCatalog(raw, encoding)
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectSeparator(content)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "costprice", "sellingprice"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q (columnas: %s)", required, strings.Join(catalogColumns, ", "))
		}
	}

	var items []dto.CreateProductRequest
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := index[strings.ToLower(name)]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if field("name") == "" {
			continue
		}

		cost, err := decimal.NewFromString(field("costPrice"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: costPrice inválido %q", line, field("costPrice"))
		}
		selling, err := decimal.NewFromString(field("sellingPrice"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: sellingPrice inválido %q", line, field("sellingPrice"))
		}
		item := dto.CreateProductRequest{
			ProductID:    field("productId"),
			Name:         field("name"),
			Description:  field("description"),
			CostPrice:    &cost,
			SellingPrice: &selling,
			Category:     field("category"),
		}
		if q := field("quantity"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil {
				return nil, fmt.Errorf("línea %d: quantity inválida %q", line, q)
			}
			item.Quantity = &n
		}
		items = append(items, item)
	}
	return items, nil
}

func detectSeparator(content []byte) rune {
	first := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		first = content[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}
