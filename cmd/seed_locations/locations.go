package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// seedLocation una fila de locations.
type seedLocation struct {
	Code   string
	Name   string
	Active bool
}

// El ERP exporta <depo kod ad><raf kod ad aktif/></depo>; versiones nuevas usan nombres en inglés.
var (
	warehouseTags = map[string]bool{"depo": true, "warehouse": true}
	shelfTags     = map[string]bool{"raf": true, "shelf": true, "location": true}
)

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-9", "iso8859-9", "latin5":
		return transform.NewReader(input, charmap.ISO8859_9.NewDecoder()), nil
	case "windows-1254", "cp1254":
		return transform.NewReader(input, charmap.Windows1254.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "utf-8", "utf8", "":
		return input, nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", label)
}

// parseLocations recorre el documento y devuelve un estante por código, ordenados por código.
// El nombre es "<depósito> / <estante>" cuando el estante cuelga de un depósito con nombre.
// Un código repetido conserva la última aparición.
func parseLocations(r io.Reader) ([]seedLocation, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(bufio.NewReader(r)); err != nil {
		return nil, fmt.Errorf("parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("documento sin raíz")
	}

	byCode := make(map[string]seedLocation)
	var walk func(el *etree.Element, warehouse string)
	walk = func(el *etree.Element, warehouse string) {
		tag := strings.ToLower(el.Tag)
		switch {
		case warehouseTags[tag]:
			warehouse = attr(el, "ad", "name")
		case shelfTags[tag]:
			code := attr(el, "kod", "code")
			if code == "" {
				return
			}
			name := attr(el, "ad", "name")
			if name == "" {
				name = code
			}
			if warehouse != "" {
				name = warehouse + " / " + name
			}
			byCode[code] = seedLocation{Code: code, Name: name, Active: parseActive(attr(el, "aktif", "active"))}
			return
		}
		for _, child := range el.ChildElements() {
			walk(child, warehouse)
		}
	}
	walk(root, "")

	locs := make([]seedLocation, 0, len(byCode))
	for _, l := range byCode {
		locs = append(locs, l)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Code < locs[j].Code })
	return locs, nil
}

// attr devuelve el primer atributo no vacío entre keys (sin distinguir mayúsculas).
func attr(el *etree.Element, keys ...string) string {
	for _, k := range keys {
		for _, a := range el.Attr {
			if strings.EqualFold(a.Key, k) {
				if v := strings.TrimSpace(a.Value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func parseActive(s string) bool {
	switch strings.ToLower(s) {
	case "0", "false", "hayir", "hayır", "no", "h":
		return false
	}
	return true
}

// writeSQL escribe un INSERT idempotente: volver a correrlo actualiza nombre y estado.
func writeSQL(w io.Writer, locs []seedLocation) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("-- Ubicaciones del almacén\n")
	bw.WriteString("-- Generado desde la exportación de estantes del ERP\n\n")
	if len(locs) == 0 {
		bw.WriteString("-- sin ubicaciones\n")
		return bw.Flush()
	}
	bw.WriteString("INSERT INTO locations (code, name, is_active) VALUES\n")
	for i, l := range locs {
		sep := ","
		if i == len(locs)-1 {
			sep = ""
		}
		fmt.Fprintf(bw, "  ('%s', '%s', %t)%s\n", escapeSQL(l.Code), escapeSQL(l.Name), l.Active, sep)
	}
	bw.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, is_active = EXCLUDED.is_active, updated_at = now();\n")
	return bw.Flush()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
