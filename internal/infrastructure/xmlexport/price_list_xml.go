// Package xmlexport serializa listas de precios a XML para integraciones con
// ERPs externos. Cada documento lleva un digest SHA-256 de su forma canónica
// (C14N 1.0) que la API expone como ETag.
package xmlexport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

const (
	CharsetUTF8        = "UTF-8"
	CharsetWindows1252 = "windows-1252"
)

// Document XML generado y su digest canónico.
type Document struct {
	Bytes   []byte
	Digest  string
	Charset string
}

// ETag valor listo para la cabecera HTTP.
func (d *Document) ETag() string { return `"` + d.Digest + `"` }

// ContentType cabecera Content-Type acorde al charset.
func (d *Document) ContentType() string { return "application/xml; charset=" + d.Charset }

// Export arma el XML de la lista. charset vacío equivale a UTF-8; windows-1252
// es para importadores legacy y falla si algún texto no es representable.
func Export(list *entity.PriceList, charset string) (*Document, error) {
	if list == nil {
		return nil, fmt.Errorf("xmlexport: lista de precios nil")
	}
	cs, err := normalizeCharset(charset)
	if err != nil {
		return nil, err
	}

	root := buildTree(list)

	digest, err := canonicalDigest(root)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="`+cs+`"`)
	doc.SetRoot(root)
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	if cs == CharsetWindows1252 {
		out, err = charmap.Windows1252.NewEncoder().Bytes(out)
		if err != nil {
			return nil, fmt.Errorf("xmlexport: codificar %s: %w", cs, err)
		}
	}
	return &Document{Bytes: out, Digest: digest, Charset: cs}, nil
}

// Exporter adaptador de Export al puerto ports.PriceListExporter.
type Exporter struct{}

// Export implementa ports.PriceListExporter.
func (Exporter) Export(_ context.Context, list *entity.PriceList, opts ports.ExportOptions) (*ports.ExportedDocument, error) {
	doc, err := Export(list, opts.Charset)
	if err != nil {
		return nil, err
	}
	id := list.ID
	if id == "" {
		id = "draft"
	}
	return &ports.ExportedDocument{
		Body:        doc.Bytes,
		ContentType: doc.ContentType(),
		Filename:    "price-list-" + id + ".xml",
		ETag:        doc.ETag(),
	}, nil
}

func normalizeCharset(cs string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(cs)) {
	case "", "utf-8", "utf8":
		return CharsetUTF8, nil
	case "windows-1252", "cp1252", "latin1", "iso-8859-1":
		return CharsetWindows1252, nil
	}
	return "", fmt.Errorf("xmlexport: charset no soportado %q", cs)
}

func buildTree(list *entity.PriceList) *etree.Element {
	root := etree.NewElement("PriceList")
	if list.ID != "" {
		root.CreateAttr("id", list.ID)
	}

	h := root.CreateElement("Header")
	h.CreateElement("CompanyId").SetText(list.CompanyID)
	if list.ClientID != "" {
		h.CreateElement("ClientId").SetText(list.ClientID)
	}
	h.CreateElement("PriceLevel").SetText(list.PriceLevel)
	h.CreateElement("ApplicableFrom").SetText(list.ApplicableFrom)
	group := h.CreateElement("StockGroup")
	if list.StockGroupID != "" {
		group.CreateAttr("id", list.StockGroupID)
	}
	name := list.StockGroupName
	if name == "" {
		name = entity.AllStockGroups
	}
	group.SetText(name)

	items := root.CreateElement("Items")
	for _, it := range list.Items {
		item := items.CreateElement("Item")
		item.CreateAttr("id", it.ItemID)
		item.CreateElement("Name").SetText(it.ItemName)
		for _, s := range it.Slabs {
			slab := item.CreateElement("Slab")
			slab.CreateAttr("fromQty", s.FromQty.String())
			// tope 0 = tramo abierto
			slab.CreateAttr("lessThanQty", s.LessThanQty.String())
			slab.CreateAttr("rate", s.Rate.StringFixed(2))
			slab.CreateAttr("discount", s.Discount.String())
		}
	}
	return root
}

// canonicalDigest SHA-256 hex de la forma C14N del elemento, sin declaración
// XML ni indentación.
func canonicalDigest(root *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(root.Copy())
	raw, err := doc.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xmlexport: serializar para digest: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canon, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
