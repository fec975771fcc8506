package dto

import (
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"gorm.io/datatypes"

	"baetelanshar_backend/internals/constants"
)

// DocumentRef: bentuk kanonik satu dokumen tersimpan.
type DocumentRef struct {
	Path string `json:"path"`
	Type string `json:"type,omitempty"`
}

// DocumentMap: bentuk kanonik kolom registrations.documents
// (kategori → {path, type}), dipaksakan saat tulis.
type DocumentMap map[string]DocumentRef

func (m DocumentMap) ToJSON() (datatypes.JSON, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DocumentItem: proyeksi baca untuk panel dokumen admin/wali.
type DocumentItem struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Path     string `json:"path"`
	Type     string `json:"type"`
}

// NormalizeDocuments menerima tiga bentuk historis kolom documents:
//  1. array objek  [{"name"|"category": "kk", "path": "...", "type": "..."}]
//  2. map string   {"kk": "folder/kk.pdf"}
//  3. map objek    {"kk": {"path": "...", "type": "..."}}
//
// dan mengembalikan daftar logis terurut sesuai urutan kategori form.
// Baris lama boleh memuat bentuk 1/2; tulisan baru selalu bentuk 3.
func NormalizeDocuments(raw []byte) ([]DocumentItem, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	byCategory := map[string]DocumentItem{}

	if strings.HasPrefix(trimmed, "[") {
		var arr []map[string]any
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("documents array tidak valid: %w", err)
		}
		for _, entry := range arr {
			cat := stringField(entry, "category")
			if cat == "" {
				cat = stringField(entry, "name")
			}
			path := stringField(entry, "path")
			if cat == "" || path == "" {
				continue
			}
			byCategory[cat] = DocumentItem{
				Category: cat,
				Path:     path,
				Type:     docType(stringField(entry, "type"), path),
			}
		}
	} else {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("documents map tidak valid: %w", err)
		}
		for cat, val := range obj {
			v := strings.TrimSpace(string(val))
			if v == "" || v == "null" {
				continue
			}
			if strings.HasPrefix(v, "\"") {
				var path string
				if err := json.Unmarshal(val, &path); err != nil || path == "" {
					continue
				}
				byCategory[cat] = DocumentItem{Category: cat, Path: path, Type: docType("", path)}
				continue
			}
			var ref DocumentRef
			if err := json.Unmarshal(val, &ref); err != nil || ref.Path == "" {
				continue
			}
			byCategory[cat] = DocumentItem{Category: cat, Path: ref.Path, Type: docType(ref.Type, ref.Path)}
		}
	}

	out := make([]DocumentItem, 0, len(byCategory))
	for _, cat := range constants.DocumentCategories {
		if item, ok := byCategory[cat]; ok {
			item.Label = constants.DocumentLabels[cat]
			out = append(out, item)
			delete(byCategory, cat)
		}
	}
	// kategori tak dikenal ikut di belakang, jangan dibuang diam-diam
	for cat, item := range byCategory {
		item.Label = cat
		out = append(out, item)
	}
	return out, nil
}

// ToDocumentMap menormalkan bentuk apapun ke bentuk kanonik tulis.
func ToDocumentMap(raw []byte) (DocumentMap, error) {
	items, err := NormalizeDocuments(raw)
	if err != nil {
		return nil, err
	}
	m := make(DocumentMap, len(items))
	for _, it := range items {
		m[it.Category] = DocumentRef{Path: it.Path, Type: it.Type}
	}
	return m, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func docType(explicit, path string) string {
	if explicit != "" {
		return explicit
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
