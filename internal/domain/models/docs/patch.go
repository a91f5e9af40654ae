package docs

import (
	"bytes"
	"encoding/json"
)

// NullableString tracks presence and value for JSON merge-patch semantics
// (RFC 7396). It expresses the tri-state Go's *string cannot:
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (clear)
//   - Present=true, Value=&"text": field has a value
type NullableString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// DocumentPatch is a partial update: only present fields are merged onto
// the stored record. ParentID and Icon are nullable, so they carry
// presence explicitly.
type DocumentPatch struct {
	Name     *string        `json:"name,omitempty"`
	ParentID NullableString `json:"parent_id,omitzero"`
	Icon     NullableString `json:"icon,omitzero"`
	PageData *PageData      `json:"page_data,omitempty"`
}

// Apply shallow-merges the patch onto doc. Both store backends share this
// so merge semantics cannot drift between them.
func (p *DocumentPatch) Apply(doc *Document) {
	if p.Name != nil {
		doc.Name = *p.Name
	}
	if p.ParentID.Present {
		doc.ParentID = p.ParentID.Value
	}
	if p.Icon.Present {
		doc.Icon = p.Icon.Value
	}
	if p.PageData != nil {
		doc.PageData = p.PageData
	}
}
