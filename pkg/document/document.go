// Package document defines the schema-less document type stored inside
// compendium packs. Pack contents are domain-defined; the only fields the
// tooling itself recognizes are the conventional "_id" and "name" fields and
// the "_key" field injected into source files to carry the original store key.
package document

// KeyField is the field injected into a serialized source file to carry the
// originating store key. It is never written back into the pack.
const KeyField = "_key"

// Recognized optional fields on pack documents.
const (
	IDField   = "_id"
	NameField = "name"
)

// Document is a single schema-less pack document.
type Document map[string]interface{}

// ID returns the document's "_id" field, or "" when absent or not a string.
func (d Document) ID() string {
	if v, ok := d[IDField].(string); ok {
		return v
	}
	return ""
}

// Name returns the document's "name" field, or "" when absent or not a string.
func (d Document) Name() string {
	if v, ok := d[NameField].(string); ok {
		return v
	}
	return ""
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// WithKey returns a shallow copy of the document with the store key embedded
// under KeyField. The receiver is not modified.
func (d Document) WithKey(key string) Document {
	out := d.Clone()
	out[KeyField] = key
	return out
}

// TakeKey extracts the embedded store key and returns a copy of the document
// with KeyField stripped. ok is false when the field is absent or not a
// string; the returned document is then nil.
func (d Document) TakeKey() (key string, doc Document, ok bool) {
	v, present := d[KeyField]
	if !present {
		return "", nil, false
	}
	key, ok = v.(string)
	if !ok || key == "" {
		return "", nil, false
	}
	doc = d.Clone()
	delete(doc, KeyField)
	return key, doc, true
}
