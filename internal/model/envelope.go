package model

// Attribute is one key/value annotation attached to an entity. The query
// service indexes attributes for its single server-side equality clause.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Envelope is the opaque entity record returned by the ledger-query
// service. Entities are created by an external ingestion process and are
// immutable apart from expiration-driven deletion; this engine only reads.
type Envelope struct {
	Key                 string      `json:"key"`
	Payload             []byte      `json:"payload,omitempty"`
	Attributes          []Attribute `json:"attributes,omitempty"`
	ContentType         string      `json:"contentType,omitempty"`
	Owner               string      `json:"owner,omitempty"`
	CreatedAtBlock      uint64      `json:"createdAtBlock,omitempty"`
	LastModifiedAtBlock uint64      `json:"lastModifiedAtBlock,omitempty"`
	Expiration          uint64      `json:"expiration,omitempty"`
}

// Attribute returns the value for a key, if present.
func (e Envelope) Attribute(key string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}
