package snapshot

import (
	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding: the same state always
// produces the same bytes.
var encMode cbor.EncMode

// decMode ignores unknown fields so older binaries can read newer files.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes doc to CBOR.
func Marshal(doc *Document) ([]byte, error) {
	return encMode.Marshal(doc)
}

// Unmarshal decodes a CBOR snapshot.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
