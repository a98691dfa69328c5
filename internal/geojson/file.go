package geojson

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/iancoleman/orderedmap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// LoadFile reads a GeoJSON document from disk and builds a collection from
// it. encodingName is an IANA charset name ("latin1", "windows-1252", ...);
// empty means UTF-8. The file handle is released before returning, also when
// parsing fails partway.
//
// Decoding goes through an order-preserving JSON parse so that property key
// order survives a load/save round trip.
func LoadFile(path, encodingName string, opts Options) (*Collection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := DecodeText(raw, encodingName)
	if err != nil {
		return nil, err
	}
	doc := orderedmap.New()
	if err := json.Unmarshal(text, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return Load(doc, opts)
}

// Save serializes the collection and writes it to path in the requested text
// encoding (empty means UTF-8). By default the collection bbox is recomputed
// before emission; pass updateBBox=false to write the cached state as-is.
//
// The write is not atomic; the handle is released before returning in every
// case.
func (c *Collection) Save(path, encodingName string, updateBBox bool) error {
	data, err := json.Marshal(c.ToMapping(updateBBox))
	if err != nil {
		return err
	}
	raw, err := EncodeText(data, encodingName)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errConfigf("unknown text encoding %q", name)
	}
	return enc, nil
}

// DecodeText converts raw file bytes in the named charset to UTF-8. An empty
// name or a UTF-8 alias is a passthrough.
func DecodeText(raw []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		return raw, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Bytes(raw)
}

// EncodeText converts UTF-8 text to the named charset for writing. An empty
// name or a UTF-8 alias is a passthrough.
func EncodeText(text []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		return text, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return enc.NewEncoder().Bytes(text)
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return true
	}
	return false
}
