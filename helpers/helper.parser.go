package helpers

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

type (
	IParser interface {
		ToString(v interface{}) string
		ToInt(v interface{}) (int, error)
		Marshal(source interface{}) ([]byte, error)
		Unmarshal(src []byte, dest interface{}) error
		Decode(src io.Reader, dest interface{}) error
	}

	parser struct{}
)

func NewParser() IParser {
	return &parser{}
}

func (h *parser) ToString(v interface{}) string {
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func (h *parser) ToInt(v interface{}) (int, error) {
	parse, err := strconv.Atoi(h.ToString(v))
	if err != nil {
		return 0, err
	}

	return parse, nil
}

func (h *parser) Marshal(src interface{}) ([]byte, error) {
	return json.Marshal(src)
}

func (h *parser) Unmarshal(src []byte, dest interface{}) error {
	return h.Decode(bytes.NewReader(src), dest)
}

func (h *parser) Decode(src io.Reader, dest interface{}) error {
	decoder := json.NewDecoder(src)

	if err := decoder.Decode(dest); err != nil {
		return err
	}

	if decoder.More() {
		return fmt.Errorf("unexpected data after top-level value")
	}

	return nil
}
