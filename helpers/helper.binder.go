package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

const MaxBodyBytes int64 = 100 << 10

// BindError carries the status a request body failure should be answered with.
type BindError struct {
	StatCode int
	Message  string
}

func (e *BindError) Error() string {
	return e.Message
}

// Binding is a decoded request body. Values that are not strings and keys
// outside the allowed set are held back so they can be reported in field
// order together with the validation rules.
type Binding struct {
	Fields   map[string]string
	Mistyped map[string]string
	Unknown  []string
}

// Check returns the first problem found walking order: a mistyped value or a
// rule violation for each key, and only then an unknown key.
func (b *Binding) Check(order []string, violations map[string]string) error {
	for _, key := range order {
		if message, ok := b.Mistyped[key]; ok {
			return &BindError{StatCode: http.StatusUnprocessableEntity, Message: message}
		}

		if message, ok := violations[key]; ok {
			return &BindError{StatCode: http.StatusUnprocessableEntity, Message: message}
		}
	}

	if len(b.Unknown) > 0 {
		return &BindError{StatCode: http.StatusUnprocessableEntity, Message: fmt.Sprintf("%q is not allowed", b.Unknown[0])}
	}

	return nil
}

// BindFields reads a JSON object or an urlencoded form from r. Only a body that
// cannot be read as an object is an error here; per-key problems are left on
// the Binding for Check.
func BindFields(rw http.ResponseWriter, r *http.Request, allowed []string) (*Binding, error) {
	r.Body = http.MaxBytesReader(rw, r.Body, MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		binding *Binding
		err     error
	)

	switch mediaType {
	case "application/x-www-form-urlencoded":
		binding, err = bindForm(r)

	default:
		binding, err = bindJSON(r)
	}

	if err != nil {
		return nil, err
	}

	binding.Unknown = lo.Without(lo.Keys(binding.Fields), allowed...)
	binding.Unknown = append(binding.Unknown, lo.Without(lo.Keys(binding.Mistyped), allowed...)...)
	sort.Strings(binding.Unknown)

	binding.Fields = lo.PickByKeys(binding.Fields, allowed)
	binding.Mistyped = lo.PickByKeys(binding.Mistyped, allowed)

	return binding, nil
}

func bindForm(r *http.Request) (*Binding, error) {
	if err := r.ParseForm(); err != nil {
		return nil, bodyError(err)
	}

	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}

	return &Binding{Fields: fields}, nil
}

func bindJSON(r *http.Request) (*Binding, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, bodyError(err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &Binding{Fields: map[string]string{}}, nil
	}

	if body[0] != '{' {
		if !json.Valid(body) {
			return nil, &BindError{StatCode: http.StatusBadRequest, Message: "request body is not valid JSON"}
		}

		return nil, &BindError{StatCode: http.StatusUnprocessableEntity, Message: `"value" must be of type object`}
	}

	raw := map[string]json.RawMessage{}
	if err := NewParser().Unmarshal(body, &raw); err != nil {
		return nil, &BindError{StatCode: http.StatusBadRequest, Message: err.Error()}
	}

	binding := &Binding{Fields: make(map[string]string, len(raw)), Mistyped: map[string]string{}}
	for key, value := range raw {
		var str string
		if len(value) == 0 || value[0] != '"' || json.Unmarshal(value, &str) != nil {
			binding.Mistyped[key] = fmt.Sprintf("%q must be a string", key)
			continue
		}

		binding.Fields[key] = str
	}

	return binding, nil
}

func bodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return &BindError{StatCode: http.StatusRequestEntityTooLarge, Message: "request entity too large"}
	}

	return &BindError{StatCode: http.StatusBadRequest, Message: err.Error()}
}
