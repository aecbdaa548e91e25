// Package form decodes an HTML form submission into a struct and validates it.
package form

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gamestorehq/gamestore/pkg/validate"
)

// maxFormBytes caps in-memory form parsing. Image uploads use multipart and
// spill to disk beyond this.
const maxFormBytes = 10 << 20 // 10 MB

// Bind parses the request form, fills dest's string fields by their `form`
// tag, and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body itself cannot be parsed.
func Bind(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		err = r.ParseMultipartForm(maxFormBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("form: parse: %w", err)
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("form: dest must be a struct pointer")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := field.Tag.Get("form")
		if name == "" || name == "-" {
			continue
		}
		if field.Type.Kind() != reflect.String || !rv.Field(i).CanSet() {
			continue
		}
		rv.Field(i).SetString(strings.TrimSpace(r.FormValue(name)))
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
