// Package utils contains small helpers shared by the binaries.
package utils

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// PrintJSON writes v to w as tab-indented JSON followed by a newline.
func PrintJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrap(err, "marshalling JSON")
	}

	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "writing JSON")
	}
	return nil
}
