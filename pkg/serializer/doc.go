// Package serializer writes values as JSON, YAML or a flat table.
//
// The CLI uses a Writer for `hwobserver status`:
//
//	w := serializer.NewWriter(serializer.FormatYAML, os.Stdout)
//	if err := w.Serialize(status); err != nil {
//		return err
//	}
//
// The status server uses RespondJSON. The body is encoded in full before
// any header is written, so a value that cannot be encoded yields a fixed
// 500 body rather than a partial one.
package serializer
