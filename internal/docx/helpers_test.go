package docx_test

import (
	"archive/zip"
	"io"
)

func writeEmptyZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	f, err := zw.Create("[Content_Types].xml")
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(`<Types/>`)); err != nil {
		return err
	}
	return zw.Close()
}
