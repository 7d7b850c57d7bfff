package iconset

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// encodePDF writes img as a single page PDF document. The page is measured
// in points with one point per pixel (72 dpi) and the image is embedded
// losslessly. img is expected to be opaque.
func encodePDF(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	pw, ph := float64(b.Dx()), float64(b.Dy())

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("iconset", true)
	pdf.AddPage()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, pw, ph, false, opts, 0, "")

	return pdf.Output(w)
}
