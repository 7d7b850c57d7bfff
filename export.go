package iconset

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Job describes one export action.
type Job struct {
	Source  string    // path to the source vector or raster image
	Profile ProfileID // export preset
	Format  Format    // output format; empty selects the profile default
	Width   int       // canvas width, Custom profile only
	Height  int       // canvas height, Custom profile only
	Params
	OutDir string // export root; empty means the working directory
	Name   string // asset name; empty means the source file stem
}

// plan is a validated job with every default resolved.
type plan struct {
	Job
	profile Profile
	sizes   []image.Point
	dir     string
}

// Exporter runs export jobs end to end: rasterization, compositing,
// encoding and collision-free writing.
type Exporter struct {
	// Backend selects the vector rasterizer. Raster sources ignore it.
	Backend Backend
	// Logger receives debug records. A nil logger discards them.
	Logger *log.Logger
	// IconTool packs ICNS files when the built-in encoder fails.
	// When nil, the native tool of the platform is used if there is one.
	IconTool IconPackager
	// JPEGQuality in the range 1..100; out of range values select DefaultJPEGQuality.
	JPEGQuality int
	// OnWrite, when set, is called after every written file.
	OnWrite func(path string)

	icnsEncode func(w io.Writer, base image.Image, sizes []int, opaque bool) error
}

// NewExporter returns an Exporter using the given vector backend.
func NewExporter(backend Backend, logger *log.Logger) *Exporter {
	return &Exporter{
		Backend:     backend,
		Logger:      logger,
		JPEGQuality: DefaultJPEGQuality,
	}
}

func (e *Exporter) logger() *log.Logger {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e.Logger
}

// Export runs job and returns the written paths in order. The first error
// aborts the export; files written before it are kept.
func (e *Exporter) Export(job Job) ([]string, error) {
	p, err := e.plan(job)
	if err != nil {
		return nil, err
	}
	// Resolve the rasterizer before anything touches the filesystem.
	r, err := NewRasterizer(p.Source, e.Backend)
	if err != nil {
		return nil, err
	}
	e.logger().Debug("export", "profile", p.profile.ID, "format", p.Format,
		"source", p.Source, "dir", p.dir, "sizes", len(p.sizes))

	switch p.Format {
	case ICO:
		return e.exportICO(p, r)
	case ICNS:
		return e.exportICNS(p, r)
	}
	return e.exportSet(p, r)
}

// plan validates the job and fills in its defaults.
func (e *Exporter) plan(job Job) (*plan, error) {
	invalid := func(format string, args ...any) error {
		return &Error{Kind: InvalidArgument, Op: "export", Path: job.Source, Msg: fmt.Sprintf(format, args...)}
	}
	if job.Source == "" {
		return nil, invalid("no source image given")
	}
	profile, ok := Lookup(job.Profile)
	if !ok {
		return nil, invalid("unknown profile %q", job.Profile)
	}
	if job.Format == "" {
		job.Format = profile.DefaultFormat()
	}
	if !profile.Allows(job.Format) {
		return nil, invalid("profile %q does not export %s files", profile.ID, strings.ToUpper(string(job.Format)))
	}
	sizes, err := profile.Resolve(job.Width, job.Height)
	if err != nil {
		return nil, err
	}
	if job.Name == "" {
		base := filepath.Base(job.Source)
		job.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if job.Name == "" || job.Name == "." || job.Name == ".." || strings.ContainsAny(job.Name, `/\`) {
		return nil, invalid("invalid asset name %q", job.Name)
	}
	if job.OutDir == "" {
		job.OutDir = "."
	}
	job.Zoom = clampZoom(job.Zoom)

	return &plan{
		Job:     job,
		profile: profile,
		sizes:   sizes,
		dir:     filepath.Join(job.OutDir, filepath.FromSlash(profile.Dir(job.Name))),
	}, nil
}

// render composites the source at the given size.
func (e *Exporter) render(p *plan, r Rasterizer, size image.Point) (*Composited, error) {
	c, err := Composite(RenderRequest{
		Source: p.Source,
		Width:  size.X,
		Height: size.Y,
		Params: p.Params,
	}, r)
	if err != nil {
		return nil, err
	}
	e.logger().Debug("rendered", "size", fmt.Sprintf("%dx%d", size.X, size.Y), "canvas", c)
	return c, nil
}

// write stores data under a collision-free variant of path.
func (e *Exporter) write(path string, data []byte) (string, error) {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	written, err := writeUnique(path, data)
	if err != nil {
		return "", err
	}
	e.wrote(written, len(data))
	return written, nil
}

func (e *Exporter) wrote(path string, n int) {
	e.logger().Debug("wrote", "path", path, "bytes", n)
	if e.OnWrite != nil {
		e.OnWrite(path)
	}
}

// exportSet writes one file per profile size.
func (e *Exporter) exportSet(p *plan, r Rasterizer) ([]string, error) {
	enc := Encoder{JPEGQuality: e.JPEGQuality}
	paths := make([]string, 0, len(p.sizes))

	for _, size := range p.sizes {
		c, err := e.render(p, r, size)
		if err != nil {
			return paths, err
		}
		var buf bytes.Buffer
		if err := enc.Encode(&buf, c, p.Format, p.Background); err != nil {
			return paths, err
		}
		path, err := e.write(filepath.Join(p.dir, p.profile.FileName(p.Name, size, p.Format)), buf.Bytes())
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// base renders the largest size of the profile, flattened per the format rules.
func (e *Exporter) base(p *plan, r Rasterizer) (*image.NRGBA, error) {
	side := p.profile.Largest()
	c, err := e.render(p, r, image.Pt(side, side))
	if err != nil {
		return nil, err
	}
	return prepare(c.Image, p.Format, c.Transparent, p.Background), nil
}

func (e *Exporter) exportICO(p *plan, r Rasterizer) ([]string, error) {
	base, err := e.base(p, r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := EncodeICO(&buf, base, p.profile.SquareSizes(), !p.Transparent); err != nil {
		return nil, err
	}
	path, err := e.write(filepath.Join(p.dir, p.profile.FileName(p.Name, image.Point{}, ICO)), buf.Bytes())
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (e *Exporter) exportICNS(p *plan, r Rasterizer) ([]string, error) {
	base, err := e.base(p, r)
	if err != nil {
		return nil, err
	}
	dst := filepath.Join(p.dir, p.profile.FileName(p.Name, image.Point{}, ICNS))

	encode := e.icnsEncode
	if encode == nil {
		encode = EncodeICNS
	}
	var buf bytes.Buffer
	nativeErr := encode(&buf, base, p.profile.SquareSizes(), !p.Transparent)
	if nativeErr == nil {
		path, err := e.write(dst, buf.Bytes())
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	tool := e.IconTool
	if tool == nil {
		var ok bool
		if tool, ok = NativeIconPackager(); !ok {
			return nil, nativeErr
		}
	}
	e.logger().Debug("icns encoder failed, falling back", "tool", tool.Name(), "err", nativeErr)

	path, err := e.packICNS(p, r, tool, dst, nativeErr)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// packICNS renders every size into a transient iconset directory and has
// tool pack it into dst. The iconset directory is removed afterwards.
func (e *Exporter) packICNS(p *plan, r Rasterizer, tool IconPackager, dst string, nativeErr error) (string, error) {
	if err := ensureDir(p.dir); err != nil {
		return "", err
	}
	iconset, err := mkdirUnique(filepath.Join(p.dir, "icon.iconset"))
	if err != nil {
		return "", err
	}
	defer e.removeAll(iconset)

	for _, size := range p.sizes {
		c, err := e.render(p, r, size)
		if err != nil {
			return "", err
		}
		frame := prepare(c.Image, ICNS, c.Transparent, p.Background)

		var buf bytes.Buffer
		if err := png.Encode(&buf, frame); err != nil {
			return "", newError(EncodeFailure, "encode iconset frame", "", err)
		}
		name := filepath.Join(iconset, iconsetFrameName(size.X))
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			return "", newError(IOFailure, "write", name, err)
		}
	}

	out, err := reserveUnique(dst)
	if err != nil {
		return "", err
	}
	if err := tool.PackICNS(iconset, out); err != nil {
		os.Remove(out)
		return "", &Error{Kind: ExternalToolFailure, Op: tool.Name(), Path: out, Err: err, Context: nativeErr}
	}
	info, err := os.Stat(out)
	if err != nil {
		return "", newError(IOFailure, "stat", out, err)
	}
	e.wrote(out, int(info.Size()))
	return out, nil
}

// removeAll deletes a transient directory. The export result does not
// depend on it, so a failure is logged and not returned.
func (e *Exporter) removeAll(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		e.logger().Warn("could not remove transient directory", "path", dir, "err", err)
	}
}
