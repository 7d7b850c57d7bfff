package iconset

import (
	"fmt"
	"image"
	"slices"
	"strconv"
	"strings"

	"github.com/esimov/iconset/utils"
)

// ProfileID identifies an export preset.
type ProfileID string

// The export presets, in the order they are presented to the user.
const (
	Custom          ProfileID = "custom"
	Windows         ProfileID = "windows"
	MacOS           ProfileID = "macos"
	Linux           ProfileID = "linux"
	Android         ProfileID = "android"
	IOS             ProfileID = "ios"
	Desktop         ProfileID = "desktop"
	Phone           ProfileID = "phone"
	TabletPortrait  ProfileID = "tablet-portrait"
	TabletLandscape ProfileID = "tablet-landscape"
)

// Profile is a named export preset fixing the target dimensions, the legal
// output formats and the output path layout.
type Profile struct {
	ID      ProfileID
	Label   string
	Sizes   []image.Point // empty for Custom, whose size is chosen by the user
	Formats []Format      // the first entry is the default

	// dir and file are path templates relative to the export root.
	// {name} is the asset name, {w} and {h} the frame size, {ext} the format extension.
	dir  string
	file string
}

func squares(sizes ...int) []image.Point {
	pts := make([]image.Point, len(sizes))
	for i, s := range sizes {
		pts[i] = image.Pt(s, s)
	}
	return pts
}

// rasterFormats returns a fresh list of the single file raster formats.
func rasterFormats() []Format {
	return []Format{PNG, JPG, BMP}
}

const setFile = "{name}_{w}x{h}{ext}"

var catalog = []Profile{
	{
		ID: Custom, Label: "Custom export",
		Formats: []Format{PNG, JPG, PDF, BMP},
		dir:     "custom", file: setFile,
	},
	{
		ID: Windows, Label: "Create Windows icon (.ico)",
		Sizes:   squares(16, 24, 32, 48, 64, 128, 256),
		Formats: []Format{ICO},
		dir:     "windows", file: "icon.ico",
	},
	{
		ID: MacOS, Label: "Create macOS icon (.icns)",
		Sizes:   squares(16, 32, 64, 128, 256, 512, 1024),
		Formats: []Format{ICNS},
		dir:     "macos", file: "icon.icns",
	},
	{
		ID: Linux, Label: "Create Linux icon PNGs",
		Sizes:   squares(16, 22, 24, 32, 48, 64, 96, 128, 256, 512),
		Formats: rasterFormats(),
		dir:     "linux/{name}", file: setFile,
	},
	{
		ID: Android, Label: "Create Android app icons",
		Sizes:   squares(48, 72, 96, 144, 192, 512),
		Formats: rasterFormats(),
		dir:     "android/{name}", file: setFile,
	},
	{
		ID: IOS, Label: "Create iOS app icons",
		Sizes:   squares(60, 76, 120, 152, 167, 180, 1024),
		Formats: rasterFormats(),
		dir:     "ios/{name}", file: setFile,
	},
	{
		ID: Desktop, Label: "Export standard sizes: Computer",
		Sizes:   []image.Point{{1280, 720}, {1920, 1080}, {2560, 1440}, {3840, 2160}},
		Formats: rasterFormats(),
		dir:     "wallpapers/desktop/{name}", file: setFile,
	},
	{
		ID: Phone, Label: "Export standard sizes: Phone",
		Sizes:   []image.Point{{750, 1334}, {1080, 1920}, {1170, 2532}, {1440, 3040}},
		Formats: rasterFormats(),
		dir:     "wallpapers/phone/{name}", file: setFile,
	},
	{
		ID: TabletPortrait, Label: "Export tablet sizes: Portrait",
		Sizes:   []image.Point{{1536, 2048}, {1668, 2388}, {1600, 2560}},
		Formats: rasterFormats(),
		dir:     "wallpapers/tablet_portrait/{name}", file: setFile,
	},
	{
		ID: TabletLandscape, Label: "Export tablet sizes: Landscape",
		Sizes:   []image.Point{{2048, 1536}, {2388, 1668}, {2560, 1600}},
		Formats: rasterFormats(),
		dir:     "wallpapers/tablet_landscape/{name}", file: setFile,
	},
}

var profileIndex = map[ProfileID]int{}

func init() {
	if err := validateCatalog(catalog); err != nil {
		panic(err)
	}
	for i, p := range catalog {
		profileIndex[p.ID] = i
	}
}

// validateCatalog checks the static profile table for consistency.
func validateCatalog(profiles []Profile) error {
	want := []ProfileID{Custom, Windows, MacOS, Linux, Android, IOS, Desktop, Phone, TabletPortrait, TabletLandscape}
	seen := make(map[ProfileID]bool, len(profiles))

	for _, p := range profiles {
		if seen[p.ID] {
			return fmt.Errorf("profile %q: duplicate entry", p.ID)
		}
		seen[p.ID] = true

		if len(p.Formats) == 0 {
			return fmt.Errorf("profile %q: no output format", p.ID)
		}
		if p.ID != Custom && len(p.Sizes) == 0 {
			return fmt.Errorf("profile %q: no target size", p.ID)
		}
		for _, s := range p.Sizes {
			if s.X < 1 || s.Y < 1 {
				return fmt.Errorf("profile %q: invalid size %v", p.ID, s)
			}
		}
		if p.IsContainer() {
			if len(p.Formats) != 1 {
				return fmt.Errorf("profile %q: container profiles have exactly one format", p.ID)
			}
			for _, s := range p.Sizes {
				if s.X != s.Y {
					return fmt.Errorf("profile %q: container frames must be square, got %v", p.ID, s)
				}
			}
		}
		for _, f := range p.Formats {
			if f.Container() != p.IsContainer() {
				return fmt.Errorf("profile %q: format %q mixes container and single files", p.ID, f)
			}
		}
		if p.dir == "" || p.file == "" {
			return fmt.Errorf("profile %q: missing output layout", p.ID)
		}
	}
	for _, id := range want {
		if !seen[id] {
			return fmt.Errorf("profile %q: missing from catalog", id)
		}
	}
	return nil
}

// Profiles returns every export preset in presentation order.
func Profiles() []Profile {
	out := make([]Profile, len(catalog))
	for i, p := range catalog {
		out[i] = p.clone()
	}
	return out
}

// Lookup returns the profile registered under id.
func Lookup(id ProfileID) (Profile, bool) {
	i, ok := profileIndex[id]
	if !ok {
		return Profile{}, false
	}
	return catalog[i].clone(), true
}

// clone returns a copy of p which shares no storage with the catalog.
func (p Profile) clone() Profile {
	p.Sizes = slices.Clone(p.Sizes)
	p.Formats = slices.Clone(p.Formats)
	return p
}

// ParseProfile resolves a profile from its identifier, case insensitively.
func ParseProfile(s string) (ProfileID, error) {
	id := ProfileID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Lookup(id); !ok {
		return "", &Error{Kind: InvalidArgument, Op: "parse profile", Msg: fmt.Sprintf("unknown profile %q", s)}
	}
	return id, nil
}

// Allows reports whether f is a legal output format for the profile.
func (p Profile) Allows(f Format) bool {
	return utils.Contains(p.Formats, f)
}

// DefaultFormat returns the format preselected for the profile.
func (p Profile) DefaultFormat() Format {
	return p.Formats[0]
}

// Editable reports whether the user chosen width and height apply to the profile.
func (p Profile) Editable() bool {
	return p.ID == Custom
}

// IsContainer reports whether the profile produces a single multi-size container.
func (p Profile) IsContainer() bool {
	return len(p.Formats) > 0 && p.Formats[0].Container()
}

// Resolve returns the target dimensions of the profile. The custom size is
// only used by the Custom profile.
func (p Profile) Resolve(width, height int) ([]image.Point, error) {
	if !p.Editable() {
		return append([]image.Point(nil), p.Sizes...), nil
	}
	if width < 1 || height < 1 {
		return nil, &Error{Kind: InvalidArgument, Op: "resolve sizes",
			Msg: fmt.Sprintf("custom size must be at least 1x1, got %dx%d", width, height)}
	}
	return []image.Point{{width, height}}, nil
}

// Largest returns the biggest side among the profile sizes.
func (p Profile) Largest() int {
	var m int
	for _, s := range p.Sizes {
		m = utils.Max(m, utils.Max(s.X, s.Y))
	}
	return m
}

// SquareSizes returns the side lengths of the profile frames.
func (p Profile) SquareSizes() []int {
	out := make([]int, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		out = append(out, s.X)
	}
	return out
}

// Dir returns the directory, relative to the export root, receiving the files.
func (p Profile) Dir(name string) string {
	return p.expand(p.dir, name, image.Point{}, "")
}

// FileName returns the file name of the frame of the given size.
func (p Profile) FileName(name string, size image.Point, f Format) string {
	return p.expand(p.file, name, size, f.Ext())
}

func (p Profile) expand(tmpl, name string, size image.Point, ext string) string {
	return strings.NewReplacer(
		"{name}", name,
		"{w}", strconv.Itoa(size.X),
		"{h}", strconv.Itoa(size.Y),
		"{ext}", ext,
	).Replace(tmpl)
}
