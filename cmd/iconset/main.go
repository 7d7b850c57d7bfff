package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/esimov/iconset"
	"github.com/esimov/iconset/utils"
)

const HelpBanner = `
┬┌─┐┌─┐┌┐┌┌─┐┌─┐┌┬┐
││  │ ││││└─┐├┤  │
┴└─┘└─┘┘└┘└─┘└─┘ ┴

Icon and image set exporter.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", "", "Source image (SVG, PNG, JPG, BMP, GIF or WebP)")
	destination = flag.String("out", ".", "Destination directory")
	profile     = flag.String("profile", string(iconset.Custom), "Export profile (see -list)")
	format      = flag.String("format", "", "Output format (defaults to the first format of the profile)")
	newWidth    = flag.Int("width", 512, "Canvas width (custom profile)")
	newHeight   = flag.Int("height", 512, "Canvas height (custom profile)")
	padding     = flag.Int("padding", 0, "Padding in pixels on each side")
	zoom        = flag.String("zoom", "100", "Content zoom, as a percentage (10-100) or a fraction (0.1-1)")
	transparent = flag.Bool("transparent", true, "Keep the transparent background where the format allows it")
	background  = flag.String("bg", "#ffffff", "Background color (#rgb, #rrggbb)")
	backend     = flag.String("backend", string(iconset.BackendBuiltin), "Vector rasterizer: builtin or rsvg")
	quality     = flag.Int("quality", iconset.DefaultJPEGQuality, "JPEG quality (1-100)")
	name        = flag.String("name", "", "Asset name (defaults to the source file name)")
	configFile  = flag.String("config", "", "TOML file with default settings")
	list        = flag.Bool("list", false, "List the export profiles")
	verbose     = flag.Bool("v", false, "Verbose output")
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "iconset"})

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if *list {
		printProfiles()
		return
	}
	if err := applyConfig(*configFile); err != nil {
		logger.Fatal(utils.DecorateText("Failed to load the configuration file", utils.ErrorMessage), "err", err)
	}
	if *source == "" {
		flag.Usage()
		logger.Fatal(utils.DecorateText("Please provide a source image with the -in flag!", utils.ErrorMessage))
	}

	job, err := buildJob()
	if err != nil {
		logger.Fatal(utils.DecorateText("Invalid export settings", utils.ErrorMessage), "err", err)
	}

	exp := iconset.NewExporter(iconset.Backend(*backend), logger)
	exp.JPEGQuality = *quality

	if _, err := exp.Execute(job, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// buildJob converts the command line flags into an export job.
func buildJob() (iconset.Job, error) {
	id, err := iconset.ParseProfile(*profile)
	if err != nil {
		return iconset.Job{}, err
	}
	var f iconset.Format
	if *format != "" {
		if f, err = iconset.ParseFormat(*format); err != nil {
			return iconset.Job{}, err
		}
	}
	z, err := parseZoom(*zoom)
	if err != nil {
		return iconset.Job{}, err
	}
	bg, err := iconset.ParseColor(*background)
	if err != nil {
		return iconset.Job{}, err
	}

	return iconset.Job{
		Source:  *source,
		Profile: id,
		Format:  f,
		Width:   *newWidth,
		Height:  *newHeight,
		Params: iconset.Params{
			Zoom:        z,
			Padding:     *padding,
			Transparent: *transparent,
			Background:  bg,
		},
		OutDir: *destination,
		Name:   *name,
	}, nil
}

// parseZoom accepts a percentage like "75" or "75%" and a fraction like "0.75".
func parseZoom(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid zoom %q: %w", s, err)
	}
	if v > 1 {
		v /= 100
	}
	return v, nil
}

// applyConfig loads the defaults file and applies every value not
// overridden by a flag given on the command line.
func applyConfig(path string) error {
	if path == "" {
		return nil
	}
	cfg, err := iconset.LoadConfig(path)
	if err != nil {
		return err
	}
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	d := cfg.Defaults
	values := []struct {
		key, flag, value string
	}{
		{"profile", "profile", d.Profile},
		{"format", "format", d.Format},
		{"width", "width", strconv.Itoa(d.Width)},
		{"height", "height", strconv.Itoa(d.Height)},
		{"padding", "padding", strconv.Itoa(d.Padding)},
		{"zoom", "zoom", strconv.FormatFloat(d.Zoom, 'f', -1, 64)},
		{"transparent", "transparent", strconv.FormatBool(d.Transparent)},
		{"background", "bg", d.Background},
		{"backend", "backend", d.Backend},
		{"jpeg_quality", "quality", strconv.Itoa(d.JPEGQuality)},
		{"name", "name", d.Name},
		{"out", "out", d.OutDir},
	}
	for _, v := range values {
		if explicit[v.flag] || !cfg.IsSet(v.key) {
			continue
		}
		if err := flag.Set(v.flag, v.value); err != nil {
			return fmt.Errorf("config key %q: %w", v.key, err)
		}
	}
	return nil
}

// printProfiles lists the export profiles in presentation order.
func printProfiles() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tFORMATS\tSIZES")
	for _, p := range iconset.Profiles() {
		formats := make([]string, len(p.Formats))
		for i, f := range p.Formats {
			formats[i] = strings.ToUpper(string(f))
		}
		sizes := "user defined"
		if len(p.Sizes) > 0 {
			s := make([]string, len(p.Sizes))
			for i, pt := range p.Sizes {
				s[i] = fmt.Sprintf("%dx%d", pt.X, pt.Y)
			}
			sizes = strings.Join(s, " ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Label, strings.Join(formats, " "), sizes)
	}
	tw.Flush()
}
