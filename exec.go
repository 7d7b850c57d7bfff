package iconset

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/iconset/utils"
	"golang.org/x/term"
)

// banner prefixes every status line printed by Execute.
const banner = "⚡ ICONSET"

// kindMessages maps each failure kind to the headline shown to the user.
var kindMessages = map[Kind]string{
	BackendUnavailable:  "The selected rasterizer backend is not available",
	SourceInvalid:       "The source image could not be loaded",
	EncodeFailure:       "The output image could not be encoded",
	ExternalToolFailure: "The external icon tool failed",
	IOFailure:           "The output could not be written",
	InvalidArgument:     "The export settings are invalid",
}

// Execute runs job and reports its progress to w, the way a terminal user
// expects it: a spinner while rendering, the written files and the elapsed
// time once done. The spinner only runs when w is a terminal.
func (e *Exporter) Execute(job Job, w io.Writer) ([]string, error) {
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText(banner, utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("⇢ exporting %s...", job.Profile), utils.DefaultMessage),
	)
	var spinner *utils.Spinner
	if isTerminal(w) {
		spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)
		spinner.SetWriter(w)
	} else {
		fmt.Fprintln(w, defaultMsg)
	}

	var written int
	onWrite := e.OnWrite
	e.OnWrite = func(path string) {
		written++
		if spinner != nil {
			spinner.SetMessage(fmt.Sprintf("%s %s",
				utils.DecorateText(banner, utils.StatusMessage),
				utils.DecorateText(fmt.Sprintf("⇢ exporting %s... %d file(s) written", job.Profile, written), utils.DefaultMessage),
			))
		}
		if onWrite != nil {
			onWrite(path)
		}
	}
	defer func() { e.OnWrite = onWrite }()

	if spinner != nil {
		// Capture CTRL-C signal and restore the cursor visibility back.
		signalChan := make(chan os.Signal, 1)
		done := make(chan struct{})
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		defer func() {
			signal.Stop(signalChan)
			close(done)
		}()
		go waitInterrupt(signalChan, done, func() {
			spinner.RestoreCursor()
			os.Exit(1)
		})
		spinner.Start()
	}

	now := time.Now()
	paths, err := e.Export(job)

	if spinner != nil {
		if err != nil {
			spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
				utils.DecorateText(banner, utils.StatusMessage),
				utils.DecorateText("export failed...", utils.DefaultMessage),
				utils.DecorateText("✘", utils.ErrorMessage),
			)
		} else {
			spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
				utils.DecorateText(banner, utils.StatusMessage),
				utils.DecorateText("⇢", utils.DefaultMessage),
				utils.DecorateText("the export has been completed successfully ✔", utils.SuccessMessage),
			)
		}
		spinner.Stop()
	}

	printStatus(w, paths, err)
	if err == nil {
		fmt.Fprintf(w, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return paths, err
}

// waitInterrupt calls onSignal when a signal arrives on sig. It returns
// without calling it once done is closed.
func waitInterrupt(sig <-chan os.Signal, done <-chan struct{}, onSignal func()) {
	select {
	case <-sig:
		onSignal()
	case <-done:
	}
}

// printStatus displays the written files, or the reason of the failure.
func printStatus(w io.Writer, paths []string, err error) {
	for _, p := range paths {
		fmt.Fprintf(w, "The image has been saved as: %s\n", utils.DecorateText(filepath.ToSlash(p), utils.SuccessMessage))
	}
	if err == nil {
		return
	}

	headline, ok := kindMessages[KindOf(err)]
	if !ok {
		headline = "The export failed"
	}
	fmt.Fprintf(w, "\n%s\n", utils.DecorateText(headline, utils.ErrorMessage))
	fmt.Fprintf(w, "%s\n", utils.DecorateText(fmt.Sprintf("\tReason: %v", err), utils.DefaultMessage))
	if hint := HintOf(err); hint != "" {
		fmt.Fprintf(w, "%s\n", utils.DecorateText("\tHint: "+hint, utils.WarningMessage))
	}
}

// isTerminal reports whether w is attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
